package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"icons8dl/pkg/config"
	"icons8dl/pkg/logger"
	"icons8dl/pkg/scraper"
)

const appName = "icons8dl"

// NotificationSender interface for platform-specific notification implementations
type NotificationSender interface {
	Send(title, message string) error
}

// LinuxNotificationSender sends notifications on Linux using notify-send
type LinuxNotificationSender struct{}

func (l *LinuxNotificationSender) Send(title, message string) error {
	cmd := exec.Command("notify-send", "--app-name="+appName, title, message)
	return cmd.Run()
}

// MacOSNotificationSender sends notifications on macOS using osascript
type MacOSNotificationSender struct{}

func (m *MacOSNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`display notification %s with title %s`, appleScriptString(message), appleScriptString(title))
	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// WindowsNotificationSender sends notifications on Windows using PowerShell
type WindowsNotificationSender struct{}

func (w *WindowsNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`
		[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
		[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
		$xml = @"
<toast>
	<visual>
		<binding template="ToastText02">
			<text id="1">%s</text>
			<text id="2">%s</text>
		</binding>
	</visual>
</toast>
"@
		$doc = [Windows.Data.Xml.Dom.XmlDocument]::new()
		$doc.LoadXml($xml)
		$toast = [Windows.UI.Notifications.ToastNotification]::new($doc)
		[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("%s").Show($toast)
	`, xmlEscape(title), xmlEscape(message), appName)

	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	return cmd.Run()
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

// PlatformSender returns the sender for the current OS, or nil when the
// platform has no supported notification mechanism
func PlatformSender() NotificationSender {
	switch runtime.GOOS {
	case "linux":
		return &LinuxNotificationSender{}
	case "darwin":
		return &MacOSNotificationSender{}
	case "windows":
		return &WindowsNotificationSender{}
	default:
		return nil
	}
}

// Notifier sends desktop notifications at the end of a run. Delivery failures
// are logged and otherwise ignored.
type Notifier struct {
	sender NotificationSender
	cfg    config.NotificationConfig
	logger logger.Logger
}

// NewNotifier creates a Notifier. A nil sender disables delivery.
func NewNotifier(sender NotificationSender, cfg config.NotificationConfig, log logger.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		cfg:    cfg,
		logger: logger.OrNop(log),
	}
}

// RunCompleted reports a finished run
func (n *Notifier) RunCompleted(report *scraper.Report) {
	if !n.cfg.OnComplete {
		return
	}
	message := fmt.Sprintf("%d of %d icons downloaded", report.Succeeded, report.Total)
	if report.Failed > 0 {
		message += fmt.Sprintf(", %d failed", report.Failed)
	}
	n.send("Download complete", message)
}

// RunFailed reports a run that aborted with err
func (n *Notifier) RunFailed(err error) {
	if !n.cfg.OnError {
		return
	}
	n.send("Download failed", err.Error())
}

func (n *Notifier) send(title, message string) {
	if !n.cfg.Enabled || n.sender == nil {
		return
	}
	if err := n.sender.Send(title, message); err != nil {
		n.logger.WithError(err).Debug("Desktop notification failed")
	}
}
