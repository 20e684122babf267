package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"icons8dl/pkg/config"
	"icons8dl/pkg/logger"
	"icons8dl/pkg/scraper"
)

type recordingSender struct {
	titles   []string
	messages []string
	err      error
}

func (s *recordingSender) Send(title, message string) error {
	s.titles = append(s.titles, title)
	s.messages = append(s.messages, message)
	return s.err
}

func TestNotifierRunCompleted(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, config.NotificationConfig{Enabled: true, OnComplete: true}, nil)

	n.RunCompleted(&scraper.Report{Total: 10, Succeeded: 8, Failed: 2})

	assert.Equal(t, []string{"Download complete"}, sender.titles)
	assert.Equal(t, []string{"8 of 10 icons downloaded, 2 failed"}, sender.messages)
}

func TestNotifierRespectsPreferences(t *testing.T) {
	sender := &recordingSender{}

	NewNotifier(sender, config.NotificationConfig{Enabled: false, OnComplete: true, OnError: true}, nil).
		RunCompleted(&scraper.Report{})
	NewNotifier(sender, config.NotificationConfig{Enabled: true, OnComplete: false}, nil).
		RunCompleted(&scraper.Report{})
	NewNotifier(sender, config.NotificationConfig{Enabled: true, OnError: false}, nil).
		RunFailed(errors.New("boom"))

	assert.Empty(t, sender.titles)
}

func TestNotifierLogsDeliveryFailure(t *testing.T) {
	log := logger.NewTestLogger()
	sender := &recordingSender{err: errors.New("notify-send not found")}
	n := NewNotifier(sender, config.NotificationConfig{Enabled: true, OnError: true}, log)

	n.RunFailed(errors.New("failed to fetch catalog"))

	assert.Equal(t, []string{"failed to fetch catalog"}, sender.messages)
	assert.True(t, log.HasMessage("Desktop notification failed"))
}

func TestNotifierNilSender(t *testing.T) {
	n := NewNotifier(nil, config.NotificationConfig{Enabled: true, OnComplete: true}, nil)
	assert.NotPanics(t, func() { n.RunCompleted(&scraper.Report{Total: 1, Succeeded: 1}) })
}

func TestNotificationEscaping(t *testing.T) {
	assert.Equal(t, `"say \"hi\" \\ bye"`, appleScriptString(`say "hi" \ bye`))
	assert.Equal(t, "a &lt;b&gt; &amp; &quot;c&quot;", xmlEscape(`a <b> & "c"`))
}
