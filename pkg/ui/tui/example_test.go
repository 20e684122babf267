package tui_test

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"icons8dl/pkg/catalog"
	"icons8dl/pkg/config"
	"icons8dl/pkg/scraper"
	"icons8dl/pkg/ui"
	"icons8dl/pkg/ui/tui"
)

func ExampleTUI() {
	filter := catalog.Filter{Style: "ios", Query: "arrow"}

	s, err := scraper.NewFromConfig(config.DefaultConfig(), nil)
	if err != nil {
		fmt.Println(err)
		return
	}

	summary := ui.NewProgressDisplay(os.Stdout, ui.DisplayOptions{Quiet: true})
	terminal := tui.NewTUI(filter, summary, tea.WithAltScreen())
	terminal.Start()

	report, err := s.DownloadIcons(context.Background(), filter, terminal)
	if err != nil {
		terminal.Fail(err)
		return
	}
	terminal.Complete(report)
}
