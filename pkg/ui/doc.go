// Package ui provides the terminal front ends for icons8dl.
//
// ProgressDisplay prints a running count while the catalog is fetched, a
// progress bar while icons download, and a summary table at the end. It is
// safe to use from the scraper's observer callbacks.
//
//	display := ui.NewProgressDisplay(os.Stdout, ui.DisplayOptions{Interactive: true})
//	report, err := s.DownloadIcons(ctx, filter, display)
//	if err != nil {
//		display.Fail(err)
//		return err
//	}
//	display.Complete(report)
//
// The color helpers honor SetColorEnabled, which the CLI turns off when
// stdout is not a terminal or --no-color is given.
//
// The interactive bubbletea interface lives in the tui subpackage.
package ui
