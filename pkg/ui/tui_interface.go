package ui

import "icons8dl/pkg/scraper"

// Display is a front end for one download run. It receives the run's progress
// events and renders the outcome.
type Display interface {
	scraper.Observer
	Complete(report *scraper.Report)
	Fail(err error)
}

var _ Display = (*ProgressDisplay)(nil)
