package ui

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProgressBar   = "█"
	ProgressEmpty = "░"
)

// StatusTracker counts the progress of one download run. It is not safe for
// concurrent use; callers hold their own lock.
type StatusTracker struct {
	Found     int
	Total     int
	Succeeded int
	Failed    int
	Bytes     int64
	StartTime time.Time
}

// NewStatusTracker creates a new status tracker
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		StartTime: time.Now(),
	}
}

// Record counts one finished icon
func (st *StatusTracker) Record(success bool, size int64) {
	if success {
		st.Succeeded++
		st.Bytes += size
	} else {
		st.Failed++
	}
}

// Completed is the number of finished icons, successful or not
func (st *StatusTracker) Completed() int {
	return st.Succeeded + st.Failed
}

// Fraction returns completed/total in [0,1]
func (st *StatusTracker) Fraction() float64 {
	if st.Total <= 0 {
		return 0
	}
	f := float64(st.Completed()) / float64(st.Total)
	if f > 1 {
		f = 1
	}
	return f
}

// Bar renders a fixed-width bar followed by "(completed/total)"
func (st *StatusTracker) Bar(width int) string {
	filled := int(st.Fraction() * float64(width))
	bar := strings.Repeat(ProgressBar, filled) +
		strings.Repeat(ProgressEmpty, width-filled)

	return fmt.Sprintf("[%s] (%d/%d)", bar, st.Completed(), st.Total)
}

// GetElapsedTime returns the elapsed time since tracking started
func (st *StatusTracker) GetElapsedTime() time.Duration {
	return time.Since(st.StartTime)
}

// GetDownloadRate returns the average number of icons finished per second
func (st *StatusTracker) GetDownloadRate() float64 {
	elapsed := st.GetElapsedTime().Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(st.Completed()) / elapsed
}

// ETA estimates the time left at the current rate. It is zero until the first
// icon finishes.
func (st *StatusTracker) ETA() time.Duration {
	rate := st.GetDownloadRate()
	if rate == 0 {
		return 0
	}
	remaining := st.Total - st.Completed()
	return time.Duration(float64(remaining)/rate) * time.Second
}
