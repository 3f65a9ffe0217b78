package domain

import (
	"fmt"
	"time"
)

// TimeFilter names a rolling time window used to include or exclude scan
// records by timestamp.
type TimeFilter string

const (
	LastDay     TimeFilter = "lastDay"
	LastWeek    TimeFilter = "lastWeek"
	LastMonth   TimeFilter = "lastMonth"
	Last6Months TimeFilter = "last6Months"
	LastYear    TimeFilter = "lastYear"
	AllTime     TimeFilter = "allTime"
)

// TimeFilters lists the selectable windows in display order.
var TimeFilters = []TimeFilter{LastDay, LastWeek, LastMonth, Last6Months, LastYear, AllTime}

type windowSpec struct {
	days  int // 0 means unbounded
	label string
	query string
}

var windows = map[TimeFilter]windowSpec{
	LastDay:     {days: 1, label: "Last 24 hours", query: "1d"},
	LastWeek:    {days: 7, label: "Last week", query: "7d"},
	LastMonth:   {days: 30, label: "Last month", query: "30d"},
	Last6Months: {days: 180, label: "Last 6 months", query: "180d"},
	LastYear:    {days: 365, label: "Last year", query: "1y"},
	AllTime:     {days: 0, label: "All time", query: "all"},
}

// ParseTimeFilter converts a user-supplied window name into a TimeFilter.
func ParseTimeFilter(s string) (TimeFilter, error) {
	f := TimeFilter(s)
	if _, ok := windows[f]; !ok {
		return "", fmt.Errorf("unknown time window %q", s)
	}
	return f, nil
}

// Label returns the human-readable name of the window.
func (f TimeFilter) Label() string {
	if w, ok := windows[f]; ok {
		return w.label
	}
	return string(f)
}

// QueryValue returns the backend query-parameter form of the window
// (1d, 7d, 30d, 180d, 1y, all).
func (f TimeFilter) QueryValue() string {
	if w, ok := windows[f]; ok {
		return w.query
	}
	return "all"
}

// Includes reports whether ts falls inside the window ending at now.
//
// The day boundary is inclusive: a timestamp exactly seven days old still
// passes lastWeek. Future timestamps yield a negative age and are always
// included. A zero (missing or unparseable) timestamp is excluded by every
// bounded window; allTime includes everything, zero and future alike.
func (f TimeFilter) Includes(ts, now time.Time) bool {
	w, ok := windows[f]
	if !ok || w.days == 0 {
		return true
	}
	if ts.IsZero() {
		return false
	}
	daysDiff := now.Sub(ts).Hours() / 24
	return daysDiff <= float64(w.days)
}
