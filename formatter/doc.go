// Package formatter renders grids, route listings and stop timetables for
// the terminal.
//
// This package is organized into:
// - grid.go: month grid and selected-week event list
// - routes.go: route, stop and timetable listings
//
// Styling uses lipgloss; output degrades to plain text when the terminal has
// no colour support.
package formatter
