// Package calendar holds the date arithmetic shared by the HTTP export and
// the selection preview: civil dates, weekday names, the month grid and the
// projection of weekly selections onto concrete events.
//
// Everything here is pure. Dates are civil (year, month, day) values so that
// grid and week comparisons never depend on a time of day or a zone; a
// location is only attached when a projected event gets its wall clock.
package calendar
