// Package icsexport serializes projected events into an iCalendar payload.
//
// Export is atomic: every event is checked before anything is written, and a
// single bad event fails the whole payload with ErrGeneration.
package icsexport
