package service

import "time"

// SetClock replaces the clock of an ImportService built by NewImportService.
func SetClock(s ImportService, now func() time.Time) {
	s.(*importService).now = now
}
