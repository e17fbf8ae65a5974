package util

import "time"

// A-share session boundaries, expressed as seconds since midnight. Both
// sessions are open intervals: a moment exactly on a boundary is outside.
const (
	morningOpen    = 9*3600 + 30*60  // 09:30
	morningClose   = 11*3600 + 30*60 // 11:30
	afternoonOpen  = 13 * 3600       // 13:00
	afternoonClose = 15 * 3600       // 15:00
)

// defaultHolidays lists mainland China public holidays that fall on
// weekdays. Weekend holidays are omitted: the weekday check already
// excludes them. Extend per year via NewTradingCalendar.
var defaultHolidays = []string{
	// 2023
	"2023-01-02",
	"2023-01-23", "2023-01-24", "2023-01-25", "2023-01-26", "2023-01-27",
	"2023-04-05",
	"2023-05-01", "2023-05-02", "2023-05-03",
	"2023-06-22", "2023-06-23",
	"2023-09-29",
	"2023-10-02", "2023-10-03", "2023-10-04", "2023-10-05", "2023-10-06",
	// 2024
	"2024-01-01",
	"2024-02-12", "2024-02-13", "2024-02-14", "2024-02-15", "2024-02-16",
	"2024-04-04", "2024-04-05",
	"2024-05-01", "2024-05-02", "2024-05-03",
	"2024-06-10",
	"2024-09-16", "2024-09-17",
	"2024-10-01", "2024-10-02", "2024-10-03", "2024-10-04", "2024-10-07",
	// 2025
	"2025-01-01",
	"2025-01-28", "2025-01-29", "2025-01-30", "2025-01-31",
	"2025-02-03", "2025-02-04",
	"2025-04-04",
	"2025-05-01", "2025-05-02", "2025-05-05",
	"2025-06-02",
	"2025-10-01", "2025-10-02", "2025-10-03",
	"2025-10-06", "2025-10-07", "2025-10-08",
	// 2026
	"2026-01-01", "2026-01-02",
	"2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19", "2026-02-20",
	"2026-04-06",
	"2026-05-01", "2026-05-04", "2026-05-05",
	"2026-06-19",
	"2026-09-25",
	"2026-10-01", "2026-10-02", "2026-10-05", "2026-10-06", "2026-10-07",
}

// TradingCalendar answers whether a wall-clock moment falls inside an open
// A-share market session, holiday-aware.
type TradingCalendar struct {
	holidays map[string]struct{}
}

// NewTradingCalendar creates a TradingCalendar with the built-in holiday
// table plus any extra holiday dates (formatted "2006-01-02") from
// configuration.
func NewTradingCalendar(extraHolidays []string) *TradingCalendar {
	holidays := make(map[string]struct{}, len(defaultHolidays)+len(extraHolidays))
	for _, d := range defaultHolidays {
		holidays[d] = struct{}{}
	}
	for _, d := range extraHolidays {
		holidays[d] = struct{}{}
	}
	return &TradingCalendar{holidays: holidays}
}

// IsBusinessDay reports whether t falls on a Monday–Friday that is not a
// public holiday.
func (tc *TradingCalendar) IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := tc.holidays[t.Format("2006-01-02")]
	return !holiday
}

// IsTradingMoment reports whether t is strictly inside one of the two
// A-share sessions (09:30–11:30, 13:00–15:00, endpoints exclusive) on a
// business day.
func (tc *TradingCalendar) IsTradingMoment(t time.Time) bool {
	if !tc.IsBusinessDay(t) {
		return false
	}
	secs := t.Hour()*3600 + t.Minute()*60 + t.Second()
	if secs > morningOpen && secs < morningClose {
		return true
	}
	return secs > afternoonOpen && secs < afternoonClose
}
