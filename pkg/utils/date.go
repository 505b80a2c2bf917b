package utils

import (
	"time"
)

var marketLocation = loadLocation("America/New_York")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MarketLocation is the exchange timezone used for analysis timestamps and history windows.
func MarketLocation() *time.Location {
	return marketLocation
}

func TimeNowMarket() time.Time {
	return time.Now().In(marketLocation)
}

// PeriodStart maps a history period ("1mo", "6mo", "1y", "2y", ...) to its start relative to now.
// ok is false for an unknown period.
func PeriodStart(period string, now time.Time) (start time.Time, ok bool) {
	switch period {
	case "1d":
		return now.AddDate(0, 0, -1), true
	case "5d":
		return now.AddDate(0, 0, -5), true
	case "1mo":
		return now.AddDate(0, -1, 0), true
	case "3mo":
		return now.AddDate(0, -3, 0), true
	case "6mo":
		return now.AddDate(0, -6, 0), true
	case "1y":
		return now.AddDate(-1, 0, 0), true
	case "2y":
		return now.AddDate(-2, 0, 0), true
	case "5y":
		return now.AddDate(-5, 0, 0), true
	default:
		return time.Time{}, false
	}
}
