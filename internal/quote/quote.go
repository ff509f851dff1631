// Package quote models the tracked instruments and the display value shown
// for each, and resolves those values from a market-data provider.
package quote

import (
	"fmt"
	"time"
)

// Sentinel display values.
const (
	NotAvailable = "N/A"
	Failed       = "Error"
)

// Instrument is one tracked symbol and how its value is rendered.
type Instrument struct {
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
	Format Format `json:"format"`
}

// Placeholder is shown before the first fetch for the instrument completes.
func (i Instrument) Placeholder() string { return i.Label + ": Loading..." }

type Status int

const (
	StatusOK Status = iota
	StatusUnavailable
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Where a successful value came from.
const (
	SourceCurrent = "current"
	SourceHistory = "history"
)

// Quote is the latest display value for one instrument.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Text      string    `json:"text"`
	Status    Status    `json:"status"`
	Source    string    `json:"source,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

func Unavailable(inst Instrument, at time.Time) Quote {
	return Quote{Symbol: inst.Symbol, Text: NotAvailable, Status: StatusUnavailable, FetchedAt: at}
}

func Failure(inst Instrument, at time.Time) Quote {
	return Quote{Symbol: inst.Symbol, Text: Failed, Status: StatusFailed, FetchedAt: at}
}
