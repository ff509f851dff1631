package quote

import (
	"fmt"
	"math"

	"github.com/govalues/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format selects how a numeric value is rendered.
type Format int

const (
	// FormatWhole drops the fractional part and groups thousands: 39876.4 -> "39,876".
	FormatWhole Format = iota
	// FormatFixed2 rounds to two decimals and groups thousands: 147.896 -> "147.90".
	FormatFixed2
)

func (f Format) String() string {
	switch f {
	case FormatWhole:
		return "whole"
	case FormatFixed2:
		return "fixed2"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Formatter renders values with the grouping and decimal conventions of a locale.
type Formatter struct {
	p *message.Printer
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// Format renders v. Two-decimal values are rounded from their binary value,
// the same as %.2f, so 147.135 prints as "147.13".
func (f *Formatter) Format(v float64, format Format) string {
	switch format {
	case FormatFixed2:
		return f.p.Sprintf("%.2f", v)
	default:
		return f.p.Sprintf("%.0f", trunc(v))
	}
}

// trunc drops the fractional part of v. The result stays a float so values
// beyond the int64 range still print, and -0 prints as 0.
func trunc(v float64) float64 {
	r := math.Trunc(v)
	if d, err := decimal.NewFromFloat64(v); err == nil {
		if f, ok := d.Trunc(0).Float64(); ok {
			r = f
		}
	}
	if r == 0 {
		return 0
	}
	return r
}
