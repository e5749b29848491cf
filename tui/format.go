package tui

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/status-im/coin-tracker/interfaces"
)

const chartUnavailable = "Chart data not available."

var (
	one      = decimal.NewFromInt(1)
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
	trillion = decimal.NewFromInt(1_000_000_000_000)

	candleLevels = []rune("▁▂▃▄▅▆▇█")
)

// FormatPrice renders a USD price: two decimals above $1, up to six below
func FormatPrice(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsZero() {
		return "$0.00"
	}
	if d.Abs().GreaterThanOrEqual(one) {
		return "$" + groupThousands(d.StringFixed(2))
	}

	s := strings.TrimRight(d.StringFixed(6), "0")
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 < 2 {
		s = d.StringFixed(2)
	}
	return "$" + s
}

// FormatPercent renders a signed percentage, or N/A when the value is unusable
func FormatPercent(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsPositive() {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}

// FormatCompact renders large USD amounts with a T/B/M/K suffix
func FormatCompact(v float64) string {
	d := decimal.NewFromFloat(v)
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(trillion):
		return "$" + d.Div(trillion).StringFixed(2) + "T"
	case abs.GreaterThanOrEqual(billion):
		return "$" + d.Div(billion).StringFixed(2) + "B"
	case abs.GreaterThanOrEqual(million):
		return "$" + d.Div(million).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return "$" + d.Div(thousand).StringFixed(2) + "K"
	default:
		return "$" + d.StringFixed(2)
	}
}

// RangeChange is the percentage move from the first open to the last close
func RangeChange(points []interfaces.OHLCPoint) (decimal.Decimal, bool) {
	if len(points) < 2 {
		return decimal.Zero, false
	}
	first := decimal.NewFromFloat(points[0].Open)
	if first.IsZero() {
		return decimal.Zero, false
	}
	last := decimal.NewFromFloat(points[len(points)-1].Close)
	return last.Sub(first).Div(first).Mul(hundred), true
}

// RenderCandles draws closing prices as a one-line bar strip at most width runes wide
func RenderCandles(points []interfaces.OHLCPoint, width int) string {
	if len(points) < 2 || width < 2 {
		return chartUnavailable
	}

	closes := downsample(points, width)
	low, high := closes[0], closes[0]
	for _, c := range closes {
		if c < low {
			low = c
		}
		if c > high {
			high = c
		}
	}

	var b strings.Builder
	top := len(candleLevels) - 1
	for _, c := range closes {
		level := top / 2
		if high > low {
			level = int((c - low) / (high - low) * float64(top))
		}
		b.WriteRune(candleLevels[level])
	}
	return b.String()
}

// downsample keeps the last close of each of width equal buckets
func downsample(points []interfaces.OHLCPoint, width int) []float64 {
	if len(points) <= width {
		closes := make([]float64, len(points))
		for i, p := range points {
			closes[i] = p.Close
		}
		return closes
	}

	closes := make([]float64, width)
	for i := 0; i < width; i++ {
		end := (i+1)*len(points)/width - 1
		closes[i] = points[end].Close
	}
	return closes
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + fracPart
}
