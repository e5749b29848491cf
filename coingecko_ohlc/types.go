package coingecko_ohlc

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/status-im/coin-tracker/interfaces"
)

// OHLCRow is one [timestamp, open, high, low, close] tuple as returned by the API
type OHLCRow []json.Number

// ParseOHLC decodes the API response and returns points ascending by timestamp
func ParseOHLC(body []byte) ([]interfaces.OHLCPoint, error) {
	var rows []OHLCRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, err
	}

	points := make([]interfaces.OHLCPoint, 0, len(rows))
	for i, row := range rows {
		point, err := row.toPoint()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		points = append(points, point)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
	return points, nil
}

func (r OHLCRow) toPoint() (interfaces.OHLCPoint, error) {
	if len(r) != 5 {
		return interfaces.OHLCPoint{}, fmt.Errorf("expected 5 values, got %d", len(r))
	}

	ts, err := r[0].Float64()
	if err != nil {
		return interfaces.OHLCPoint{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	values := make([]float64, 4)
	for i := range values {
		if values[i], err = r[i+1].Float64(); err != nil {
			return interfaces.OHLCPoint{}, fmt.Errorf("invalid value at %d: %w", i+1, err)
		}
	}

	return interfaces.OHLCPoint{
		Timestamp: int64(ts),
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
	}, nil
}
