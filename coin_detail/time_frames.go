package coin_detail

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimeFrame is a selectable chart range
type TimeFrame struct {
	Label string  `json:"label"`
	Days  float64 `json:"days"`
}

// TimeFrames lists the chart ranges offered to the user, shortest first
var TimeFrames = []TimeFrame{
	{Label: "H", Days: 1.0 / 24},
	{Label: "D", Days: 1},
	{Label: "W", Days: 7},
	{Label: "M", Days: 30},
	{Label: "6M", Days: 180},
	{Label: "Y", Days: 365},
	{Label: "All", Days: 1000},
}

// TimeFrameByLabel finds a time frame by label, ignoring case
func TimeFrameByLabel(label string) (TimeFrame, bool) {
	for _, tf := range TimeFrames {
		if strings.EqualFold(tf.Label, label) {
			return tf, true
		}
	}
	return TimeFrame{}, false
}

// LabelForDays returns the label of a known range, or the day count itself
func LabelForDays(days float64) string {
	for _, tf := range TimeFrames {
		if tf.Days == days {
			return tf.Label
		}
	}
	return strconv.FormatFloat(days, 'f', -1, 64) + "d"
}

// ParseDays accepts a time frame label ("W") or a positive day count ("7", "0.5")
func ParseDays(value string) (float64, error) {
	if tf, ok := TimeFrameByLabel(value); ok {
		return tf.Days, nil
	}
	days, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time frame %q", value)
	}
	if !validDays(days) {
		return 0, fmt.Errorf("time frame must be a positive finite number, got %q", value)
	}
	return days, nil
}

func validDays(days float64) bool {
	return days > 0 && !math.IsInf(days, 0)
}
