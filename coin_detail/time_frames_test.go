package coin_detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDays(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"H", 1.0 / 24, false},
		{"w", 7, false},
		{"6M", 180, false},
		{"all", 1000, false},
		{"14", 14, false},
		{"0.5", 0.5, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"week", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"-Inf", 0, true},
		{"+Infinity", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDays(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabelForDays(t *testing.T) {
	assert.Equal(t, "M", LabelForDays(30))
	assert.Equal(t, "H", LabelForDays(1.0/24))
	assert.Equal(t, "14d", LabelForDays(14))
}

func TestTimeFramesAscending(t *testing.T) {
	for i := 1; i < len(TimeFrames); i++ {
		assert.Less(t, TimeFrames[i-1].Days, TimeFrames[i].Days)
	}
}
