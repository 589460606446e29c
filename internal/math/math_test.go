package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrecision(t *testing.T) {

	type test struct {
		input  float64
		output string
	}

	tests := map[string]test{
		"0": {
			input:  0,
			output: "0.00",
		},
		"-1": {
			input:  -1,
			output: "-1.00",
		},
		"+1": {
			input:  1,
			output: "1.00",
		},
		"5": {
			input:  1.5555,
			output: "1.56",
		},
		"4": {
			input:  1.4444,
			output: "1.44",
		},
		"nan": {
			input:  math.NaN(),
			output: "NaN",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := FormatPrecision(tt.input, 2)
			assert.Equal(t, tt.output, s)
		})
	}

}

func TestFormatPrecision_Digits(t *testing.T) {
	assert.Equal(t, "0.3333", FormatPrecision(1.0/3.0, 4))
	assert.Equal(t, "3", FormatPrecision(3.14, 0))
}

func TestSeries(t *testing.T) {
	assert.Equal(t, []float64{1, 3, 5, 7}, Series(1, 2, 4))
	assert.Len(t, Wave(2, 10, 0.5), 10)
	assert.Equal(t, 0.0, Wave(2, 10, 0.5)[0])
}
