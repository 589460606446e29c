package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFit_Vocabulary(t *testing.T) {
	vocabulary := Fit("Country", []string{"Peru", "Chad", "", "Peru", "Albania"})
	assert.Equal(t, "Country", vocabulary.Column)
	assert.Equal(t, []string{"Albania", "Chad", "Peru"}, vocabulary.Values)
}

func TestTransform_Indicators(t *testing.T) {
	vocabulary := Fit("Country", []string{"Peru", "Chad", "Albania"})

	type test struct {
		values []string
		ones   []int
		unseen int
	}

	tests := map[string]test{
		"known": {
			values: []string{"Chad", "Peru", "Albania", "Chad"},
			ones:   []int{1, 1, 1, 1},
		},
		"unknown": {
			values: []string{"Chad", "Narnia", "Peru"},
			ones:   []int{1, 0, 1},
			unseen: 1,
		},
		"missing": {
			values: []string{""},
			ones:   []int{0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			columns, unseen := Transform(tt.values, vocabulary)
			assert.Equal(t, tt.unseen, unseen)
			// columns follow the vocabulary order exactly
			assert.Len(t, columns, len(vocabulary.Values))
			for i, c := range columns {
				assert.Equal(t, vocabulary.Values[i], c.Name)
				assert.Len(t, c.Floats, len(tt.values))
			}
			for row := range tt.values {
				var sum float64
				for _, c := range columns {
					v := c.Floats[row]
					assert.True(t, v == 0 || v == 1)
					sum += v
				}
				assert.Equal(t, float64(tt.ones[row]), sum)
			}
		})
	}
}

func TestTransform_Position(t *testing.T) {
	vocabulary := Fit("Country", []string{"b", "a"})
	columns, _ := Transform([]string{"b"}, vocabulary)
	assert.Equal(t, []float64{0}, columns[0].Floats)
	assert.Equal(t, []float64{1}, columns[1].Floats)
}
