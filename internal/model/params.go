package model

import (
	"fmt"
	"time"
)

// Mode is the scaling strategy for a numeric column.
type Mode string

const (
	// MinScale divides by the max observed value.
	MinScale Mode = "min"
	// Standardize subtracts the mean and divides by the standard deviation.
	Standardize Mode = "standardize"
)

// ParseMode parses a configured scaling mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case MinScale, "":
		return MinScale, nil
	case Standardize:
		return Standardize, nil
	}
	return "", fmt.Errorf("unknown scale mode '%s'", s)
}

// ScaleParams holds the parameters of a fitted column transform,
// normalized = (raw - Offset) / Divisor.
type ScaleParams struct {
	Column  string  `json:"column"`
	Mode    Mode    `json:"mode"`
	Offset  float64 `json:"offset"`
	Divisor float64 `json:"divisor"`
}

// Apply normalizes a raw value.
func (p ScaleParams) Apply(v float64) float64 {
	return (v - p.Offset) / p.Divisor
}

// Invert maps a normalized value back to raw units.
func (p ScaleParams) Invert(v float64) float64 {
	return v*p.Divisor + p.Offset
}

// Vocabulary is the ordered set of categories seen at train time.
type Vocabulary struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// Fitted is everything captured at train time that test time needs.
// It is built once by the train pipeline and not mutated afterwards.
type Fitted struct {
	ID         string        `json:"id"`
	Created    time.Time     `json:"created"`
	Target     string        `json:"target"`
	Scales     []ScaleParams `json:"scales"`
	Vocabulary Vocabulary    `json:"vocabulary"`
	// Features is the column order of the design matrix, without the intercept.
	Features     []string  `json:"features"`
	Intercept    string    `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Scale returns the params captured for the given column.
func (f Fitted) Scale(column string) (ScaleParams, bool) {
	for _, p := range f.Scales {
		if p.Column == column {
			return p, true
		}
	}
	return ScaleParams{}, false
}

// TargetScale returns the params of the target column.
func (f Fitted) TargetScale() (ScaleParams, error) {
	p, ok := f.Scale(f.Target)
	if !ok {
		return ScaleParams{}, fmt.Errorf("no scale params for target '%s': %w", f.Target, MissingTargetErr)
	}
	return p, nil
}
