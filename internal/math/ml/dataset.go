package ml

// Metadata describes a fitted regression.
type Metadata struct {
	Samples    int     `json:"samples"`
	Parameters int     `json:"parameters"`
	Rank       int     `json:"rank"`
	SSE        float64 `json:"sse"`
	R2         float64 `json:"r2"`
	AdjR2      float64 `json:"adj_r2"`
}

// DegreesOfFreedom returns the residual degrees of freedom.
func (m Metadata) DegreesOfFreedom() int {
	return m.Samples - m.Rank
}
