package ml

import (
	"sort"

	"github.com/drakos74/lifexp/internal/model"
)

// Fit builds the vocabulary of a categorical column.
// Values are sorted, missing cells are not part of it.
func Fit(column string, values []string) model.Vocabulary {
	seen := make(map[string]struct{})
	vv := make([]string, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			vv = append(vv, v)
		}
	}
	sort.Strings(vv)
	return model.Vocabulary{
		Column: column,
		Values: vv,
	}
}

// Transform one-hot encodes the values against the vocabulary.
// It returns one indicator column per vocabulary entry, in vocabulary order.
// Values outside the vocabulary get an all-zero row and are counted as unseen.
func Transform(values []string, vocabulary model.Vocabulary) ([]*model.Column, int) {
	position := make(map[string]int, len(vocabulary.Values))
	columns := make([]*model.Column, len(vocabulary.Values))
	for i, v := range vocabulary.Values {
		position[v] = i
		columns[i] = model.NewNumeric(v, make([]float64, len(values)))
	}

	var unseen int
	for row, v := range values {
		if i, ok := position[v]; ok {
			columns[i].Floats[row] = 1
		} else if v != "" {
			unseen++
		}
	}
	return columns, unseen
}
