package model

import "errors"

var (
	// MissingTargetErr is returned when the training table lacks the target column.
	MissingTargetErr = errors.New("missing target column")
	// InsufficientDataErr is returned when a column has no valid values to compute a scale statistic from.
	InsufficientDataErr = errors.New("insufficient data")
	// UnresolvedMissingValueErr is returned when backward fill leaves trailing missing cells.
	UnresolvedMissingValueErr = errors.New("unresolved missing value")
	// SchemaMismatchErr is returned when a table layout does not match the expected columns.
	SchemaMismatchErr = errors.New("schema mismatch")
	// OutputNamingErr is returned when the next result file name cannot be derived.
	OutputNamingErr = errors.New("output naming")
)
