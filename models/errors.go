package models

import "errors"

// Sentinel errors for the whole pipeline. User-facing Russian messages
// live in the input package; these exist so callers can branch with
// errors.Is regardless of wrapping.
var (
	// ErrMalformedInput: the CSV header does not carry the required schema.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnknownCurrency: a salary carries a currency code outside the
	// conversion table. Never defaulted, always fatal.
	ErrUnknownCurrency = errors.New("unknown currency code")

	// ErrInvalidFilter: the filter names a field outside the closed vocabulary.
	ErrInvalidFilter = errors.New("unknown filter field")

	// ErrInvalidSort: the sort key names a field outside the closed vocabulary.
	ErrInvalidSort = errors.New("unknown sort field")

	// ErrInvalidConfig: malformed filter syntax, bad reverse-sort token,
	// unreadable page range or an empty input file.
	ErrInvalidConfig = errors.New("invalid parameter")

	// ErrEmptyDataset: no row survived normalization.
	ErrEmptyDataset = errors.New("no data")

	// ErrEmptyResult: the dataset is fine but the filter matched nothing.
	ErrEmptyResult = errors.New("nothing found")
)
