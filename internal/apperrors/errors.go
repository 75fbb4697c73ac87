package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrExternalSource indicates the exchange-rate source was unreachable or
// answered with a non-success status. A run hitting this error is aborted
// with no partial rate table.
var ErrExternalSource = errors.New("external rate source error")

// ErrStoreConnection indicates a connection or transaction level database
// failure. Unlike per-row constraint skips, this aborts the whole load.
var ErrStoreConnection = errors.New("store connection error")
