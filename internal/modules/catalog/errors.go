package catalog

import "errors"

var ErrNotFound = errors.New("record not found")

// FieldErrors carries per-field validation violations, keyed by field name.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string { return "validation failed" }
