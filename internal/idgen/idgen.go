package idgen

import "github.com/google/uuid"

// NewFunc produces identifiers; tests may stub it for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as a string.
func New() string { return NewFunc() }
