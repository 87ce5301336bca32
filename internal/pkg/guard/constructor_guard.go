// Package guard provides the constructor guard pattern for value objects and
// aggregates. A zero-value guard fails validation, which forces callers to go
// through the type's constructor and keeps invalid zero-value instances out of
// the domain.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no custom error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its constructor.
// Embed it (or include it as a field) in domain types and initialize it with
// NewConstructorGuard inside the constructor. The zero value is invalid.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil if the guard was created via NewConstructorGuard.
// For a zero-value guard it returns the supplied error, or
// ErrDefaultConstructorGuard when err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}

	if err != nil {
		return err
	}

	return ErrDefaultConstructorGuard
}
