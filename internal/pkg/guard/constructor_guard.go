// Package guard provides a defensive construction pattern for domain objects.
//
// ConstructorGuard is embedded in value objects, commands, and queries so that
// zero-value instances (created without going through the constructor) can be
// detected and rejected before they reach business logic.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no custom error
// is supplied for an object that bypassed its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value
// reports the object as not constructed, so every constructor must set it
// via NewConstructorGuard.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard marking its holder as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a properly constructed holder. For a zero-value
// holder it returns customErr, or ErrDefaultConstructorGuard when customErr
// is nil.
func (g ConstructorGuard) Validate(customErr error) error {
	if g.constructed {
		return nil
	}

	if customErr != nil {
		return customErr
	}

	return ErrDefaultConstructorGuard
}
