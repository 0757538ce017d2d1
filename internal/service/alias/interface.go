// Package alias provides interfaces for types to be in compliance with.
package alias

// Allocator defines a set of methods for types implementing Allocator.
type Allocator interface {
	Validate(requested string) error
	Generate() (string, error)
}
