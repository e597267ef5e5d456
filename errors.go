package jag

import (
	"errors"
	"fmt"
)

var (
	// ErrNotDefined signals a lookup for a key absent from the current mapping.
	// It is routine control flow and callers are expected to check for it.
	ErrNotDefined = errors.New("jag: not defined")
	// ErrUnknownAttribute signals a dynamic accessor request that is neither a
	// get_<name> getter nor a valid package name. It indicates misuse.
	ErrUnknownAttribute = errors.New("jag: unknown attribute")
	// ErrReleaseOrder indicates an acquisition was released while a layer
	// defined after it was still active.
	ErrReleaseOrder = errors.New("jag: release out of order")
	// ErrReleased indicates an acquisition was released more than once.
	ErrReleased = errors.New("jag: already released")
	// ErrTypeMismatch indicates a typed accessor found a value it could not
	// convert to the requested type.
	ErrTypeMismatch = errors.New("jag: type mismatch")
)

// NotDefinedError reports the key that was missing.
type NotDefinedError struct {
	Key       string
	Namespace string
}

func (e *NotDefinedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Namespace != "" {
		return fmt.Sprintf("jag: %q is not defined in package %q", e.Key, e.Namespace)
	}
	return fmt.Sprintf("jag: %q is not defined", e.Key)
}

func (e *NotDefinedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrNotDefined
}

// UnknownAttributeError reports the owner and attribute of a failed dynamic
// accessor lookup.
type UnknownAttributeError struct {
	Owner string
	Attr  string
}

func (e *UnknownAttributeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("jag: %s has no attribute %q", e.Owner, e.Attr)
}

func (e *UnknownAttributeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrUnknownAttribute
}

// IsNotDefined reports whether err signals a missing jag.
func IsNotDefined(err error) bool {
	return errors.Is(err, ErrNotDefined)
}

func notDefined(key, namespace string) error {
	return &NotDefinedError{Key: key, Namespace: namespace}
}
