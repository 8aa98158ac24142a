package ecs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel error kinds the core raises on programmer error. Each failure of
// these kinds wraps its sentinel with errors.Wrapf or errors.WithStack, so
// callers can still recover the sentinel with errors.Is / errors.Cause while
// getting a stack trace at the panic site for diagnostics. Failures raised
// through panicf carry no sentinel.
var (
	ErrMissingComponent = errors.New("ecs: missing component")
	ErrOutOfRange       = errors.New("ecs: index out of range")
	ErrUnknownComponent = errors.New("ecs: unknown component type")
	ErrDuplicate        = errors.New("ecs: duplicate registration")
	ErrDisposed         = errors.New("ecs: world already disposed")
)

func errMissingComponent(componentName string, entityID int) error {
	return errors.Wrapf(ErrMissingComponent, "component %s not present on entity %d", componentName, entityID)
}

func errOutOfRange(index, length int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d exceeds storage length %d", index, length)
}

func errUnknownComponent(what string) error {
	return errors.Wrapf(ErrUnknownComponent, "component type %s was never registered", what)
}

func errDuplicate(kind, name string) error {
	return errors.Wrapf(ErrDuplicate, "%s %q already registered", kind, name)
}

func errDisposed() error {
	return errors.WithStack(ErrDisposed)
}

// panicf is used for programmer errors that have no sentinel (malformed
// configuration caught only at world-build time).
func panicf(format string, args ...any) {
	panic(errors.New(fmt.Sprintf(format, args...)))
}
