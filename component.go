package ecs

import (
	"reflect"
	"strconv"

	"github.com/kamstrup/intmap"
)

// ComponentID is a dense, world-stable identifier assigned to a registered
// component type in 0..K-1.
type ComponentID int

// ComponentType is the static type token for a registered component type T.
// It is returned by RegisterComponent; its ID is passed to AllOf, AnyOf and
// NoneOf when building family specs.
type ComponentType[T any] struct {
	id   ComponentID
	name string
}

// ID returns the dense type-id assigned to this component type.
func (c ComponentType[T]) ID() ComponentID { return c.id }

// Name returns the registered name, the package-qualified Go type name
// (for example "ecs.testPosition").
func (c ComponentType[T]) Name() string { return c.name }

type componentDescriptor struct {
	id       ComponentID
	name     string
	typ      reflect.Type
	mapper   untypedMapper
	families []*Family // families that reference this type, precomputed at build time
}

// untypedMapper is the type-erased surface ComponentService needs to drive a
// mapper without knowing T: clearing membership on entity destruction and
// notifying families on every structural change already happens through the
// typed ComponentMapper[T], so the service only needs to reach into it for
// bulk operations (entity destruction, dump/snapshot).
type untypedMapper interface {
	removeIfPresent(e Entity)
	has(e Entity) bool
	snapshotValues() map[Entity]any
}

// ComponentService is the world's registry mapping component-type tokens to
// their mappers, and the source of dense type-id assignment.
type ComponentService struct {
	byType      map[reflect.Type]ComponentID
	descriptors *intmap.Map[int, *componentDescriptor]
	next        ComponentID
	world       *World
}

func newComponentService(w *World) *ComponentService {
	return &ComponentService{
		byType:      make(map[reflect.Type]ComponentID),
		descriptors: intmap.New[int, *componentDescriptor](32),
		world:       w,
	}
}

func componentName[T any]() string {
	var zero T
	return reflect.TypeOf(zero).String()
}

// RegisterComponent declares component type T and returns its mapper and
// type token. Registering the same T twice is a fatal configuration error
// (ErrDuplicate).
func RegisterComponent[T any](w *World) (*ComponentMapper[T], ComponentType[T]) {
	w.mustNotDisposed()
	var zero T
	typ := reflect.TypeOf(zero)
	if _, ok := w.components.byType[typ]; ok {
		panic(errDuplicate("component", typ.String()))
	}
	id := w.components.next
	w.components.next++
	name := componentName[T]()

	mapper := newComponentMapper[T](w, id)
	desc := &componentDescriptor{id: id, name: name, typ: typ, mapper: mapper}
	w.components.byType[typ] = id
	w.components.descriptors.Put(int(id), desc)

	w.log.WithField("component", name).WithField("id", id).Debug("registered component type")
	return mapper, ComponentType[T]{id: id, name: name}
}

// typeIDFor looks up the already-registered ComponentID for T, panicking
// with ErrUnknownComponent if T was never registered on this World.
func typeIDFor[T any](w *World) ComponentID {
	var zero T
	typ := reflect.TypeOf(zero)
	id, ok := w.components.byType[typ]
	if !ok {
		panic(errUnknownComponent(typ.String()))
	}
	return id
}

func (s *ComponentService) descriptor(id ComponentID) *componentDescriptor {
	d, ok := s.descriptors.Get(int(id))
	if !ok {
		panic(errUnknownComponent(id.String()))
	}
	return d
}

// removeAll clears entity e from every mapper that currently holds it. Used
// by World when an entity is destroyed.
func (s *ComponentService) removeAll(e Entity) {
	s.descriptors.ForEach(func(_ int, d *componentDescriptor) bool {
		d.mapper.removeIfPresent(e)
		return true
	})
}

func (c ComponentID) String() string {
	return strconv.Itoa(int(c))
}
