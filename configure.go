package ecs

// This file is the world-configuration surface. Nested-block world builders
// (`components { ... } families { ... } systems { ... } inject { ... }`)
// have no direct idiomatic Go equivalent — Go has no trailing-closure block
// syntax — so configuration is expressed as a functional-options constructor
// (NewWorld(opts...)) plus a handful of top-level builder calls against the
// constructed World, each corresponding to exactly one configuration block:
//
//	world := ecs.NewWorld()
//	defer world.Dispose()
//
//	positions, positionType := ecs.RegisterComponent[Position](world)
//	velocities, velocityType := ecs.RegisterComponent[Velocity](world)
//
//	moving := world.Family(ecs.NewFamilySpec(
//		ecs.AllOf(positionType.ID(), velocityType.ID()),
//	))
//
//	world.Inject(&Clock{})
//	ecs.AddSystem(world, "movement", NewMovementSystem(moving, positions, velocities))
//
//	world.Update(1.0 / 60.0)
//
// RegisterComponent calls are the `components { }` block (onAdd/onRemove are
// expressed as OnAddHook/OnRemoveHook on the component type itself, rather
// than as a map of closures). world.Family calls are the `families { }`
// block. ecs.AddSystem calls, in call order, are the `systems { }` block —
// the pipeline order is the registration order. world.Inject / ecs.Get are
// the `inject { }` registry.

// EntityView is a scoped facade over one entity, standing in for a
// `world[e]` indexing syntax (Go has no operator overloading for
// subscripting a struct, so this is exposed as a method instead).
type EntityView struct {
	w *World
	e Entity
}

// View returns a facade scoped to entity e.
func (w *World) View(e Entity) EntityView {
	return EntityView{w: w, e: e}
}

// Entity returns the underlying entity id.
func (v EntityView) Entity() Entity { return v.e }

// IsAlive reports whether the viewed entity is still alive.
func (v EntityView) IsAlive() bool { return v.w.IsAlive(v.e) }

// Remove requests destruction of the viewed entity.
func (v EntityView) Remove() { v.w.Remove(v.e) }

// ViewAdd attaches value to view's entity through mapper m.
func ViewAdd[T any](v EntityView, m *ComponentMapper[T], value T) {
	AddComponent(v.w, m, v.e, value)
}

// ViewRemove detaches T from view's entity through mapper m.
func ViewRemove[T any](v EntityView, m *ComponentMapper[T]) {
	RemoveComponent(v.w, m, v.e)
}

// ViewGet returns T for view's entity through mapper m, panicking if absent.
func ViewGet[T any](v EntityView, m *ComponentMapper[T]) T {
	return m.Get(v.e)
}

// ViewHas reports whether view's entity carries T in mapper m.
func ViewHas[T any](v EntityView, m *ComponentMapper[T]) bool {
	return m.Has(v.e)
}
