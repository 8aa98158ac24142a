package ecs

import (
	"reflect"

	"github.com/sirupsen/logrus"
)

// deferredOp is a queued structural mutation, applied in enqueue order. The
// core encodes every mutation kind (destroy, add, remove) as a closure
// rather than a tagged struct, the way the pack's command-buffer examples
// do it, since the payload shape differs per component type T.
type deferredOp func(w *World)

// World is the top-level container: entity service, component registry,
// family registry, system pipeline, and the deferred-mutation queue. There
// is at most one World per simulation; it is not safe for concurrent use
// from multiple goroutines.
type World struct {
	entities   *EntityService
	components *ComponentService

	families    []*Family
	familyIndex map[string]*Family

	compMasks []*BitArray

	systems []systemEntry

	queue     []deferredOp
	iterating int

	constructing []Entity

	injections map[reflect.Type]any

	log *logrus.Logger

	disposed bool
}

var emptyMask = NewBitArray(0)

// WorldOption configures a World at construction time.
type WorldOption func(*World)

// WithLogger overrides the world's structured logger (default: a fresh
// logrus.Logger at Info level).
func WithLogger(l *logrus.Logger) WorldOption {
	return func(w *World) { w.log = l }
}

// NewWorld constructs an empty World ready for component, family, and
// system registration.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		entities:    NewEntityService(),
		familyIndex: make(map[string]*Family),
		injections:  make(map[reflect.Type]any),
		log:         logrus.New(),
	}
	w.components = newComponentService(w)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) mustNotDisposed() {
	if w.disposed {
		panic(errDisposed())
	}
}

// Inject registers value in the world's dependency registry, keyed by its
// concrete type, for later retrieval with Get inside a system factory.
func (w *World) Inject(value any) {
	w.injections[reflect.TypeOf(value)] = value
}

// Get retrieves a value previously registered with Inject, panicking if
// none was registered for type T.
func Get[T any](w *World) T {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	v, ok := w.injections[t]
	if !ok {
		panicf("ecs: no injected value registered for type %s", t)
	}
	return v.(T)
}

// ---- per-entity component mask bookkeeping ----

func (w *World) ensureMask(e Entity) *BitArray {
	if int(e) >= len(w.compMasks) {
		grown := make([]*BitArray, int(e)+1)
		copy(grown, w.compMasks)
		for i := len(w.compMasks); i <= int(e); i++ {
			grown[i] = NewBitArray(0)
		}
		w.compMasks = grown
	}
	return w.compMasks[e]
}

func (w *World) setComponentBit(e Entity, id ComponentID) {
	w.ensureMask(e).Set(int(id))
}

func (w *World) clearComponentBit(e Entity, id ComponentID) {
	if int(e) < len(w.compMasks) {
		w.compMasks[e].Clear(int(id))
	}
}

func (w *World) componentMaskOf(e Entity) *BitArray {
	if int(e) >= len(w.compMasks) {
		return emptyMask
	}
	return w.compMasks[e]
}

// ---- entity lifecycle ----

// Create allocates a new entity and, if init is non-nil, runs it with the
// new id so the caller can attach components. Component attachment inside
// init always applies synchronously, even while a system is iterating a
// family: a just-created entity cannot already be part of any iteration
// snapshot, so there is nothing to protect by deferring it.
func (w *World) Create(init func(e Entity)) Entity {
	w.mustNotDisposed()
	e := w.entities.Create()
	w.ensureMask(e)
	w.log.WithField("entity", e.String()).Debug("entity created")
	if init != nil {
		w.constructing = append(w.constructing, e)
		init(e)
		w.constructing = w.constructing[:len(w.constructing)-1]
	}
	return e
}

func (w *World) isConstructing(e Entity) bool {
	for _, c := range w.constructing {
		if c == e {
			return true
		}
	}
	return false
}

// Remove requests destruction of e. While a family is iterating, the
// destruction is deferred: e stays visible for the remainder of the current
// iteration and is applied once the world reaches a safe point.
func (w *World) Remove(e Entity) {
	w.mustNotDisposed()
	if w.iterating > 0 && !w.isConstructing(e) {
		w.enqueue(func(w *World) { w.destroyEntityImmediate(e) })
		return
	}
	w.destroyEntityImmediate(e)
}

func (w *World) destroyEntityImmediate(e Entity) {
	if !w.entities.IsAlive(e) {
		return
	}
	w.components.removeAll(e)
	for _, f := range w.families {
		f.onEntityRemoved(e)
	}
	if int(e) < len(w.compMasks) {
		w.compMasks[e].ClearAll()
	}
	w.entities.Release(e)
	w.log.WithField("entity", e.String()).Debug("entity destroyed")
}

// IsAlive reports whether e is currently alive.
func (w *World) IsAlive(e Entity) bool { return w.entities.IsAlive(e) }

// NumEntities returns the number of currently-alive entities.
func (w *World) NumEntities() int { return w.entities.Count() }

// Entities exposes the live-entities bitset directly (read-only use).
func (w *World) Entities() *BitArray { return w.entities.Alive() }

// ---- component mutation entry points (deferral-aware) ----

// AddComponent attaches value to e through mapper m, deferring the mutation
// if a family is currently iterating and e is not a brand-new entity still
// under construction inside its own Create init closure.
func AddComponent[T any](w *World, m *ComponentMapper[T], e Entity, value T) {
	w.mustNotDisposed()
	if w.iterating > 0 && !w.isConstructing(e) {
		w.enqueue(func(w *World) { m.Add(e, value) })
		return
	}
	m.Add(e, value)
}

// RemoveComponent detaches T from e through mapper m, deferring the
// mutation under the same rule as AddComponent.
func RemoveComponent[T any](w *World, m *ComponentMapper[T], e Entity) {
	w.mustNotDisposed()
	if w.iterating > 0 && !w.isConstructing(e) {
		w.enqueue(func(w *World) { m.Remove(e) })
		return
	}
	m.Remove(e)
}

func (w *World) enqueue(op deferredOp) {
	w.queue = append(w.queue, op)
}

// drainDeferred applies queued operations in enqueue order until the queue
// is empty, including operations enqueued by operations it applies.
func (w *World) drainDeferred() {
	for len(w.queue) > 0 {
		op := w.queue[0]
		w.queue = w.queue[1:]
		op(w)
	}
}

// ---- family registry ----

// Family returns the (possibly newly built) Family for spec, deduplicating
// by structural equality of (allOf, anyOf, noneOf) and precomputing its
// per-type notification registration.
func (w *World) Family(spec FamilySpec) *Family {
	w.mustNotDisposed()
	key := spec.key()
	if f, ok := w.familyIndex[key]; ok {
		return f
	}
	f := newFamily(spec)
	w.familyIndex[key] = f
	w.families = append(w.families, f)

	for _, ids := range [][]ComponentID{spec.allOf, spec.anyOf, spec.noneOf} {
		for _, id := range ids {
			d := w.components.descriptor(id)
			d.families = append(d.families, f)
		}
	}

	// Backfill membership against every currently-alive entity so a family
	// registered after entities already exist starts consistent.
	w.entities.Alive().ForEachSetBit(func(i int) {
		e := Entity(i)
		f.onEntityCfgChange(e, w.componentMaskOf(e))
	})
	return f
}

func (w *World) beginFamilyIteration(f *Family) {
	f.iterating = true
	w.iterating++
}

func (w *World) endFamilyIteration(f *Family) {
	f.iterating = false
	w.iterating--
	if w.iterating == 0 {
		w.drainDeferred()
	}
}

// ---- system pipeline ----

type systemKind int

const (
	intervalKind systemKind = iota
	iteratingKind
)

type systemEntry struct {
	name   string
	kind   systemKind
	base   enabledNamed
	ticker IntervalTicker
	iter   EntityIterator
}

// baseHolder is satisfied by IntervalSystem, letting World reach its
// interval/elapsed bookkeeping through whatever concrete system type embeds
// it.
type baseHolder interface{ base() *SystemBase }

// AddSystem appends sys to the end of the pipeline. sys must implement
// IntervalTicker or EntityIterator (satisfied by embedding IntervalSystem or
// IteratingSystem respectively); registering anything else, or a duplicate
// name, is a configuration error.
func AddSystem(w *World, name string, sys enabledNamed) {
	w.mustNotDisposed()
	for _, existing := range w.systems {
		if existing.name == name {
			panic(errDuplicate("system", name))
		}
	}
	entry := systemEntry{name: name, base: sys}
	switch s := sys.(type) {
	case EntityIterator:
		entry.kind = iteratingKind
		entry.iter = s
	case IntervalTicker:
		entry.kind = intervalKind
		entry.ticker = s
	default:
		panicf("ecs: system %q implements neither IntervalTicker nor EntityIterator", name)
	}
	w.systems = append(w.systems, entry)
	w.log.WithField("system", name).Debug("registered system")
}

// Update runs one tick: each enabled system in pipeline order, draining the
// deferred-operation queue between systems (when nothing is mid-iteration)
// and again at end of tick.
func (w *World) Update(dt float64) {
	w.mustNotDisposed()
	for _, entry := range w.systems {
		if !entry.base.Enabled() {
			continue
		}
		w.runSystem(entry)
		if w.iterating == 0 {
			w.drainDeferred()
		}
	}
	w.drainDeferred()
}

func (w *World) runSystem(entry systemEntry) {
	switch entry.kind {
	case iteratingKind:
		fam := entry.iter.Family()
		fam.ForEach(w, func(e Entity) { entry.iter.OnTickEntity(w, e) })
	case intervalKind:
		base := intervalBaseOf(entry.ticker, entry.name)
		base.elapsed++
		if base.elapsed >= base.interval {
			base.elapsed = 0
			entry.ticker.OnTick(w)
		}
		if alpha, ok := entry.ticker.(AlphaTicker); ok {
			alpha.OnAlpha(w, float64(base.elapsed)/float64(base.interval))
		}
	}
}

func intervalBaseOf(s IntervalTicker, name string) *SystemBase {
	h, ok := s.(baseHolder)
	if !ok {
		panicf("ecs: system %q does not embed ecs.IntervalSystem", name)
	}
	return h.base()
}

// Dispose clears all world state. It fires no hooks; it is the caller's
// responsibility to have already torn down anything that needed OnRemove
// semantics.
func (w *World) Dispose() {
	w.mustNotDisposed()
	w.entities = NewEntityService()
	w.components = newComponentService(w)
	w.families = nil
	w.familyIndex = make(map[string]*Family)
	w.compMasks = nil
	w.systems = nil
	w.queue = nil
	w.iterating = 0
	w.constructing = nil
	w.injections = make(map[reflect.Type]any)
	w.disposed = true
}
