package ecs

import "sort"

// FamilySpec is the immutable specification of a family (aspect): the
// disjoint component-type id sets (allOf, anyOf, noneOf). Two specs are
// equal iff their three sets are equal; World deduplicates families by spec
// equality.
type FamilySpec struct {
	allOf  []ComponentID
	anyOf  []ComponentID
	noneOf []ComponentID
}

// AllOf requires every listed component type to be present.
func AllOf(ids ...ComponentID) FamilySpecOption {
	return func(s *FamilySpec) { s.allOf = append(s.allOf, ids...) }
}

// AnyOf requires at least one listed component type to be present, unless
// empty (in which case the clause is vacuously true).
func AnyOf(ids ...ComponentID) FamilySpecOption {
	return func(s *FamilySpec) { s.anyOf = append(s.anyOf, ids...) }
}

// NoneOf excludes entities that carry any listed component type.
func NoneOf(ids ...ComponentID) FamilySpecOption {
	return func(s *FamilySpec) { s.noneOf = append(s.noneOf, ids...) }
}

// FamilySpecOption configures a FamilySpec inside NewFamilySpec.
type FamilySpecOption func(*FamilySpec)

// NewFamilySpec builds a FamilySpec from AllOf/AnyOf/NoneOf options.
func NewFamilySpec(opts ...FamilySpecOption) FamilySpec {
	var s FamilySpec
	for _, opt := range opts {
		opt(&s)
	}
	sortIDs(s.allOf)
	sortIDs(s.anyOf)
	sortIDs(s.noneOf)
	return s
}

func sortIDs(ids []ComponentID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func (s FamilySpec) key() string {
	buf := make([]byte, 0, 64)
	appendIDs := func(tag byte, ids []ComponentID) {
		buf = append(buf, tag, '(')
		for i, id := range ids {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, []byte(id.String())...)
		}
		buf = append(buf, ')')
	}
	appendIDs('a', s.allOf)
	appendIDs('y', s.anyOf)
	appendIDs('n', s.noneOf)
	return string(buf)
}

func bitArrayFromIDs(ids []ComponentID) *BitArray {
	b := NewBitArray(0)
	for _, id := range ids {
		b.Set(int(id))
	}
	return b
}

// FamilyListener receives notification when an entity enters or leaves a
// Family's membership.
type FamilyListener interface {
	OnEntityAdded(e Entity)
	OnEntityRemoved(e Entity)
}

// Family is a precomputed aspect that maintains a bitset of matching
// entities plus an ordered cache, incrementally updated on every component
// mutation that could affect its membership.
type Family struct {
	spec   FamilySpec
	allOf  *BitArray
	anyOf  *BitArray
	noneOf *BitArray

	active *BitArray

	cache      []Entity
	cacheDirty bool

	comparator func(a, b Entity) int
	listener   FamilyListener

	iterating bool
}

func newFamily(spec FamilySpec) *Family {
	return &Family{
		spec:       spec,
		allOf:      bitArrayFromIDs(spec.allOf),
		anyOf:      bitArrayFromIDs(spec.anyOf),
		noneOf:     bitArrayFromIDs(spec.noneOf),
		active:     NewBitArray(0),
		cacheDirty: true,
	}
}

// SetListener attaches (or clears, with nil) the family's membership
// listener.
func (f *Family) SetListener(l FamilyListener) { f.listener = l }

// SetComparator installs a stable sort predicate applied to the ordered
// cache at the next iteration boundary, recomputed only when the cache is
// dirty.
func (f *Family) SetComparator(cmp func(a, b Entity) int) {
	f.comparator = cmp
	f.cacheDirty = true
}

// matches evaluates the family predicate against comps, the component-type
// membership mask of a single entity.
func (f *Family) matches(comps *BitArray) bool {
	if !f.allOf.IsEmpty() && !comps.Contains(f.allOf) {
		return false
	}
	if !f.anyOf.IsEmpty() && !comps.Intersects(f.anyOf) {
		return false
	}
	if !f.noneOf.IsEmpty() && comps.Intersects(f.noneOf) {
		return false
	}
	return true
}

// onEntityCfgChange recomputes the match predicate for e against its
// current component mask, updating membership and firing listener
// callbacks if membership changed.
func (f *Family) onEntityCfgChange(e Entity, comps *BitArray) {
	wasMember := f.active.Get(int(e))
	isMember := f.matches(comps)
	if wasMember == isMember {
		return
	}
	if isMember {
		f.active.Set(int(e))
	} else {
		f.active.Clear(int(e))
	}
	f.cacheDirty = true
	if f.listener != nil {
		if isMember {
			f.listener.OnEntityAdded(e)
		} else {
			f.listener.OnEntityRemoved(e)
		}
	}
}

// onEntityRemoved drops e from membership unconditionally (used when an
// entity is destroyed outright, bypassing the usual per-component mutation
// path).
func (f *Family) onEntityRemoved(e Entity) {
	if !f.active.Get(int(e)) {
		return
	}
	f.active.Clear(int(e))
	f.cacheDirty = true
	if f.listener != nil {
		f.listener.OnEntityRemoved(e)
	}
}

func (f *Family) rebuildCache() {
	f.cache = f.cache[:0]
	f.active.ForEachSetBit(func(i int) {
		f.cache = append(f.cache, Entity(i))
	})
	// ForEachSetBit yields descending order; present the cache in ascending
	// entity-id order by default so iteration order is stable and intuitive
	// absent a comparator.
	for i, j := 0, len(f.cache)-1; i < j; i, j = i+1, j-1 {
		f.cache[i], f.cache[j] = f.cache[j], f.cache[i]
	}
	if f.comparator != nil {
		sort.SliceStable(f.cache, func(i, j int) bool {
			return f.comparator(f.cache[i], f.cache[j]) < 0
		})
	}
	f.cacheDirty = false
}

// NumEntities returns the number of entities currently matching the family.
func (f *Family) NumEntities() int {
	n := 0
	f.active.ForEachSetBit(func(int) { n++ })
	return n
}

// snapshot returns the ordered member cache, rebuilding it first if dirty.
func (f *Family) snapshot() []Entity {
	if f.cacheDirty {
		f.rebuildCache()
	}
	return f.cache
}

// ForEach iterates a snapshot of the family's members taken at call time.
// Structural mutations requested by block on a world in delayed-mutation
// mode are deferred until the iteration completes.
func (f *Family) ForEach(w *World, block func(e Entity)) {
	w.beginFamilyIteration(f)
	defer w.endFamilyIteration(f)
	members := f.snapshot()
	for _, e := range members {
		if !w.entities.IsAlive(e) {
			continue
		}
		block(e)
	}
}
