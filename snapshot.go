package ecs

import "gopkg.in/yaml.v3"

// Snapshot is the minimum state an external persistence layer needs to
// build on: the live-entities set, the per-mapper entity->value pairs, and
// the per-type-id name. The core itself does not read or write storage;
// Snapshot only presents this triple in a serializable shape.
type Snapshot struct {
	LiveEntities []int                  `yaml:"live_entities"`
	Components   map[string]map[int]any `yaml:"components"`
}

// Snapshot captures the world's current state as an (entities, components,
// type names) triple.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		LiveEntities: make([]int, 0),
		Components:   make(map[string]map[int]any),
	}
	w.entities.Alive().ForEachSetBit(func(i int) {
		snap.LiveEntities = append(snap.LiveEntities, i)
	})
	// ForEachSetBit descends; present in ascending id order for a stable,
	// human-readable snapshot.
	for i, j := 0, len(snap.LiveEntities)-1; i < j; i, j = i+1, j-1 {
		snap.LiveEntities[i], snap.LiveEntities[j] = snap.LiveEntities[j], snap.LiveEntities[i]
	}

	w.components.descriptors.ForEach(func(_ int, d *componentDescriptor) bool {
		values := d.mapper.snapshotValues()
		byEntity := make(map[int]any, len(values))
		for e, v := range values {
			byEntity[int(e)] = v
		}
		snap.Components[d.name] = byEntity
		return true
	})
	return snap
}

// MarshalYAML implements yaml.Marshaler so yaml.Marshal(snapshot) renders
// the triple directly, without an indirection through a wrapper type.
func (s Snapshot) MarshalYAML() (any, error) {
	type plain Snapshot
	return plain(s), nil
}

// ToYAML renders the snapshot as YAML bytes, the format the embedder-facing
// persistence layer uses to present this triple (the core itself carries no
// storage backend).
func (s Snapshot) ToYAML() ([]byte, error) {
	return yaml.Marshal(s)
}
