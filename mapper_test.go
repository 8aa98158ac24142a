package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPosition struct{ X, Y int }

type hookLog struct {
	added   []Entity
	removed []Entity
}

type trackedComponent struct {
	V   int
	log *hookLog
}

func (c *trackedComponent) OnAdd(w *World, e Entity)    { c.log.added = append(c.log.added, e) }
func (c *trackedComponent) OnRemove(w *World, e Entity) { c.log.removed = append(c.log.removed, e) }

func TestComponentMapperAddGetHas(t *testing.T) {
	w := NewWorld()
	positions, _ := RegisterComponent[testPosition](w)

	e := w.Create(nil)
	assert.False(t, positions.Has(e))

	positions.Add(e, testPosition{X: 1, Y: 2})
	assert.True(t, positions.Has(e))
	assert.Equal(t, testPosition{X: 1, Y: 2}, positions.Get(e))
}

func TestComponentMapperGetMissingPanics(t *testing.T) {
	w := NewWorld()
	positions, _ := RegisterComponent[testPosition](w)
	e := w.Create(nil)

	assert.PanicsWithError(t, errMissingComponent("ecs.testPosition", int(e)).Error(), func() {
		positions.Get(e)
	})
}

func TestComponentMapperRemoveIsNoOpWhenAbsent(t *testing.T) {
	w := NewWorld()
	positions, _ := RegisterComponent[testPosition](w)
	e := w.Create(nil)

	assert.NotPanics(t, func() { positions.Remove(e) })
	assert.False(t, positions.Has(e))
}

func TestComponentMapperRemoveInternalOutOfRangePanics(t *testing.T) {
	w := NewWorld()
	positions, _ := RegisterComponent[testPosition](w)

	require.Panics(t, func() {
		positions.removeInternal(Entity(10000))
	})
}

func TestComponentMapperHooksFireOnAddAndReplace(t *testing.T) {
	w := NewWorld()
	tracked, _ := RegisterComponent[trackedComponent](w)
	log := &hookLog{}

	e := w.Create(nil)
	tracked.Add(e, trackedComponent{V: 1, log: log})
	assert.Equal(t, []Entity{e}, log.added)
	assert.Empty(t, log.removed)

	tracked.Add(e, trackedComponent{V: 2, log: log})
	assert.Equal(t, []Entity{e}, log.removed, "replacing a value fires OnRemove for the prior value")
	assert.Len(t, log.added, 2)

	tracked.Remove(e)
	assert.Len(t, log.removed, 2)
}
