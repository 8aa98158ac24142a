package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tickCounter struct {
	IntervalSystem
	ticks  int
	alphas []float64
}

func (s *tickCounter) OnTick(w *World) { s.ticks++ }
func (s *tickCounter) OnAlpha(w *World, alpha float64) {
	s.alphas = append(s.alphas, alpha)
}

func TestIntervalSystemRunsEveryNTicks(t *testing.T) {
	w := NewWorld()
	sys := &tickCounter{IntervalSystem: NewIntervalSystem("counter", 3)}
	AddSystem(w, "counter", sys)

	for i := 0; i < 9; i++ {
		w.Update(0.016)
	}

	assert.Equal(t, 3, sys.ticks)
	assert.Len(t, sys.alphas, 9)
}

func TestIntervalSystemSoftStopTakesEffectNextTick(t *testing.T) {
	w := NewWorld()
	sys := &tickCounter{IntervalSystem: NewIntervalSystem("counter", 1)}
	AddSystem(w, "counter", sys)

	disablerFam := w.Family(NewFamilySpec())
	_ = disablerFam

	w.Update(0.016)
	assert.Equal(t, 1, sys.ticks)

	sys.SetEnabled(false)
	w.Update(0.016)
	assert.Equal(t, 1, sys.ticks, "disabling takes effect starting next tick, and stays disabled")
}

func TestSystemPipelineRunsInRegistrationOrder(t *testing.T) {
	w := NewWorld()
	var order []string

	first := &orderSystem{IntervalSystem: NewIntervalSystem("first", 1), onTick: func() { order = append(order, "first") }}
	second := &orderSystem{IntervalSystem: NewIntervalSystem("second", 1), onTick: func() { order = append(order, "second") }}
	AddSystem(w, "first", first)
	AddSystem(w, "second", second)

	w.Update(0.016)
	assert.Equal(t, []string{"first", "second"}, order)
}

type orderSystem struct {
	IntervalSystem
	onTick func()
}

func (s *orderSystem) OnTick(w *World) { s.onTick() }
