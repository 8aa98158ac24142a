package ecs

// SystemBase carries the bookkeeping every system kind needs: an enabled
// flag a system may clear on itself to signal a soft stop (effective on the
// next tick), and the interval counter for IntervalSystem. Embed it in a
// user-defined system type and implement OnTick (IntervalSystem) or
// OnTickEntity (IteratingSystem) to complete it.
type SystemBase struct {
	Name     string
	enabled  bool
	interval int
	elapsed  int
}

// NewSystemBase returns a SystemBase enabled by default. interval is the
// number of ticks between IntervalSystem.OnTick calls (1 means every tick;
// values <= 0 are treated as 1). IteratingSystem ignores interval.
func NewSystemBase(name string, interval int) SystemBase {
	if interval <= 0 {
		interval = 1
	}
	return SystemBase{Name: name, enabled: true, interval: interval}
}

// Enabled reports whether the system currently runs on tick.
func (b *SystemBase) Enabled() bool { return b.enabled }

// SetEnabled toggles the system; a system that disables itself mid-tick
// takes effect starting the next tick.
func (b *SystemBase) SetEnabled(enabled bool) { b.enabled = enabled }

// enabledNamed is the minimum surface World needs to drive any system kind.
type enabledNamed interface {
	Enabled() bool
	SetEnabled(bool)
}

// IntervalTicker is implemented by systems that run OnTick every Interval
// ticks and, optionally, OnAlpha every tick with the fractional progress
// towards the next interval boundary. Embed IntervalSystem and implement
// OnTick to satisfy it.
type IntervalTicker interface {
	enabledNamed
	OnTick(w *World)
}

// AlphaTicker is the optional fractional-update half of IntervalTicker.
type AlphaTicker interface {
	OnAlpha(w *World, alpha float64)
}

// IntervalSystem is an embeddable base for systems that run on a fixed tick
// interval.
type IntervalSystem struct {
	SystemBase
}

// NewIntervalSystem returns an IntervalSystem base running every `interval`
// ticks.
func NewIntervalSystem(name string, interval int) IntervalSystem {
	return IntervalSystem{SystemBase: NewSystemBase(name, interval)}
}

func (s *IntervalSystem) base() *SystemBase { return &s.SystemBase }

// EntityIterator is implemented by systems bound to one Family. OnTickEntity
// runs once per matching entity, in the family's (possibly sorted) order.
// Embed IteratingSystem and implement OnTickEntity to satisfy it.
type EntityIterator interface {
	enabledNamed
	Family() *Family
	OnTickEntity(w *World, e Entity)
}

// IteratingSystem is an embeddable base for systems that iterate a Family
// every tick.
type IteratingSystem struct {
	SystemBase
	family *Family
}

// NewIteratingSystem returns an IteratingSystem base bound to family.
func NewIteratingSystem(name string, family *Family) IteratingSystem {
	return IteratingSystem{SystemBase: NewSystemBase(name, 1), family: family}
}

// Family returns the bound family.
func (s *IteratingSystem) Family() *Family { return s.family }
