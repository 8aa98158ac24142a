// Package ecs implements a single-threaded, archetype-free Entity Component
// System core: dense component storage keyed by entity id, a membership
// bitset per component type, family (aspect) indexing
// with incremental maintenance under mutation, system scheduling with
// deferred structural change, and a bitset primitive that underlies family
// membership.
//
// A World is built once via NewWorld plus registration calls, then driven
// tick by tick through Update. Components are plain Go structs registered
// with RegisterComponent; systems are user types that embed IteratingSystem
// or IntervalSystem and are added with AddSystem.
package ecs
