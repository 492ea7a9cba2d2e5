package ecs

import (
	"testing"
	"time"

	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/stretchr/testify/require"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			require.Len(t, w.Entities(), c.create)
			if c.destroyIndex >= 0 {
				require.True(t, w.DestroyEntity(ents[c.destroyIndex]))
				require.False(t, w.IsAlive(ents[c.destroyIndex]))
				require.False(t, w.DestroyEntity(ents[c.destroyIndex]), "second destroy must be a no-op")
				require.Len(t, w.Entities(), c.create-1)
			}
		})
	}
}

func TestWorldRecycledIDGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := w.CreateEntity()
	require.NoError(t, Add(w, old, h, 7))
	require.True(t, w.DestroyEntity(old))

	fresh := w.CreateEntity()
	require.Equal(t, old.id(), fresh.id())
	require.NotEqual(t, old, fresh)
	require.False(t, Has(w, fresh, h), "components must not leak into a recycled id")
	_, ok := Get(w, old, h)
	require.False(t, ok)
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()
	h3 := component.NewComponent[float64]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				require.True(t, ok)
				require.Equal(t, 10, v)
			},
			teardown: func() bool { return Remove(w, e1, h1) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2, "a"); err != nil {
					return err
				}
				return Add(w, e2, h2, "b")
			},
			check: func(t *testing.T) {
				require.True(t, Has(w, e1, h2))
				require.True(t, Has(w, e2, h2))
				require.ElementsMatch(t, []Entity{e1, e2}, w.Query(h2.Kind()))
			},
			teardown: func() bool { return Remove(w, e1, h2) },
		},
		{
			name:  "add_float_and_remove",
			setup: func() error { return Add(w, e1, h3, 1.23) },
			check: func(t *testing.T) {
				_, ok := Get(w, e1, h3)
				require.True(t, ok)
			},
			teardown: func() bool { return Remove(w, e1, h3) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.setup())
			tc.check(t)
			require.True(t, tc.teardown())
		})
	}
}

func TestWorldAddToDeadEntity(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := w.CreateEntity()
	require.True(t, w.DestroyEntity(e))
	require.ErrorIs(t, Add(w, e, h, 1), component.ErrEntityNotAlive)
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := w.CreateEntity()
				e2 := w.CreateEntity()
				e3 := w.CreateEntity()

				ka := component.NewComponent[int]()
				kb := component.NewComponent[string]()

				require.NoError(t, Add(w, e1, ka, 1))
				require.NoError(t, Add(w, e2, ka, 2))
				require.NoError(t, Add(w, e2, kb, "two"))
				require.NoError(t, Add(w, e3, kb, "three"))

				res := w.Query(ka.Kind(), kb.Kind())
				require.Equal(t, []Entity{e2}, res)
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := w.CreateEntity()
				ka := component.NewComponent[int]()
				require.NoError(t, Add(w, e, ka, 1))
				require.True(t, w.DestroyEntity(e))
				require.Empty(t, w.Query(ka.Kind()))
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := w.CreateEntity()
				ka := component.NewComponent[int]()
				kb := component.NewComponent[int]()
				require.NoError(t, Add(w, e, ka, 1))
				require.Nil(t, w.Query(ka.Kind(), kb.Kind()))
			},
		},
		{
			name: "first",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponent[int]()
				_, ok := w.First(ka.Kind())
				require.False(t, ok)

				e := w.CreateEntity()
				require.NoError(t, Add(w, e, ka, 1))
				got, ok := w.First(ka.Kind())
				require.True(t, ok)
				require.Equal(t, e, got)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEachAndScheduler(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	for i := 1; i <= 3; i++ {
		e := w.CreateEntity()
		require.NoError(t, Add(w, e, h, i))
	}

	sum := 0
	ForEach(w, h, func(_ Entity, v int) { sum += v })
	require.Equal(t, 6, sum)

	var seen []int
	s := NewScheduler(systemFunc(func(w *World) {
		w.Events().Push(Event{Type: EventShotFired})
	}), systemFunc(func(w *World) {
		seen = append(seen, len(w.Events().Peek()))
	}))
	s.Update(w)
	s.Update(w)
	require.Equal(t, []int{1, 1}, seen, "events are flushed between frames")
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }

func TestSchedulerTimings(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(systemFunc(func(*World) {}), nil, systemFunc(func(*World) {}))
	require.Len(t, s.Systems(), 2, "nil systems are skipped")
	require.Zero(t, s.Frames())

	s.Update(w)
	s.Update(w)
	require.Equal(t, uint64(2), s.Frames())
	timings := s.Timings()
	require.Len(t, timings, 2)
	for _, tm := range timings {
		require.Equal(t, "systemFunc", tm.Name)
		require.GreaterOrEqual(t, tm.Duration, time.Duration(0))
	}
}

func TestEventQueueOf(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventShotFired, Data: 1})
	q.Push(Event{Type: EventCubeReset, Data: 2})
	q.Push(Event{Type: EventShotFired, Data: 3})

	fired := q.Of(EventShotFired)
	require.Len(t, fired, 2)
	require.Equal(t, 1, fired[0].Data)
	require.Equal(t, 3, fired[1].Data)
	require.Empty(t, q.Of(EventShotHit))
	require.Len(t, q.Peek(), 3, "Of does not consume")

	require.Len(t, q.Drain(), 3)
	require.Empty(t, q.Peek())

	var nilQueue *EventQueue
	require.Nil(t, nilQueue.Of(EventShotFired))
}

func TestEntityString(t *testing.T) {
	e := makeEntity(7, 3)
	require.Equal(t, entityID(7), e.id())
	require.Equal(t, generation(3), e.generation())
	require.Equal(t, "7#3", e.String())
}

func TestAddRejectsNilComponents(t *testing.T) {
	type payload struct{ n int }
	w := NewWorld()
	e := w.CreateEntity()
	h := component.NewComponent[*payload]()

	err := Add(w, e, h, nil)
	require.ErrorIs(t, err, component.ErrNilComponent)
	require.Contains(t, err.Error(), "*ecs.payload")
	require.False(t, Has(w, e, h))

	require.NoError(t, Add(w, e, h, &payload{n: 1}))
	got, ok := Get(w, e, h)
	require.True(t, ok)
	require.Equal(t, 1, got.n)
}
