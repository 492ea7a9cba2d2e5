package ecs

// EventType names what happened. Systems later in the frame read events
// pushed earlier in the same frame; the scheduler drops them all afterwards.
type EventType string

// Data is *weapon.Shot for fired and ended shots, weapon.HitEvent for hits
// and the cube's Entity for resets.
const (
	EventShotFired EventType = "shot_fired"
	EventShotHit   EventType = "shot_hit"
	EventShotEnded EventType = "shot_ended"
	EventCubeReset EventType = "cube_reset"
)

type Event struct {
	Type EventType
	Data any
}

// EventQueue holds one frame's events in push order.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Of returns the queued events of type t in push order.
func (q *EventQueue) Of(t EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
