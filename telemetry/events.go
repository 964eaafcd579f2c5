// Package telemetry provides tank health tracking and CSV output.
package telemetry

// EventType identifies a countable tank event.
type EventType uint8

const (
	EventBirth EventType = iota
	EventKill
	EventCull
	EventSpawn
	EventMeal
	EventFoodDropped
	EventFoodExpired
	EventFoodConsumed
	eventCount
)

var eventNames = [eventCount]string{
	EventBirth:        "birth",
	EventKill:         "kill",
	EventCull:         "cull",
	EventSpawn:        "spawn",
	EventMeal:         "meal",
	EventFoodDropped:  "food_dropped",
	EventFoodExpired:  "food_expired",
	EventFoodConsumed: "food_consumed",
}

// String returns the event name used in logs.
func (e EventType) String() string {
	if e >= eventCount {
		return "unknown"
	}
	return eventNames[e]
}
