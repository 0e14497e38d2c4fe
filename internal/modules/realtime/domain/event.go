package domain

import (
	"encoding/json"

	"periodictables/internal/shared/normalization"
)

// Entity names the resource a change event refers to.
type Entity string

const (
	EntityReservations Entity = "reservations"
	EntityTables       Entity = "tables"
)

// Action names the kind of change announced by the backend.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event is a single change announcement from the backend update stream.
// Payload holds the affected entity in its loose wire form; dashboards
// typically refetch through the operation catalog rather than patch state
// from the payload.
type Event struct {
	Entity  Entity         `json:"entity"`
	Action  Action         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

var knownEntities = map[Entity]struct{}{
	EntityReservations: {},
	EntityTables:       {},
}

var knownActions = map[Action]struct{}{
	ActionCreated: {},
	ActionUpdated: {},
	ActionDeleted: {},
}

// DecodeEvent parses a raw stream frame. Frames for unknown entities or
// actions are dropped so a backend rollout cannot break subscribers.
func DecodeEvent(raw []byte) (Event, bool) {
	var frame map[string]any
	if err := json.Unmarshal(raw, &frame); err != nil {
		return Event{}, false
	}

	event := Event{
		Entity: Entity(normalization.AsString(frame["entity"])),
		Action: Action(normalization.AsString(frame["action"])),
	}
	if _, ok := knownEntities[event.Entity]; !ok {
		return Event{}, false
	}
	if _, ok := knownActions[event.Action]; !ok {
		return Event{}, false
	}

	event.Payload = normalization.MapFromPayload(frame["payload"])
	return event, true
}
