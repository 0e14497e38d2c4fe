package domain

import "strings"

// Status represents the lifecycle of a reservation as exposed by the REST API.
type Status string

const (
	StatusUnknown   Status = ""
	StatusBooked    Status = "booked"
	StatusSeated    Status = "seated"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

var knownStatuses = map[string]Status{
	string(StatusBooked):    StatusBooked,
	string(StatusSeated):    StatusSeated,
	string(StatusFinished):  StatusFinished,
	string(StatusCancelled): StatusCancelled,
}

// transitions captures the allowed lifecycle moves. Finished and cancelled
// are terminal.
var transitions = map[Status][]Status{
	StatusBooked: {StatusSeated, StatusCancelled},
	StatusSeated: {StatusFinished, StatusCancelled},
}

// NormalizeStatus returns the canonical Status for the given input.
// Unknown statuses are lowercased and returned as-is to avoid data loss.
func NormalizeStatus(value any) Status {
	s, ok := value.(string)
	if !ok {
		return StatusUnknown
	}
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return StatusUnknown
	}
	if status, ok := knownStatuses[trimmed]; ok {
		return status
	}
	return Status(trimmed)
}

// Known reports whether the status is one of the documented lifecycle values.
func (s Status) Known() bool {
	_, ok := knownStatuses[string(s)]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
