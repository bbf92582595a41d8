package domain

import "time"

// EventType classifies community events.
type EventType string

const (
	EventDrive     EventType = "drive"
	EventCampaign  EventType = "campaign"
	EventAwareness EventType = "awareness"
)

// Event is a community event users can register for.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartsAt        time.Time `json:"starts_at"`
	Location        string    `json:"location"`
	Organizer       string    `json:"organizer"`
	Type            EventType `json:"type"`
	MaxParticipants int       `json:"max_participants,omitempty"`
	Registered      int       `json:"registered"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsFull reports whether the event has reached its participant cap.
// A cap of zero means unlimited.
func (e *Event) IsFull() bool {
	if e == nil {
		return true
	}
	return e.MaxParticipants > 0 && e.Registered >= e.MaxParticipants
}
