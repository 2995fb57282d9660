package core

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationDissolvedEventType is the event type identifier.
const OrganizationDissolvedEventType = "OrganizationDissolved"

// OrganizationDissolved represents the terminal dissolution of a unit.
type OrganizationDissolved struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	PreviousStatus string
	Reason         string
	OccurredAt     OccurredAtTS
}

// BuildOrganizationDissolved creates a new OrganizationDissolved event.
func BuildOrganizationDissolved(
	organizationID uuid.UUID,
	previousStatus Status,
	reason string,
	occurredAt time.Time,
) OrganizationDissolved {

	event := OrganizationDissolved{
		EventType:      OrganizationDissolvedEventType,
		OrganizationID: organizationID.String(),
		PreviousStatus: string(previousStatus),
		Reason:         reason,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e OrganizationDissolved) IsEventType() string {
	return OrganizationDissolvedEventType
}

// HasOccurredAt returns when this event occurred.
func (e OrganizationDissolved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
