package core

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationAcquiredEventType is the event type identifier.
const OrganizationAcquiredEventType = "OrganizationAcquired"

// OrganizationAcquired represents the terminal acquisition of this unit.
// The acquirer becomes the unit's parent and records the unit as a child
// on its own stream.
type OrganizationAcquired struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	AcquirerID     OrganizationIDString
	OccurredAt     OccurredAtTS
}

// BuildOrganizationAcquired creates a new OrganizationAcquired event.
func BuildOrganizationAcquired(
	organizationID uuid.UUID,
	acquirerID uuid.UUID,
	occurredAt time.Time,
) OrganizationAcquired {

	event := OrganizationAcquired{
		EventType:      OrganizationAcquiredEventType,
		OrganizationID: organizationID.String(),
		AcquirerID:     acquirerID.String(),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e OrganizationAcquired) IsEventType() string {
	return OrganizationAcquiredEventType
}

// HasOccurredAt returns when this event occurred.
func (e OrganizationAcquired) HasOccurredAt() time.Time {
	return e.OccurredAt
}
