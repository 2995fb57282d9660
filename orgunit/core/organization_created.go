package core

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationCreatedEventType is the event type identifier.
const OrganizationCreatedEventType = "OrganizationCreated"

// OrganizationCreated represents when an organizational unit comes into existence.
// ParentID is empty for root units.
type OrganizationCreated struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	Name           string
	OrgType        string
	ParentID       OrganizationIDString
	OccurredAt     OccurredAtTS
}

// BuildOrganizationCreated creates a new OrganizationCreated event.
func BuildOrganizationCreated(
	organizationID uuid.UUID,
	name string,
	orgType Type,
	parentID OrganizationIDString,
	occurredAt time.Time,
) OrganizationCreated {

	event := OrganizationCreated{
		EventType:      OrganizationCreatedEventType,
		OrganizationID: organizationID.String(),
		Name:           name,
		OrgType:        string(orgType),
		ParentID:       parentID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e OrganizationCreated) IsEventType() string {
	return OrganizationCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e OrganizationCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}
