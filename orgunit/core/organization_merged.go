package core

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationMergedEventType is the event type identifier.
const OrganizationMergedEventType = "OrganizationMerged"

// OrganizationMerged represents the terminal merge of this unit into a survivor.
// The surviving unit records the counterpart OrganizationAbsorbed on its own stream.
type OrganizationMerged struct {
	EventType          EventTypeString
	OrganizationID     OrganizationIDString
	IntoOrganizationID OrganizationIDString
	OccurredAt         OccurredAtTS
}

// BuildOrganizationMerged creates a new OrganizationMerged event.
func BuildOrganizationMerged(
	organizationID uuid.UUID,
	intoOrganizationID uuid.UUID,
	occurredAt time.Time,
) OrganizationMerged {

	event := OrganizationMerged{
		EventType:          OrganizationMergedEventType,
		OrganizationID:     organizationID.String(),
		IntoOrganizationID: intoOrganizationID.String(),
		OccurredAt:         ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e OrganizationMerged) IsEventType() string {
	return OrganizationMergedEventType
}

// HasOccurredAt returns when this event occurred.
func (e OrganizationMerged) HasOccurredAt() time.Time {
	return e.OccurredAt
}
