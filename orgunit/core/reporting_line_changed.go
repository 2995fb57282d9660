package core

import (
	"time"

	"github.com/google/uuid"
)

// ReportingLineChangedEventType is the event type identifier.
const ReportingLineChangedEventType = "ReportingLineChanged"

// ReportingLineChanged represents a manager change for one member.
// An empty ReportsTo means the member now reports to nobody.
type ReportingLineChanged struct {
	EventType         EventTypeString
	OrganizationID    OrganizationIDString
	PersonID          PersonIDString
	ReportsTo         PersonIDString
	PreviousReportsTo PersonIDString
	OccurredAt        OccurredAtTS
}

// BuildReportingLineChanged creates a new ReportingLineChanged event.
func BuildReportingLineChanged(
	organizationID uuid.UUID,
	personID PersonIDString,
	reportsTo PersonIDString,
	previousReportsTo PersonIDString,
	occurredAt time.Time,
) ReportingLineChanged {

	event := ReportingLineChanged{
		EventType:         ReportingLineChangedEventType,
		OrganizationID:    organizationID.String(),
		PersonID:          personID,
		ReportsTo:         reportsTo,
		PreviousReportsTo: previousReportsTo,
		OccurredAt:        ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ReportingLineChanged) IsEventType() string {
	return ReportingLineChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReportingLineChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}
