package core

// Apply folds one event into the state. It is pure in the functional sense —
// same state and event always yield the same result — and it never fails:
// events are facts, so an event that does not match the state is still applied
// as far as it can be. Apply takes ownership of the state's maps; always start
// a fold from the zero State (see Fold).
func Apply(s State, event DomainEvent) State {
	if s.Members == nil {
		s.Members = make(map[PersonIDString]Member)
	}
	if s.Locations == nil {
		s.Locations = make(map[LocationIDString]Location)
	}
	if s.Children == nil {
		s.Children = make(map[OrganizationIDString]ChildOrganization)
	}
	if s.Absorbed == nil {
		s.Absorbed = make(map[OrganizationIDString]OccurredAtTS)
	}

	switch e := event.(type) {
	case OrganizationCreated:
		s.ID = e.OrganizationID
		s.Name = e.Name
		s.Type = Type(e.OrgType)
		s.Status = StatusCreating
		s.ParentID = e.ParentID
		s.CreatedAt = e.OccurredAt

	case OrganizationStatusChanged:
		s.Status = Status(e.Status)

	case MemberAdded:
		s.Members[e.PersonID] = Member{
			PersonID:  e.PersonID,
			Role:      e.Role(),
			ReportsTo: e.ReportsTo,
			JoinedAt:  e.OccurredAt,
		}

	case MemberRoleUpdated:
		if member, ok := s.Members[e.PersonID]; ok {
			member.Role = e.Role()
			s.Members[e.PersonID] = member
		}

	case MemberRemoved:
		delete(s.Members, e.PersonID)

	case ReportingLineChanged:
		if member, ok := s.Members[e.PersonID]; ok {
			member.ReportsTo = e.ReportsTo
			s.Members[e.PersonID] = member
		}

	case LocationAdded:
		s.Locations[e.LocationID] = Location{
			LocationID: e.LocationID,
			Name:       e.Name,
			Address:    e.Address,
			AddedAt:    e.OccurredAt,
		}
		if e.IsPrimary {
			s.PrimaryLocationID = e.LocationID
		}

	case LocationRemoved:
		delete(s.Locations, e.LocationID)
		if s.PrimaryLocationID == e.LocationID {
			s.PrimaryLocationID = ""
		}

	case PrimaryLocationChanged:
		s.PrimaryLocationID = e.LocationID

	case ChildOrganizationAdded:
		s.Children[e.ChildID] = ChildOrganization{
			OrganizationID: e.ChildID,
			Name:           e.ChildName,
			Type:           Type(e.ChildType),
			Status:         Status(e.ChildStatus),
			AddedAt:        e.OccurredAt,
		}

	case ChildOrganizationRemoved:
		delete(s.Children, e.ChildID)

	case ChildOrganizationStatusRecorded:
		if child, ok := s.Children[e.ChildID]; ok {
			child.Status = Status(e.Status)
			s.Children[e.ChildID] = child
		}

	case OrganizationDissolved:
		s.Status = StatusDissolved

	case OrganizationMerged:
		s.Status = StatusMerged
		s.MergedInto = e.IntoOrganizationID

	case OrganizationAbsorbed:
		s.Absorbed[e.MergedOrganizationID] = e.OccurredAt

	case OrganizationAcquired:
		s.Status = StatusAcquired
		s.AcquiredBy = e.AcquirerID
		s.ParentID = e.AcquirerID
	}

	if s.Exists() {
		s.UpdatedAt = event.HasOccurredAt()
	}

	return s
}

// Fold rebuilds the state of one unit by applying its events in stream order
// onto the zero State. Folding the same sequence always yields the same state.
func Fold(events DomainEvents) State {
	var s State
	for _, event := range events {
		s = Apply(s, event)
	}

	return s
}
