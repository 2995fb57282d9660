package core

import (
	"slices"

	"github.com/google/uuid"
)

// Decide implements the business logic for all single-aggregate commands.
// It is a pure function: given the current state and a command it returns the
// events to append, an idempotent no-op, or a rejection — never side effects.
//
// MergeOrganizations and AcquireOrganization span two aggregates and are
// decided by DecideMerge and DecideAcquire instead.
func Decide(s State, command Command) DecisionResult {
	if err := command.Validate(); err != nil {
		return ErrorDecision(err)
	}

	if create, ok := command.(CreateOrganization); ok {
		return decideCreate(s, create)
	}

	if !s.Exists() {
		return ErrorDecision(ErrOrganizationNotFound)
	}

	// Terminal units accept no further commands. DissolveOrganization passes
	// through so that replaying a dissolution stays idempotent.
	if _, isDissolve := command.(DissolveOrganization); !isDissolve && s.Status.IsTerminal() {
		return ErrorDecision(ErrOrganizationTerminal)
	}

	switch c := command.(type) {
	case ChangeOrganizationStatus:
		return decideChangeStatus(s, c)
	case AddMember:
		return decideAddMember(s, c)
	case UpdateMemberRole:
		return decideUpdateMemberRole(s, c)
	case RemoveMember:
		return decideRemoveMember(s, c)
	case ChangeReportingLine:
		return decideChangeReportingLine(s, c)
	case AddLocation:
		return decideAddLocation(s, c)
	case RemoveLocation:
		return decideRemoveLocation(s, c)
	case ChangePrimaryLocation:
		return decideChangePrimaryLocation(s, c)
	case AddChildOrganization:
		return decideAddChild(s, c)
	case RemoveChildOrganization:
		return decideRemoveChild(s, c)
	case RecordChildOrganizationStatus:
		return decideRecordChildStatus(s, c)
	case DissolveOrganization:
		return decideDissolve(s, c)
	case MergeOrganizations, AcquireOrganization:
		return ErrorDecision(invalidCommand("%s spans two aggregates, use the dedicated decision", command.CommandType()))
	default:
		return ErrorDecision(invalidCommand("unknown command type: %s", command.CommandType()))
	}
}

func decideCreate(s State, c CreateOrganization) DecisionResult {
	if s.Exists() {
		return ErrorDecision(ErrOrganizationAlreadyExists)
	}

	parentID := ""
	if c.ParentID != uuid.Nil {
		parentID = c.ParentID.String()
	}

	return SuccessDecision(
		BuildOrganizationCreated(c.OrganizationID, c.Name, Type(c.OrgType), parentID, c.OccurredAt),
	)
}

func decideChangeStatus(s State, c ChangeOrganizationStatus) DecisionResult {
	target := Status(c.Status)

	if target == s.Status {
		return IdempotentDecision()
	}

	// Terminal statuses are only reachable through their dedicated commands,
	// so the dissolution and merge guards cannot be bypassed.
	if target.IsTerminal() || !s.Status.CanTransitionTo(target) {
		return ErrorDecision(ErrInvalidStatusTransition)
	}

	return SuccessDecision(
		BuildOrganizationStatusChanged(c.OrganizationID, target, s.Status, c.Reason, c.OccurredAt),
	)
}

func decideAddMember(s State, c AddMember) DecisionResult {
	if _, exists := s.Members[c.PersonID]; exists {
		return ErrorDecision(ErrMemberAlreadyExists)
	}

	if c.ReportsTo != "" {
		if _, managerExists := s.Members[c.ReportsTo]; !managerExists {
			return ErrorDecision(ErrManagerNotFound)
		}
	}

	return SuccessDecision(
		BuildMemberAdded(c.OrganizationID, c.PersonID, c.Role(), c.ReportsTo, c.OccurredAt),
	)
}

func decideUpdateMemberRole(s State, c UpdateMemberRole) DecisionResult {
	member, exists := s.Members[c.PersonID]
	if !exists {
		return ErrorDecision(ErrMemberNotFound)
	}

	if member.Role.Equals(c.Role()) {
		return IdempotentDecision()
	}

	return SuccessDecision(
		BuildMemberRoleUpdated(c.OrganizationID, c.PersonID, c.Role(), member.Role, c.OccurredAt),
	)
}

func decideRemoveMember(s State, c RemoveMember) DecisionResult {
	removed, exists := s.Members[c.PersonID]
	if !exists {
		return ErrorDecision(ErrMemberNotFound)
	}

	dependents := s.DependentsOf(c.PersonID)
	if len(dependents) == 0 {
		return SuccessDecision(
			BuildMemberRemoved(c.OrganizationID, c.PersonID, c.OccurredAt),
		)
	}

	if !c.ReassignDependents {
		return ErrorDecision(ErrMemberRemovalBlockedByDependents)
	}

	if c.NewManagerID != "" {
		if _, managerExists := s.Members[c.NewManagerID]; !managerExists {
			return ErrorDecision(ErrManagerNotFound)
		}
	}

	// One rewiring event per dependent, in stable order, then the removal —
	// all in a single atomic append so the stream never shows a dangling manager.
	slices.Sort(dependents)

	// Build the proposed reporting graph with the removed member gone and
	// every dependent rewired, and reject the removal if any rewired edge
	// closes a cycle through the survivors.
	proposed := reportingEdges(s)
	delete(proposed, c.PersonID)

	rewired := make(map[PersonIDString]PersonIDString, len(dependents))
	for _, dependent := range dependents {
		newManager := c.NewManagerID
		if dependent == c.NewManagerID {
			// The new manager was a dependent themselves: they step up into
			// the removed member's own reporting line.
			newManager = removed.ReportsTo
		}

		rewired[dependent] = newManager
		proposed[dependent] = newManager
	}

	for _, dependent := range dependents {
		if wouldCreateReportingCycle(proposed, dependent, rewired[dependent]) {
			return ErrorDecision(ErrCircularReporting)
		}
	}

	events := make(DomainEvents, 0, len(dependents)+1)
	for _, dependent := range dependents {
		events = append(events, BuildReportingLineChanged(
			c.OrganizationID, dependent, rewired[dependent], c.PersonID, c.OccurredAt,
		))
	}
	events = append(events, BuildMemberRemoved(c.OrganizationID, c.PersonID, c.OccurredAt))

	return SuccessDecision(events...)
}

func decideChangeReportingLine(s State, c ChangeReportingLine) DecisionResult {
	member, exists := s.Members[c.PersonID]
	if !exists {
		return ErrorDecision(ErrMemberNotFound)
	}

	if member.ReportsTo == c.ReportsTo {
		return IdempotentDecision()
	}

	if c.ReportsTo != "" {
		if _, managerExists := s.Members[c.ReportsTo]; !managerExists {
			return ErrorDecision(ErrManagerNotFound)
		}

		if wouldCreateReportingCycle(reportingEdges(s), c.PersonID, c.ReportsTo) {
			return ErrorDecision(ErrCircularReporting)
		}
	}

	return SuccessDecision(
		BuildReportingLineChanged(c.OrganizationID, c.PersonID, c.ReportsTo, member.ReportsTo, c.OccurredAt),
	)
}

// reportingEdges flattens the current membership into its reports-to
// relation, so cycle checks can run against either the current graph or a
// proposed one with edges rewired.
func reportingEdges(s State) map[PersonIDString]PersonIDString {
	edges := make(map[PersonIDString]PersonIDString, len(s.Members))
	for personID, member := range s.Members {
		edges[personID] = member.ReportsTo
	}

	return edges
}

// wouldCreateReportingCycle walks the management chain upwards from the new
// manager. Reaching the member again means the edge closes a cycle. The
// visited set terminates the walk even on a corrupt graph.
func wouldCreateReportingCycle(edges map[PersonIDString]PersonIDString, personID PersonIDString, newManagerID PersonIDString) bool {
	visited := make(map[PersonIDString]bool)
	current := newManagerID

	for current != "" {
		if current == personID {
			return true
		}
		if visited[current] {
			return false
		}
		visited[current] = true

		current = edges[current]
	}

	return false
}

func decideAddLocation(s State, c AddLocation) DecisionResult {
	if _, exists := s.Locations[c.LocationID.String()]; exists {
		return ErrorDecision(ErrLocationAlreadyExists)
	}

	isPrimary := len(s.Locations) == 0

	return SuccessDecision(
		BuildLocationAdded(c.OrganizationID, c.LocationID, c.Name, c.Address, isPrimary, c.OccurredAt),
	)
}

func decideRemoveLocation(s State, c RemoveLocation) DecisionResult {
	locationID := c.LocationID.String()

	if _, exists := s.Locations[locationID]; !exists {
		return ErrorDecision(ErrLocationNotFound)
	}

	if s.PrimaryLocationID == locationID && len(s.Locations) > 1 {
		return ErrorDecision(ErrPrimaryLocationRemovalBlocked)
	}

	return SuccessDecision(
		BuildLocationRemoved(c.OrganizationID, c.LocationID, c.OccurredAt),
	)
}

func decideChangePrimaryLocation(s State, c ChangePrimaryLocation) DecisionResult {
	locationID := c.LocationID.String()

	if _, exists := s.Locations[locationID]; !exists {
		return ErrorDecision(ErrLocationNotFound)
	}

	if s.PrimaryLocationID == locationID {
		return IdempotentDecision()
	}

	return SuccessDecision(
		BuildPrimaryLocationChanged(c.OrganizationID, c.LocationID, s.PrimaryLocationID, c.OccurredAt),
	)
}

func decideAddChild(s State, c AddChildOrganization) DecisionResult {
	childID := c.ChildID.String()

	if _, exists := s.Children[childID]; exists {
		return ErrorDecision(ErrChildAlreadyPresent)
	}

	// Only cycles detectable from this aggregate's own state: a unit cannot
	// adopt itself (caught in Validate) or its own parent.
	if childID == s.ParentID {
		return ErrorDecision(ErrCircularHierarchy)
	}

	if !s.Type.CanParent(Type(c.ChildType)) {
		return ErrorDecision(ErrChildTypeNotAllowed)
	}

	return SuccessDecision(
		BuildChildOrganizationAdded(c.OrganizationID, c.ChildID, c.ChildName, Type(c.ChildType), Status(c.ChildStatus), c.OccurredAt),
	)
}

func decideRemoveChild(s State, c RemoveChildOrganization) DecisionResult {
	if _, exists := s.Children[c.ChildID.String()]; !exists {
		return ErrorDecision(ErrChildNotFound)
	}

	return SuccessDecision(
		BuildChildOrganizationRemoved(c.OrganizationID, c.ChildID, c.OccurredAt),
	)
}

func decideRecordChildStatus(s State, c RecordChildOrganizationStatus) DecisionResult {
	child, exists := s.Children[c.ChildID.String()]
	if !exists {
		return ErrorDecision(ErrChildNotFound)
	}

	if child.Status == Status(c.Status) {
		return IdempotentDecision()
	}

	return SuccessDecision(
		BuildChildOrganizationStatusRecorded(c.OrganizationID, c.ChildID, Status(c.Status), c.OccurredAt),
	)
}

func decideDissolve(s State, c DissolveOrganization) DecisionResult {
	if s.Status == StatusDissolved {
		return IdempotentDecision()
	}

	if s.Status.IsTerminal() {
		return ErrorDecision(ErrOrganizationTerminal)
	}

	if s.HasNonTerminalChildren() {
		return ErrorDecision(ErrDissolutionBlockedByActiveChildren)
	}

	if !s.Status.CanTransitionTo(StatusDissolved) {
		return ErrorDecision(ErrInvalidStatusTransition)
	}

	return SuccessDecision(
		BuildOrganizationDissolved(c.OrganizationID, s.Status, c.Reason, c.OccurredAt),
	)
}
