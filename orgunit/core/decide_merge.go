package core

// DecideMerge implements the business logic for merging one unit into a survivor.
// It decides both sides at once, each against its own state, and each side is
// idempotent under reapplication: a retried command whose first append landed
// yields an idempotent decision for that side and completes the other.
//
// The merged unit's state must belong to command.OrganizationID and the
// survivor's to command.IntoOrganizationID.
func DecideMerge(merged State, survivor State, command MergeOrganizations) (mergedResult DecisionResult, survivorResult DecisionResult) {
	if err := command.Validate(); err != nil {
		return ErrorDecision(err), ErrorDecision(err)
	}

	return decideMergedSide(merged, command), decideSurvivorSide(survivor, command)
}

func decideMergedSide(s State, c MergeOrganizations) DecisionResult {
	if !s.Exists() {
		return ErrorDecision(ErrOrganizationNotFound)
	}

	if s.Status == StatusMerged && s.MergedInto == c.IntoOrganizationID.String() {
		return IdempotentDecision()
	}

	if s.Status.IsTerminal() {
		return ErrorDecision(ErrOrganizationTerminal)
	}

	if !s.Status.CanTransitionTo(StatusMerged) {
		return ErrorDecision(ErrInvalidStatusTransition)
	}

	return SuccessDecision(
		BuildOrganizationMerged(c.OrganizationID, c.IntoOrganizationID, c.OccurredAt),
	)
}

func decideSurvivorSide(s State, c MergeOrganizations) DecisionResult {
	if !s.Exists() {
		return ErrorDecision(ErrOrganizationNotFound)
	}

	if _, absorbed := s.Absorbed[c.OrganizationID.String()]; absorbed {
		return IdempotentDecision()
	}

	if s.Status.IsTerminal() {
		return ErrorDecision(ErrOrganizationTerminal)
	}

	return SuccessDecision(
		BuildOrganizationAbsorbed(c.IntoOrganizationID, c.OrganizationID, c.OccurredAt),
	)
}

// DecideAcquire implements the business logic for one unit acquiring another.
// Like DecideMerge it decides both sides at once: the acquired unit moves to the
// terminal Acquired status with the acquirer as parent, and the acquirer records
// the unit as a child. Each side is idempotent under reapplication.
func DecideAcquire(target State, acquirer State, command AcquireOrganization) (targetResult DecisionResult, acquirerResult DecisionResult) {
	if err := command.Validate(); err != nil {
		return ErrorDecision(err), ErrorDecision(err)
	}

	return decideAcquiredSide(target, command), decideAcquirerSide(target, acquirer, command)
}

func decideAcquiredSide(s State, c AcquireOrganization) DecisionResult {
	if !s.Exists() {
		return ErrorDecision(ErrOrganizationNotFound)
	}

	if s.Status == StatusAcquired && s.AcquiredBy == c.AcquirerID.String() {
		return IdempotentDecision()
	}

	if s.Status.IsTerminal() {
		return ErrorDecision(ErrOrganizationTerminal)
	}

	if !s.Status.CanTransitionTo(StatusAcquired) {
		return ErrorDecision(ErrInvalidStatusTransition)
	}

	return SuccessDecision(
		BuildOrganizationAcquired(c.OrganizationID, c.AcquirerID, c.OccurredAt),
	)
}

func decideAcquirerSide(target State, s State, c AcquireOrganization) DecisionResult {
	if !s.Exists() {
		return ErrorDecision(ErrOrganizationNotFound)
	}

	if _, present := s.Children[c.OrganizationID.String()]; present {
		return IdempotentDecision()
	}

	if s.Status.IsTerminal() {
		return ErrorDecision(ErrOrganizationTerminal)
	}

	// Acquisition transfers ownership across the normal composition
	// hierarchy, so the acquirer side intentionally skips the CanParent
	// guard that AddChildOrganization enforces: a company may acquire
	// another company even though it could never compose one as a child.
	return SuccessDecision(
		BuildChildOrganizationAdded(c.AcquirerID, c.OrganizationID, target.Name, target.Type, StatusAcquired, c.OccurredAt),
	)
}
