package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgstack/orgunit-engine-go/orgunit/core"
)

func givenOrganizationHistory(orgID uuid.UUID, now time.Time) core.DomainEvents {
	locationID := uuid.New()
	secondLocationID := uuid.New()
	childID := uuid.New()

	return core.DomainEvents{
		core.BuildOrganizationCreated(orgID, "Acme Robotics", core.TypeCompany, "", now.Add(-10*time.Hour)),
		core.BuildOrganizationStatusChanged(orgID, core.StatusActive, core.StatusCreating, "launch", now.Add(-9*time.Hour)),
		core.BuildMemberAdded(orgID, "person-ceo", core.Role{Title: "CEO", Level: core.LevelExecutive}, "", now.Add(-8*time.Hour)),
		core.BuildMemberAdded(orgID, "person-eng", core.Role{Title: "Engineer", Level: core.LevelSenior, Permissions: []string{"deploy"}}, "person-ceo", now.Add(-7*time.Hour)),
		core.BuildMemberRoleUpdated(orgID, "person-eng", core.Role{Title: "Staff Engineer", Level: core.LevelLead}, core.Role{Title: "Engineer", Level: core.LevelSenior}, now.Add(-6*time.Hour)),
		core.BuildLocationAdded(orgID, locationID, "HQ", "1 Main St", true, now.Add(-5*time.Hour)),
		core.BuildLocationAdded(orgID, secondLocationID, "Lab", "2 Side St", false, now.Add(-4*time.Hour)),
		core.BuildPrimaryLocationChanged(orgID, secondLocationID, locationID.String(), now.Add(-3*time.Hour)),
		core.BuildChildOrganizationAdded(orgID, childID, "Acme Labs", core.TypeDivision, core.StatusActive, now.Add(-2*time.Hour)),
		core.BuildChildOrganizationStatusRecorded(orgID, childID, core.StatusInactive, now.Add(-1*time.Hour)),
		core.BuildReportingLineChanged(orgID, "person-eng", "", "person-ceo", now.Add(-30*time.Minute)),
	}
}

func Test_Fold_ProducesExpectedState(t *testing.T) {
	// arrange
	orgID := uuid.New()
	now := time.Now()
	events := givenOrganizationHistory(orgID, now)

	// act
	state := core.Fold(events)

	// assert
	require.True(t, state.Exists())
	assert.Equal(t, orgID.String(), state.ID)
	assert.Equal(t, "Acme Robotics", state.Name)
	assert.Equal(t, core.TypeCompany, state.Type)
	assert.Equal(t, core.StatusActive, state.Status)
	assert.Len(t, state.Members, 2)
	assert.Equal(t, "Staff Engineer", state.Members["person-eng"].Role.Title)
	assert.Equal(t, core.LevelLead, state.Members["person-eng"].Role.Level)
	assert.Equal(t, "", state.Members["person-eng"].ReportsTo)
	assert.Len(t, state.Locations, 2)
	assert.Len(t, state.Children, 1)

	for _, child := range state.Children {
		assert.Equal(t, core.StatusInactive, child.Status)
	}
}

func Test_Fold_IsDeterministic(t *testing.T) {
	// arrange
	orgID := uuid.New()
	now := time.Now()
	events := givenOrganizationHistory(orgID, now)

	// act
	first := core.Fold(events)
	second := core.Fold(events)

	// assert
	assert.Equal(t, first, second)
}

func Test_Fold_SplitReplayEqualsFullReplay(t *testing.T) {
	// arrange
	orgID := uuid.New()
	now := time.Now()
	events := givenOrganizationHistory(orgID, now)

	// act - replay the full history in one go
	full := core.Fold(events)

	// act - replay a prefix, then continue applying one by one
	split := core.Fold(events[:4])
	for _, event := range events[4:] {
		split = core.Apply(split, event)
	}

	// assert
	assert.Equal(t, full, split)
}

func Test_Apply_TerminalEvents(t *testing.T) {
	orgID := uuid.New()
	survivorID := uuid.New()
	now := time.Now()

	base := core.DomainEvents{
		core.BuildOrganizationCreated(orgID, "Acme Robotics", core.TypeCompany, "", now.Add(-2*time.Hour)),
		core.BuildOrganizationStatusChanged(orgID, core.StatusActive, core.StatusCreating, "", now.Add(-1*time.Hour)),
	}

	t.Run("dissolved", func(t *testing.T) {
		state := core.Fold(append(base[:2:2], core.BuildOrganizationDissolved(orgID, core.StatusActive, "wind down", now)))
		assert.Equal(t, core.StatusDissolved, state.Status)
	})

	t.Run("merged", func(t *testing.T) {
		state := core.Fold(append(base[:2:2], core.BuildOrganizationMerged(orgID, survivorID, now)))
		assert.Equal(t, core.StatusMerged, state.Status)
		assert.Equal(t, survivorID.String(), state.MergedInto)
	})

	t.Run("acquired", func(t *testing.T) {
		state := core.Fold(append(base[:2:2], core.BuildOrganizationAcquired(orgID, survivorID, now)))
		assert.Equal(t, core.StatusAcquired, state.Status)
		assert.Equal(t, survivorID.String(), state.AcquiredBy)
		assert.Equal(t, survivorID.String(), state.ParentID)
	})

	t.Run("absorbed keeps survivor status", func(t *testing.T) {
		state := core.Fold(append(base[:2:2], core.BuildOrganizationAbsorbed(orgID, survivorID, now)))
		assert.Equal(t, core.StatusActive, state.Status)
		assert.Contains(t, state.Absorbed, survivorID.String())
	})
}

func Test_Apply_RemovingPrimaryLocationClearsPrimary(t *testing.T) {
	// arrange
	orgID := uuid.New()
	locationID := uuid.New()
	now := time.Now()

	state := core.Fold(core.DomainEvents{
		core.BuildOrganizationCreated(orgID, "Acme Robotics", core.TypeCompany, "", now.Add(-2*time.Hour)),
		core.BuildLocationAdded(orgID, locationID, "HQ", "1 Main St", true, now.Add(-1*time.Hour)),
	})
	require.Equal(t, locationID.String(), state.PrimaryLocationID)

	// act
	state = core.Apply(state, core.BuildLocationRemoved(orgID, locationID, now))

	// assert
	assert.Empty(t, state.PrimaryLocationID)
	assert.Empty(t, state.Locations)
}
