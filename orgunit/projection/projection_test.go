package projection_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/eventlog/memorylog"
	"github.com/orgstack/orgunit-engine-go/orgunit/core"
	"github.com/orgstack/orgunit-engine-go/orgunit/projection"
	"github.com/orgstack/orgunit-engine-go/orgunit/shell"
)

func givenEnvelope(t *testing.T, orgID uuid.UUID, version eventlog.Version, event core.DomainEvent) shell.EventEnvelope {
	t.Helper()

	metadata := shell.BuildEventMetadata(uuid.New(), uuid.New(), uuid.New())

	return shell.BuildEventEnvelope(orgID, version, event, metadata)
}

func givenEnvelopes(t *testing.T, orgID uuid.UUID, events ...core.DomainEvent) shell.EventEnvelopes {
	t.Helper()

	envelopes := make(shell.EventEnvelopes, 0, len(events))
	for i, event := range events {
		envelopes = append(envelopes, givenEnvelope(t, orgID, eventlog.Version(i+1), event))
	}

	return envelopes
}

func Test_Builder_DropsRedeliveredEnvelopes(t *testing.T) {
	// arrange
	view := projection.NewStatisticsView()
	builder := projection.NewBuilder(view)
	orgID := uuid.New()
	now := time.Now()
	role := core.Role{Title: "Engineer", Level: core.LevelMid}

	envelopes := givenEnvelopes(t, orgID,
		core.BuildOrganizationCreated(orgID, "Acme Robotics", core.TypeCompany, "", now),
		core.BuildMemberAdded(orgID, "person-1", role, "", now),
	)

	// act - an at-least-once transport delivers the batch twice
	builder.Consume(envelopes...)
	builder.Consume(envelopes...)

	// assert
	stats, ok := view.Snapshot(orgID.String())
	require.True(t, ok)
	assert.Equal(t, 1, stats.MemberCount)
}

func Test_Builder_RebuildMatchesIncrementalConsumption(t *testing.T) {
	// arrange - run the same history through a live builder and a rebuilt one
	log := memorylog.NewEventLog()
	repository, err := shell.NewRepository(log)
	require.NoError(t, err)

	liveView := projection.NewStatisticsView()
	live := projection.NewBuilder(liveView)

	orgID := uuid.New()
	ctx := context.Background()
	now := time.Now()
	manager := core.Role{Title: "Engineering Manager", Level: core.LevelManager}
	engineer := core.Role{Title: "Engineer", Level: core.LevelMid}

	commands := []core.Command{
		core.BuildCreateOrganization(orgID, "Acme Robotics", core.TypeCompany, uuid.Nil, now),
		core.BuildChangeOrganizationStatus(orgID, core.StatusActive, "", now),
		core.BuildAddMember(orgID, "person-m1", manager, "", now),
		core.BuildAddMember(orgID, "person-m2", engineer, "person-m1", now),
		core.BuildAddLocation(orgID, uuid.New(), "HQ", "1 Main St", now),
	}

	var version eventlog.Version
	for _, command := range commands {
		events, execErr := repository.Execute(ctx, orgID, command)
		require.NoError(t, execErr)

		for _, event := range events {
			version++
			live.Consume(givenEnvelope(t, orgID, version, event))
		}
	}

	rebuiltView := projection.NewStatisticsView()
	rebuilt := projection.NewBuilder(rebuiltView)

	// act
	require.NoError(t, rebuilt.Rebuild(ctx, log))

	// assert
	liveStats, ok := liveView.Snapshot(orgID.String())
	require.True(t, ok)
	rebuiltStats, ok := rebuiltView.Snapshot(orgID.String())
	require.True(t, ok)
	assert.Equal(t, liveStats, rebuiltStats)
}

func Test_HierarchyView_TreeReflectsParentRecordedChildren(t *testing.T) {
	// arrange
	view := projection.NewHierarchyView()
	parentID := uuid.New()
	childID := uuid.New()
	grandchildID := uuid.New()
	now := time.Now()

	view.Apply(parentID, core.BuildOrganizationCreated(parentID, "Acme Robotics", core.TypeCompany, "", now))
	view.Apply(parentID, core.BuildOrganizationStatusChanged(parentID, core.StatusActive, core.StatusCreating, "", now))
	view.Apply(parentID, core.BuildChildOrganizationAdded(parentID, childID, "Acme Labs", core.TypeDivision, core.StatusActive, now))

	view.Apply(childID, core.BuildOrganizationCreated(childID, "Acme Labs", core.TypeDivision, parentID.String(), now))
	view.Apply(childID, core.BuildOrganizationStatusChanged(childID, core.StatusActive, core.StatusCreating, "", now))
	view.Apply(childID, core.BuildChildOrganizationAdded(childID, grandchildID, "Robotics Dept", core.TypeDepartment, core.StatusCreating, now))

	// act
	tree, ok := view.Tree(parentID.String())

	// assert - the grandchild has no stream of its own yet and appears as a
	// leaf with the status its parent recorded
	require.True(t, ok)
	assert.Equal(t, "Acme Robotics", tree.Name)
	require.Len(t, tree.Children, 1)

	child := tree.Children[0]
	assert.Equal(t, childID.String(), child.OrganizationID)
	assert.Equal(t, core.StatusActive, child.Status)
	require.Len(t, child.Children, 1)
	assert.Equal(t, grandchildID.String(), child.Children[0].OrganizationID)
	assert.Equal(t, core.StatusCreating, child.Children[0].Status)
}

func Test_HierarchyView_RecordedChildStatusUpdatesTheTree(t *testing.T) {
	// arrange
	view := projection.NewHierarchyView()
	parentID := uuid.New()
	childID := uuid.New()
	now := time.Now()

	view.Apply(parentID, core.BuildOrganizationCreated(parentID, "Acme Robotics", core.TypeCompany, "", now))
	view.Apply(parentID, core.BuildChildOrganizationAdded(parentID, childID, "Acme Labs", core.TypeDivision, core.StatusActive, now))
	view.Apply(parentID, core.BuildChildOrganizationStatusRecorded(parentID, childID, core.StatusDissolved, now))

	// act
	tree, ok := view.Tree(parentID.String())

	// assert
	require.True(t, ok)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, core.StatusDissolved, tree.Children[0].Status)
}

func Test_HierarchyView_AcquisitionRewiresTheParent(t *testing.T) {
	// arrange
	view := projection.NewHierarchyView()
	targetID := uuid.New()
	acquirerID := uuid.New()
	now := time.Now()

	view.Apply(targetID, core.BuildOrganizationCreated(targetID, "Acme Labs", core.TypeCompany, "", now))
	view.Apply(targetID, core.BuildOrganizationAcquired(targetID, acquirerID, now))

	// act
	status, ok := view.Status(targetID.String())

	// assert
	require.True(t, ok)
	assert.Equal(t, core.StatusAcquired, status)

	node, ok := view.Tree(targetID.String())
	require.True(t, ok)
	assert.Equal(t, acquirerID.String(), node.ParentID)
}

func Test_ReportingView_ChainWalksUpToTheTop(t *testing.T) {
	// arrange - eng -> lead -> director -> nobody
	view := projection.NewReportingView()
	orgID := uuid.New()
	now := time.Now()

	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-director", core.Role{Title: "Director", Level: core.LevelDirector}, "", now))
	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-lead", core.Role{Title: "Lead", Level: core.LevelLead}, "person-director", now))
	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-eng", core.Role{Title: "Engineer", Level: core.LevelMid}, "person-lead", now))

	// act
	chain, ok := view.Chain(orgID.String(), "person-eng")

	// assert
	require.True(t, ok)
	assert.Equal(t, []core.PersonIDString{"person-lead", "person-director"}, chain)

	reports := view.DirectReports(orgID.String(), "person-director")
	assert.Equal(t, []core.PersonIDString{"person-lead"}, reports)
}

func Test_ReportingView_ChainFollowsReassignments(t *testing.T) {
	// arrange
	view := projection.NewReportingView()
	orgID := uuid.New()
	now := time.Now()

	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-m1", core.Role{Title: "Manager", Level: core.LevelManager}, "", now))
	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-m2", core.Role{Title: "Engineer", Level: core.LevelMid}, "person-m1", now))
	view.Apply(orgID, core.BuildReportingLineChanged(orgID, "person-m2", "", "person-m1", now))
	view.Apply(orgID, core.BuildMemberRemoved(orgID, "person-m1", now))

	// act
	chain, ok := view.Chain(orgID.String(), "person-m2")

	// assert
	require.True(t, ok)
	assert.Empty(t, chain)

	_, found := view.Chain(orgID.String(), "person-m1")
	assert.False(t, found)
}

func Test_StatisticsView_TracksCompositionAcrossChanges(t *testing.T) {
	// arrange
	view := projection.NewStatisticsView()
	orgID := uuid.New()
	now := time.Now()

	view.Apply(orgID, core.BuildOrganizationCreated(orgID, "Acme Robotics", core.TypeCompany, "", now))
	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-m1", core.Role{Title: "Manager", Level: core.LevelManager}, "", now))
	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-e1", core.Role{Title: "Engineer", Level: core.LevelMid}, "person-m1", now))
	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-e2", core.Role{Title: "Engineer", Level: core.LevelMid}, "person-m1", now))
	view.Apply(orgID, core.BuildLocationAdded(orgID, uuid.New(), "HQ", "1 Main St", true, now))

	// act
	stats, ok := view.Snapshot(orgID.String())

	// assert
	require.True(t, ok)
	assert.Equal(t, 3, stats.MemberCount)
	assert.Equal(t, core.SizeStartup, stats.SizeCategory)
	assert.Equal(t, 1, stats.LocationCount)
	assert.Equal(t, map[core.RoleLevel]int{core.LevelManager: 1, core.LevelMid: 2}, stats.RoleLevels)
	assert.InDelta(t, 2.0, stats.ManagementSpan, 0.001)
}

func Test_StatisticsView_RoleDistributionSurvivesUpdatesAndRemovals(t *testing.T) {
	// arrange
	view := projection.NewStatisticsView()
	orgID := uuid.New()
	now := time.Now()
	engineer := core.Role{Title: "Engineer", Level: core.LevelMid}
	senior := core.Role{Title: "Senior Engineer", Level: core.LevelSenior}

	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-1", engineer, "", now))
	view.Apply(orgID, core.BuildMemberAdded(orgID, "person-2", engineer, "", now))
	view.Apply(orgID, core.BuildMemberRoleUpdated(orgID, "person-1", senior, engineer, now))
	view.Apply(orgID, core.BuildMemberRemoved(orgID, "person-2", now))

	// act
	stats, ok := view.Snapshot(orgID.String())

	// assert
	require.True(t, ok)
	assert.Equal(t, 1, stats.MemberCount)
	assert.Equal(t, map[core.RoleLevel]int{core.LevelSenior: 1}, stats.RoleLevels)
}
