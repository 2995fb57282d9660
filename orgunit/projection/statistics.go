package projection

import (
	"sync"

	"github.com/google/uuid"

	"github.com/orgstack/orgunit-engine-go/orgunit/core"
)

// Statistics is a point-in-time snapshot of one unit's composition.
type Statistics struct {
	OrganizationID core.OrganizationIDString
	MemberCount    int
	SizeCategory   core.SizeCategory
	RoleLevels     map[core.RoleLevel]int
	LocationCount  int
	ManagementSpan float64 // average direct reports per manager, 0 when there are no managers
}

type statisticsUnit struct {
	memberCount   int
	roleLevels    map[core.RoleLevel]int
	levelOf       map[core.PersonIDString]core.RoleLevel
	locationCount int
	reportCounts  map[core.PersonIDString]int // manager -> direct report count
	managerOf     map[core.PersonIDString]core.PersonIDString
}

// StatisticsView maintains member, role, and location statistics per unit.
type StatisticsView struct {
	mu    sync.RWMutex
	units map[core.OrganizationIDString]*statisticsUnit
}

// NewStatisticsView creates an empty statistics view.
func NewStatisticsView() *StatisticsView {
	return &StatisticsView{
		units: make(map[core.OrganizationIDString]*statisticsUnit),
	}
}

// Name identifies the view.
func (v *StatisticsView) Name() string {
	return "statistics"
}

// Reset clears the view for a rebuild.
func (v *StatisticsView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.units = make(map[core.OrganizationIDString]*statisticsUnit)
}

// Apply folds one event into the view.
func (v *StatisticsView) Apply(organizationID uuid.UUID, event core.DomainEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	unit := v.unitLocked(organizationID.String())

	switch e := event.(type) {
	case core.MemberAdded:
		unit.memberCount++
		unit.roleLevels[core.RoleLevel(e.RoleLevel)]++
		unit.levelOf[e.PersonID] = core.RoleLevel(e.RoleLevel)
		v.rewireLocked(unit, e.PersonID, e.ReportsTo)

	case core.MemberRoleUpdated:
		v.dropLevelLocked(unit, core.RoleLevel(e.PreviousRoleLevel))
		unit.roleLevels[core.RoleLevel(e.RoleLevel)]++
		unit.levelOf[e.PersonID] = core.RoleLevel(e.RoleLevel)

	case core.MemberRemoved:
		unit.memberCount--
		v.dropLevelLocked(unit, unit.levelOf[e.PersonID])
		delete(unit.levelOf, e.PersonID)
		v.rewireLocked(unit, e.PersonID, "")
		delete(unit.reportCounts, e.PersonID)

	case core.ReportingLineChanged:
		v.rewireLocked(unit, e.PersonID, e.ReportsTo)

	case core.LocationAdded:
		unit.locationCount++

	case core.LocationRemoved:
		unit.locationCount--
	}
}

func (v *StatisticsView) unitLocked(id core.OrganizationIDString) *statisticsUnit {
	unit, ok := v.units[id]
	if !ok {
		unit = &statisticsUnit{
			roleLevels:   make(map[core.RoleLevel]int),
			levelOf:      make(map[core.PersonIDString]core.RoleLevel),
			reportCounts: make(map[core.PersonIDString]int),
			managerOf:    make(map[core.PersonIDString]core.PersonIDString),
		}
		v.units[id] = unit
	}

	return unit
}

func (v *StatisticsView) dropLevelLocked(unit *statisticsUnit, level core.RoleLevel) {
	unit.roleLevels[level]--
	if unit.roleLevels[level] <= 0 {
		delete(unit.roleLevels, level)
	}
}

func (v *StatisticsView) rewireLocked(unit *statisticsUnit, personID core.PersonIDString, newManager core.PersonIDString) {
	if previous, ok := unit.managerOf[personID]; ok && previous != "" {
		unit.reportCounts[previous]--
		if unit.reportCounts[previous] <= 0 {
			delete(unit.reportCounts, previous)
		}
	}

	if newManager == "" {
		delete(unit.managerOf, personID)
		return
	}

	unit.managerOf[personID] = newManager
	unit.reportCounts[newManager]++
}

// Snapshot returns the statistics of one unit, or false if it is unknown.
func (v *StatisticsView) Snapshot(organizationID core.OrganizationIDString) (Statistics, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	unit, ok := v.units[organizationID]
	if !ok {
		return Statistics{}, false
	}

	roleLevels := make(map[core.RoleLevel]int, len(unit.roleLevels))
	for level, count := range unit.roleLevels {
		roleLevels[level] = count
	}

	span := 0.0
	if len(unit.reportCounts) > 0 {
		total := 0
		for _, count := range unit.reportCounts {
			total += count
		}
		span = float64(total) / float64(len(unit.reportCounts))
	}

	return Statistics{
		OrganizationID: organizationID,
		MemberCount:    unit.memberCount,
		SizeCategory:   core.SizeCategoryFromMemberCount(unit.memberCount),
		RoleLevels:     roleLevels,
		LocationCount:  unit.locationCount,
		ManagementSpan: span,
	}, true
}
