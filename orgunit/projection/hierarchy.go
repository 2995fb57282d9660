package projection

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/orgstack/orgunit-engine-go/orgunit/core"
)

// HierarchyNode is one unit in the hierarchy tree snapshot, with its children
// sorted by id for stable output.
type HierarchyNode struct {
	OrganizationID core.OrganizationIDString
	Name           string
	Type           core.Type
	Status         core.Status
	ParentID       core.OrganizationIDString
	Children       []HierarchyNode
}

type hierarchyUnit struct {
	name     string
	orgType  core.Type
	status   core.Status
	parentID core.OrganizationIDString
	children map[core.OrganizationIDString]core.Status
}

// HierarchyView maintains the parent/child structure and statuses of all known
// units. Child edges come from the parent's own stream; a child's recorded
// status may lag its live stream until reconciliation catches up.
type HierarchyView struct {
	mu    sync.RWMutex
	units map[core.OrganizationIDString]*hierarchyUnit
}

// NewHierarchyView creates an empty hierarchy view.
func NewHierarchyView() *HierarchyView {
	return &HierarchyView{
		units: make(map[core.OrganizationIDString]*hierarchyUnit),
	}
}

// Name identifies the view.
func (v *HierarchyView) Name() string {
	return "hierarchy"
}

// Reset clears the view for a rebuild.
func (v *HierarchyView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.units = make(map[core.OrganizationIDString]*hierarchyUnit)
}

// Apply folds one event into the view.
func (v *HierarchyView) Apply(organizationID uuid.UUID, event core.DomainEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := organizationID.String()

	switch e := event.(type) {
	case core.OrganizationCreated:
		v.units[id] = &hierarchyUnit{
			name:     e.Name,
			orgType:  core.Type(e.OrgType),
			status:   core.StatusCreating,
			parentID: e.ParentID,
			children: make(map[core.OrganizationIDString]core.Status),
		}

	case core.OrganizationStatusChanged:
		if unit, ok := v.units[id]; ok {
			unit.status = core.Status(e.Status)
		}

	case core.OrganizationDissolved:
		if unit, ok := v.units[id]; ok {
			unit.status = core.StatusDissolved
		}

	case core.OrganizationMerged:
		if unit, ok := v.units[id]; ok {
			unit.status = core.StatusMerged
		}

	case core.OrganizationAcquired:
		if unit, ok := v.units[id]; ok {
			unit.status = core.StatusAcquired
			unit.parentID = e.AcquirerID
		}

	case core.ChildOrganizationAdded:
		if unit, ok := v.units[id]; ok {
			unit.children[e.ChildID] = core.Status(e.ChildStatus)
		}

	case core.ChildOrganizationRemoved:
		if unit, ok := v.units[id]; ok {
			delete(unit.children, e.ChildID)
		}

	case core.ChildOrganizationStatusRecorded:
		if unit, ok := v.units[id]; ok {
			if _, present := unit.children[e.ChildID]; present {
				unit.children[e.ChildID] = core.Status(e.Status)
			}
		}
	}
}

// Tree returns the subtree rooted at the given unit, or false if it is unknown.
// Children unknown to the view appear as leaves with the status their parent
// last recorded for them.
func (v *HierarchyView) Tree(rootID core.OrganizationIDString) (HierarchyNode, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.subtreeLocked(rootID, "", make(map[core.OrganizationIDString]bool))
}

func (v *HierarchyView) subtreeLocked(
	id core.OrganizationIDString,
	statusFromParent core.Status,
	visited map[core.OrganizationIDString]bool,
) (HierarchyNode, bool) {

	if visited[id] {
		return HierarchyNode{}, false
	}
	visited[id] = true

	unit, ok := v.units[id]
	if !ok {
		if statusFromParent == "" {
			return HierarchyNode{}, false
		}

		return HierarchyNode{OrganizationID: id, Status: statusFromParent}, true
	}

	node := HierarchyNode{
		OrganizationID: id,
		Name:           unit.name,
		Type:           unit.orgType,
		Status:         unit.status,
		ParentID:       unit.parentID,
	}

	childIDs := make([]core.OrganizationIDString, 0, len(unit.children))
	for childID := range unit.children {
		childIDs = append(childIDs, childID)
	}
	sort.Strings(childIDs)

	for _, childID := range childIDs {
		if child, found := v.subtreeLocked(childID, unit.children[childID], visited); found {
			node.Children = append(node.Children, child)
		}
	}

	return node, true
}

// Status returns the last known status of a unit.
func (v *HierarchyView) Status(id core.OrganizationIDString) (core.Status, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	unit, ok := v.units[id]
	if !ok {
		return "", false
	}

	return unit.status, true
}
