package projection

import (
	"sync"

	"github.com/google/uuid"

	"github.com/orgstack/orgunit-engine-go/orgunit/core"
)

// ReportingView maintains each unit's reporting graph: who reports to whom.
type ReportingView struct {
	mu    sync.RWMutex
	units map[core.OrganizationIDString]map[core.PersonIDString]core.PersonIDString
}

// NewReportingView creates an empty reporting view.
func NewReportingView() *ReportingView {
	return &ReportingView{
		units: make(map[core.OrganizationIDString]map[core.PersonIDString]core.PersonIDString),
	}
}

// Name identifies the view.
func (v *ReportingView) Name() string {
	return "reporting"
}

// Reset clears the view for a rebuild.
func (v *ReportingView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.units = make(map[core.OrganizationIDString]map[core.PersonIDString]core.PersonIDString)
}

// Apply folds one event into the view.
func (v *ReportingView) Apply(organizationID uuid.UUID, event core.DomainEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := organizationID.String()

	switch e := event.(type) {
	case core.MemberAdded:
		v.membersLocked(id)[e.PersonID] = e.ReportsTo

	case core.ReportingLineChanged:
		if members, ok := v.units[id]; ok {
			if _, present := members[e.PersonID]; present {
				members[e.PersonID] = e.ReportsTo
			}
		}

	case core.MemberRemoved:
		if members, ok := v.units[id]; ok {
			delete(members, e.PersonID)
		}
	}
}

func (v *ReportingView) membersLocked(id core.OrganizationIDString) map[core.PersonIDString]core.PersonIDString {
	members, ok := v.units[id]
	if !ok {
		members = make(map[core.PersonIDString]core.PersonIDString)
		v.units[id] = members
	}

	return members
}

// Chain returns the management chain of a member, starting with their direct
// manager and ending at a member who reports to nobody. Unknown members return
// false. A visited set terminates the walk even on a corrupt graph.
func (v *ReportingView) Chain(organizationID core.OrganizationIDString, personID core.PersonIDString) ([]core.PersonIDString, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	members, ok := v.units[organizationID]
	if !ok {
		return nil, false
	}

	manager, ok := members[personID]
	if !ok {
		return nil, false
	}

	chain := make([]core.PersonIDString, 0)
	visited := map[core.PersonIDString]bool{personID: true}

	for manager != "" && !visited[manager] {
		chain = append(chain, manager)
		visited[manager] = true
		manager = members[manager]
	}

	return chain, true
}

// DirectReports returns the members reporting directly to the given person.
func (v *ReportingView) DirectReports(organizationID core.OrganizationIDString, personID core.PersonIDString) []core.PersonIDString {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var reports []core.PersonIDString
	for member, manager := range v.units[organizationID] {
		if manager == personID {
			reports = append(reports, member)
		}
	}

	return reports
}
