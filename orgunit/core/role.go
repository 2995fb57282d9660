package core

import (
	"errors"
	"fmt"
	"slices"
)

// RoleLevel ranks a member's role in the management chain, highest authority first.
type RoleLevel string

// The closed set of role levels.
const (
	LevelExecutive     RoleLevel = "Executive"
	LevelVicePresident RoleLevel = "VicePresident"
	LevelDirector      RoleLevel = "Director"
	LevelManager       RoleLevel = "Manager"
	LevelLead          RoleLevel = "Lead"
	LevelSenior        RoleLevel = "Senior"
	LevelMid           RoleLevel = "Mid"
	LevelJunior        RoleLevel = "Junior"
	LevelEntry         RoleLevel = "Entry"
	LevelIntern        RoleLevel = "Intern"
)

// roleLevelRank maps each level to its authority rank, 1 being the highest.
var roleLevelRank = map[RoleLevel]int{
	LevelExecutive:     1,
	LevelVicePresident: 2,
	LevelDirector:      3,
	LevelManager:       4,
	LevelLead:          5,
	LevelSenior:        6,
	LevelMid:           7,
	LevelJunior:        8,
	LevelEntry:         9,
	LevelIntern:        10,
}

// ParseRoleLevel converts a string to a RoleLevel, rejecting unknown values.
func ParseRoleLevel(s string) (RoleLevel, error) {
	level := RoleLevel(s)
	if _, known := roleLevelRank[level]; !known {
		return "", errors.Join(ErrInvalidCommand, fmt.Errorf("unknown role level: %q", s))
	}

	return level, nil
}

// Rank returns the authority rank of the level, 1 being the highest.
func (l RoleLevel) Rank() int {
	return roleLevelRank[l]
}

// IsManagement reports whether the level carries people-management authority.
func (l RoleLevel) IsManagement() bool {
	rank, known := roleLevelRank[l]
	return known && rank <= roleLevelRank[LevelLead]
}

// CanManage reports whether a member at level l may manage a member at other,
// which requires strictly higher authority.
func (l RoleLevel) CanManage(other RoleLevel) bool {
	lRank, lKnown := roleLevelRank[l]
	otherRank, otherKnown := roleLevelRank[other]

	return lKnown && otherKnown && lRank < otherRank
}

// Role is the position a member holds within one organizational unit.
type Role struct {
	Title       string
	Level       RoleLevel
	Permissions []string
}

// Equals compares two roles including their permission sets, order-insensitively.
func (r Role) Equals(other Role) bool {
	if r.Title != other.Title || r.Level != other.Level {
		return false
	}
	if len(r.Permissions) != len(other.Permissions) {
		return false
	}

	mine := slices.Clone(r.Permissions)
	theirs := slices.Clone(other.Permissions)
	slices.Sort(mine)
	slices.Sort(theirs)

	return slices.Equal(mine, theirs)
}
