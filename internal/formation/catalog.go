package formation

import (
	"sort"

	"github.com/charmbracelet/log"
)

// DefaultTemplateName is used whenever an unknown template name is requested.
// Template choice only affects board aesthetics, so an invalid key degrades to
// the default shape instead of failing.
const DefaultTemplateName = "4-4-2"

// bandWidth is the width of one role region. Each side's half of the board is
// split into four equal bands ordered GK (deepest) to FW (most advanced).
const bandWidth = 12.5

// Catalog holds the built-in formation templates, defined in the side-A
// orientation.
type Catalog struct {
	templates map[string]Template
}

// NewCatalog creates a catalog with the built-in set of templates.
func NewCatalog() *Catalog {
	c := &Catalog{templates: make(map[string]Template)}
	for _, t := range builtinTemplates() {
		c.templates[t.Name] = t
	}
	return c
}

// Names returns the available template names in alphabetical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns the named template, falling back to the default shape for
// unknown names.
func (c *Catalog) Template(name string) Template {
	if t, ok := c.templates[name]; ok {
		return t
	}
	log.Warn("Unknown formation template, using default", "template", name, "default", DefaultTemplateName)
	return c.templates[DefaultTemplateName]
}

// Slots returns the named template's slots oriented for the given side. Side A
// gets the stored slots verbatim; side B gets every x mirrored across the
// halfway line.
func (c *Catalog) Slots(name string, side Side) []Slot {
	t := c.Template(name)
	slots := make([]Slot, len(t.Slots))
	copy(slots, t.Slots)
	if side == SideB {
		for i := range slots {
			slots[i].X = 100 - slots[i].X
		}
	}
	return slots
}

// SideFromX derives the team side from a board coordinate: the left half
// belongs to side A, the right half to side B. Side is a property of geometry,
// not an independent user choice.
func SideFromX(x float64) Side {
	if x < 50 {
		return SideA
	}
	return SideB
}

// RegionForX returns the role region a coordinate falls into for the given
// side. Side B's bands mirror side A's.
func RegionForX(x float64, side Side) Role {
	depth := x
	if side == SideB {
		depth = 100 - x
	}
	band := int(depth / bandWidth)
	if band < 0 {
		band = 0
	}
	if band > 3 {
		band = 3
	}
	switch band {
	case 0:
		return RoleGoalkeeper
	case 1:
		return RoleDefender
	case 2:
		return RoleMidfielder
	default:
		return RoleForward
	}
}

func builtinTemplates() []Template {
	return []Template{
		{
			Name: "4-4-2",
			Slots: []Slot{
				{X: 6, Y: 50, Role: RoleGoalkeeper},
				{X: 19, Y: 15, Role: RoleDefender},
				{X: 19, Y: 38, Role: RoleDefender},
				{X: 19, Y: 62, Role: RoleDefender},
				{X: 19, Y: 85, Role: RoleDefender},
				{X: 31, Y: 15, Role: RoleMidfielder},
				{X: 31, Y: 38, Role: RoleMidfielder},
				{X: 31, Y: 62, Role: RoleMidfielder},
				{X: 31, Y: 85, Role: RoleMidfielder},
				{X: 43, Y: 35, Role: RoleForward},
				{X: 43, Y: 65, Role: RoleForward},
			},
		},
		{
			Name: "4-3-3",
			Slots: []Slot{
				{X: 6, Y: 50, Role: RoleGoalkeeper},
				{X: 19, Y: 15, Role: RoleDefender},
				{X: 19, Y: 38, Role: RoleDefender},
				{X: 19, Y: 62, Role: RoleDefender},
				{X: 19, Y: 85, Role: RoleDefender},
				{X: 31, Y: 25, Role: RoleMidfielder},
				{X: 31, Y: 50, Role: RoleMidfielder},
				{X: 31, Y: 75, Role: RoleMidfielder},
				{X: 43, Y: 20, Role: RoleForward},
				{X: 43, Y: 50, Role: RoleForward},
				{X: 43, Y: 80, Role: RoleForward},
			},
		},
		{
			Name: "3-5-2",
			Slots: []Slot{
				{X: 6, Y: 50, Role: RoleGoalkeeper},
				{X: 19, Y: 25, Role: RoleDefender},
				{X: 19, Y: 50, Role: RoleDefender},
				{X: 19, Y: 75, Role: RoleDefender},
				{X: 31, Y: 10, Role: RoleMidfielder},
				{X: 31, Y: 30, Role: RoleMidfielder},
				{X: 31, Y: 50, Role: RoleMidfielder},
				{X: 31, Y: 70, Role: RoleMidfielder},
				{X: 31, Y: 90, Role: RoleMidfielder},
				{X: 43, Y: 35, Role: RoleForward},
				{X: 43, Y: 65, Role: RoleForward},
			},
		},
		{
			Name: "4-2-3-1",
			Slots: []Slot{
				{X: 6, Y: 50, Role: RoleGoalkeeper},
				{X: 19, Y: 15, Role: RoleDefender},
				{X: 19, Y: 38, Role: RoleDefender},
				{X: 19, Y: 62, Role: RoleDefender},
				{X: 19, Y: 85, Role: RoleDefender},
				{X: 28, Y: 35, Role: RoleMidfielder},
				{X: 28, Y: 65, Role: RoleMidfielder},
				{X: 36, Y: 20, Role: RoleMidfielder},
				{X: 36, Y: 50, Role: RoleMidfielder},
				{X: 36, Y: 80, Role: RoleMidfielder},
				{X: 44, Y: 50, Role: RoleForward},
			},
		},
		{
			Name: "3-4-3",
			Slots: []Slot{
				{X: 6, Y: 50, Role: RoleGoalkeeper},
				{X: 19, Y: 25, Role: RoleDefender},
				{X: 19, Y: 50, Role: RoleDefender},
				{X: 19, Y: 75, Role: RoleDefender},
				{X: 31, Y: 15, Role: RoleMidfielder},
				{X: 31, Y: 38, Role: RoleMidfielder},
				{X: 31, Y: 62, Role: RoleMidfielder},
				{X: 31, Y: 85, Role: RoleMidfielder},
				{X: 43, Y: 20, Role: RoleForward},
				{X: 43, Y: 50, Role: RoleForward},
				{X: 43, Y: 80, Role: RoleForward},
			},
		},
		{
			Name: "5-3-2",
			Slots: []Slot{
				{X: 6, Y: 50, Role: RoleGoalkeeper},
				{X: 19, Y: 8, Role: RoleDefender},
				{X: 19, Y: 29, Role: RoleDefender},
				{X: 19, Y: 50, Role: RoleDefender},
				{X: 19, Y: 71, Role: RoleDefender},
				{X: 19, Y: 92, Role: RoleDefender},
				{X: 31, Y: 25, Role: RoleMidfielder},
				{X: 31, Y: 50, Role: RoleMidfielder},
				{X: 31, Y: 75, Role: RoleMidfielder},
				{X: 43, Y: 35, Role: RoleForward},
				{X: 43, Y: 65, Role: RoleForward},
			},
		},
	}
}
