package formation

import (
	"errors"

	"github.com/charmbracelet/log"
)

// Expected placement failures. These are reported to the caller and never
// leave the model partially mutated.
var (
	// ErrCapacityExceeded means a bench player was placed while the team's
	// template slots were already all filled.
	ErrCapacityExceeded = errors.New("formation: team already has a full lineup")
	// ErrNoMatchingSlot means the drop point's role region has no empty slot
	// and free placement was not allowed.
	ErrNoMatchingSlot = errors.New("formation: no empty slot for that role")
	// ErrExternalOpponent means a placement targeted the opposing side while
	// it is an external, non-roster team.
	ErrExternalOpponent = errors.New("formation: opposing side is an external team")
	// ErrNotOnField means a move or removal referenced a player who is still
	// on the bench.
	ErrNotOnField = errors.New("formation: player is not on the field")
)

// Model holds one match instance's board: player placements plus each team's
// template selection and strategy note. A player is either on the bench (no
// entry) or on the field (exactly one entry); there is no in-between state.
type Model struct {
	catalog  *Catalog
	resolver *Resolver

	positions []PlayerPosition

	templateA string
	templateB string
	strategyA string
	strategyB string

	// opponentName is set when side B is a named external team rather than a
	// second roster lineup. External sides are never placed spatially.
	opponentName string
}

// NewModel creates an empty board with the default template on both sides.
func NewModel(catalog *Catalog) *Model {
	return &Model{
		catalog:   catalog,
		resolver:  NewResolver(catalog),
		templateA: DefaultTemplateName,
		templateB: DefaultTemplateName,
	}
}

// Positions returns a copy of all current placements.
func (m *Model) Positions() []PlayerPosition {
	out := make([]PlayerPosition, len(m.positions))
	copy(out, m.positions)
	return out
}

// Position returns a player's current placement, if any.
func (m *Model) Position(playerID string) (PlayerPosition, bool) {
	for _, pos := range m.positions {
		if pos.PlayerID == playerID {
			return pos, true
		}
	}
	return PlayerPosition{}, false
}

// OnFieldCount returns how many players of a team are currently placed.
func (m *Model) OnFieldCount(team Side) int {
	count := 0
	for _, pos := range m.positions {
		if pos.Team == team {
			count++
		}
	}
	return count
}

// TemplateFor returns the template name selected for a side.
func (m *Model) TemplateFor(team Side) string {
	if team == SideB {
		return m.templateB
	}
	return m.templateA
}

// SetTemplate records a side's template selection. Existing placements are
// untouched until ReapplyTemplate is called.
func (m *Model) SetTemplate(team Side, name string) {
	name = m.catalog.Template(name).Name
	if team == SideB {
		m.templateB = name
	} else {
		m.templateA = name
	}
}

// StrategyFor returns a side's free-text strategy note.
func (m *Model) StrategyFor(team Side) string {
	if team == SideB {
		return m.strategyB
	}
	return m.strategyA
}

// SetStrategy records a side's free-text strategy note.
func (m *Model) SetStrategy(team Side, text string) {
	if team == SideB {
		m.strategyB = text
	} else {
		m.strategyA = text
	}
}

// SetOpponent marks side B as a named external team. Pass an empty name to
// make side B a regular roster side again.
func (m *Model) SetOpponent(name string) {
	m.opponentName = name
}

// Opponent returns the external opponent name, empty when side B is a roster
// side.
func (m *Model) Opponent() string {
	return m.opponentName
}

// Place puts a bench player on the board at the given point. The team side is
// derived from the point's half. The point resolves to the nearest empty slot
// of the point's role region; when none exists and allowFree is set, the
// placement falls back to the nearest free point instead.
//
// Placing a player who is already on the field behaves as a move.
func (m *Model) Place(playerID, playerName string, x, y float64, allowFree bool) (PlayerPosition, error) {
	team := SideFromX(x)
	if team == SideB && m.opponentName != "" {
		return PlayerPosition{}, ErrExternalOpponent
	}

	_, onField := m.Position(playerID)
	if !onField && m.OnFieldCount(team) >= len(m.catalog.Slots(m.TemplateFor(team), team)) {
		log.Debug("Placement rejected, lineup full", "playerID", playerID, "team", team)
		return PlayerPosition{}, ErrCapacityExceeded
	}

	return m.resolveAndApply(playerID, playerName, x, y, team, allowFree)
}

// Move relocates an on-field player. The player's own slot claim is released
// during resolution so they can settle back onto it, and a cross-field drop
// changes their team as a side effect of the new point's half.
func (m *Model) Move(playerID string, x, y float64, allowFree bool) (PlayerPosition, error) {
	current, onField := m.Position(playerID)
	if !onField {
		return PlayerPosition{}, ErrNotOnField
	}

	team := SideFromX(x)
	if team == SideB && m.opponentName != "" {
		return PlayerPosition{}, ErrExternalOpponent
	}

	return m.resolveAndApply(playerID, current.PlayerName, x, y, team, allowFree)
}

// Remove returns a player to the bench.
func (m *Model) Remove(playerID string) error {
	for i, pos := range m.positions {
		if pos.PlayerID == playerID {
			m.positions = append(m.positions[:i], m.positions[i+1:]...)
			return nil
		}
	}
	return ErrNotOnField
}

// resolveAndApply computes the final point for a placement and commits it.
// Nothing is mutated until resolution has succeeded.
func (m *Model) resolveAndApply(playerID, playerName string, x, y float64, team Side, allowFree bool) (PlayerPosition, error) {
	slots := m.catalog.Slots(m.TemplateFor(team), team)

	finalX, finalY := x, y
	if slot := m.resolver.FindNearestSlot(slots, team, m.positions, x, y, playerID); slot != nil {
		finalX, finalY = slot.X, slot.Y
	} else if allowFree {
		finalX, finalY = m.resolver.FindNearestFreePoint(team, m.positions, x, y, playerID)
	} else {
		log.Debug("Placement rejected, no empty slot for role", "playerID", playerID, "team", team, "role", RegionForX(x, team))
		return PlayerPosition{}, ErrNoMatchingSlot
	}

	placed := PlayerPosition{
		PlayerID:   playerID,
		PlayerName: playerName,
		X:          finalX,
		Y:          finalY,
		Team:       team,
	}
	for i, pos := range m.positions {
		if pos.PlayerID == playerID {
			m.positions[i] = placed
			return placed, nil
		}
	}
	m.positions = append(m.positions, placed)
	return placed, nil
}

// Restore replaces the board's placements wholesale, bypassing slot
// resolution. Used when rebuilding state from stored rows, which were already
// resolved when they were saved.
func (m *Model) Restore(positions []PlayerPosition) {
	m.positions = make([]PlayerPosition, len(positions))
	copy(m.positions, positions)
}

// ReapplyTemplate reassigns every on-field player of a team to the slots of
// the currently selected template. Players keep a slot matching their current
// role region when one is available; the overflow falls back to the nearest
// empty slot of any role, which can change a player's displayed role when the
// new shape has fewer slots for it.
func (m *Model) ReapplyTemplate(team Side) {
	slots := m.catalog.Slots(m.TemplateFor(team), team)
	taken := make(map[int]bool, len(slots))

	var players []int
	for i, pos := range m.positions {
		if pos.Team == team {
			players = append(players, i)
		}
	}

	assigned := make(map[int]int, len(players)) // position index -> slot index

	// First pass: same-role slots only.
	for _, pi := range players {
		pos := m.positions[pi]
		role := RegionForX(pos.X, team)
		if si := nearestSlotIndex(slots, taken, pos.X, pos.Y, role); si >= 0 {
			taken[si] = true
			assigned[pi] = si
		}
	}

	// Second pass: whatever is left, any role.
	for _, pi := range players {
		if _, ok := assigned[pi]; ok {
			continue
		}
		pos := m.positions[pi]
		if si := nearestSlotIndex(slots, taken, pos.X, pos.Y, ""); si >= 0 {
			taken[si] = true
			assigned[pi] = si
		}
	}

	for pi, si := range assigned {
		m.positions[pi].X = slots[si].X
		m.positions[pi].Y = slots[si].Y
	}
	log.Debug("Reapplied template", "team", team, "template", m.TemplateFor(team), "players", len(players))
}

// nearestSlotIndex finds the nearest untaken slot, optionally restricted to
// one role. Returns -1 when no candidate exists.
func nearestSlotIndex(slots []Slot, taken map[int]bool, x, y float64, role Role) int {
	best := -1
	bestDist := 0.0
	for i, slot := range slots {
		if taken[i] {
			continue
		}
		if role != "" && slot.Role != role {
			continue
		}
		d := Distance(x, y, slot.X, slot.Y)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
