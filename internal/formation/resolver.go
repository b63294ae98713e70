package formation

import (
	"math"
)

// MinSeparation is the minimum distance, in percentage space, allowed between
// two free-placed players of the same team. Slot-snapped placements are exempt
// because slot identity already guarantees separation.
const MinSeparation = 5.0

// Free-point ring search bounds.
const (
	searchRadiusStep = 2.0
	searchRadiusMax  = 20.0
	searchAngleStep  = 20.0
)

// Resolver maps arbitrary board points onto template slots for one team.
type Resolver struct {
	catalog *Catalog
}

// NewResolver creates a Resolver backed by the given catalog.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Distance returns the Euclidean distance between two board points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// NearestOccupiedMap assigns every on-field player of a team to the single
// slot nearest their current position. When two players are nearest to the
// same slot, the closer one wins and the other is left unassigned, so one
// player can never appear to occupy two slots.
func (r *Resolver) NearestOccupiedMap(slots []Slot, team Side, positions []PlayerPosition) map[int]PlayerPosition {
	type claim struct {
		pos  PlayerPosition
		dist float64
	}
	claims := make(map[int]claim)

	for _, pos := range positions {
		if pos.Team != team {
			continue
		}
		nearest := -1
		nearestDist := 0.0
		for i, slot := range slots {
			d := Distance(pos.X, pos.Y, slot.X, slot.Y)
			if nearest == -1 || d < nearestDist {
				nearest = i
				nearestDist = d
			}
		}
		if nearest == -1 {
			continue
		}
		if existing, ok := claims[nearest]; ok && existing.dist <= nearestDist {
			continue
		}
		claims[nearest] = claim{pos: pos, dist: nearestDist}
	}

	occupied := make(map[int]PlayerPosition, len(claims))
	for i, c := range claims {
		occupied[i] = c.pos
	}
	return occupied
}

// EmptySlots returns the slots of a team that no player currently claims
// under NearestOccupiedMap. When excludePlayerID is non-empty, that player's
// own claim is released first, which is what a move needs so the player can
// land back on their current slot.
func (r *Resolver) EmptySlots(slots []Slot, team Side, positions []PlayerPosition, excludePlayerID string) []Slot {
	considered := positions
	if excludePlayerID != "" {
		considered = make([]PlayerPosition, 0, len(positions))
		for _, pos := range positions {
			if pos.PlayerID != excludePlayerID {
				considered = append(considered, pos)
			}
		}
	}
	occupied := r.NearestOccupiedMap(slots, team, considered)

	var empty []Slot
	for i, slot := range slots {
		if _, ok := occupied[i]; !ok {
			empty = append(empty, slot)
		}
	}
	return empty
}

// FindNearestSlot resolves a drop point to the nearest empty slot whose role
// matches the point's role region. It never cross-assigns roles: dropping a
// player into the forward third resolves only to an empty forward slot, and
// returns nil when none exists.
func (r *Resolver) FindNearestSlot(slots []Slot, team Side, positions []PlayerPosition, targetX, targetY float64, excludePlayerID string) *Slot {
	role := RegionForX(targetX, team)

	var best *Slot
	bestDist := 0.0
	for _, slot := range r.EmptySlots(slots, team, positions, excludePlayerID) {
		if slot.Role != role {
			continue
		}
		d := Distance(targetX, targetY, slot.X, slot.Y)
		if best == nil || d < bestDist {
			s := slot
			best = &s
			bestDist = d
		}
	}
	return best
}

// FindNearestFreePoint searches concentric rings around the target for a
// point at least MinSeparation away from every other same-team position. If
// no such point exists within the search bound, the original target is
// returned unchanged: a crowded placement is preferred over blocking the
// user.
func (r *Resolver) FindNearestFreePoint(team Side, positions []PlayerPosition, targetX, targetY float64, excludePlayerID string) (float64, float64) {
	if r.pointIsFree(targetX, targetY, team, positions, excludePlayerID) {
		return targetX, targetY
	}

	for radius := searchRadiusStep; radius <= searchRadiusMax; radius += searchRadiusStep {
		for angle := 0.0; angle < 360; angle += searchAngleStep {
			rad := angle * math.Pi / 180
			x := clamp(targetX+radius*math.Cos(rad), 0, 100)
			y := clamp(targetY+radius*math.Sin(rad), 0, 100)
			if r.pointIsFree(x, y, team, positions, excludePlayerID) {
				return x, y
			}
		}
	}
	return targetX, targetY
}

func (r *Resolver) pointIsFree(x, y float64, team Side, positions []PlayerPosition, excludePlayerID string) bool {
	for _, pos := range positions {
		if pos.Team != team || pos.PlayerID == excludePlayerID {
			continue
		}
		if Distance(x, y, pos.X, pos.Y) < MinSeparation {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
