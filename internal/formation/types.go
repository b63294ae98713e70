package formation

// Role represents the positional role a slot is reserved for.
type Role string

const (
	RoleGoalkeeper Role = "GK"
	RoleDefender   Role = "DF"
	RoleMidfielder Role = "MF"
	RoleForward    Role = "FW"
)

// Side identifies which half of the board a team occupies.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Slot is a single role-tagged position within a formation template.
// Coordinates are percentages of the full board, [0,100] on both axes.
type Slot struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Role Role    `json:"role"`
}

// Template is a named tactical shape, defined for the side-A orientation.
// Side B's slots are derived by mirroring, never stored.
type Template struct {
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

// PlayerPosition is one player placed on the board. A player has at most one
// position per match instance.
type PlayerPosition struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Team       Side    `json:"team"`
}
