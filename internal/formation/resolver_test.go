package formation_test

import (
	"testing"

	"github.com/clubkit/touchline/internal/formation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver() (*formation.Resolver, []formation.Slot) {
	catalog := formation.NewCatalog()
	return formation.NewResolver(catalog), catalog.Slots("4-4-2", formation.SideA)
}

func TestNearestOccupiedMapAssignsClosestSlot(t *testing.T) {
	resolver, slots := newResolver()

	positions := []formation.PlayerPosition{
		{PlayerID: "gk", X: 7, Y: 48, Team: formation.SideA},
		{PlayerID: "fw", X: 41, Y: 33, Team: formation.SideA},
	}

	occupied := resolver.NearestOccupiedMap(slots, formation.SideA, positions)
	require.Len(t, occupied, 2)
	assert.Equal(t, "gk", occupied[0].PlayerID)
	assert.Equal(t, "fw", occupied[9].PlayerID)
}

func TestNearestOccupiedMapCloserPlayerWinsContestedSlot(t *testing.T) {
	resolver, slots := newResolver()

	// Both players are nearest to the same forward slot at (43, 35).
	positions := []formation.PlayerPosition{
		{PlayerID: "near", X: 43, Y: 36, Team: formation.SideA},
		{PlayerID: "far", X: 43, Y: 40, Team: formation.SideA},
	}

	occupied := resolver.NearestOccupiedMap(slots, formation.SideA, positions)
	require.Len(t, occupied, 1)
	assert.Equal(t, "near", occupied[9].PlayerID)
}

func TestNearestOccupiedMapIgnoresOtherTeam(t *testing.T) {
	resolver, slots := newResolver()

	positions := []formation.PlayerPosition{
		{PlayerID: "theirs", X: 43, Y: 35, Team: formation.SideB},
	}

	occupied := resolver.NearestOccupiedMap(slots, formation.SideA, positions)
	assert.Empty(t, occupied)
}

func TestFindNearestSlotRespectsRoleRegion(t *testing.T) {
	resolver, slots := newResolver()

	// A drop in the forward band resolves to a forward slot even though a
	// midfielder slot is closer in raw distance.
	slot := resolver.FindNearestSlot(slots, formation.SideA, nil, 38, 80, "")
	require.NotNil(t, slot)
	assert.Equal(t, formation.RoleForward, slot.Role)
	assert.Equal(t, 65.0, slot.Y)
}

func TestFindNearestSlotReturnsNilWhenRegionFull(t *testing.T) {
	resolver, slots := newResolver()

	positions := []formation.PlayerPosition{
		{PlayerID: "fw1", X: 43, Y: 35, Team: formation.SideA},
		{PlayerID: "fw2", X: 43, Y: 65, Team: formation.SideA},
	}

	slot := resolver.FindNearestSlot(slots, formation.SideA, positions, 44, 50, "")
	assert.Nil(t, slot)
}

func TestFindNearestSlotExcludesMovingPlayer(t *testing.T) {
	resolver, slots := newResolver()

	positions := []formation.PlayerPosition{
		{PlayerID: "fw1", X: 43, Y: 35, Team: formation.SideA},
	}

	// The player's own claim is released, so they can resolve back onto
	// their current slot.
	slot := resolver.FindNearestSlot(slots, formation.SideA, positions, 43, 36, "fw1")
	require.NotNil(t, slot)
	assert.Equal(t, 35.0, slot.Y)
}

func TestFindNearestFreePointKeepsFreeTarget(t *testing.T) {
	resolver, _ := newResolver()

	x, y := resolver.FindNearestFreePoint(formation.SideA, nil, 25, 25, "")
	assert.Equal(t, 25.0, x)
	assert.Equal(t, 25.0, y)
}

func TestFindNearestFreePointMovesOffCrowdedTarget(t *testing.T) {
	resolver, _ := newResolver()

	positions := []formation.PlayerPosition{
		{PlayerID: "p1", X: 25, Y: 25, Team: formation.SideA},
	}

	x, y := resolver.FindNearestFreePoint(formation.SideA, positions, 25, 25, "")
	assert.GreaterOrEqual(t, formation.Distance(x, y, 25, 25), formation.MinSeparation)
	assert.GreaterOrEqual(t, x, 0.0)
	assert.LessOrEqual(t, x, 100.0)
}

func TestFindNearestFreePointIgnoresOtherTeamCrowding(t *testing.T) {
	resolver, _ := newResolver()

	positions := []formation.PlayerPosition{
		{PlayerID: "theirs", X: 25, Y: 25, Team: formation.SideB},
	}

	x, y := resolver.FindNearestFreePoint(formation.SideA, positions, 25, 25, "")
	assert.Equal(t, 25.0, x)
	assert.Equal(t, 25.0, y)
}
