package core

import "github.com/vovakirdan/tui-defense/internal/games/defense/catalog"

// PlaceTower builds a tower on a grid cell and deducts its cost.
// Rejections return the state unchanged with a *PlacementError.
// Checks run in order: bounds, path, occupancy, funds.
func PlaceTower(prev State, env Env, arch catalog.TowerArchetype, gx, gy int, id string) (State, error) {
	reject := func(reason RejectReason) (State, error) {
		return prev, &PlacementError{
			Reason: reason,
			GridX:  gx,
			GridY:  gy,
			Tower:  arch.ID,
			Cost:   arch.Cost,
			Money:  prev.Money,
		}
	}

	if !env.Rules.InBounds(gx, gy) {
		return reject(ReasonOutOfBounds)
	}
	if env.Level.OnPath(gx, gy) {
		return reject(ReasonOnPath)
	}
	if _, taken := prev.Occupant(gx, gy); taken {
		return reject(ReasonOccupied)
	}
	if prev.Money < arch.Cost {
		return reject(ReasonInsufficientFunds)
	}

	s := prev.Clone()
	center := env.Rules.CellCenter(gx, gy)
	s.Towers = append(s.Towers, PlacedTower{
		TowerArchetype: arch,
		InstanceID:     id,
		X:              center.X,
		Y:              center.Y,
		GridX:          gx,
		GridY:          gy,
	})
	s.occupied[Cell{gx, gy}] = id
	s.Money -= arch.Cost
	return s, nil
}

// PlaceTowerByID looks the archetype up in the catalog before placing.
func PlaceTowerByID(prev State, env Env, towerID string, gx, gy int, id string) (State, error) {
	arch, ok := env.Catalog.TowerByID(towerID)
	if !ok {
		return prev, &PlacementError{Reason: ReasonUnknownTower, GridX: gx, GridY: gy, Tower: towerID}
	}
	return PlaceTower(prev, env, arch, gx, gy, id)
}

// CanPlace reports whether a cell is buildable, ignoring funds.
func CanPlace(s State, env Env, gx, gy int) bool {
	if !env.Rules.InBounds(gx, gy) || env.Level.OnPath(gx, gy) {
		return false
	}
	_, taken := s.Occupant(gx, gy)
	return !taken
}
