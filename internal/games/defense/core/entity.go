package core

import "github.com/vovakirdan/tui-defense/internal/games/defense/catalog"

// PlacedTower is a tower on the board. The archetype is embedded so a saved
// tower carries its full definition.
type PlacedTower struct {
	catalog.TowerArchetype
	InstanceID string  `json:"idInGame"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	GridX      int     `json:"gridX"`
	GridY      int     `json:"gridY"`
	Cooldown   int     `json:"cooldown"`
	Target     string  `json:"target,omitempty"`
}

// Pos returns the tower's pixel position.
func (t *PlacedTower) Pos() Vec {
	return Vec{t.X, t.Y}
}

// ActiveEnemy is a hostile unit walking the path.
type ActiveEnemy struct {
	catalog.EnemyArchetype
	InstanceID string  `json:"idInGame"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	CurrentHP  float64 `json:"currentHp"`
	TotalHP    float64 `json:"totalHp"`
	PathIndex  int     `json:"pathIndex"`
}

// Pos returns the enemy's pixel position.
func (e *ActiveEnemy) Pos() Vec {
	return Vec{e.X, e.Y}
}

// Alive reports whether the enemy still has hit points.
func (e *ActiveEnemy) Alive() bool {
	return e.CurrentHP > 0
}

// Projectile is a shot trail flying from a tower to its impact point.
// Damage is resolved when the shot is fired; the trail is only carried for
// display and saves.
type Projectile struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	TargetX float64 `json:"targetX"`
	TargetY float64 `json:"targetY"`
	Speed   float64 `json:"speed"`
	Damage  float64 `json:"damage"`
	Splash  float64 `json:"splash"`
}

// DecorationType names a scenery piece.
type DecorationType string

const (
	DecorationTree     DecorationType = "tree"
	DecorationCane     DecorationType = "cane"
	DecorationOrnament DecorationType = "ornament"
)

// Decoration is a piece of scenery. It never blocks placement.
type Decoration struct {
	Type     DecorationType `json:"type"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Size     float64        `json:"size"`
	Color    string         `json:"color,omitempty"`
	Rotation float64        `json:"rotation,omitempty"`
}
