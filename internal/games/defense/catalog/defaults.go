package catalog

// DefaultTowers returns the built-in tower roster, grouped as they appear in
// the build sidebar.
func DefaultTowers() []TowerArchetype {
	return []TowerArchetype{
		// Budget
		{ID: "turret", Name: "Turret", Cost: 50, Range: 120, Damage: 10, Rate: 40},
		{ID: "rapid_fire", Name: "Rapid Fire", Cost: 75, Range: 100, Damage: 3, Rate: 8},
		{ID: "blaster", Name: "Blaster", Cost: 150, Range: 90, Damage: 5, Rate: 10},
		{ID: "bomber", Name: "Bomber", Cost: 200, Range: 140, Damage: 20, Rate: 60, Splash: 50},
		// Infantry
		{ID: "m4_trooper", Name: "M4 Trooper", Cost: 100, Range: 120, Damage: 15, Rate: 30},
		{ID: "m2_browning", Name: "M2 Browning", Cost: 250, Range: 180, Damage: 25, Rate: 10},
		{ID: "barrett_50", Name: "Barrett .50", Cost: 350, Range: 400, Damage: 150, Rate: 120},
		// Armored
		{ID: "m1_abrams", Name: "M1 Abrams", Cost: 600, Range: 250, Damage: 80, Rate: 80, Splash: 60},
		{ID: "bradley_ifv", Name: "Bradley IFV", Cost: 900, Range: 220, Damage: 40, Rate: 15},
		{ID: "stryker", Name: "Stryker", Cost: 700, Range: 200, Damage: 25, Rate: 10},
		// Air support
		{ID: "apache", Name: "Apache", Cost: 800, Range: 300, Damage: 40, Rate: 15, Splash: 30},
		{ID: "f35", Name: "F-35", Cost: 3000, Range: 500, Damage: 1000, Rate: 300},
		{ID: "f22", Name: "F-22 Raptor", Cost: 4000, Range: 500, Damage: 1500, Rate: 180},
		{ID: "ac130", Name: "AC-130", Cost: 5000, Range: 400, Damage: 50, Rate: 5},
		// Specialized
		{ID: "ciws", Name: "CIWS Phalanx", Cost: 1500, Range: 220, Damage: 8, Rate: 1},
		{ID: "javelin", Name: "Javelin Team", Cost: 500, Range: 300, Damage: 200, Rate: 120},
		{ID: "m109_paladin", Name: "M109 Paladin", Cost: 1500, Range: 600, Damage: 400, Rate: 240, Splash: 80},
		{ID: "himars", Name: "HIMARS", Cost: 1800, Range: 400, Damage: 300, Rate: 180, Splash: 100},
		{ID: "patriot", Name: "Patriot System", Cost: 1200, Range: 500, Damage: 300, Rate: 200, Splash: 100},
		{ID: "missile_silo", Name: "Missile Silo", Cost: 2000, Range: 800, Damage: 1000, Rate: 400, Splash: 150},
		{ID: "a10_warthog", Name: "A-10 Strike", Cost: 2500, Range: 1000, Damage: 500, Rate: 600},
		// Support
		{ID: "barracks", Name: "Barracks", Cost: 500, Range: 100, Damage: 0, Rate: 600, Effect: "spawn"},
	}
}

// DefaultEnemies returns the built-in enemy archetypes.
func DefaultEnemies() []EnemyArchetype {
	return []EnemyArchetype{
		{ID: "troop", Name: "Troop", Speed: 1.0, BaseHP: 10, HPMultiplier: 1.0, Color: "red", Size: Size{10, 10}},
		{ID: "scout_bike", Name: "Scout Bike", Speed: 3.0, BaseHP: 6, HPMultiplier: 0.6, Color: "orange", Size: Size{15, 10}},
		{ID: "technical", Name: "Technical", Speed: 2.8, BaseHP: 12, HPMultiplier: 1.2, Color: "white", Size: Size{20, 15}},
		{ID: "jeep", Name: "Jeep", Speed: 2.5, BaseHP: 18, HPMultiplier: 1.8, Color: "lightgreen", Size: Size{22, 16}},
		{ID: "humvee", Name: "Humvee", Speed: 2.0, BaseHP: 25, HPMultiplier: 2.5, Color: "blue", Size: Size{25, 18}},
		{ID: "btr80", Name: "BTR-80", Speed: 1.5, BaseHP: 40, HPMultiplier: 4.0, Color: "darkgreen", Size: Size{30, 20}},
		{ID: "bmp2", Name: "BMP-2", Speed: 1.8, BaseHP: 30, HPMultiplier: 3.0, Color: "darkgreen", Size: Size{28, 20}},
		{ID: "apc", Name: "APC", Speed: 1.2, BaseHP: 50, HPMultiplier: 5.0, Color: "blue-grey", Size: Size{32, 22}},
		{ID: "tank", Name: "Tank", Speed: 0.6, BaseHP: 80, HPMultiplier: 8.0, Color: "green", Size: Size{35, 25}},
		{ID: "t72", Name: "T-72", Speed: 0.8, BaseHP: 60, HPMultiplier: 6.0, Color: "green", Size: Size{35, 25}},
		{ID: "t90", Name: "T-90", Speed: 0.7, BaseHP: 100, HPMultiplier: 10.0, Color: "darkgreen", Size: Size{38, 28}},
		{ID: "heavy_tank", Name: "Heavy Tank", Speed: 0.4, BaseHP: 150, HPMultiplier: 15.0, Color: "darkgreen", Size: Size{45, 35}},
		{ID: "mi24_hind", Name: "Mi-24 Hind", Speed: 3.5, BaseHP: 60, HPMultiplier: 6.0, Color: "brown", Flying: true, Size: Size{40, 30}},
		{ID: "su25_frogfoot", Name: "Su-25 Frogfoot", Speed: 4.2, BaseHP: 30, HPMultiplier: 3.0, Color: "blue-grey", Flying: true, Size: Size{35, 20}},
		{ID: "jet", Name: "Jet", Speed: 4.0, BaseHP: 20, HPMultiplier: 2.0, Color: "grey", Flying: true, Size: Size{30, 15}},
		{ID: "boss", Name: "Boss", Speed: 0.3, BaseHP: 500, HPMultiplier: 50.0, Color: "darkred", Size: Size{60, 50}},
		{ID: "scud_launcher", Name: "Scud Launcher", Speed: 0.4, BaseHP: 400, HPMultiplier: 40.0, Color: "darkgreen", Size: Size{70, 30}},
	}
}

// DefaultLevels returns the built-in maps. Paths are declared by their
// corners and expanded into one waypoint per grid cell.
func DefaultLevels() []Level {
	return []Level{
		{Number: 1, Name: "Winding Path", Path: Trace(
			Point{0, 4}, Point{4, 4}, Point{4, 6}, Point{2, 6}, Point{2, 9}, Point{6, 9}, Point{6, 6},
			Point{12, 6}, Point{12, 11}, Point{22, 11}, Point{22, 8}, Point{18, 8}, Point{18, 4}, Point{29, 4},
		)},
		{Number: 2, Name: "Zig Zag", Path: Trace(
			Point{2, 0}, Point{2, 2}, Point{4, 2}, Point{4, 4}, Point{2, 4}, Point{2, 6}, Point{4, 6},
			Point{4, 8}, Point{8, 8}, Point{8, 4}, Point{14, 4}, Point{14, 8}, Point{18, 8}, Point{18, 12},
			Point{16, 12}, Point{16, 14}, Point{24, 14}, Point{24, 9}, Point{27, 9}, Point{27, 2}, Point{29, 2},
		)},
		{Number: 3, Name: "Spiral", Path: Trace(
			Point{0, 0}, Point{29, 0}, Point{29, 19}, Point{1, 19}, Point{1, 2}, Point{27, 2}, Point{27, 17},
			Point{3, 17}, Point{3, 4}, Point{25, 4}, Point{25, 15}, Point{5, 15}, Point{5, 6}, Point{23, 6},
			Point{23, 13}, Point{7, 13}, Point{7, 8}, Point{21, 8}, Point{21, 11}, Point{9, 11}, Point{9, 10},
			Point{19, 10},
		)},
	}
}

// DefaultRosters returns the built-in waves. Waves 16 and 17 are
// intentionally absent and spawn nothing.
func DefaultRosters() map[int][]string {
	return map[int][]string{
		1:  {"troop", "troop", "troop", "troop", "troop"},
		2:  {"troop", "troop", "scout_bike", "troop", "scout_bike"},
		3:  {"scout_bike", "scout_bike", "technical"},
		4:  {"technical", "technical", "humvee"},
		5:  {"jeep", "jeep", "humvee", "boss"},
		6:  {"btr80", "btr80", "humvee"},
		7:  {"bmp2", "bmp2", "btr80"},
		8:  {"apc", "apc", "bmp2"},
		9:  {"apc", "tank", "apc"},
		10: {"tank", "tank", "scud_launcher"},
		11: {"t72", "t72", "tank"},
		12: {"t90", "t72", "t90"},
		13: {"t90", "heavy_tank"},
		14: {"heavy_tank", "heavy_tank"},
		15: {"heavy_tank", "heavy_tank", "boss"},
		18: {"mi24_hind", "mi24_hind"},
		19: {"su25_frogfoot", "su25_frogfoot", "mi24_hind"},
		20: {"jet", "jet", "su25_frogfoot", "scud_launcher"},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(DefaultTowers(), DefaultEnemies(), DefaultLevels(), DefaultRosters())
}

// Trace expands a list of corners into unit grid steps. Each leg must be
// horizontal or vertical; diagonal legs are walked x first, then y.
func Trace(corners ...Point) []Point {
	if len(corners) == 0 {
		return nil
	}
	path := []Point{corners[0]}
	cur := corners[0]
	for _, next := range corners[1:] {
		for cur.X != next.X {
			cur.X += sign(next.X - cur.X)
			path = append(path, cur)
		}
		for cur.Y != next.Y {
			cur.Y += sign(next.Y - cur.Y)
			path = append(path, cur)
		}
	}
	return path
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
