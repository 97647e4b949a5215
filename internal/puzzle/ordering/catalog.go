package ordering

import "github.com/vovakirdan/playroom/internal/puzzle"

// World layout, in the same units as matching (1280x720).
const (
	WorldWidth = 1280.0
	SlotY      = 280.0
	CardY      = 620.0
)

// Catalog is an ordered, read-only list of ordering levels.
type Catalog struct {
	levels []LevelDefinition
}

// NewCatalog numbers the levels 1..len(levels) and wraps them.
func NewCatalog(levels []LevelDefinition) *Catalog {
	c := &Catalog{levels: make([]LevelDefinition, len(levels))}
	for i, lvl := range levels {
		lvl.Number = i + 1
		c.levels[i] = lvl
	}
	return c
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Level returns level n (1-based).
func (c *Catalog) Level(n int) (LevelDefinition, bool) {
	if n < 1 || n > len(c.levels) {
		return LevelDefinition{}, false
	}
	return c.levels[n-1], true
}

// Validate checks every level and returns the first error.
func (c *Catalog) Validate() error {
	for _, lvl := range c.levels {
		if err := lvl.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCatalog returns the 20 built-in stories: seven with three cards,
// seven with four and six with five.
func DefaultCatalog() *Catalog {
	return NewCatalog(Themes())
}

// Themes returns a fresh copy of the built-in stories.
func Themes() []LevelDefinition {
	return []LevelDefinition{
		{Theme: "flower", Steps: []string{"seed", "sprout", "flower"},
			Labels:       []string{"Seed", "Sprout", "Bloom"},
			AccentColors: []Color{0x8B4513, 0x32CD32, 0xFF69B4}},
		{Theme: "butterfly", Steps: []string{"caterpillar", "cocoon", "butterfly"},
			Labels:       []string{"Caterpillar", "Cocoon", "Butterfly"},
			AccentColors: []Color{0x32CD32, 0xCD853F, 0xFF69B4}},
		{Theme: "chicken", Steps: []string{"egg", "chick", "chicken"},
			Labels:       []string{"Egg", "Chick", "Hen"},
			AccentColors: []Color{0xFFFACD, 0xFFD700, 0xFF6347}},
		{Theme: "frog", Steps: []string{"tadpole_egg", "tadpole", "frog"},
			Labels:       []string{"Spawn", "Tadpole", "Frog"},
			AccentColors: []Color{0x87CEEB, 0x90EE90, 0x32CD32}},
		{Theme: "day", Steps: []string{"sunrise", "sun", "sunset"},
			Labels:       []string{"Sunrise", "Noon", "Sunset"},
			AccentColors: []Color{0xFFB6C1, 0xFFD700, 0xFF6347}},
		{Theme: "rain", Steps: []string{"cloud", "rain", "rainbow"},
			Labels:       []string{"Cloud", "Rain", "Rainbow"},
			AccentColors: []Color{0x808080, 0x4169E1, 0xFF69B4}},
		{Theme: "cake", Steps: []string{"ingredients", "baking", "cake"},
			Labels:       []string{"Mix", "Bake", "Cake"},
			AccentColors: []Color{0xDEB887, 0xFFD700, 0xFF69B4}},

		{Theme: "tree", Steps: []string{"seed2", "sapling", "small_tree", "big_tree"},
			Labels:       []string{"Seed", "Sapling", "Young tree", "Big tree"},
			AccentColors: []Color{0x8B4513, 0x90EE90, 0x32CD32, 0x228B22}},
		{Theme: "snowman", Steps: []string{"snow", "ball1", "ball2", "snowman"},
			Labels:       []string{"Snow", "Snowball", "Stack", "Snowman"},
			AccentColors: []Color{0xE0E0E0, 0xF0F0F0, 0xFFFFFF, 0x87CEEB}},
		{Theme: "house", Steps: []string{"foundation", "walls", "roof", "house"},
			Labels:       []string{"Foundation", "Walls", "Roof", "House"},
			AccentColors: []Color{0x808080, 0xCD853F, 0x8B0000, 0xFFD700}},
		{Theme: "moon", Steps: []string{"new_moon", "crescent", "half", "full_moon"},
			Labels:       []string{"New moon", "Crescent", "Half moon", "Full moon"},
			AccentColors: []Color{0x2F4F4F, 0x696969, 0xC0C0C0, 0xFFFFE0}},
		{Theme: "apple", Steps: []string{"blossom", "small_apple", "green_apple", "red_apple"},
			Labels:       []string{"Blossom", "Fruitlet", "Green apple", "Red apple"},
			AccentColors: []Color{0xFFB6C1, 0x90EE90, 0x32CD32, 0xFF0000}},
		{Theme: "bread", Steps: []string{"wheat", "flour", "dough", "bread"},
			Labels:       []string{"Wheat", "Flour", "Dough", "Bread"},
			AccentColors: []Color{0xDAA520, 0xFFFACD, 0xF5DEB3, 0xCD853F}},
		{Theme: "painting", Steps: []string{"canvas", "sketch", "color", "art"},
			Labels:       []string{"Canvas", "Sketch", "Paint", "Artwork"},
			AccentColors: []Color{0xFFFFFF, 0x808080, 0x4169E1, 0xFF69B4}},

		{Theme: "star_life", Steps: []string{"nebula", "protostar", "star", "red_giant", "supernova"},
			Labels:       []string{"Nebula", "Protostar", "Star", "Red giant", "Supernova"},
			AccentColors: []Color{0x9370DB, 0xFFD700, 0xFFFF00, 0xFF4500, 0x00BFFF}},
		{Theme: "water_cycle", Steps: []string{"ocean", "evaporate", "cloud2", "rain2", "river"},
			Labels:       []string{"Ocean", "Evaporate", "Cloud", "Rain", "River"},
			AccentColors: []Color{0x4169E1, 0x87CEEB, 0xE0E0E0, 0x1E90FF, 0x00CED1}},
		{Theme: "caterpillar_full", Steps: []string{"egg2", "tiny_cat", "big_cat", "pupa", "moth"},
			Labels:       []string{"Egg", "Larva", "Grown", "Pupa", "Moth"},
			AccentColors: []Color{0xFFFFE0, 0x90EE90, 0x32CD32, 0x8B4513, 0xDDA0DD}},
		{Theme: "seasons", Steps: []string{"spring", "summer", "autumn", "winter", "spring2"},
			Labels:       []string{"Spring", "Summer", "Autumn", "Winter", "Spring again"},
			AccentColors: []Color{0xFF69B4, 0x32CD32, 0xFF8C00, 0x87CEEB, 0xFFB6C1}},
		{Theme: "rocket", Steps: []string{"blueprint", "building", "launch", "space", "planet"},
			Labels:       []string{"Blueprint", "Build", "Launch", "Space", "Planet"},
			AccentColors: []Color{0x4169E1, 0x808080, 0xFF4500, 0x000080, 0xFF6347}},
		{Theme: "ice_cream", Steps: []string{"milk", "mixing", "freezing", "cone", "sundae"},
			Labels:       []string{"Milk", "Mix", "Freeze", "Cone", "Ice cream"},
			AccentColors: []Color{0xFFFFFF, 0xFFE4B5, 0x87CEEB, 0xDEB887, 0xFF69B4}},
	}
}

// Geometry is the fan-out of one row of slots or cards.
type Geometry struct {
	Width   float64
	Spacing float64
}

// SlotGeometry returns the slot size and gap for a level with count cards.
func SlotGeometry(count int) Geometry {
	switch {
	case count <= 3:
		return Geometry{Width: 180, Spacing: 50}
	case count == 4:
		return Geometry{Width: 160, Spacing: 30}
	default:
		return Geometry{Width: 140, Spacing: 20}
	}
}

// CardGeometry returns the card size and gap for a level with count cards.
func CardGeometry(count int) Geometry {
	switch {
	case count <= 3:
		return Geometry{Width: 160, Spacing: 40}
	case count == 4:
		return Geometry{Width: 140, Spacing: 25}
	default:
		return Geometry{Width: 120, Spacing: 15}
	}
}

// Row returns count centre points, horizontally centred in the world at y.
func (g Geometry) Row(count int, y float64) []puzzle.Point {
	total := g.Width*float64(count) + g.Spacing*float64(count-1)
	startX := (WorldWidth-total)/2 + g.Width/2

	pts := make([]puzzle.Point, count)
	for i := range pts {
		pts[i] = puzzle.Pt(startX+float64(i)*(g.Width+g.Spacing), y)
	}
	return pts
}
