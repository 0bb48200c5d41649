package types

// TerrainHeightProvider resolves world (x, z) coordinates to an elevation.
// Implementations return ~0 for unresolved terrain data; the simulation
// applies its own fallback height in that case.
type TerrainHeightProvider interface {
	GetHeightAtPosition(x float64, z float64) float64
	GetTerrainDimensions() (width float64, height float64)
}

// RockPoint is a surveyed point of interest on the terrain.
type RockPoint struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// RockProvider answers nearest-rock queries for the findRocks behavior.
type RockProvider interface {
	NearestRock(x float64, z float64, within float64) (RockPoint, bool)
}
