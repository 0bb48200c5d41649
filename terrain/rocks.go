package terrain

import (
	"math/rand"

	"github.com/dhconnelly/rtreego"

	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils/vector"
)

// Rock is a static point of interest indexed for nearest-neighbor queries.
type Rock struct {
	Position vector.Vector2
	rect     *rtreego.Rect
}

func (rock *Rock) Bounds() *rtreego.Rect {
	return rock.rect
}

func makeRock(position vector.Vector2) *Rock {
	x, z := position.Get()
	rect, _ := rtreego.NewRect(rtreego.Point{x - 0.5, z - 0.5}, []float64{1, 1})

	return &Rock{
		Position: position,
		rect:     rect,
	}
}

// RockField owns the rocks scattered over the terrain, indexed in an R-tree.
type RockField struct {
	tree  *rtreego.Rtree
	rocks []*Rock
}

func NewRockField(positions []vector.Vector2) *RockField {
	field := &RockField{
		tree:  rtreego.NewTree(2, 25, 50),
		rocks: make([]*Rock, 0, len(positions)),
	}

	for _, position := range positions {
		rock := makeRock(position)
		field.rocks = append(field.rocks, rock)
		field.tree.Insert(rock)
	}

	return field
}

// NewRandomRockField scatters count rocks uniformly inside the terrain
// half-extents minus a margin, from a seeded source so a given world is
// reproducible.
func NewRandomRockField(count int, halfWidth float64, halfDepth float64, margin float64, seed int64) *RockField {
	rng := rand.New(rand.NewSource(seed))
	positions := make([]vector.Vector2, count)

	for i := 0; i < count; i++ {
		positions[i] = vector.MakeVector2(
			(rng.Float64()*2-1)*(halfWidth-margin),
			(rng.Float64()*2-1)*(halfDepth-margin),
		)
	}

	return NewRockField(positions)
}

func (field *RockField) Size() int {
	return len(field.rocks)
}

func (field *RockField) Rocks() []*Rock {
	return field.rocks
}

// NearestRock returns the rock closest to (x, z) if one lies within the
// given range.
func (field *RockField) NearestRock(x float64, z float64, within float64) (commontypes.RockPoint, bool) {
	if len(field.rocks) == 0 {
		return commontypes.RockPoint{}, false
	}

	nearest := field.tree.NearestNeighbor(rtreego.Point{x, z})
	if nearest == nil {
		return commontypes.RockPoint{}, false
	}

	rock := nearest.(*Rock)
	if rock.Position.DistanceTo(vector.MakeVector2(x, z)) > within {
		return commontypes.RockPoint{}, false
	}

	return commontypes.RockPoint{
		X: rock.Position.GetX(),
		Z: rock.Position.GetZ(),
	}, true
}
