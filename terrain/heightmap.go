package terrain

import (
	"image"
	"image/png"
	"math"
	"os"

	bettererrors "github.com/xtuc/better-errors"

	"github.com/marsyard/marsyard/common/utils/number"
)

// Heightmap resolves world (x, z) to an elevation by bilinear sampling of a
// grayscale heightmap image. The world plane is centered on the origin, so
// valid coordinates span [-width/2, width/2] x [-depth/2, depth/2].
type Heightmap struct {
	gray *image.Gray

	worldWidth float64
	worldDepth float64
	maxHeight  float64
}

func LoadHeightmapPNG(path string, worldWidth float64, worldDepth float64, maxHeight float64) (*Heightmap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, bettererrors.
			New("Could not open heightmap file").
			With(bettererrors.NewFromErr(err)).
			SetContext("path", path)
	}

	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, bettererrors.
			New("Could not decode heightmap PNG").
			With(bettererrors.NewFromErr(err)).
			SetContext("path", path)
	}

	return NewHeightmap(img, worldWidth, worldDepth, maxHeight), nil
}

func NewHeightmap(img image.Image, worldWidth float64, worldDepth float64, maxHeight float64) *Heightmap {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}

	return &Heightmap{
		gray:       gray,
		worldWidth: worldWidth,
		worldDepth: worldDepth,
		maxHeight:  maxHeight,
	}
}

func (h *Heightmap) GetTerrainDimensions() (float64, float64) {
	return h.worldWidth, h.worldDepth
}

func (h *Heightmap) GetHeightAtPosition(x float64, z float64) float64 {
	bounds := h.gray.Bounds()
	imgWidth := float64(bounds.Dx())
	imgHeight := float64(bounds.Dy())

	// world origin sits at the center of the image
	u := (x/h.worldWidth + 0.5) * (imgWidth - 1)
	v := (z/h.worldDepth + 0.5) * (imgHeight - 1)

	u = number.Clamp(u, 0, imgWidth-1)
	v = number.Clamp(v, 0, imgHeight-1)

	x0 := int(math.Floor(u))
	z0 := int(math.Floor(v))
	x1 := x0 + 1
	z1 := z0 + 1

	if x1 > bounds.Dx()-1 {
		x1 = x0
	}

	if z1 > bounds.Dy()-1 {
		z1 = z0
	}

	fx := u - float64(x0)
	fz := v - float64(z0)

	h00 := h.sample(x0, z0)
	h10 := h.sample(x1, z0)
	h01 := h.sample(x0, z1)
	h11 := h.sample(x1, z1)

	top := h00*(1-fx) + h10*fx
	bottom := h01*(1-fx) + h11*fx

	return (top*(1-fz) + bottom*fz) * h.maxHeight
}

// sample returns the normalized [0, 1] height of a heightmap pixel.
func (h *Heightmap) sample(x int, z int) float64 {
	bounds := h.gray.Bounds()
	return float64(h.gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+z).Y) / 255.0
}

// FlatTerrain is a trivial provider used before the heightmap is available
// and in tests; it reports a constant elevation everywhere.
type FlatTerrain struct {
	Width  float64
	Depth  float64
	Height float64
}

func (t FlatTerrain) GetTerrainDimensions() (float64, float64) {
	return t.Width, t.Depth
}

func (t FlatTerrain) GetHeightAtPosition(x float64, z float64) float64 {
	return t.Height
}
