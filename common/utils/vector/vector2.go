package vector

import (
	"math"
	"strconv"

	"github.com/marsyard/marsyard/common/utils/number"
)

// Vector2 is a point or direction on the horizontal plane of the terrain;
// x runs east, z runs south (the renderer's ground plane axes).
type Vector2 struct {
	x float64
	z float64
}

func MakeVector2(x float64, z float64) Vector2 {
	return Vector2{x, z}
}

// Returns a unit vector pointing at the given angle, measured in radians
// from the +x axis, counter-clockwise when seen from above.
func MakeVector2FromAngle(radians float64) Vector2 {
	return MakeVector2(
		math.Cos(radians),
		math.Sin(radians),
	)
}

func MakeNullVector2() Vector2 {
	return MakeVector2(0, 0)
}

func (v Vector2) Get() (float64, float64) {
	return v.x, v.z
}

func (v Vector2) GetX() float64 {
	return v.x
}

func (v Vector2) GetZ() float64 {
	return v.z
}

var floatformat = byte('f')

func (v Vector2) MarshalJSON() ([]byte, error) {
	b := []byte{'['}
	b = strconv.AppendFloat(b, v.x, floatformat, 4, 64)
	b = append(b, byte(','))
	b = strconv.AppendFloat(b, v.z, floatformat, 4, 64)
	return append(b, byte(']')), nil
}

func (a Vector2) Add(b Vector2) Vector2 {
	a.x += b.x
	a.z += b.z
	return a
}

func (a Vector2) Sub(b Vector2) Vector2 {
	a.x -= b.x
	a.z -= b.z
	return a
}

func (a Vector2) MultScalar(f float64) Vector2 {
	a.x *= f
	a.z *= f
	return a
}

func (a Vector2) DivScalar(f float64) Vector2 {
	a.x /= f
	a.z /= f
	return a
}

func (a Vector2) Mag() float64 {
	return math.Sqrt(a.MagSq())
}

func (a Vector2) MagSq() float64 {
	return (a.x*a.x + a.z*a.z)
}

func (a Vector2) SetMag(mag float64) Vector2 {
	return a.Normalize().MultScalar(mag)
}

// Normalize returns a unit-length copy; the null vector is returned
// unchanged, so callers must guard against it when a heading is required.
func (a Vector2) Normalize() Vector2 {
	mag := a.Mag()
	if mag > 0 {
		return a.DivScalar(mag)
	}
	return a
}

func (a Vector2) Limit(max float64) Vector2 {
	mSq := a.MagSq()

	if mSq > max*max {
		return a.Normalize().MultScalar(max)
	}

	return a
}

// Angle of the vector in radians from the +x axis, in (-Pi, Pi].
func (a Vector2) Angle() float64 {
	if a.x == 0 && a.z == 0 {
		return 0
	}

	return math.Atan2(a.z, a.x)
}

// Rotate returns the vector rotated by the given angle, counter-clockwise
// when seen from above.
func (a Vector2) Rotate(radians float64) Vector2 {
	cos := math.Cos(radians)
	sin := math.Sin(radians)

	return MakeVector2(
		a.x*cos-a.z*sin,
		a.x*sin+a.z*cos,
	)
}

func (a Vector2) OrthogonalClockwise() Vector2 {
	return MakeVector2(a.z, -a.x)
}

func (a Vector2) Dot(v Vector2) float64 {
	return a.x*v.x + a.z*v.z
}

func (a Vector2) DistanceTo(b Vector2) float64 {
	return b.Sub(a).Mag()
}

func (a Vector2) IsNull() bool {
	return number.IsZero(a.x) && number.IsZero(a.z)
}

func (a Vector2) Equals(b Vector2) bool {
	return b.Sub(a).IsNull()
}

func (a Vector2) String() string {
	return "<Vector2(" + number.FloatToStr(a.x, 5) + ", " + number.FloatToStr(a.z, 5) + ")>"
}

func (a Vector2) ToFloatArray() [2]float64 {
	return [2]float64{a.GetX(), a.GetZ()}
}
