package number

import (
	"math"
	"strconv"
)

func DegreeToRadian(degree float64) float64 {
	return degree * math.Pi / 180
}

func RadianToDegree(radian float64) float64 {
	return radian * 180 / math.Pi
}

func Clamp(val float64, min float64, max float64) float64 {
	if val < min {
		return min
	}

	if val > max {
		return max
	}

	return val
}

func ToFixed(val float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(val*pow) / pow
}

func FloatToStr(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

var epsilon float64 = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < epsilon
}
