package trigo

import (
	"math"
)

// FullCircleAngleToSignedHalfCircleAngle maps an angle in [0, 2*Pi) to the
// equivalent angle in (-Pi, Pi].
func FullCircleAngleToSignedHalfCircleAngle(rad float64) float64 {
	if rad > math.Pi {
		rad -= math.Pi * 2
	} else if rad < -math.Pi {
		rad += math.Pi * 2
	}

	return rad
}

// SignedAngularDistance returns the shortest signed rotation taking `from`
// to `to`, normalized to (-Pi, Pi]. Robust at the +-Pi boundary.
func SignedAngularDistance(from float64, to float64) float64 {
	diff := math.Mod(to-from, math.Pi*2)

	if diff > math.Pi {
		diff -= math.Pi * 2
	} else if diff <= -math.Pi {
		diff += math.Pi * 2
	}

	return diff
}
