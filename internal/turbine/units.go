package turbine

import "math"

const pi = math.Pi

const (
	rpmToRadSec = 2.0 * pi / 60.0
	degToRad    = pi / 180.0
)

func RPMToRadSec(rpm float64) float64 { return rpm * rpmToRadSec }

func RadSecToRPM(w float64) float64 { return w / rpmToRadSec }

func DegToRad(deg float64) float64 { return deg * degToRad }

func RadToDeg(rad float64) float64 { return rad / degToRad }
