package kinematics

import "math"

// landingTolerance absorbs rounding of y at the landing instant, scaled to the heights involved.
func landingTolerance(h0, hf float64) float64 {
	return 1e-9 * math.Max(1, math.Max(math.Abs(h0), math.Abs(hf)))
}

// SampleTrajectory evaluates n evenly spaced instants over [0, totalTime], both ends
// included, and keeps those at or above hf. The launch instant is always kept; a
// landing y that misses hf only by rounding is snapped to hf.
// The result is empty (not nil) when totalTime <= 0.
func SampleTrajectory(v0x, v0y, h0, hf, totalTime float64, n int) []TrajectorySample {
	samples := []TrajectorySample{}
	if totalTime <= 0 || n < 1 {
		return samples
	}

	tol := landingTolerance(h0, hf)
	for i := 0; i < n; i++ {
		var t float64
		switch {
		case i == 0:
			t = 0
		case i == n-1:
			t = totalTime
		default:
			t = totalTime * float64(i) / float64(n-1)
		}

		y := h0 + v0y*t - 0.5*Gravity*t*t
		if i > 0 && y < hf {
			if hf-y > tol {
				continue
			}
			y = hf
		}

		samples = append(samples, sampleAt(t, v0x*t, y, v0x, v0y-Gravity*t, h0))
	}
	return samples
}

func sampleAt(t, x, y, vx, vy, h0 float64) TrajectorySample {
	speed := math.Hypot(vx, vy)
	ke := 0.5 * speed * speed
	pe := Gravity * (y - h0)
	return TrajectorySample{
		Time:            t,
		X:               x,
		Y:               y,
		Vx:              vx,
		Vy:              vy,
		Speed:           speed,
		KineticEnergy:   ke,
		PotentialEnergy: pe,
		TotalEnergy:     ke + pe,
	}
}
