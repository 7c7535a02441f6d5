package kinematics

import "math"

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// VelocityComponents splits the launch speed into horizontal and vertical parts.
func VelocityComponents(v0, angleDeg float64) (v0x, v0y float64) {
	theta := radians(angleDeg)
	return v0 * math.Cos(theta), v0 * math.Sin(theta)
}

// MaxHeight returns the apex height and the time it is reached.
// For a downward launch (v0y <= 0) the time is not positive and the height is the
// apex of the extended parabola, not clamped to h0.
func MaxHeight(v0y, h0 float64) (height, t float64) {
	t = v0y / Gravity
	height = h0 + v0y*t - 0.5*Gravity*t*t
	return height, t
}

// FlightTime returns the later root of 0.5·g·t² − v0y·t − (h0−hf) = 0.
// It returns 0 when hf is never reached, including when both roots lie before launch.
func FlightTime(v0y, h0, hf float64) float64 {
	a := 0.5 * Gravity
	b := -v0y
	c := -(h0 - hf)

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0
	}

	// a > 0, so the + root is the larger one.
	t := (-b + math.Sqrt(disc)) / (2 * a)
	if t <= 0 {
		return 0
	}
	return t
}

// Range is the horizontal distance covered during the flight.
func Range(v0x, totalTime float64) float64 {
	if totalTime <= 0 {
		return 0
	}
	return v0x * totalTime
}

// ImpactVelocity returns the speed and signed angle (negative means descending)
// at the landing instant. Both are zero when there is no flight.
func ImpactVelocity(v0x, v0y, totalTime float64) (speed, angleDeg float64) {
	if totalTime <= 0 {
		return 0, 0
	}
	vy := v0y - Gravity*totalTime
	return math.Hypot(v0x, vy), degrees(math.Atan2(vy, v0x))
}

// Simulate evaluates the launch with DefaultSamples trajectory instants.
func Simulate(p LaunchParameters) (MotionResult, error) {
	return SimulateSamples(p, DefaultSamples)
}

// SimulateSamples evaluates the launch. The steps run in a fixed order because each
// consumes the outputs of the previous ones.
func SimulateSamples(p LaunchParameters, samples int) (MotionResult, error) {
	if err := p.Validate(); err != nil {
		return MotionResult{}, err
	}
	if samples < 1 {
		return MotionResult{}, &InputError{Field: "samples", Value: float64(samples), Reason: "must be at least 1"}
	}

	v0x, v0y := VelocityComponents(p.V0, p.AngleDeg)
	maxHeight, tMax := MaxHeight(v0y, p.H0)
	total := FlightTime(v0y, p.H0, p.Hf)
	distance := Range(v0x, total)
	speed, angle := ImpactVelocity(v0x, v0y, total)
	trajectory := SampleTrajectory(v0x, v0y, p.H0, p.Hf, total, samples)

	return MotionResult{
		V0x:             v0x,
		V0y:             v0y,
		MaxHeight:       maxHeight,
		TimeToMaxHeight: tMax,
		TotalTime:       total,
		Range:           distance,
		ImpactVelocity:  speed,
		ImpactAngleDeg:  angle,
		Trajectory:      trajectory,
	}, nil
}
