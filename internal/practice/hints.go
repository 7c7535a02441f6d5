package practice

import "fmt"

// Hint returns guidance for a wrongly answered question. Hints are fixed templates
// filled in with the launch inputs; they never reveal the solution.
func Hint(t QuestionType, v0, angle, h0 float64) string {
	switch t {
	case MaxHeight:
		return fmt.Sprintf(
			"Hint: Use H = h₀ + v₀y²/(2g). First decompose the velocity: v₀y = %g × sin(%g°). "+
				"Then apply the maximum height formula with g = 9.81 m/s².", v0, angle)
	case Range:
		return fmt.Sprintf(
			"Hint: Calculate the horizontal velocity v₀x = %g × cos(%g°). "+
				"Then multiply by the total flight time. Use the quadratic formula to find the time when y = 0.", v0, angle)
	case TotalTime:
		return fmt.Sprintf(
			"Hint: Use the vertical motion h = h₀ + v₀y·t − ½g·t². "+
				"Set h = 0 (ground level) and solve for t with the quadratic formula. Your h₀ = %gm.", h0)
	case ImpactVelocity:
		return fmt.Sprintf(
			"Hint: Find the velocity components at landing. vx stays constant = %g × cos(%g°). "+
				"vy changes: v₀y − g·t. Use Pythagoras: v = √(vx² + vy²).", v0, angle)
	default:
		return "Hint: Review the projectile motion formulas."
	}
}
