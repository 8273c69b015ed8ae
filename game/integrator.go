// File: game/integrator.go
package game

// Integrate advances every moving entity by velocity*dt. It must run after
// collision resolution so a bounce takes effect before the ball moves on.
func Integrate(bodies []*Entity, dt float32) {
	for _, body := range bodies {
		if !body.Moves() {
			continue
		}
		body.Position = body.Position.Add(body.Velocity.Scale(dt))
	}
}
