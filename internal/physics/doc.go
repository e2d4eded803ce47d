// Package physics implements the one-dimensional diffusion model.
//
// The pieces run in a fixed order:
//
//   - [NewGrid]: evenly spaced coordinates on [0, Lx)
//   - [Profiles]: named initial conditions ("step", "threshold")
//   - [StableTimeStep]: dt = 0.5*dx^2/D
//   - [Diffusion]: the explicit FTCS update with fixed end points
//
// # Example
//
//	g, _ := physics.NewGrid(300, 0.5)
//	c, _ := physics.NewProfile("step", g)
//	dt, _ := physics.StableTimeStep(g.Dx(), 100.0)
//	d, _ := physics.NewDiffusion(100, g.Dx(), dt)
//	c = d.Run(c, 5000)
package physics
