// Package environment defines the lookups crews use to decide whether and
// how long they can work. Implementations live in infra/environment; tests
// substitute fixed-value fakes.
package environment

// DaylightService reports the available daylight hours for a timestep.
type DaylightService interface {
	Hours(timestep int) float64
}

// DeploymentGrid reports whether weather permits a survey at the given
// grid cell and timestep.
type DeploymentGrid interface {
	Deployable(lonIndex, latIndex, timestep int) bool
}

// DaylightFunc adapts a plain function to the DaylightService interface.
type DaylightFunc func(timestep int) float64

func (f DaylightFunc) Hours(timestep int) float64 { return f(timestep) }

// GridFunc adapts a plain function to the DeploymentGrid interface.
type GridFunc func(lonIndex, latIndex, timestep int) bool

func (f GridFunc) Deployable(lonIndex, latIndex, timestep int) bool {
	return f(lonIndex, latIndex, timestep)
}
