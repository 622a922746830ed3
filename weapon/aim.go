package weapon

import "github.com/jakecoffman/cp"

// AimSampler turns the tracked aim point into viewport space for animation
// blending. It keeps no state between samples.
type AimSampler struct {
	aim       AimProvider
	projector Projector
}

func NewAimSampler(aim AimProvider, projector Projector) *AimSampler {
	return &AimSampler{aim: aim, projector: projector}
}

// Sample projects the current aim point. The second result is false when a
// collaborator is missing.
func (a *AimSampler) Sample() (cp.Vector, bool) {
	if a == nil || a.aim == nil || a.projector == nil {
		return cp.Vector{}, false
	}
	return a.projector.ScreenToViewport(a.aim.CurrentAimPosition()), true
}

// Provider returns the aim provider the sampler reads from.
func (a *AimSampler) Provider() AimProvider {
	if a == nil {
		return nil
	}
	return a.aim
}
