package viewer

import (
	"github.com/Faultbox/midgard-shadow/internal/engine/input"
	"github.com/Faultbox/midgard-shadow/internal/engine/shadow"
)

// Settings are the shadow options the viewer can toggle at runtime.
type Settings struct {
	Shadow shadow.Config
	Mirror bool
}

// Apply performs a toggle action and reports whether the shadow configuration changed.
func (s *Settings) Apply(a input.Action) bool {
	switch a {
	case input.ActionCycleTechnique:
		s.Shadow.Technique = (s.Shadow.Technique + 1) % 3
	case input.ActionCyclePolicy:
		if s.Shadow.Policy == shadow.FirstMatch {
			s.Shadow.Policy = shadow.CountMatches
		} else {
			s.Shadow.Policy = shadow.FirstMatch
		}
	case input.ActionToggleBackend:
		if s.Shadow.Variant == shadow.VariantTwoPass {
			s.Shadow.Variant = shadow.VariantPipeline
		} else {
			s.Shadow.Variant = shadow.VariantTwoPass
		}
	case input.ActionToggleMirror:
		s.Mirror = !s.Mirror
		return false
	default:
		return false
	}
	return true
}
