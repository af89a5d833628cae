package viewer

import (
	"testing"

	"github.com/Faultbox/midgard-shadow/internal/engine/input"
	"github.com/Faultbox/midgard-shadow/internal/engine/shadow"
)

func TestSettingsApply(t *testing.T) {
	s := Settings{Shadow: shadow.DefaultConfig(shadow.VariantTwoPass)}

	want := []shadow.Technique{shadow.TechniqueNone, shadow.TechniqueProjection, shadow.TechniqueVolume}
	for _, w := range want {
		if !s.Apply(input.ActionCycleTechnique) {
			t.Fatal("technique change not reported")
		}
		if s.Shadow.Technique != w {
			t.Errorf("technique = %v, want %v", s.Shadow.Technique, w)
		}
	}

	if !s.Apply(input.ActionCyclePolicy) || s.Shadow.Policy != shadow.FirstMatch {
		t.Errorf("policy = %v, want first-match", s.Shadow.Policy)
	}
	if !s.Apply(input.ActionToggleBackend) || s.Shadow.Variant != shadow.VariantPipeline {
		t.Errorf("variant = %v, want vk", s.Shadow.Variant)
	}

	if s.Apply(input.ActionToggleMirror) {
		t.Error("mirror does not change the shadow config")
	}
	if !s.Mirror {
		t.Error("mirror not toggled")
	}
	if s.Apply(input.ActionNone) {
		t.Error("no-op reported a change")
	}
}
