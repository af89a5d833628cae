package shadow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTechnique is returned by ParseTechnique.
	ErrUnknownTechnique = errors.New("shadow: unknown technique")
	// ErrUnknownPolicy is returned by ParsePolicy.
	ErrUnknownPolicy = errors.New("shadow: unknown silhouette policy")
	// ErrUnknownVariant is returned by ParseVariant.
	ErrUnknownVariant = errors.New("shadow: unknown backend variant")
)

// Technique selects how entities cast shadows. The numeric values follow the classic
// r_shadows cvar.
type Technique int

const (
	TechniqueNone       Technique = 0
	TechniqueProjection Technique = 1
	TechniqueVolume     Technique = 2
)

// String returns the config spelling.
func (t Technique) String() string {
	switch t {
	case TechniqueNone:
		return "none"
	case TechniqueProjection:
		return "projection"
	case TechniqueVolume:
		return "volume"
	default:
		return fmt.Sprintf("Technique(%d)", int(t))
	}
}

// ParseTechnique accepts "none", "projection", "volume" or the numbers 0, 1, 2.
func ParseTechnique(s string) (Technique, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off", "0", "":
		return TechniqueNone, nil
	case "projection", "projective", "1":
		return TechniqueProjection, nil
	case "volume", "stencil", "2":
		return TechniqueVolume, nil
	default:
		return TechniqueNone, fmt.Errorf("%w: %q", ErrUnknownTechnique, s)
	}
}

// Variant names the backend flavour the volumes are submitted to.
type Variant int

const (
	// VariantTwoPass is the immediate-state backend: color writes masked, one
	// increment pass and one decrement pass.
	VariantTwoPass Variant = iota
	// VariantPipeline is the prebuilt pipeline backend, indexed by [pass][mirror].
	VariantPipeline
)

// String returns the config spelling.
func (v Variant) String() string {
	switch v {
	case VariantTwoPass:
		return "gl"
	case VariantPipeline:
		return "vk"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant accepts "gl" or "vk".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gl", "two-pass", "":
		return VariantTwoPass, nil
	case "vk", "pipeline":
		return VariantPipeline, nil
	default:
		return VariantTwoPass, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// DefaultPolicy returns the silhouette policy each variant was built around.
func (v Variant) DefaultPolicy() Policy {
	if v == VariantPipeline {
		return FirstMatch
	}
	return CountMatches
}
