package tryon

import "server/internal/domain"

// Engine is the strategy describing one generative model variant. Selecting
// the engine fixes the model identifier, whether free-text creative direction
// is honored, and whether an explicit credential must back the call.
type Engine struct {
	Kind                    domain.EngineKind
	Model                   string
	HonorsCreativeDirection bool
	RequiresCredential      bool
	// ImageSize is an auxiliary request hint, never embedded in instruction text.
	ImageSize string
}

var (
	standardEngine = Engine{
		Kind:  domain.EngineStandard,
		Model: "gemini-2.5-flash-image",
	}
	proEngine = Engine{
		Kind:                    domain.EnginePro,
		Model:                   "gemini-3-pro-image-preview",
		HonorsCreativeDirection: true,
		RequiresCredential:      true,
		ImageSize:               "1K",
	}
)

// EngineFor maps the config enum to its strategy. Unknown or empty values
// fall back to the standard engine.
func EngineFor(kind domain.EngineKind) Engine {
	if kind == domain.EnginePro {
		return proEngine
	}
	return standardEngine
}
