package domain

import (
	"strings"
	"time"
)

// FitType describes how the swapped torso garment should sit on the subject.
type FitType string

const (
	FitSlim    FitType = "slim"
	FitRegular FitType = "regular"
	FitLoose   FitType = "loose"
)

// SleeveLength applies to the top garment only.
type SleeveLength string

const (
	SleeveShort      SleeveLength = "short"
	SleeveLong       SleeveLength = "long"
	SleeveSleeveless SleeveLength = "sleeveless"
)

// GarmentCategory is an independent region of the subject image eligible for swap.
type GarmentCategory string

const (
	CategoryTop       GarmentCategory = "top"
	CategoryBottom    GarmentCategory = "bottom"
	CategoryShoes     GarmentCategory = "shoes"
	CategoryHeadwear  GarmentCategory = "headwear"
	CategoryAccessory GarmentCategory = "accessory"
)

// EngineKind selects which generative model variant services a request.
type EngineKind string

const (
	EngineStandard EngineKind = "standard"
	EnginePro      EngineKind = "pro"
)

// GenerationConfig carries the style parameters for one swap request.
type GenerationConfig struct {
	Fit              FitType           `json:"fit"`
	Sleeve           SleeveLength      `json:"sleeve"`
	Category         []GarmentCategory `json:"category"`
	TargetColor      string            `json:"target_color,omitempty"`
	BackgroundPrompt string            `json:"background_prompt,omitempty"`
	Realism          float64           `json:"realism"`
	ColorCorrection  bool              `json:"color_correction"`
	CustomPrompt     string            `json:"custom_prompt,omitempty"`
	Engine           EngineKind        `json:"engine"`
}

// Validate enforces the caller-side contract before any external call is made.
// The request builder itself assumes a valid config.
func (c GenerationConfig) Validate() error {
	if len(c.Category) == 0 {
		return ErrValidation
	}
	for _, cat := range c.Category {
		switch cat {
		case CategoryTop, CategoryBottom, CategoryShoes, CategoryHeadwear, CategoryAccessory:
		default:
			return ErrValidation
		}
	}
	switch c.Engine {
	case EngineStandard, EnginePro, "":
	default:
		return ErrValidation
	}
	return nil
}

// HasCategory reports whether the given slot is selected.
func (c GenerationConfig) HasCategory(cat GarmentCategory) bool {
	for _, v := range c.Category {
		if v == cat {
			return true
		}
	}
	return false
}

// CategoryList renders the active slots as a comma separated phrase for prompts.
func (c GenerationConfig) CategoryList() string {
	names := make([]string, 0, len(c.Category))
	for _, v := range c.Category {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}

// GenerationResult is the persisted record of a successful swap. It is never
// mutated after creation.
type GenerationResult struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	PersonImageURL  string           `json:"person_image_url"`
	GarmentImageURL string           `json:"garment_image_url"`
	ResultImageURL  string           `json:"result_image_url"`
	Config          GenerationConfig `json:"config"`
	CreatedAt       time.Time        `json:"created_at"`
}
