package tryon

import (
	"fmt"
	"strings"

	"server/internal/domain"
)

// BuildInstruction deterministically renders the instruction block sent to the
// generation endpoint. Section order is fixed: active categories, swap rules,
// color override, background directive, realism hint, then creative direction
// appended last so user free text can override the structural defaults. Image
// shape hints never appear here; they travel as request configuration.
func BuildInstruction(cfg domain.GenerationConfig, eng Engine) string {
	active := cfg.CategoryList()
	parts := []string{
		"Perform a professional high-fidelity virtual garment swap.",
		"Image 1 is the subject: keep their face, skin tone, pose and identity exactly.",
		"Image 2 contains the target items.",
		"Active categories: " + active + ".",
	}

	for _, cat := range cfg.Category {
		switch cat {
		case domain.CategoryTop:
			rule := fmt.Sprintf("Replace the upper garment with the top from Image 2, fit %s, sleeve %s.", cfg.Fit, cfg.Sleeve)
			parts = append(parts, rule)
		case domain.CategoryBottom:
			parts = append(parts, "Replace the lower garment with the bottom from Image 2.")
		case domain.CategoryShoes:
			parts = append(parts, "Replace the footwear with the shoes from Image 2.")
		case domain.CategoryHeadwear:
			parts = append(parts, "Place the headwear from Image 2 naturally on the head.")
		case domain.CategoryAccessory:
			parts = append(parts, "Integrate the accessory from Image 2 into the pose naturally.")
		}
	}

	if color := strings.TrimSpace(cfg.TargetColor); color != "" {
		parts = append(parts, "Force all swapped items to be "+color+".")
	} else {
		parts = append(parts, "Match the colors of Image 2 exactly.")
	}

	if background := strings.TrimSpace(cfg.BackgroundPrompt); background != "" {
		parts = append(parts, "Replace the entire background with: "+background+".")
	} else {
		parts = append(parts, "Preserve the background from Image 1.")
	}

	parts = append(parts, fmt.Sprintf("Realism threshold: %.0f%%.", cfg.Realism*100))
	if cfg.ColorCorrection {
		parts = append(parts, "Harmonize lighting and color of the swapped items with the scene.")
	}
	parts = append(parts, "Output only the final synthesized image.")

	if eng.HonorsCreativeDirection {
		if direction := strings.TrimSpace(cfg.CustomPrompt); direction != "" {
			parts = append(parts, "Artistic direction: "+direction)
		}
	}

	return strings.Join(parts, " ")
}
