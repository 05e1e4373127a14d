package tryon

import (
	"strings"
	"testing"

	"server/internal/domain"
)

func proConfig() domain.GenerationConfig {
	return domain.GenerationConfig{
		Fit:              domain.FitSlim,
		Sleeve:           domain.SleeveLong,
		Category:         []domain.GarmentCategory{domain.CategoryTop, domain.CategoryShoes},
		TargetColor:      "emerald green",
		BackgroundPrompt: "a rooftop at sunset",
		Realism:          0.8,
		ColorCorrection:  true,
		CustomPrompt:     "shot on 35mm film",
		Engine:           domain.EnginePro,
	}
}

func TestBuildInstructionSectionOrder(t *testing.T) {
	cfg := proConfig()
	got := BuildInstruction(cfg, EngineFor(cfg.Engine))

	categories := strings.Index(got, "Active categories: top, shoes.")
	background := strings.Index(got, "rooftop at sunset")
	direction := strings.Index(got, "Artistic direction: shot on 35mm film")

	if categories < 0 || background < 0 || direction < 0 {
		t.Fatalf("instruction missing sections: %s", got)
	}
	if !(categories < background && background < direction) {
		t.Fatalf("sections out of order (categories=%d background=%d direction=%d)", categories, background, direction)
	}
	if !strings.Contains(got, "fit slim, sleeve long") {
		t.Fatalf("top swap rule missing fit/sleeve: %s", got)
	}
	if !strings.Contains(got, "Realism threshold: 80%") {
		t.Fatalf("realism hint missing: %s", got)
	}
}

func TestBuildInstructionStandardIgnoresCreativeDirection(t *testing.T) {
	cfg := proConfig()
	cfg.Engine = domain.EngineStandard
	got := BuildInstruction(cfg, EngineFor(cfg.Engine))
	if strings.Contains(got, "shot on 35mm film") {
		t.Fatalf("standard engine must not honor custom prompt: %s", got)
	}
	if strings.Contains(got, "Artistic direction") {
		t.Fatalf("creative-direction section present for standard engine: %s", got)
	}
}

func TestBuildInstructionDefaultsPreserveScene(t *testing.T) {
	cfg := domain.GenerationConfig{
		Fit:      domain.FitRegular,
		Sleeve:   domain.SleeveShort,
		Category: []domain.GarmentCategory{domain.CategoryTop},
		Realism:  0.9,
		Engine:   domain.EngineStandard,
	}
	got := BuildInstruction(cfg, EngineFor(cfg.Engine))
	if !strings.Contains(got, "Preserve the background from Image 1.") {
		t.Fatalf("missing background preservation: %s", got)
	}
	if !strings.Contains(got, "Match the colors of Image 2 exactly.") {
		t.Fatalf("missing default color rule: %s", got)
	}
	if !strings.Contains(got, "top") {
		t.Fatalf("active category not mentioned: %s", got)
	}
	if strings.Contains(got, swapAspectRatio) {
		t.Fatalf("aspect ratio leaked into instruction text: %s", got)
	}
}

func TestEngineFor(t *testing.T) {
	std := EngineFor(domain.EngineStandard)
	if std.Model != "gemini-2.5-flash-image" || std.HonorsCreativeDirection || std.RequiresCredential {
		t.Fatalf("unexpected standard engine: %+v", std)
	}
	pro := EngineFor(domain.EnginePro)
	if pro.Model != "gemini-3-pro-image-preview" || !pro.HonorsCreativeDirection || !pro.RequiresCredential {
		t.Fatalf("unexpected pro engine: %+v", pro)
	}
	if EngineFor("").Kind != domain.EngineStandard {
		t.Fatal("empty engine should fall back to standard")
	}
}
