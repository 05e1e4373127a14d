package tryon

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/pkg/datauri"
)

// swapAspectRatio frames the result like a studio portrait. It is passed as
// request configuration only.
const swapAspectRatio = "3:4"

// Options controls how the swap builder is configured.
type Options struct {
	StandardAPIKey string
	ProAPIKey      string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
}

// Builder turns a (subject image, garment image, config) triple into a single
// generateContent call and extracts the produced image. It holds no mutable
// state across calls and performs exactly one external call per invocation.
type Builder struct {
	keys       map[domain.EngineKind]string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewBuilder constructs a Builder with sane defaults.
func NewBuilder(opts Options) *Builder {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	logger := opts.Logger
	if logger == nil {
		discard := infra.Logger(zerolog.New(io.Discard))
		logger = &discard
	}
	return &Builder{
		keys: map[domain.EngineKind]string{
			domain.EngineStandard: strings.TrimSpace(opts.StandardAPIKey),
			domain.EnginePro:      strings.TrimSpace(opts.ProAPIKey),
		},
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// PerformSwap sends the instruction and both images as ordered parts in one
// request and returns the first inline image of the response as a data URI.
// It assumes a config already validated by the caller.
func (b *Builder) PerformSwap(ctx context.Context, person, garment []byte, cfg domain.GenerationConfig) (string, error) {
	eng := EngineFor(cfg.Engine)
	instruction := BuildInstruction(cfg, eng)

	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{Text: instruction},
				{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString(person)}},
				{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString(garment)}},
			},
		}},
		GenerationConfig: &geminiGenerationConfig{
			ImageConfig: &geminiImageConfig{
				AspectRatio: swapAspectRatio,
				ImageSize:   eng.ImageSize,
			},
		},
	}

	var response geminiGenerateContentResponse
	if err := b.invoke(ctx, eng.Model, b.keys[eng.Kind], payload, &response); err != nil {
		var ae *apiError
		if errors.As(err, &ae) && ae.entityNotFound() && eng.RequiresCredential {
			return "", fmt.Errorf("%w: %s", domain.ErrMissingCredential, ae.Message)
		}
		b.logger.Error().Err(err).Str("model", eng.Model).Msg("tryon: swap call failed")
		return "", err
	}

	for _, candidate := range response.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			raw, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return "", fmt.Errorf("decode inline data: %w", err)
			}
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return datauri.Encode(mime, raw), nil
		}
	}

	return "", domain.ErrGenerationFailed
}
