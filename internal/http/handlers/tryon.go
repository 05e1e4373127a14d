package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"server/internal/domain"
	"server/pkg/datauri"
)

type tryonRequest struct {
	PersonImage  string                  `json:"person_image"`
	GarmentImage string                  `json:"garment_image"`
	Config       domain.GenerationConfig `json:"config"`
}

type tryonResponse struct {
	ID          string `json:"id,omitempty"`
	ResultImage string `json:"result_image"`
	Stale       bool   `json:"stale"`
	Persisted   bool   `json:"persisted"`
}

// Tryon runs one garment swap. Both images arrive as data URIs; the result is
// returned the same way. When a newer swap for the same user completes while
// this one is in flight, the finished result is reported stale and not
// recorded.
func (a *App) Tryon(w http.ResponseWriter, r *http.Request) {
	claims := a.session(r)
	if claims == nil {
		a.error(w, http.StatusUnauthorized, "login_required", "missing user context")
		return
	}

	var req tryonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	_, person, err := datauri.Decode(req.PersonImage)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "person_image must be a data URI")
		return
	}
	_, garment, err := datauri.Decode(req.GarmentImage)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "garment_image must be a data URI")
		return
	}
	if err := req.Config.Validate(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	token := a.seq.begin(claims.Sub)
	resultURI, err := a.Swapper.PerformSwap(r.Context(), person, garment, req.Config)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredential):
			a.error(w, http.StatusUnprocessableEntity, "missing_credential", err.Error())
		case errors.Is(err, domain.ErrGenerationFailed):
			a.error(w, http.StatusBadGateway, "generation_failed", "model returned no image")
		default:
			a.Logger.Error().Err(err).Str("user_id", claims.Sub).Msg("tryon: swap failed")
			a.error(w, http.StatusBadGateway, "generation_failed", "image generation failed")
		}
		return
	}

	if !a.seq.commit(claims.Sub, token) {
		a.json(w, http.StatusOK, tryonResponse{ResultImage: resultURI, Stale: true})
		return
	}

	id := a.Store.AppendHistory(r.Context(), domain.GenerationResult{
		UserID:          claims.Sub,
		PersonImageURL:  req.PersonImage,
		GarmentImageURL: req.GarmentImage,
		ResultImageURL:  resultURI,
		Config:          req.Config,
		CreatedAt:       time.Now(),
	})
	a.json(w, http.StatusOK, tryonResponse{ID: id, ResultImage: resultURI, Persisted: id != ""})
}
