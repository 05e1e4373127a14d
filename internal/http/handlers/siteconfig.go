package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"server/internal/domain"
)

// SiteConfig serves the active website configuration. Public: the SPA needs
// it before any sign-in. The manager's in-memory state is authoritative, so a
// load immediately after an admin save sees the new branding even while the
// persist is still in flight.
func (a *App) SiteConfig(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Site.Current())
}

// UpdateSiteConfig replaces the configuration wholesale. The new state is
// live immediately; persistence happens in the background and a failed save
// never rolls the change back.
func (a *App) UpdateSiteConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.WebsiteConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(cfg.SiteName) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "site_name required")
		return
	}
	a.Site.Update(cfg)
	a.json(w, http.StatusOK, map[string]any{
		"config":    a.Site.Current(),
		"persisted": !a.Store.Unavailable(),
	})
}

// SiteContent serves the static marketing catalog rendered by the landing,
// tool and pricing pages.
func (a *App) SiteContent(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"preset_garments": domain.PresetGarments(),
		"testimonials":    domain.Testimonials(),
		"plans":           domain.Plans(),
	})
}
