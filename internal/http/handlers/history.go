package handlers

import (
	"net/http"
)

// History returns the caller's past generations, newest first. When the
// backing store is unavailable the list is empty and flagged degraded rather
// than an error, so the tool page keeps working.
func (a *App) History(w http.ResponseWriter, r *http.Request) {
	claims := a.session(r)
	if claims == nil {
		a.error(w, http.StatusUnauthorized, "login_required", "missing user context")
		return
	}
	items := a.Store.QueryHistory(r.Context(), claims.Sub)
	a.json(w, http.StatusOK, map[string]any{
		"items":    items,
		"degraded": a.Store.Unavailable(),
	})
}
