package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"server/internal/domain"
	"server/internal/middleware"
)

func historyRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	return req.WithContext(middleware.ContextWithSession(req.Context(), &middleware.TokenClaims{
		Sub: userID, Role: domain.RoleUser,
	}))
}

func TestHistoryReturnsOwnRecordsOnly(t *testing.T) {
	store := &fakeHistoryStore{}
	store.AppendHistory(context.Background(), domain.GenerationResult{UserID: "u1", ResultImageURL: "data:image/png;base64,QQ==", CreatedAt: time.Now()})
	store.AppendHistory(context.Background(), domain.GenerationResult{UserID: "u2", ResultImageURL: "data:image/png;base64,Qg==", CreatedAt: time.Now()})
	app := newTestApp(store, nil, nil, nil)

	rec := httptest.NewRecorder()
	app.History(rec, historyRequest("u1"))

	var body struct {
		Items    []domain.GenerationResult `json:"items"`
		Degraded bool                      `json:"degraded"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].UserID != "u1" || body.Degraded {
		t.Fatalf("body = %+v", body)
	}
}

func TestHistoryDegradesToEmptyList(t *testing.T) {
	app := newTestApp(&fakeHistoryStore{unavailable: true}, nil, nil, nil)

	rec := httptest.NewRecorder()
	app.History(rec, historyRequest("u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Items    []domain.GenerationResult `json:"items"`
		Degraded bool                      `json:"degraded"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Items == nil || len(body.Items) != 0 || !body.Degraded {
		t.Fatalf("body = %+v", body)
	}
}
