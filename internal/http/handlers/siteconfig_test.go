package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"server/internal/domain"
)

func TestSiteConfigServesDefaults(t *testing.T) {
	app := newTestApp(&fakeHistoryStore{}, nil, nil, nil)

	rec := httptest.NewRecorder()
	app.SiteConfig(rec, httptest.NewRequest(http.MethodGet, "/v1/site-config", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cfg domain.WebsiteConfig
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.SiteName != domain.DefaultWebsiteConfig().SiteName {
		t.Fatalf("SiteName = %q, want default", cfg.SiteName)
	}
	for _, plan := range domain.PlanIDs() {
		if _, ok := cfg.StripeLinks[plan]; !ok {
			t.Fatalf("missing stripe link key %q", plan)
		}
	}
}

func TestUpdateSiteConfigAppliesImmediately(t *testing.T) {
	app := newTestApp(&fakeHistoryStore{}, nil, nil, nil)

	body := `{"site_name":"Boutique","primary_color":"#112233","show_promo_banner":false}`
	rec := httptest.NewRecorder()
	app.UpdateSiteConfig(rec, httptest.NewRequest(http.MethodPut, "/v1/site-config", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	app.SiteConfig(rec, httptest.NewRequest(http.MethodGet, "/v1/site-config", nil))
	var cfg domain.WebsiteConfig
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.SiteName != "Boutique" || cfg.PrimaryColor != "#112233" || cfg.ShowPromoBanner {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestUpdateSiteConfigRequiresSiteName(t *testing.T) {
	app := newTestApp(&fakeHistoryStore{}, nil, nil, nil)

	rec := httptest.NewRecorder()
	app.UpdateSiteConfig(rec, httptest.NewRequest(http.MethodPut, "/v1/site-config", strings.NewReader(`{"site_name":" "}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSiteContentCatalog(t *testing.T) {
	app := newTestApp(&fakeHistoryStore{}, nil, nil, nil)

	rec := httptest.NewRecorder()
	app.SiteContent(rec, httptest.NewRequest(http.MethodGet, "/v1/site-content", nil))

	var body struct {
		PresetGarments []domain.PresetGarment `json:"preset_garments"`
		Testimonials   []domain.Testimonial   `json:"testimonials"`
		Plans          []domain.Plan          `json:"plans"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.PresetGarments) == 0 || len(body.Testimonials) == 0 || len(body.Plans) != 3 {
		t.Fatalf("catalog sizes = %d/%d/%d", len(body.PresetGarments), len(body.Testimonials), len(body.Plans))
	}
}
