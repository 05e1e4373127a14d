package domain

// PlanID identifies a pricing tier. The set is closed.
type PlanID string

const (
	PlanStarter  PlanID = "starter"
	PlanPro      PlanID = "pro"
	PlanBusiness PlanID = "business"
)

// PlanIDs lists every pricing tier in display order.
func PlanIDs() []PlanID {
	return []PlanID{PlanStarter, PlanPro, PlanBusiness}
}

// WebsiteConfig is the singleton record describing site branding and layout.
// Admin saves replace it wholesale; there is no partial-field merge.
type WebsiteConfig struct {
	SiteName         string            `json:"site_name"`
	LogoURL          string            `json:"logo_url"`
	PrimaryColor     string            `json:"primary_color"`
	PromoText        string            `json:"promo_text"`
	ShowPromoBanner  bool              `json:"show_promo_banner"`
	LayoutStyle      string            `json:"layout_style"`
	HeroAlignment    string            `json:"hero_alignment"`
	ShowTestimonials bool              `json:"show_testimonials"`
	StripeLinks      map[PlanID]string `json:"stripe_links"`
}

// NormalizeStripeLinks guarantees every tier key exists so clients never see a
// broken link, only an empty value they render as unavailable.
func (c *WebsiteConfig) NormalizeStripeLinks() {
	if c.StripeLinks == nil {
		c.StripeLinks = make(map[PlanID]string, 3)
	}
	for _, id := range PlanIDs() {
		if _, ok := c.StripeLinks[id]; !ok {
			c.StripeLinks[id] = ""
		}
	}
}

// DefaultWebsiteConfig returns the first-boot branding used whenever the
// backing store is unavailable or has no saved record yet.
func DefaultWebsiteConfig() WebsiteConfig {
	cfg := WebsiteConfig{
		SiteName:         "StyleMorph AI",
		LogoURL:          "",
		PrimaryColor:     "#4f46e5",
		PromoText:        "Launch offer: 50 free generations for new studios.",
		ShowPromoBanner:  true,
		LayoutStyle:      "modern",
		HeroAlignment:    "center",
		ShowTestimonials: true,
	}
	cfg.NormalizeStripeLinks()
	return cfg
}

// PresetGarment is a curated garment shown on the tool page.
type PresetGarment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Testimonial is static marketing copy rendered on the landing page.
type Testimonial struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Text string `json:"text"`
}

// Plan describes a pricing tier offered on the pricing page.
type Plan struct {
	ID          PlanID `json:"id"`
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Credits     int    `json:"credits"`
}

// PresetGarments returns the built-in garment gallery.
func PresetGarments() []PresetGarment {
	return []PresetGarment{
		{ID: "g1", Name: "Premium White Tee", URL: "https://images.unsplash.com/photo-1521572267360-ee0c2909d518?auto=format&fit=crop&q=80&w=400"},
		{ID: "g2", Name: "Black Hoodie", URL: "https://images.unsplash.com/photo-1556821840-3a63f95609a7?auto=format&fit=crop&q=80&w=400"},
		{ID: "g3", Name: "Flannel Shirt", URL: "https://images.unsplash.com/photo-1588359348347-9bc6cbb6cf97?auto=format&fit=crop&q=80&w=400"},
		{ID: "g4", Name: "Denim Jacket", URL: "https://images.unsplash.com/photo-1576905341935-4ef2443449c0?auto=format&fit=crop&q=80&w=400"},
	}
}

// Testimonials returns the built-in landing page quotes.
func Testimonials() []Testimonial {
	return []Testimonial{
		{Name: "Alex Rivera", Role: "E-com Founder", Text: "Saved us thousands in photoshoot costs. The realism is uncanny."},
		{Name: "Sarah Chen", Role: "Fashion Designer", Text: "Perfect for rapid prototyping of patterns and fits."},
		{Name: "Jordan Smith", Role: "Content Creator", Text: "Finally an AI tool that actually keeps the person's face recognizable."},
	}
}

// Plans returns the pricing catalog used by both the pricing page and the
// payment intent endpoint.
func Plans() []Plan {
	return []Plan{
		{ID: PlanStarter, Name: "Starter", AmountCents: 900, Currency: "usd", Credits: 50},
		{ID: PlanPro, Name: "Pro", AmountCents: 2900, Currency: "usd", Credits: 250},
		{ID: PlanBusiness, Name: "Business", AmountCents: 9900, Currency: "usd", Credits: 1200},
	}
}

// PlanByID looks up a tier; ok is false for identifiers outside the closed set.
func PlanByID(id PlanID) (Plan, bool) {
	for _, p := range Plans() {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
