package domain

import "time"

// MarketingBrief is the user-supplied description a page is generated from.
// Length limits count runes.
type MarketingBrief struct {
	BusinessName        string `binding:"required,max=100"  json:"businessName"`
	Website             string `json:"website,omitempty"`
	Industry            string `binding:"required"          json:"industry"`
	BusinessDescription string `binding:"required,max=1000" json:"businessDescription"`
	TargetAudience      string `json:"targetAudience,omitempty"`
	ProductServices     string `json:"productServices,omitempty"`
	UniqueSellingPoints string `json:"uniqueSellingPoints,omitempty"`
	CampaignGoals       string `json:"campaignGoals,omitempty"`
	LogoURL             string `json:"logoUrl,omitempty"`
}

// LandingPageContent is the generated copy for one page.
type LandingPageContent struct {
	Headline     string        `json:"headline"`
	Subheadline  string        `json:"subheadline"`
	HeroSection  HeroSection   `json:"heroSection"`
	Features     []Feature     `json:"features"`
	AboutSection AboutSection  `json:"aboutSection"`
	Testimonials []Testimonial `json:"testimonials"`
	CTASections  []CTASection  `json:"ctaSections"`
	Footer       Footer        `json:"footer"`
}

// HeroSection is the top banner.
type HeroSection struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"ctaText"`
}

// Feature is one selling point. Icon is a token such as "star".
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// AboutSection describes the business.
type AboutSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Testimonial is a customer quote. Rating is 1 to 5.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// CTASection is a call to action block.
type CTASection struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ButtonText string `json:"buttonText"`
}

// Footer closes the page.
type Footer struct {
	CompanyName string `json:"companyName"`
	Tagline     string `json:"tagline"`
}

// SavedLandingPage is a persisted page.
type SavedLandingPage struct {
	ID           string             `json:"id"`
	BusinessName string             `json:"businessName"`
	Industry     string             `json:"industry"`
	Content      LandingPageContent `json:"content"`
	Images       CategorizedImages  `json:"images"`
	Brief        MarketingBrief     `json:"brief"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}
