package generator

import "github.com/kalabar794/landgenai/internal/domain"

const defaultAboutContent = "We are dedicated to providing exceptional service and results for our clients."

func cannedFeatures() []domain.Feature {
	return []domain.Feature{
		{Title: "Professional Service", Description: "Expert solutions tailored to your needs", Icon: "star"},
		{Title: "Proven Results", Description: "Track record of success and satisfied customers", Icon: "chart"},
		{Title: "Quality Guarantee", Description: "We stand behind our work with confidence", Icon: "shield"},
	}
}

func cannedTestimonials() []domain.Testimonial {
	return []domain.Testimonial{
		{Name: "Sarah Johnson", Role: "Business Owner", Content: "Outstanding service and results. Highly recommended!", Rating: 5},
		{Name: "Mike Chen", Role: "Marketing Director", Content: "Professional, reliable, and delivers on promises.", Rating: 5},
	}
}

func cannedCTAs() []domain.CTASection {
	return []domain.CTASection{
		{Title: "Ready to Get Started?", Subtitle: "Contact us today for a free consultation", ButtonText: "Contact Us Now"},
	}
}

// FallbackContent is the deterministic copy served when the LLM is
// unavailable.
func FallbackContent(brief domain.MarketingBrief) *domain.LandingPageContent {
	about := brief.BusinessDescription
	if about == "" {
		about = defaultAboutContent
	}

	return &domain.LandingPageContent{
		Headline:    "Transform Your Business with " + brief.BusinessName,
		Subheadline: "Professional " + brief.Industry + " solutions that deliver results",
		HeroSection: domain.HeroSection{
			Title:    "Welcome to " + brief.BusinessName,
			Subtitle: brief.BusinessDescription,
			CTAText:  "Get Started Today",
		},
		Features: cannedFeatures(),
		AboutSection: domain.AboutSection{
			Title:   "About " + brief.BusinessName,
			Content: about,
		},
		Testimonials: cannedTestimonials(),
		CTASections:  cannedCTAs(),
		Footer: domain.Footer{
			CompanyName: brief.BusinessName,
			Tagline:     "Your trusted " + brief.Industry + " partner",
		},
	}
}

// MockContent is the fixed TestCorp page personalised with the brief's
// name and description.
func MockContent(brief domain.MarketingBrief) *domain.LandingPageContent {
	return &domain.LandingPageContent{
		Headline:    "Transform Your Business with TestCorp",
		Subheadline: "Professional technology solutions that deliver results",
		HeroSection: domain.HeroSection{
			Title:    "Welcome to " + brief.BusinessName,
			Subtitle: brief.BusinessDescription,
			CTAText:  "Get Started Today",
		},
		Features: cannedFeatures(),
		AboutSection: domain.AboutSection{
			Title:   "About TestCorp",
			Content: defaultAboutContent,
		},
		Testimonials: cannedTestimonials(),
		CTASections:  cannedCTAs(),
		Footer: domain.Footer{
			CompanyName: brief.BusinessName,
			Tagline:     "Your trusted technology partner",
		},
	}
}
