package generator

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kalabar794/landgenai/internal/domain"
)

const promptIntro = `You are an expert marketing copywriter. Create compelling landing page content based on this business brief.

Business Information:
`

const promptInstructions = `
Create a complete landing page content structure. The content should be:
- Compelling and conversion-focused
- Industry-appropriate
- Audience-specific
- Professional yet engaging
- Include 3-4 key features
- Include 2-3 testimonials with realistic names and roles
- Include multiple CTA sections

Return ONLY a valid JSON object with this exact structure:
`

const promptSchema = `{
  "headline": "Main compelling headline",
  "subheadline": "Supporting subheadline",
  "heroSection": {
    "title": "Hero section title",
    "subtitle": "Hero section subtitle",
    "ctaText": "Call to action button text"
  },
  "features": [
    {
      "title": "Feature title",
      "description": "Feature description",
      "icon": "icon-name"
    }
  ],
  "aboutSection": {
    "title": "About section title",
    "content": "About section content paragraph"
  },
  "testimonials": [
    {
      "name": "Customer name",
      "role": "Job title at Company",
      "content": "Testimonial content",
      "rating": 5
    }
  ],
  "ctaSections": [
    {
      "title": "CTA section title",
      "subtitle": "CTA section subtitle",
      "buttonText": "Button text"
    }
  ],
  "footer": {
    "companyName": "{{businessName}}",
    "tagline": "Company tagline"
  }
}`

// BuildPrompt renders the copywriting prompt for brief. Empty optional
// fields are left out.
func BuildPrompt(brief domain.MarketingBrief) string {
	var b strings.Builder
	b.WriteString(promptIntro)

	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString("- ")
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}

	line("Name", brief.BusinessName)
	line("Industry", brief.Industry)
	line("Description", brief.BusinessDescription)
	line("Website", brief.Website)
	line("Target Audience", brief.TargetAudience)
	line("Products/Services", brief.ProductServices)
	line("Unique Selling Points", brief.UniqueSellingPoints)
	line("Campaign Goals", brief.CampaignGoals)

	b.WriteString(promptInstructions)
	b.WriteString(strings.Replace(promptSchema, "{{businessName}}", jsonEscape(brief.BusinessName), 1))
	return b.String()
}

// jsonEscape returns s encoded as the body of a JSON string, without the
// surrounding quotes.
func jsonEscape(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return ""
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return out[1 : len(out)-1]
}
