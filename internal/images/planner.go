// Package images plans, fetches, deduplicates and categorizes stock photos
// for a landing page.
package images

// MaxQueries caps the searches issued per curation request.
const MaxQueries = 4

var industryQueries = map[string][]string{
	"technology": {
		"modern office technology",
		"team collaboration workspace",
		"digital innovation",
		"computer programming",
		"tech startup office",
	},
	"healthcare": {
		"medical professionals",
		"healthcare facility",
		"doctor patient consultation",
		"medical equipment",
		"wellness center",
	},
	"finance": {
		"financial planning",
		"business meeting",
		"investment consultation",
		"modern banking",
		"financial success",
	},
	"education": {
		"students learning",
		"classroom environment",
		"educational technology",
		"academic success",
		"knowledge sharing",
	},
	"retail": {
		"shopping experience",
		"retail store interior",
		"customer service",
		"product display",
		"retail technology",
	},
	"real-estate": {
		"real estate agent",
		"beautiful home interior",
		"property viewing",
		"modern architecture",
		"home buying",
	},
	"food-beverage": {
		"restaurant interior",
		"food preparation",
		"dining experience",
		"kitchen staff",
		"fresh ingredients",
	},
	"travel": {
		"travel destination",
		"vacation planning",
		"travel agency",
		"beautiful landscapes",
		"travel experience",
	},
	"fitness": {
		"fitness training",
		"gym equipment",
		"healthy lifestyle",
		"personal trainer",
		"wellness center",
	},
}

var fallbackQueries = []string{
	"professional business",
	"team collaboration",
	"modern workspace",
	"business success",
	"customer service",
}

var genericQueries = []string{
	"professional handshake",
	"team meeting",
	"business growth",
	"customer satisfaction",
}

// PlanQueries returns the search phrases for an industry followed by the
// generic business phrases. Unknown industries use a generic list.
// businessDescription does not influence the result.
func PlanQueries(industry, _ string) []string {
	base, ok := industryQueries[industry]
	if !ok {
		base = fallbackQueries
	}

	queries := make([]string, 0, len(base)+len(genericQueries))
	queries = append(queries, base...)
	return append(queries, genericQueries...)
}

// SelectQueries returns at most MaxQueries leading queries.
func SelectQueries(queries []string) []string {
	if len(queries) > MaxQueries {
		return queries[:MaxQueries]
	}
	return queries
}
