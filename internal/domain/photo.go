package domain

// Photo is one stock photo result. ID is the deduplication key.
type Photo struct {
	ID              int64    `json:"id"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	URL             string   `json:"url"`
	Photographer    string   `json:"photographer"`
	PhotographerURL string   `json:"photographer_url"`
	Src             PhotoSrc `json:"src"`
	Alt             string   `json:"alt"`
}

// PhotoSrc holds the named resolution URLs.
type PhotoSrc struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// IsLandscape reports width > height.
func (p Photo) IsLandscape() bool { return p.Width > p.Height }

// IsPortrait reports width < height.
func (p Photo) IsPortrait() bool { return p.Width < p.Height }

// IsSquarish reports equal sides or sides within 100px of each other.
func (p Photo) IsSquarish() bool {
	diff := p.Width - p.Height
	if diff < 0 {
		diff = -diff
	}
	return diff < 100
}

// CategorizedImages assigns photos to page slots.
type CategorizedImages struct {
	Hero         []Photo `json:"hero"`
	Features     []Photo `json:"features"`
	About        []Photo `json:"about"`
	Testimonials []Photo `json:"testimonials"`
}
