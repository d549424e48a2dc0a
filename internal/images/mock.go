package images

import (
	"fmt"

	"github.com/kalabar794/landgenai/internal/domain"
)

// MockQueries are reported alongside MockCategorizedImages.
var MockQueries = []string{"business", "technology", "team", "professional"}

// MockTotalPhotos is the photo count of MockCategorizedImages.
const MockTotalPhotos = 4

// MockCategorizedImages returns one fixed photo per bucket. It is served
// when no usable photo key is configured and in test mode.
func MockCategorizedImages() domain.CategorizedImages {
	return domain.CategorizedImages{
		Hero:         []domain.Photo{mockPhoto(1, 1920, 1080, "Test hero image")},
		Features:     []domain.Photo{mockPhoto(2, 800, 600, "Test feature image")},
		About:        []domain.Photo{mockPhoto(3, 1200, 800, "Test about image")},
		Testimonials: []domain.Photo{mockPhoto(4, 400, 400, "Test testimonial image")},
	}
}

func mockPhoto(id int64, width, height int, alt string) domain.Photo {
	base := fmt.Sprintf("https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg", id, id)
	return domain.Photo{
		ID:              id,
		Width:           width,
		Height:          height,
		URL:             base,
		Photographer:    "Test Photographer",
		PhotographerURL: "https://pexels.com/@test",
		Src: domain.PhotoSrc{
			Original:  base,
			Large2x:   base + "?w=1920",
			Large:     base + "?w=1200",
			Medium:    base + "?w=800",
			Small:     base + "?w=400",
			Portrait:  base + "?w=600&h=800",
			Landscape: base + "?w=800&h=600",
			Tiny:      base + "?w=200",
		},
		Alt: alt,
	}
}
