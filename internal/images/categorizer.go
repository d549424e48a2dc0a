package images

import "github.com/kalabar794/landgenai/internal/domain"

// window is a half-open [start, end) slice of a photo list.
type window struct{ start, end int }

func (w window) width() int { return w.end - w.start }

// Bucket slices over the orientation-filtered lists, and the positional
// slices of the whole pool used when a filtered bucket comes up empty.
var (
	heroWindow        = window{0, 3}
	featuresWindow    = window{0, 6}
	aboutWindow       = window{3, 6}
	testimonialWindow = window{0, 3}

	heroFallback        = window{0, 3}
	featuresFallback    = window{3, 9}
	aboutFallback       = window{9, 12}
	testimonialFallback = window{12, 15}
)

// Categorize sorts a deduplicated pool into page slots. Every bucket is
// non-empty when photos is non-empty. About reuses the landscape filter
// at a later window, so hero and about never share a photo unless the
// pool is small enough to trigger a fallback.
func Categorize(photos []domain.Photo) domain.CategorizedImages {
	landscape := filter(photos, domain.Photo.IsLandscape)
	portrait := filter(photos, domain.Photo.IsPortrait)
	squarish := filter(photos, domain.Photo.IsSquarish)

	return domain.CategorizedImages{
		Hero:         pick(photos, landscape, heroWindow, heroFallback),
		Features:     pick(photos, portrait, featuresWindow, featuresFallback),
		About:        pick(photos, landscape, aboutWindow, aboutFallback),
		Testimonials: pick(photos, squarish, testimonialWindow, testimonialFallback),
	}
}

// pick applies the filtered window, then the positional fallback, then the
// leading photos of the pool.
func pick(pool, filtered []domain.Photo, w, fallback window) []domain.Photo {
	if got := slice(filtered, w); len(got) > 0 {
		return got
	}
	if got := slice(pool, fallback); len(got) > 0 {
		return got
	}
	return slice(pool, window{0, fallback.width()})
}

// slice returns a copy of photos[w.start:w.end] clamped to len(photos).
func slice(photos []domain.Photo, w window) []domain.Photo {
	start := min(w.start, len(photos))
	end := min(w.end, len(photos))
	out := make([]domain.Photo, end-start)
	copy(out, photos[start:end])
	return out
}

func filter(photos []domain.Photo, keep func(domain.Photo) bool) []domain.Photo {
	var out []domain.Photo
	for _, p := range photos {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
