package images

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/domain"
	"github.com/kalabar794/landgenai/internal/pexels"
	"github.com/kalabar794/landgenai/internal/telemetry"
)

const (
	// DefaultPerPage is the page size of each curation search.
	DefaultPerPage        = 8
	// MaxConcurrentSearches bounds the searches SearchEach keeps in flight.
	MaxConcurrentSearches = 4
	firstPage             = 1
)

// Searcher runs one photo search. *pexels.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string, perPage, page int) (*pexels.SearchResponse, error)
}

// QueryResult pairs a query with its photos. Photos is empty, never nil,
// when the search failed.
type QueryResult struct {
	Query  string         `json:"query"`
	Photos []domain.Photo `json:"photos"`
}

// Fetcher fans searches out in parallel and never fails as a whole.
type Fetcher struct {
	searcher Searcher
	cache    Cache
	perPage  int
	metrics  *telemetry.Provider
	log      logger.Logger
}

// NewFetcher builds a Fetcher. A nil cache disables caching and a
// non-positive perPage uses DefaultPerPage.
func NewFetcher(searcher Searcher, cache Cache, perPage int, metrics *telemetry.Provider, log logger.Logger) *Fetcher {
	if cache == nil {
		cache = NopCache{}
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Fetcher{
		searcher: searcher,
		cache:    cache,
		perPage:  perPage,
		metrics:  metrics,
		log:      log,
	}
}

// FetchAndDedupe searches the first MaxQueries queries and returns their
// photos flattened in query order with duplicate ids removed.
func (f *Fetcher) FetchAndDedupe(ctx context.Context, queries []string) []domain.Photo {
	results := f.SearchEach(ctx, SelectQueries(queries), f.perPage)

	var all []domain.Photo
	for _, r := range results {
		all = append(all, r.Photos...)
	}
	return Dedupe(all)
}

// SearchEach runs one search per query, at most MaxConcurrentSearches at
// a time. Results keep the
// order of queries. A failed query yields no photos and does not affect
// its siblings.
func (f *Fetcher) SearchEach(ctx context.Context, queries []string, perPage int) []QueryResult {
	results := make([]QueryResult, len(queries))

	// Tasks never return an error, so Wait is a plain barrier.
	var g errgroup.Group
	g.SetLimit(MaxConcurrentSearches)
	for i, q := range queries {
		g.Go(func() error {
			results[i] = QueryResult{Query: q, Photos: f.search(ctx, q, perPage)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (f *Fetcher) search(ctx context.Context, query string, perPage int) []domain.Photo {
	log := logger.FromContextOr(ctx, f.log)

	cached, ok, err := f.cache.Get(ctx, query, perPage, firstPage)
	switch {
	case err != nil:
		f.metrics.RecordCacheLookup("error")
		log.Warn("Photo cache lookup failed", logger.String("query", query), logger.Error(err))
	case ok:
		f.metrics.RecordCacheLookup("hit")
		return cached
	default:
		f.metrics.RecordCacheLookup("miss")
	}

	start := time.Now()
	resp, err := f.searcher.Search(ctx, query, perPage, firstPage)
	f.metrics.ObserveUpstream("pexels", err, time.Since(start))
	if err != nil {
		f.metrics.RecordImageQueryFailure()
		log.Warn("Photo search failed, continuing without its results",
			logger.String("query", query),
			logger.Error(err),
		)
		return []domain.Photo{}
	}

	photos := resp.Photos
	if photos == nil {
		photos = []domain.Photo{}
	}

	if err := f.cache.Set(ctx, query, perPage, firstPage, photos); err != nil {
		log.Warn("Photo cache store failed", logger.String("query", query), logger.Error(err))
	}
	return photos
}

// Dedupe removes photos whose id was already seen, keeping the first.
// It is idempotent.
func Dedupe(photos []domain.Photo) []domain.Photo {
	seen := make(map[int64]struct{}, len(photos))
	out := make([]domain.Photo, 0, len(photos))
	for _, p := range photos {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
