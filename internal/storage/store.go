// Package storage persists landing pages in SQLite.
package storage

import (
	"context"
	"errors"

	"github.com/kalabar794/landgenai/internal/domain"
)

// Store modes.
const (
	ModeInMemory = "in-memory"
	ModeSQLite   = "sqlite"
)

// DefaultRecentLimit is used when GetRecent gets a non-positive limit.
const DefaultRecentLimit = 10

const searchLimit = 20

// ErrPersistence wraps every I/O and serialization failure.
var ErrPersistence = errors.New("persistence error")

// Store is the landing page repository. Lookups that find nothing return
// nil without an error.
type Store interface {
	Initialize(ctx context.Context) error
	Save(ctx context.Context, brief domain.MarketingBrief, content domain.LandingPageContent,
		images domain.CategorizedImages) (*domain.SavedLandingPage, error)
	GetByID(ctx context.Context, id string) (*domain.SavedLandingPage, error)
	GetRecent(ctx context.Context, limit int) ([]domain.SavedLandingPage, error)
	SearchByName(ctx context.Context, query string) ([]domain.SavedLandingPage, error)
	GetByIndustry(ctx context.Context, industry string) ([]domain.SavedLandingPage, error)
	Update(ctx context.Context, id string, content domain.LandingPageContent,
		images domain.CategorizedImages) (*domain.SavedLandingPage, error)
	Delete(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
	Mode() string
	Close() error
}
