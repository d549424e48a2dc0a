package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/config"
	"github.com/kalabar794/landgenai/internal/domain"
)

const (
	driverName = "sqlite3"
	memoryDSN  = ":memory:"

	// DefaultPingTimeout bounds the connectivity check at open.
	DefaultPingTimeout = 5 * time.Second

	// timeLayout is fixed width so TEXT order is chronological order.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

const schema = `
CREATE TABLE IF NOT EXISTS landing_pages (
	id TEXT PRIMARY KEY,
	business_name TEXT NOT NULL,
	industry TEXT NOT NULL,
	content TEXT NOT NULL,
	images TEXT NOT NULL,
	brief TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_business_name ON landing_pages(business_name);
CREATE INDEX IF NOT EXISTS idx_industry ON landing_pages(industry);
CREATE INDEX IF NOT EXISTS idx_created_at ON landing_pages(created_at);
`

const selectColumns = `SELECT id, business_name, industry, content, images, brief, created_at, updated_at
	FROM landing_pages`

type landingPageRow struct {
	ID           string `db:"id"`
	BusinessName string `db:"business_name"`
	Industry     string `db:"industry"`
	Content      string `db:"content"`
	Images       string `db:"images"`
	Brief        string `db:"brief"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

// SQLiteStore implements Store over sqlx.
type SQLiteStore struct {
	db   *sqlx.DB
	mode string
	log  logger.Logger
	now  func() time.Time

	initOnce sync.Once
	initErr  error
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore wraps an open database.
func NewSQLiteStore(db *sqlx.DB, mode string, log logger.Logger) *SQLiteStore {
	return &SQLiteStore{
		db:   db,
		mode: mode,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// NewEphemeral opens a private in-memory database. It lives as long as
// its single connection, so the pool is pinned to one.
func NewEphemeral(log logger.Logger) (*SQLiteStore, error) {
	db, err := connect(memoryDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	return NewSQLiteStore(db, ModeInMemory, log), nil
}

// NewDurable opens the SQLite database at dsn.
func NewDurable(dsn string, log logger.Logger) (*SQLiteStore, error) {
	db, err := connect(dsn)
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers.
	db.SetMaxOpenConns(1)

	return NewSQLiteStore(db, ModeSQLite, log), nil
}

// Open selects the store mode from configuration.
func Open(cfg *config.Config, log logger.Logger) (*SQLiteStore, error) {
	if cfg.UseEphemeralStorage() {
		log.Info("Using in-memory landing page store",
			logger.String("environment", cfg.Service.Environment),
			logger.Bool("serverless", cfg.IsServerless()),
		)
		return NewEphemeral(log)
	}

	log.Info("Using SQLite landing page store", logger.String("dsn", cfg.Database.URL))
	return NewDurable(cfg.Database.URL, log)
}

func connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %w", ErrPersistence, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping database: %w", ErrPersistence, pingErr)
	}
	return db, nil
}

// Initialize creates the table and indexes once. Later calls return the
// first result.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		if _, err := s.db.ExecContext(ctx, schema); err != nil {
			s.initErr = fmt.Errorf("%w: initialize schema: %w", ErrPersistence, err)
			return
		}
		s.log.Info("Database tables initialized", logger.String("mode", s.mode))
	})
	return s.initErr
}

// Save inserts a new page with a fresh id.
func (s *SQLiteStore) Save(
	ctx context.Context,
	brief domain.MarketingBrief,
	content domain.LandingPageContent,
	images domain.CategorizedImages,
) (*domain.SavedLandingPage, error) {
	contentJSON, imagesJSON, err := encodePage(content, images)
	if err != nil {
		return nil, err
	}
	briefJSON, err := json.Marshal(brief)
	if err != nil {
		return nil, fmt.Errorf("%w: encode brief: %w", ErrPersistence, err)
	}

	page := &domain.SavedLandingPage{
		ID:           uuid.NewString(),
		BusinessName: brief.BusinessName,
		Industry:     brief.Industry,
		Content:      content,
		Images:       images,
		Brief:        brief,
	}
	now := s.now()
	page.CreatedAt, page.UpdatedAt = now, now

	stamp := formatTime(now)
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO landing_pages (id, business_name, industry, content, images, brief, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		page.ID, page.BusinessName, page.Industry, contentJSON, imagesJSON, string(briefJSON), stamp, stamp,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: save landing page: %w", ErrPersistence, err)
	}
	if affected, affErr := result.RowsAffected(); affErr != nil || affected == 0 {
		return nil, fmt.Errorf("%w: save landing page: no rows inserted", ErrPersistence)
	}

	return page, nil
}

// GetByID returns nil, nil when id is unknown.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*domain.SavedLandingPage, error) {
	var row landingPageRow
	err := s.db.GetContext(ctx, &row, selectColumns+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get landing page: %w", ErrPersistence, err)
	}

	page, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetRecent lists the newest pages first.
func (s *SQLiteStore) GetRecent(ctx context.Context, limit int) ([]domain.SavedLandingPage, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.list(ctx, "list recent landing pages",
		selectColumns+` ORDER BY created_at DESC LIMIT ?`, limit)
}

// likeEscaper makes LIKE wildcards in a query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByName matches business names containing query, newest first.
func (s *SQLiteStore) SearchByName(ctx context.Context, query string) ([]domain.SavedLandingPage, error) {
	return s.list(ctx, "search landing pages",
		selectColumns+` WHERE business_name LIKE '%' || ? || '%' ESCAPE '\' ORDER BY created_at DESC LIMIT ?`,
		likeEscaper.Replace(query), searchLimit)
}

// GetByIndustry lists pages with an exact industry match, newest first.
func (s *SQLiteStore) GetByIndustry(ctx context.Context, industry string) ([]domain.SavedLandingPage, error) {
	return s.list(ctx, "list landing pages by industry",
		selectColumns+` WHERE industry = ? ORDER BY created_at DESC`, industry)
}

func (s *SQLiteStore) list(ctx context.Context, op, query string, args ...any) ([]domain.SavedLandingPage, error) {
	var rows []landingPageRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
	}

	pages := make([]domain.SavedLandingPage, 0, len(rows))
	for i := range rows {
		page, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// Update replaces content and images. Brief and createdAt are kept and
// updatedAt always moves forward. Returns nil, nil when id is unknown.
func (s *SQLiteStore) Update(
	ctx context.Context,
	id string,
	content domain.LandingPageContent,
	images domain.CategorizedImages,
) (*domain.SavedLandingPage, error) {
	contentJSON, imagesJSON, err := encodePage(content, images)
	if err != nil {
		return nil, err
	}

	var previous string
	err = s.db.GetContext(ctx, &previous, `SELECT updated_at FROM landing_pages WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: update landing page: %w", ErrPersistence, err)
	}

	now := s.now()
	if prev, parseErr := parseTime(previous); parseErr == nil && !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE landing_pages SET content = ?, images = ?, updated_at = ? WHERE id = ?`,
		contentJSON, imagesJSON, formatTime(now), id,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: update landing page: %w", ErrPersistence, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: update landing page: %w", ErrPersistence, err)
	}
	if affected == 0 {
		return nil, nil
	}

	return s.GetByID(ctx, id)
}

// Delete reports whether a row was removed.
func (s *SQLiteStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM landing_pages WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("%w: delete landing page: %w", ErrPersistence, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: delete landing page: %w", ErrPersistence, err)
	}
	return affected > 0, nil
}

// Ping checks the connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrPersistence, err)
	}
	return nil
}

// Mode returns ModeInMemory or ModeSQLite.
func (s *SQLiteStore) Mode() string { return s.mode }

// Close closes the database. An in-memory store loses its data.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func encodePage(content domain.LandingPageContent, images domain.CategorizedImages) (contentJSON, imagesJSON string, err error) {
	c, err := json.Marshal(content)
	if err != nil {
		return "", "", fmt.Errorf("%w: encode content: %w", ErrPersistence, err)
	}
	i, err := json.Marshal(images)
	if err != nil {
		return "", "", fmt.Errorf("%w: encode images: %w", ErrPersistence, err)
	}
	return string(c), string(i), nil
}

func (r *landingPageRow) toDomain() (domain.SavedLandingPage, error) {
	page := domain.SavedLandingPage{
		ID:           r.ID,
		BusinessName: r.BusinessName,
		Industry:     r.Industry,
	}

	if err := json.Unmarshal([]byte(r.Content), &page.Content); err != nil {
		return page, fmt.Errorf("%w: decode content of %s: %w", ErrPersistence, r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Images), &page.Images); err != nil {
		return page, fmt.Errorf("%w: decode images of %s: %w", ErrPersistence, r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Brief), &page.Brief); err != nil {
		return page, fmt.Errorf("%w: decode brief of %s: %w", ErrPersistence, r.ID, err)
	}

	var err error
	if page.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return page, fmt.Errorf("%w: decode created_at of %s: %w", ErrPersistence, r.ID, err)
	}
	if page.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return page, fmt.Errorf("%w: decode updated_at of %s: %w", ErrPersistence, r.ID, err)
	}
	return page, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
