package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
)

// MarketCacheRepository persists price and rate cache entries in the
// market_cache table so the staleness policy survives restarts. It
// implements marketdata.Cache; persistence failures are logged and degrade
// to cache misses rather than failing the valuation path.
type MarketCacheRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewMarketCacheRepository creates a new MarketCacheRepository with the provided database connection.
func NewMarketCacheRepository(db *sql.DB, logger zerolog.Logger) *MarketCacheRepository {
	return &MarketCacheRepository{db: db, logger: logger}
}

// Get returns the entry for key if present and not expired. Expired rows are
// deleted on read.
func (s *MarketCacheRepository) Get(key string) (marketdata.CacheEntry, bool) {
	var entry marketdata.CacheEntry
	var fetchedAtStr, expiresAtStr string

	err := s.db.QueryRow(
		`SELECT value, currency, fetched_at, expires_at FROM market_cache WHERE key = ?`,
		key,
	).Scan(&entry.Value, &entry.Currency, &fetchedAtStr, &expiresAtStr)
	if err == sql.ErrNoRows {
		return marketdata.CacheEntry{}, false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("market cache read failed")
		return marketdata.CacheEntry{}, false
	}

	entry.FetchedAt, err = ParseTime(fetchedAtStr)
	if err != nil {
		return marketdata.CacheEntry{}, false
	}
	entry.ExpiresAt, err = ParseTime(expiresAtStr)
	if err != nil {
		return marketdata.CacheEntry{}, false
	}

	if time.Now().After(entry.ExpiresAt) {
		if _, err := s.db.Exec(`DELETE FROM market_cache WHERE key = ?`, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("market cache eviction failed")
		}
		return marketdata.CacheEntry{}, false
	}

	return entry, true
}

// Set stores or replaces the entry for key. Last write wins.
func (s *MarketCacheRepository) Set(key string, entry marketdata.CacheEntry) {
	query := `
		INSERT INTO market_cache (key, value, currency, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			currency = excluded.currency,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at
	`

	_, err := s.db.Exec(query,
		key,
		entry.Value,
		entry.Currency,
		entry.FetchedAt.UTC().Format(time.RFC3339),
		entry.ExpiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("market cache write failed")
	}
}

// Clear removes every cache entry.
func (s *MarketCacheRepository) Clear() {
	if _, err := s.db.Exec(`DELETE FROM market_cache`); err != nil {
		s.logger.Warn().Err(err).Msg("market cache clear failed")
	}
}

// compile-time interface check
var _ marketdata.Cache = (*MarketCacheRepository)(nil)

// PruneExpired removes all expired rows. Called by the background refresh
// job to keep the table small.
func (s *MarketCacheRepository) PruneExpired() error {
	_, err := s.db.Exec(
		`DELETE FROM market_cache WHERE expires_at < ?`,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to prune market cache: %w", err)
	}
	return nil
}
