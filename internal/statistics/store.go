// Package statistics provides the observers that record world state once per
// tick and publish it at the end of a run: a sqlite-backed time-series store
// and a console summary.
package statistics

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a sqlite connection holding per-run time series.
type Store struct {
	conn *sqlx.DB
}

// OpenStore opens or creates the statistics database at the given path.
func OpenStore(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open statistics db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate statistics db: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		hours INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS factory_money (
		run_id TEXT NOT NULL,
		hour INTEGER NOT NULL,
		factory_id INTEGER NOT NULL,
		balance INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS market_prices (
		run_id TEXT NOT NULL,
		hour INTEGER NOT NULL,
		ware TEXT NOT NULL,
		price INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_factory_money_run ON factory_money(run_id, hour);
	CREATE INDEX IF NOT EXISTS idx_market_prices_run ON market_prices(run_id, hour);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// RecordRun registers a run's identity and parameters.
func (s *Store) RecordRun(runID string, seed int64, hours uint64) error {
	_, err := s.conn.Exec(
		`INSERT INTO runs (id, created_at, seed, hours) VALUES (?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), seed, hours,
	)
	return err
}

// FactoryMoneyRow is one sample of one factory's balance.
type FactoryMoneyRow struct {
	Hour      uint64 `db:"hour"`
	FactoryID int    `db:"factory_id"`
	Balance   uint64 `db:"balance"`
}

// SaveFactoryMoney writes a run's balance time series in one transaction.
func (s *Store) SaveFactoryMoney(runID string, rows []FactoryMoneyRow) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range rows {
		if _, err := tx.Exec(
			`INSERT INTO factory_money (run_id, hour, factory_id, balance) VALUES (?, ?, ?, ?)`,
			runID, r.Hour, r.FactoryID, r.Balance,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// MarketPriceRow is one sample of a ware's cheapest offered price.
type MarketPriceRow struct {
	Hour  uint64 `db:"hour"`
	Ware  string `db:"ware"`
	Price uint64 `db:"price"`
}

// SaveMarketPrices writes a run's price time series in one transaction.
func (s *Store) SaveMarketPrices(runID string, rows []MarketPriceRow) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range rows {
		if _, err := tx.Exec(
			`INSERT INTO market_prices (run_id, hour, ware, price) VALUES (?, ?, ?, ?)`,
			runID, r.Hour, r.Ware, r.Price,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
