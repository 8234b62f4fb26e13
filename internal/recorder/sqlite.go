package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the watcher writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			timestamp    INTEGER NOT NULL,
			ticker       TEXT NOT NULL,
			price        REAL,
			as_of        TEXT,
			signal       TEXT,
			confidence   INTEGER,
			ai_verdict   TEXT,
			analysis_raw TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ticker ON analysis_runs(ticker)`,

		`CREATE TABLE IF NOT EXISTS indicator_results (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			timestamp    INTEGER NOT NULL,
			ticker       TEXT NOT NULL,
			indicator    TEXT NOT NULL,
			signal       TEXT,
			reason       TEXT,
			win_rate_pct REAL,
			n_trades     INTEGER,
			total_pct    REAL,
			sharpe       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ind_run ON indicator_results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ind_ticker ON indicator_results(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analysis_runs
		(run_id, timestamp, ticker, price, as_of, signal, confidence, ai_verdict, analysis_raw)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		rec.RunID, time.Now().Unix(), rec.Ticker, rec.Price, rec.AsOf,
		rec.Signal, rec.Confidence, rec.AIVerdict, rec.AnalysisRaw,
	)
	return err
}

func (r *SQLiteRecorder) RecordIndicators(recs []IndicatorRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	now := time.Now().Unix()
	for _, rec := range recs {
		if _, err := tx.Exec(`INSERT INTO indicator_results
			(run_id, timestamp, ticker, indicator, signal, reason, win_rate_pct, n_trades, total_pct, sharpe)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			rec.RunID, now, rec.Ticker, rec.Indicator, rec.Signal, rec.Reason,
			rec.WinRatePct, rec.NTrades, rec.TotalPct, rec.Sharpe,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert indicator row: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
