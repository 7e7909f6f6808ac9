package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run summaries to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so result viewers can read while a backtest writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			gold_symbol    TEXT,
			equity_symbol  TEXT,
			start_date     TEXT,
			end_date       TEXT,
			lookback_days  INTEGER,
			rebalance      TEXT,
			fee_bps        REAL,
			trading_days   INTEGER,
			switches       INTEGER,
			cagr           REAL,
			annualized_vol REAL,
			sharpe         REAL,
			max_drawdown   REAL,
			terminal_value REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON backtest_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts one run summary row.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO backtest_runs
		(timestamp, gold_symbol, equity_symbol, start_date, end_date,
		 lookback_days, rebalance, fee_bps, trading_days, switches,
		 cagr, annualized_vol, sharpe, max_drawdown, terminal_value)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.GoldSymbol, rec.EquitySymbol,
		rec.Start.Format("2006-01-02"), rec.End.Format("2006-01-02"),
		rec.LookbackDays, rec.Rebalance, rec.FeeBps,
		rec.TradingDays, rec.Switches,
		rec.Summary.CAGR, rec.Summary.AnnualizedVol, rec.Summary.Sharpe,
		rec.Summary.MaxDrawdown, rec.Summary.TerminalValue,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
