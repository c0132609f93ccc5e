// Package persist implements the per-tick run log SPEC_FULL.md's ambient
// stack calls for: a sqlite-backed record of every coin's price and every
// trader's balance at the end of each tick, so a finished (or
// still-running) simulation can be replayed or inspected after the fact.
// Grounded on server/dao/sqlite's store: a database/sql handle opened
// against the modernc.org/sqlite driver, CREATE TABLE IF NOT EXISTS at
// construction, and prepared statements wrapped through a single
// error-translating helper.
package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lassiter/cryptolang/internal/market"
	"modernc.org/sqlite"
)

// SnapshotMarket reads mkt's current coins and traders into the plain-data
// shapes LogTick persists, so a driver.TickFunc can call this then LogTick
// without reaching into internal/market's fields itself.
func SnapshotMarket(mkt *market.Market) ([]CoinSnapshot, []TraderSnapshot) {
	coins := make([]CoinSnapshot, len(mkt.Coins))
	for i, c := range mkt.Coins {
		coins[i] = CoinSnapshot{ID: c.ID, Name: c.Name, Value: c.Value, Miners: c.Miners}
	}

	traders := make([]TraderSnapshot, len(mkt.Traders))
	for i, t := range mkt.Traders {
		traders[i] = TraderSnapshot{ID: t.ID, Name: t.Name, Money: t.Money, Leaved: mkt.Leaved[t]}
	}

	return coins, traders
}

// ErrNotFound mirrors dao.ErrNotFound: the named agent has no rows in the
// log, either because it never existed or because nothing has been
// logged yet.
var ErrNotFound = errors.New("no history found for that name")

// CoinSnapshot is one coin's recorded state at the end of a tick.
type CoinSnapshot struct {
	Tick   int
	ID     uuid.UUID
	Name   string
	Value  float64
	Miners int
}

// TraderSnapshot is one trader's recorded state at the end of a tick.
type TraderSnapshot struct {
	Tick   int
	ID     uuid.UUID
	Name   string
	Money  float64
	Leaved bool
}

// RunLog is a sqlite-backed recorder of per-tick coin and trader snapshots.
type RunLog struct {
	db *sql.DB
}

// Open creates (if needed) and opens the sqlite file at path, creating its
// two tables if they don't already exist.
func Open(path string) (*RunLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapDBError(err)
	}

	log := &RunLog{db: db}
	if err := log.init(); err != nil {
		db.Close()
		return nil, err
	}
	return log, nil
}

func (l *RunLog) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS coin_snapshots (
			id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
			tick INTEGER NOT NULL,
			coin_id TEXT NOT NULL,
			name TEXT NOT NULL,
			value REAL NOT NULL,
			miners INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS coin_snapshots_name_idx ON coin_snapshots (name);`,
		`CREATE INDEX IF NOT EXISTS coin_snapshots_id_idx ON coin_snapshots (coin_id);`,
		`CREATE TABLE IF NOT EXISTS trader_snapshots (
			id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
			tick INTEGER NOT NULL,
			trader_id TEXT NOT NULL,
			name TEXT NOT NULL,
			money REAL NOT NULL,
			leaved INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS trader_snapshots_name_idx ON trader_snapshots (name);`,
		`CREATE INDEX IF NOT EXISTS trader_snapshots_id_idx ON trader_snapshots (trader_id);`,
	}
	for _, stmt := range stmts {
		if _, err := l.db.Exec(stmt); err != nil {
			return wrapDBError(err)
		}
	}
	return nil
}

// LogTick records coins and traders' current state under tick, in one
// transaction so a crash mid-write never leaves a partial tick behind.
func (l *RunLog) LogTick(ctx context.Context, tick int, coins []CoinSnapshot, traders []TraderSnapshot) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDBError(err)
	}
	defer tx.Rollback()

	coinStmt, err := tx.PrepareContext(ctx, `INSERT INTO coin_snapshots (tick, coin_id, name, value, miners) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return wrapDBError(err)
	}
	defer coinStmt.Close()

	for _, c := range coins {
		if _, err := coinStmt.ExecContext(ctx, tick, c.ID.String(), c.Name, c.Value, c.Miners); err != nil {
			return wrapDBError(err)
		}
	}

	traderStmt, err := tx.PrepareContext(ctx, `INSERT INTO trader_snapshots (tick, trader_id, name, money, leaved) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return wrapDBError(err)
	}
	defer traderStmt.Close()

	for _, t := range traders {
		if _, err := traderStmt.ExecContext(ctx, tick, t.ID.String(), t.Name, t.Money, boolToInt(t.Leaved)); err != nil {
			return wrapDBError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapDBError(err)
	}
	return nil
}

// CoinHistory returns every logged snapshot of the coin named name, in
// tick order.
func (l *RunLog) CoinHistory(ctx context.Context, name string) ([]CoinSnapshot, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT tick, coin_id, name, value, miners FROM coin_snapshots WHERE name = ? ORDER BY tick ASC`, name)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []CoinSnapshot
	for rows.Next() {
		var c CoinSnapshot
		var id string
		if err := rows.Scan(&c.Tick, &id, &c.Name, &c.Value, &c.Miners); err != nil {
			return nil, wrapDBError(err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("persist: stored coin ID %q is invalid: %w", id, err)
		}
		c.ID = parsed
		all = append(all, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all, nil
}

// TraderHistory returns every logged snapshot of the trader named name, in
// tick order.
func (l *RunLog) TraderHistory(ctx context.Context, name string) ([]TraderSnapshot, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT tick, trader_id, name, money, leaved FROM trader_snapshots WHERE name = ? ORDER BY tick ASC`, name)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []TraderSnapshot
	for rows.Next() {
		var t TraderSnapshot
		var id string
		var leaved int
		if err := rows.Scan(&t.Tick, &id, &t.Name, &t.Money, &leaved); err != nil {
			return nil, wrapDBError(err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("persist: stored trader ID %q is invalid: %w", id, err)
		}
		t.ID = parsed
		t.Leaved = leaved != 0
		all = append(all, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all, nil
}

// CoinHistoryByID returns every logged snapshot of the coin identified by
// id, in tick order -- the lookup internal/api's `GET /agents/{id}/history`
// uses, since a script's declared name is not guaranteed unique across
// separate runs while the instance id is, per SPEC_FULL.md's "one row per
// (tick, agent_id)" run-log design.
func (l *RunLog) CoinHistoryByID(ctx context.Context, id uuid.UUID) ([]CoinSnapshot, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT tick, coin_id, name, value, miners FROM coin_snapshots WHERE coin_id = ? ORDER BY tick ASC`, id.String())
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []CoinSnapshot
	for rows.Next() {
		var c CoinSnapshot
		var storedID string
		if err := rows.Scan(&c.Tick, &storedID, &c.Name, &c.Value, &c.Miners); err != nil {
			return nil, wrapDBError(err)
		}
		c.ID = id
		all = append(all, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all, nil
}

// TraderHistoryByID returns every logged snapshot of the trader identified
// by id, in tick order, mirroring CoinHistoryByID.
func (l *RunLog) TraderHistoryByID(ctx context.Context, id uuid.UUID) ([]TraderSnapshot, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT tick, trader_id, name, money, leaved FROM trader_snapshots WHERE trader_id = ? ORDER BY tick ASC`, id.String())
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []TraderSnapshot
	for rows.Next() {
		var t TraderSnapshot
		var storedID string
		var leaved int
		if err := rows.Scan(&t.Tick, &storedID, &t.Name, &t.Money, &leaved); err != nil {
			return nil, wrapDBError(err)
		}
		t.ID = id
		t.Leaved = leaved != 0
		all = append(all, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all, nil
}

// Close releases the underlying sqlite connection.
func (l *RunLog) Close() error {
	return l.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// wrapDBError translates sqlite-specific errors to sentinel errors the rest
// of the package can check with errors.Is, per server/dao/sqlite/sqlite.go's
// wrapDBError.
func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 { // SQLITE_CONSTRAINT
			return fmt.Errorf("persist: constraint violation: %w", err)
		}
		return fmt.Errorf("persist: %s: %w", sqlite.ErrorCodeString[sqliteErr.Code()], err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("persist: %w", err)
}
