package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const journalFileName = "journal.sqlite"

// Journal is the local append-only audit log of mutation outcomes. It records
// what the operator did and whether the server accepted it; it never caches
// server state.
type Journal struct {
	db *sql.DB
}

// JournalEntry is one recorded mutation outcome.
type JournalEntry struct {
	ID      string    `json:"id"`
	TS      time.Time `json:"ts"`
	Project string    `json:"project"`
	Op      string    `json:"op"`
	ItemID  string    `json:"item_id,omitempty"`
	OK      bool      `json:"ok"`
	Detail  string    `json:"detail,omitempty"`
}

// OpenJournal opens (creating if needed) the journal database in the config
// directory, or at dir when non-empty (tests).
func OpenJournal(ctx context.Context, dir string) (*Journal, error) {
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(dir, journalFileName))
	if err != nil {
		return nil, err
	}
	// WAL allows the CLI and TUI to append from separate processes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	const schema = `
CREATE TABLE IF NOT EXISTS mutations (
	id      TEXT PRIMARY KEY,
	ts      INTEGER NOT NULL,
	project TEXT NOT NULL,
	op      TEXT NOT NULL,
	item_id TEXT NOT NULL DEFAULT '',
	ok      INTEGER NOT NULL,
	detail  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS mutations_ts ON mutations(ts);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append records one mutation outcome.
func (j *Journal) Append(ctx context.Context, e JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.TS.IsZero() {
		e.TS = time.Now().UTC()
	}
	ok := 0
	if e.OK {
		ok = 1
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO mutations (id, ts, project, op, item_id, ok, detail) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TS.UnixMilli(), e.Project, e.Op, e.ItemID, ok, e.Detail,
	)
	return err
}

// Tail returns the most recent n entries, newest first.
func (j *Journal) Tail(ctx context.Context, n int) ([]JournalEntry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, ts, project, op, item_id, ok, detail FROM mutations ORDER BY ts DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var ts int64
		var ok int
		if err := rows.Scan(&e.ID, &ts, &e.Project, &e.Op, &e.ItemID, &ok, &e.Detail); err != nil {
			return nil, err
		}
		e.TS = time.UnixMilli(ts).UTC()
		e.OK = ok == 1
		out = append(out, e)
	}
	return out, rows.Err()
}

// Recorder adapts the journal to the mutation coordinator's callback. The
// journal is best-effort by design: a failed append must never fail the
// mutation it describes, so errors are dropped here.
type Recorder struct {
	Journal *Journal
	Project string
}

func (r Recorder) Record(op, itemID string, opErr error) {
	if r.Journal == nil {
		return
	}
	e := JournalEntry{Project: r.Project, Op: op, ItemID: itemID, OK: opErr == nil}
	if opErr != nil {
		e.Detail = opErr.Error()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = r.Journal.Append(ctx, e)
}
