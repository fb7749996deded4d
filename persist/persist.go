// Package persist exports a completed authgraph.PageAnalysis into a
// queryable SQLite database, mirroring the teacher's versioned-migration
// store package (store/migrations.go, store/schema.go). This is output
// persistence only: the core engine itself never touches a database
// (§1's non-goal that the core does not persist state across pages).
package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wikiwho/authgraph"
)

// ErrStoreClosed is returned by any operation attempted after Close.
var ErrStoreClosed = errors.New("persist: store is closed")

// migration mirrors the teacher's migration struct (store/migrations.go):
// an ordered, append-only list of idempotent schema changes.
type migration struct {
	version     int
	description string
	apply       func(tx *sql.Tx) error
}

var migrations = []migration{
	{
		version:     1,
		description: "initial schema",
		apply: func(tx *sql.Tx) error {
			_, err := tx.Exec(schemaSQL)
			return err
		},
	},
}

// Store wraps a SQLite connection holding one or more pages' exported
// authorship graphs.
type Store struct {
	db     *sql.DB
	closed bool
}

// Open opens (creating if necessary) the SQLite database at path and
// applies any pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	// Foreign keys are enabled so that deleting a page row cascades to
	// the rows exported under it (see ExportPage).
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("persist: opening database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("persist: creating schema_version table: %w", err)
	}

	var current int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("persist: reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		slog.Info("persist: applying migration", "version", m.version, "description", m.description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("persist: begin migration %d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("persist: migration %d failed: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schema_version (version, description) VALUES (?, ?)",
			m.version, m.description); err != nil {
			tx.Rollback()
			return fmt.Errorf("persist: recording migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("persist: committing migration %d: %w", m.version, err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	s.closed = true
	return s.db.Close()
}

// ExportPage writes a completed PageAnalysis's words and revisions into
// the store under pageTitle, replacing any prior export of that page.
func (s *Store) ExportPage(ctx context.Context, pageTitle string, pa *authgraph.PageAnalysis) error {
	if s.closed {
		return ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("persist: begin export: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pages WHERE title = ?", pageTitle); err != nil {
		return fmt.Errorf("persist: clearing prior export: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO pages (title) VALUES (?)", pageTitle); err != nil {
		return fmt.Errorf("persist: inserting page: %w", err)
	}

	var pageID int64
	if err := tx.QueryRowContext(ctx, "SELECT id FROM pages WHERE title = ?", pageTitle).Scan(&pageID); err != nil {
		return fmt.Errorf("persist: reading page id: %w", err)
	}

	for _, id := range pa.SpamIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO spam_revisions (page_id, revision_id) VALUES (?, ?)", pageID, id); err != nil {
			return fmt.Errorf("persist: recording spam revision %d: %w", id, err)
		}
	}

	for _, id := range pa.OrderedRevisions {
		ptr := pa.RevisionsByID[id]
		rec := pa.Store.Revision(ptr)
		ra := pa.Store.RevisionAnalysis(ptr)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO revisions (id, page_id, commit_seq, length, original_adds)
			VALUES (?, ?, ?, ?, ?)
		`, rec.ID, pageID, ra.CommitSeq, rec.Length, ra.OriginalAdds); err != nil {
			return fmt.Errorf("persist: inserting revision %d: %w", id, err)
		}
	}

	for i := 0; i < pa.Store.NumWords(); i++ {
		wp := authgraph.WordPtr(i)
		rec := pa.Store.Word(wp)
		wa := pa.Store.WordAnalysis(wp)

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO words (id, page_id, text, origin_revision_id, latest_revision_id)
			VALUES (?, ?, ?, ?, ?)
		`, i, pageID, rec.Text, wa.OriginRevisionID, wa.LatestRevisionID); err != nil {
			return fmt.Errorf("persist: inserting word %d: %w", i, err)
		}
		for pos, rid := range wa.Inbound {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO word_inbound (word_id, revision_id, position) VALUES (?, ?, ?)",
				i, rid, pos); err != nil {
				return fmt.Errorf("persist: inserting inbound for word %d: %w", i, err)
			}
		}
		for pos, rid := range wa.Outbound {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO word_outbound (word_id, revision_id, position) VALUES (?, ?, ?)",
				i, rid, pos); err != nil {
				return fmt.Errorf("persist: inserting outbound for word %d: %w", i, err)
			}
		}
	}

	return tx.Commit()
}
