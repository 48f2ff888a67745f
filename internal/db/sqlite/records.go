package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kailas-cloud/recdex/internal/db"
)

// PutRecord upserts the record and replaces its permissions, tags,
// collections and files in one transaction.
func (s *Store) PutRecord(ctx context.Context, row *db.RecordRow) error {
	if err := row.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := putRecord(ctx, tx, row); err != nil {
		return &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("record %d: %w", row.ID, err)}
	}
	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	return nil
}

func putRecord(ctx context.Context, tx *sql.Tx, row *db.RecordRow) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO records (id, record_type, visibility) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET record_type = excluded.record_type, visibility = excluded.visibility`,
		row.ID, row.Type, row.Visibility,
	); err != nil {
		return err
	}

	for _, table := range []string{"record_permissions", "record_tags", "collection_records", "files"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE record_id = ?", row.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, uid := range row.Readers {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO record_permissions (record_id, user_id) VALUES (?, ?)", row.ID, uid,
		); err != nil {
			return err
		}
	}
	for _, tag := range row.Tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO record_tags (record_id, tag) VALUES (?, ?)", row.ID, tag,
		); err != nil {
			return err
		}
	}
	for _, cid := range row.Collections {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO collection_records (collection_id, record_id) VALUES (?, ?)", cid, row.ID,
		); err != nil {
			return err
		}
	}
	for _, m := range row.Mimetypes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO files (record_id, mimetype) VALUES (?, ?)", row.ID, m,
		); err != nil {
			return err
		}
	}
	return nil
}
