package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveInfo describes a stored slot without its payload.
type SaveInfo struct {
	Slot      string
	Size      int
	UpdatedAt time.Time
}

// Put writes a save slot, replacing any previous payload.
func (s *Store) Put(ctx context.Context, slot string, data []byte) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO saves (slot, data, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (slot) DO UPDATE
		 SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`),
		slot, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write slot %q: %w", slot, err)
	}
	return nil
}

// Get reads a save slot. Missing slots return ErrNotFound.
func (s *Store) Get(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT data FROM saves WHERE slot = ?`), slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read slot %q: %w", slot, err)
	}
	return data, nil
}

// Delete removes a save slot. Deleting a missing slot is not an error.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM saves WHERE slot = ?`), slot); err != nil {
		return fmt.Errorf("storage: cannot delete slot %q: %w", slot, err)
	}
	return nil
}

// ListSaves returns every slot, most recently written first.
func (s *Store) ListSaves(ctx context.Context) ([]SaveInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, LENGTH(data), updated_at FROM saves ORDER BY updated_at DESC, slot ASC`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var updated any
		if err := rows.Scan(&info.Slot, &info.Size, &updated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updated)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
