// Package storage is the SQLite booking store for standalone deployments
// that do not talk to the remote collection. It preserves the positional
// booking contract: bookings are ordered per team and renumbered on delete.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hisab/internal/core"
	"hisab/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListTeams(ctx context.Context) ([]core.Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM teams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []core.Team
	var ids []int64
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		ids = append(ids, id)
		teams = append(teams, core.Team{TeamName: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	for i, id := range ids {
		bookings, err := r.listBookings(ctx, id)
		if err != nil {
			return nil, err
		}
		teams[i].Bookings = bookings
	}
	return teams, nil
}

func (r *SQLiteRepository) listBookings(ctx context.Context, teamID int64) ([]core.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT booking_ref, date, time, server, entry_fee, winning,
		       discription, caster, caster_cost, production, production_cost
		FROM bookings WHERE team_id = ? ORDER BY position`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []core.Booking
	for rows.Next() {
		var b core.Booking
		if err := rows.Scan(&b.ID, &b.Date, &b.Time, &b.Server, &b.EntryFee, &b.Winning,
			&b.Discription, &b.Caster, &b.CasterCost, &b.Production, &b.ProductionCost); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateTeam(ctx context.Context, teamName string) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE name = ?`, teamName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check team: %w", err)
	}
	if exists > 0 {
		return store.ErrTeamExists
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO teams (name) VALUES (?)`, teamName); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteTeam(ctx context.Context, teamName string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE name = ?`, teamName)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrTeamNotFound
	}
	return nil
}

func (r *SQLiteRepository) AddBooking(ctx context.Context, teamName string, b core.Booking) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		teamID, err := teamIDByName(ctx, tx, teamName)
		if err != nil {
			return err
		}
		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position)+1, 0) FROM bookings WHERE team_id = ?`, teamID).Scan(&next); err != nil {
			return fmt.Errorf("next position: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO bookings (team_id, position, booking_ref, date, time, server,
			                      entry_fee, winning, discription, caster, caster_cost,
			                      production, production_cost)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			teamID, next, b.ID, b.Date, b.Time, b.Server,
			float64(b.EntryFee), float64(b.Winning), b.Discription, b.Caster,
			float64(b.CasterCost), b.Production, float64(b.ProductionCost))
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) UpdateBooking(ctx context.Context, teamName string, index int, b core.Booking) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		teamID, err := teamIDByName(ctx, tx, teamName)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE bookings SET booking_ref = ?, date = ?, time = ?, server = ?,
			       entry_fee = ?, winning = ?, discription = ?, caster = ?,
			       caster_cost = ?, production = ?, production_cost = ?
			WHERE team_id = ? AND position = ?`,
			b.ID, b.Date, b.Time, b.Server,
			float64(b.EntryFee), float64(b.Winning), b.Discription, b.Caster,
			float64(b.CasterCost), b.Production, float64(b.ProductionCost),
			teamID, index)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return store.ErrIndexOutOfRange
		}
		return nil
	})
}

func (r *SQLiteRepository) DeleteBooking(ctx context.Context, teamName string, index int) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		teamID, err := teamIDByName(ctx, tx, teamName)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM bookings WHERE team_id = ? AND position = ?`, teamID, index)
		if err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return store.ErrIndexOutOfRange
		}
		// Later bookings shift down by one so positions stay dense.
		_, err = tx.ExecContext(ctx,
			`UPDATE bookings SET position = position - 1 WHERE team_id = ? AND position > ?`,
			teamID, index)
		if err != nil {
			return fmt.Errorf("renumber bookings: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func teamIDByName(ctx context.Context, tx *sql.Tx, teamName string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM teams WHERE name = ?`, teamName).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, store.ErrTeamNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find team: %w", err)
	}
	return id, nil
}
