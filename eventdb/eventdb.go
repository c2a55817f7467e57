// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb stores program events in sqlite.
package eventdb

import (
	"context"
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pixel"
)

type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open event db at given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	// every connection of an in-memory db is a distinct db
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close close the event db.
func (db *EventDB) Close() error {
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

// DriverVersion returns the sqlite library version.
func (db *EventDB) DriverVersion() string {
	return db.driverVersion
}

// Insert writes events in one transaction. Events already recorded are skipped.
func (db *EventDB) Insert(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO event(slot, time, txID, eventIndex, op, asset, owner, amount) VALUES (?, ?, ?, ?, ?, ?, ?, ?);")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		if ev.Amount > 1<<63-1 || ev.Slot > 1<<63-1 || ev.Time > 1<<63-1 {
			tx.Rollback()
			return errors.Errorf("event %v/%d out of range", ev.TxID, ev.Index)
		}
		if _, err := stmt.ExecContext(ctx,
			int64(ev.Slot),
			int64(ev.Time),
			ev.TxID[:],
			ev.Index,
			ev.Op,
			ev.Asset.Bytes(),
			ev.Owner.Bytes(),
			int64(ev.Amount),
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Filter returns events matching filter, ordered by sequence.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	const query = "SELECT seq, slot, time, txID, eventIndex, op, asset, owner, amount FROM event"
	if filter == nil {
		return db.query(ctx, query+" ORDER BY seq ASC")
	}
	var args []any
	stmt := query + " WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ?"
		}
	}
	if filter.Asset != nil {
		args = append(args, filter.Asset.Bytes())
		stmt += " AND asset = ?"
	}
	if filter.Owner != nil {
		args = append(args, filter.Owner.Bytes())
		stmt += " AND owner = ?"
	}
	if filter.Op != "" {
		args = append(args, filter.Op)
		stmt += " AND op = ?"
	}
	if filter.TxID != nil {
		args = append(args, filter.TxID[:])
		stmt += " AND txID = ?"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			ev                 Event
			slot, time, amount int64
			txID, asset, owner []byte
		)
		if err := rows.Scan(
			&ev.Seq,
			&slot,
			&time,
			&txID,
			&ev.Index,
			&ev.Op,
			&asset,
			&owner,
			&amount,
		); err != nil {
			return nil, err
		}
		ev.Slot, ev.Time, ev.Amount = uint64(slot), uint64(time), uint64(amount)
		copy(ev.TxID[:], txID)
		ev.Asset = pixel.BytesToAddress(asset)
		ev.Owner = pixel.BytesToAddress(owner)
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
