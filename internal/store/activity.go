package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/coopsuite/activity-log-ms/internal/filter"
	"github.com/coopsuite/activity-log-ms/internal/models"
)

// recordColumns is the full column list of "AL01AuditLog", in scan order.
const recordColumns = `"AL01Id", "AL01CreatedAt", "AL01Service", "AL01Module", "AL01Action",
	"AL01Source", "AL01Result", "AL01EventName", "AL01Entity", "AL01EntityId",
	"AL01UserId", "AL01UserNombre", "AL01UserRol", "AL01CooperativaId", "AL01SucursalId",
	"AL01Before", "AL01After", "AL01Ip", "AL01UserAgent", "AL01RequestId",
	"AL01CorrelationId", "AL01Message", "AL01Error"`

// ActivityStore provides data access for the AL01AuditLog table.
type ActivityStore struct {
	Base
}

// NewActivityStore creates an ActivityStore.
func NewActivityStore(base Base) *ActivityStore {
	return &ActivityStore{Base: base}
}

// Insert persists one activity record.
func (s *ActivityStore) Insert(ctx context.Context, rec *models.ActivityRecord) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.Pool.Exec(ctx, `
		INSERT INTO "AL01AuditLog" (
			"AL01Service", "AL01Module", "AL01Action", "AL01Source", "AL01Result",
			"AL01EventName", "AL01Entity", "AL01EntityId",
			"AL01UserId", "AL01UserNombre", "AL01UserRol",
			"AL01CooperativaId", "AL01SucursalId",
			"AL01Before", "AL01After",
			"AL01Ip", "AL01UserAgent", "AL01RequestId", "AL01CorrelationId",
			"AL01Message", "AL01Error"
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		rec.Service, rec.Module, rec.Action, rec.Source, rec.Result,
		rec.EventName, rec.Entity, rec.EntityID,
		rec.UserID, rec.UserNombre, rec.UserRol,
		rec.CooperativaID, rec.SucursalID,
		rec.Before, rec.After,
		rec.IP, rec.UserAgent, rec.RequestID, rec.CorrelationID,
		rec.Message, rec.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting activity record: %w", err)
	}

	return nil
}

// Search runs the count and the ordered, bounded fetch for a predicate
// inside a single read-only transaction, so the reported total is
// always consistent with the returned page.
func (s *ActivityStore) Search(
	ctx context.Context, pred *filter.Predicate, w filter.Window,
) ([]models.ActivityRecord, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("beginning search transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	where, args := renderWhere(pred)

	var total int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM "AL01AuditLog" `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting activity records: %w", err)
	}

	query := `SELECT ` + recordColumns + ` FROM "AL01AuditLog" ` + where +
		` ORDER BY "AL01CreatedAt" DESC, "AL01Id" DESC`

	if w.Take >= 0 {
		query += " LIMIT $" + strconv.Itoa(len(args)+1)
		args = append(args, w.Take)
	}

	if w.Skip > 0 {
		query += " OFFSET $" + strconv.Itoa(len(args)+1)
		args = append(args, w.Skip)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying activity records: %w", err)
	}
	defer rows.Close()

	recs, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("committing search transaction: %w", err)
	}

	return recs, total, nil
}

// GetByID returns one record or models.ErrRecordNotFound.
func (s *ActivityStore) GetByID(ctx context.Context, id int64) (*models.ActivityRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM "AL01AuditLog" WHERE "AL01Id" = $1`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRecordNotFound
		}

		return nil, fmt.Errorf("fetching activity record %d: %w", id, err)
	}

	return rec, nil
}

func collectRecords(rows pgx.Rows) ([]models.ActivityRecord, error) {
	var recs []models.ActivityRecord

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		recs = append(recs, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity records: %w", err)
	}

	return recs, nil
}

func scanRecord(row pgx.Row) (*models.ActivityRecord, error) {
	var (
		rec           models.ActivityRecord
		before, after []byte
	)

	err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.Service, &rec.Module, &rec.Action,
		&rec.Source, &rec.Result, &rec.EventName, &rec.Entity, &rec.EntityID,
		&rec.UserID, &rec.UserNombre, &rec.UserRol, &rec.CooperativaID, &rec.SucursalID,
		&before, &after, &rec.IP, &rec.UserAgent, &rec.RequestID,
		&rec.CorrelationID, &rec.Message, &rec.Error,
	)
	if err != nil {
		return nil, err
	}

	rec.Before = before
	rec.After = after

	return &rec, nil
}
