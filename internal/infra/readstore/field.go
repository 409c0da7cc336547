package readstore

import (
	"context"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/usecase/queries"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type FieldReadStore struct {
	db db.DBTX
}

func NewFieldReadStore(dbtx db.DBTX) *FieldReadStore {
	return &FieldReadStore{db: dbtx}
}

var _ queries.FieldReadStore = (*FieldReadStore)(nil)

type fieldRow struct {
	ID          uuid.UUID
	AcademyID   uuid.UUID
	Name        string
	RateCents   int64
	OpenMinute  *int32
	CloseMinute *int32
	IsAvailable bool
	IsActive    bool
}

const findFieldByIDSQL = `
SELECT id, academy_id, name, hourly_rate_cents, open_minute, close_minute, is_available, is_active
FROM fields
WHERE id = $1 AND is_active`

func (r *FieldReadStore) findRow(ctx context.Context, id uuid.UUID) (*fieldRow, error) {
	var row fieldRow
	err := r.db.QueryRow(ctx, findFieldByIDSQL, id).Scan(
		&row.ID, &row.AcademyID, &row.Name, &row.RateCents,
		&row.OpenMinute, &row.CloseMinute, &row.IsAvailable, &row.IsActive,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("field not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find field by ID", err)
	}
	return &row, nil
}

func (r *FieldReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.FieldView, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &queries.FieldView{}
	if err := copier.Copy(view, row); err != nil {
		return nil, infra.WrapRepoErr("failed to convert field row", err)
	}
	view.HourlyRate = booking.NewMoney(row.RateCents).String()
	return view, nil
}

// SnapshotByID is the command-side read: the full row including the active
// flag, for domain reconstruction inside a transaction.
func (r *FieldReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.FieldSnapshot, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}

	snap := &shared.FieldSnapshot{}
	if err := copier.Copy(snap, row); err != nil {
		return nil, infra.WrapRepoErr("failed to convert field row", err)
	}
	return snap, nil
}
