package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/pkg/id"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// DeviceRepository owns the device_tokens table. Registration upserts on
// (farmer_id, token); tokens are deactivated rather than deleted, except by
// the retention job.
type DeviceRepository interface {
	Upsert(ctx context.Context, t *domain.DeviceToken) (*domain.DeviceToken, error)
	ListActiveByFarmer(ctx context.Context, farmerID string) ([]*domain.DeviceToken, error)
	Deactivate(ctx context.Context, farmerID, token string) error
	DeactivateTokens(ctx context.Context, tokens []string) error
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type pgDeviceRepo struct {
	db *pgxpool.Pool
}

func NewDeviceRepository(db *pgxpool.Pool) DeviceRepository {
	return &pgDeviceRepo{db: db}
}

const deviceCols = `
	id, farmer_id, token, device_type, is_active, updated_at`

func (p *pgDeviceRepo) Upsert(ctx context.Context, t *domain.DeviceToken) (*domain.DeviceToken, error) {
	if t.ID == "" {
		t.ID = id.New("dev")
	}

	query := `
		INSERT INTO device_tokens (id, farmer_id, token, device_type, is_active, updated_at)
		VALUES ($1, $2, $3, $4, true, NOW())
		ON CONFLICT (farmer_id, token) DO UPDATE SET
			device_type = EXCLUDED.device_type,
			is_active   = true,
			updated_at  = NOW()
		RETURNING` + deviceCols

	row := p.db.QueryRow(ctx, query, t.ID, t.FarmerID, t.Token, t.DeviceType)

	var saved domain.DeviceToken
	if err := scanDevice(row, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (p *pgDeviceRepo) ListActiveByFarmer(ctx context.Context, farmerID string) ([]*domain.DeviceToken, error) {
	query := `SELECT` + deviceCols + `
		FROM device_tokens
		WHERE farmer_id = $1
		  AND is_active = true
		ORDER BY updated_at DESC`

	rows, err := p.db.Query(ctx, query, farmerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []*domain.DeviceToken
	for rows.Next() {
		var t domain.DeviceToken
		if err := scanDevice(rows, &t); err != nil {
			return nil, err
		}
		tokens = append(tokens, &t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return tokens, nil
}

func (p *pgDeviceRepo) Deactivate(ctx context.Context, farmerID, token string) error {
	query := `
		UPDATE device_tokens
		SET is_active = false, updated_at = NOW()
		WHERE farmer_id = $1
		  AND token = $2
		  AND is_active = true`

	ct, err := p.db.Exec(ctx, query, farmerID, token)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// DeactivateTokens prunes tokens the push provider reported as invalid.
func (p *pgDeviceRepo) DeactivateTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	query := `
		UPDATE device_tokens
		SET is_active = false, updated_at = NOW()
		WHERE token = ANY($1)`

	_, err := p.db.Exec(ctx, query, tokens)
	return err
}

func (p *pgDeviceRepo) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM device_tokens
		WHERE is_active = false
		  AND updated_at < $1`

	ct, err := p.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func scanDevice(row pgx.Row, t *domain.DeviceToken) error {
	return row.Scan(
		&t.ID,
		&t.FarmerID,
		&t.Token,
		&t.DeviceType,
		&t.IsActive,
		&t.UpdatedAt,
	)
}
