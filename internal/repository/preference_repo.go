package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// PreferenceRepository owns the farmer_preferences table (one row per farmer).
type PreferenceRepository interface {
	GetByFarmer(ctx context.Context, farmerID string) (*domain.FarmerPreferences, error)
	Upsert(ctx context.Context, p *domain.FarmerPreferences) (*domain.FarmerPreferences, error)
}

type pgPreferenceRepo struct {
	db *pgxpool.Pool
}

func NewPreferenceRepository(db *pgxpool.Pool) PreferenceRepository {
	return &pgPreferenceRepo{db: db}
}

const preferenceCols = `
	farmer_id, sms_enabled, push_enabled, quiet_hours_enabled,
	quiet_hours_start, quiet_hours_end, notification_level,
	order_updates, payment_alerts, educational_content, updated_at`

func (p *pgPreferenceRepo) GetByFarmer(ctx context.Context, farmerID string) (*domain.FarmerPreferences, error) {
	query := `SELECT` + preferenceCols + `
		FROM farmer_preferences
		WHERE farmer_id = $1`

	var prefs domain.FarmerPreferences
	err := scanPreferences(p.db.QueryRow(ctx, query, farmerID), &prefs)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

func (p *pgPreferenceRepo) Upsert(ctx context.Context, prefs *domain.FarmerPreferences) (*domain.FarmerPreferences, error) {
	query := `
		INSERT INTO farmer_preferences (
			farmer_id, sms_enabled, push_enabled, quiet_hours_enabled,
			quiet_hours_start, quiet_hours_end, notification_level,
			order_updates, payment_alerts, educational_content, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (farmer_id) DO UPDATE SET
			sms_enabled         = EXCLUDED.sms_enabled,
			push_enabled        = EXCLUDED.push_enabled,
			quiet_hours_enabled = EXCLUDED.quiet_hours_enabled,
			quiet_hours_start   = EXCLUDED.quiet_hours_start,
			quiet_hours_end     = EXCLUDED.quiet_hours_end,
			notification_level  = EXCLUDED.notification_level,
			order_updates       = EXCLUDED.order_updates,
			payment_alerts      = EXCLUDED.payment_alerts,
			educational_content = EXCLUDED.educational_content,
			updated_at          = NOW()
		RETURNING` + preferenceCols

	row := p.db.QueryRow(ctx, query,
		prefs.FarmerID,
		prefs.SmsEnabled,
		prefs.PushEnabled,
		prefs.QuietHoursEnabled,
		prefs.QuietHoursStart,
		prefs.QuietHoursEnd,
		prefs.NotificationLevel,
		prefs.OrderUpdates,
		prefs.PaymentAlerts,
		prefs.EducationalContent,
	)

	var saved domain.FarmerPreferences
	if err := scanPreferences(row, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func scanPreferences(row pgx.Row, p *domain.FarmerPreferences) error {
	return row.Scan(
		&p.FarmerID,
		&p.SmsEnabled,
		&p.PushEnabled,
		&p.QuietHoursEnabled,
		&p.QuietHoursStart,
		&p.QuietHoursEnd,
		&p.NotificationLevel,
		&p.OrderUpdates,
		&p.PaymentAlerts,
		&p.EducationalContent,
		&p.UpdatedAt,
	)
}
