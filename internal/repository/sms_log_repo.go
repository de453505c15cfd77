package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// SmsLogRepository owns the sms_delivery_logs table. One row per send,
// updated in place across retries; the SENT/DELIVERED count since local
// midnight is the durable quota truth.
type SmsLogRepository interface {
	Create(ctx context.Context, l *domain.SmsDeliveryLog) error
	UpdateAttempt(ctx context.Context, id string, retryCount int, lastError string) error
	MarkSent(ctx context.Context, id string, retryCount int, messageID string) error
	MarkFailed(ctx context.Context, id string, retryCount int, lastError string) error
	MarkDelivered(ctx context.Context, providerMessageID string) error
	CountDeliveredSince(ctx context.Context, farmerID string, since time.Time) (int, error)
	ListByFarmer(ctx context.Context, farmerID string, limit, offset int) ([]*domain.SmsDeliveryLog, error)
}

type pgSmsLogRepo struct {
	db *pgxpool.Pool
}

func NewSmsLogRepository(db *pgxpool.Pool) SmsLogRepository {
	return &pgSmsLogRepo{db: db}
}

func (p *pgSmsLogRepo) Create(ctx context.Context, l *domain.SmsDeliveryLog) error {
	query := `
		INSERT INTO sms_delivery_logs (
			id, farmer_id, phone_number, template_key, status, retry_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at`

	return p.db.QueryRow(ctx, query,
		l.ID,
		l.FarmerID,
		l.PhoneNumber,
		l.TemplateKey,
		l.Status,
		l.RetryCount,
	).Scan(&l.CreatedAt)
}

func (p *pgSmsLogRepo) UpdateAttempt(ctx context.Context, id string, retryCount int, lastError string) error {
	query := `
		UPDATE sms_delivery_logs
		SET retry_count = $1, error_message = $2
		WHERE id = $3`

	ct, err := p.db.Exec(ctx, query, retryCount, lastError, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (p *pgSmsLogRepo) MarkSent(ctx context.Context, id string, retryCount int, messageID string) error {
	query := `
		UPDATE sms_delivery_logs
		SET status = $1, retry_count = $2, message_id = $3, error_message = ''
		WHERE id = $4`

	ct, err := p.db.Exec(ctx, query, domain.SmsStatusSent, retryCount, messageID, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (p *pgSmsLogRepo) MarkFailed(ctx context.Context, id string, retryCount int, lastError string) error {
	query := `
		UPDATE sms_delivery_logs
		SET status = $1, retry_count = $2, error_message = $3
		WHERE id = $4`

	ct, err := p.db.Exec(ctx, query, domain.SmsStatusFailed, retryCount, lastError, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// MarkDelivered upgrades a SENT row when the provider's delivery receipt
// callback arrives.
func (p *pgSmsLogRepo) MarkDelivered(ctx context.Context, providerMessageID string) error {
	query := `
		UPDATE sms_delivery_logs
		SET status = $1
		WHERE message_id = $2
		  AND status = $3`

	ct, err := p.db.Exec(ctx, query, domain.SmsStatusDelivered, providerMessageID, domain.SmsStatusSent)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (p *pgSmsLogRepo) CountDeliveredSince(ctx context.Context, farmerID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sms_delivery_logs
		WHERE farmer_id = $1
		  AND status IN ($2, $3)
		  AND created_at >= $4`

	var count int
	err := p.db.QueryRow(ctx, query, farmerID, domain.SmsStatusSent, domain.SmsStatusDelivered, since).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (p *pgSmsLogRepo) ListByFarmer(ctx context.Context, farmerID string, limit, offset int) ([]*domain.SmsDeliveryLog, error) {
	query := `
		SELECT id, farmer_id, phone_number, template_key, status, retry_count,
		       COALESCE(message_id, ''), COALESCE(error_message, ''), created_at
		FROM sms_delivery_logs
		WHERE farmer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := p.db.Query(ctx, query, farmerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.SmsDeliveryLog
	for rows.Next() {
		var l domain.SmsDeliveryLog
		err := rows.Scan(
			&l.ID,
			&l.FarmerID,
			&l.PhoneNumber,
			&l.TemplateKey,
			&l.Status,
			&l.RetryCount,
			&l.MessageID,
			&l.ErrorMessage,
			&l.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return logs, nil
}
