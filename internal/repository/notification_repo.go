package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// NotificationRepository owns the in_app_notifications table.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.InAppNotification) (*domain.InAppNotification, error)
	GetByID(ctx context.Context, id int64) (*domain.InAppNotification, error)
	FindByEventID(ctx context.Context, eventID string) (*domain.InAppNotification, error)
	ListByFarmer(ctx context.Context, farmerID string, limit, offset int) ([]*domain.InAppNotification, error)
	ListUnread(ctx context.Context, farmerID string, limit, offset int) ([]*domain.InAppNotification, error)
	CountUnread(ctx context.Context, farmerID string) (int, error)
	MarkAsRead(ctx context.Context, id int64, farmerID string) error
	MarkAllRead(ctx context.Context, farmerID string) (int64, error)
	DeleteByID(ctx context.Context, id int64, farmerID string) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type pgNotificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) NotificationRepository {
	return &pgNotificationRepo{db: db}
}

const notificationCols = `
	id, request_id, farmer_id, type, title, body, deeplink, metadata, is_read, created_at`

func (p *pgNotificationRepo) Create(ctx context.Context, n *domain.InAppNotification) (*domain.InAppNotification, error) {
	if n.RequestID == "" {
		n.RequestID = uuid.New().String()
	}

	query := `
		INSERT INTO in_app_notifications (
			request_id, farmer_id, type, title, body, deeplink, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + notificationCols

	row := p.db.QueryRow(ctx, query,
		n.RequestID,
		n.FarmerID,
		n.Type,
		n.Title,
		n.Body,
		n.Deeplink,
		n.Metadata,
	)

	var created domain.InAppNotification
	if err := scanNotification(row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *pgNotificationRepo) GetByID(ctx context.Context, id int64) (*domain.InAppNotification, error) {
	query := `SELECT` + notificationCols + `
		FROM in_app_notifications
		WHERE id = $1`

	var n domain.InAppNotification
	if err := scanNotification(p.db.QueryRow(ctx, query, id), &n); err != nil {
		if err == pgx.ErrNoRows {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindByEventID is the durable half of the dispatcher's idempotency check.
func (p *pgNotificationRepo) FindByEventID(ctx context.Context, eventID string) (*domain.InAppNotification, error) {
	query := `SELECT` + notificationCols + `
		FROM in_app_notifications
		WHERE metadata->>'event_id' = $1
		LIMIT 1`

	var n domain.InAppNotification
	if err := scanNotification(p.db.QueryRow(ctx, query, eventID), &n); err != nil {
		if err == pgx.ErrNoRows {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (p *pgNotificationRepo) ListByFarmer(ctx context.Context, farmerID string, limit, offset int) ([]*domain.InAppNotification, error) {
	query := `SELECT` + notificationCols + `
		FROM in_app_notifications
		WHERE farmer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	return p.queryMany(ctx, query, farmerID, limit, offset)
}

func (p *pgNotificationRepo) ListUnread(ctx context.Context, farmerID string, limit, offset int) ([]*domain.InAppNotification, error) {
	query := `SELECT` + notificationCols + `
		FROM in_app_notifications
		WHERE farmer_id = $1
		  AND is_read = false
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	return p.queryMany(ctx, query, farmerID, limit, offset)
}

func (p *pgNotificationRepo) CountUnread(ctx context.Context, farmerID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM in_app_notifications
		WHERE farmer_id = $1
		  AND is_read = false`

	var count int
	if err := p.db.QueryRow(ctx, query, farmerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *pgNotificationRepo) MarkAsRead(ctx context.Context, id int64, farmerID string) error {
	query := `
		UPDATE in_app_notifications
		SET is_read = true
		WHERE id = $1
		  AND farmer_id = $2
		  AND is_read = false`

	ct, err := p.db.Exec(ctx, query, id, farmerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (p *pgNotificationRepo) MarkAllRead(ctx context.Context, farmerID string) (int64, error) {
	query := `
		UPDATE in_app_notifications
		SET is_read = true
		WHERE farmer_id = $1
		  AND is_read = false`

	ct, err := p.db.Exec(ctx, query, farmerID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (p *pgNotificationRepo) DeleteByID(ctx context.Context, id int64, farmerID string) error {
	query := `
		DELETE FROM in_app_notifications
		WHERE id = $1
		  AND farmer_id = $2`

	ct, err := p.db.Exec(ctx, query, id, farmerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// DeleteReadBefore removes read records older than the cutoff. Unread rows
// are never reaped; the retention job only touches what the farmer has seen.
func (p *pgNotificationRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM in_app_notifications
		WHERE is_read = true
		  AND created_at < $1`

	ct, err := p.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (p *pgNotificationRepo) queryMany(ctx context.Context, query string, args ...interface{}) ([]*domain.InAppNotification, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.InAppNotification
	for rows.Next() {
		var n domain.InAppNotification
		if err := scanNotification(rows, &n); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return notifications, nil
}

func scanNotification(row pgx.Row, n *domain.InAppNotification) error {
	return row.Scan(
		&n.ID,
		&n.RequestID,
		&n.FarmerID,
		&n.Type,
		&n.Title,
		&n.Body,
		&n.Deeplink,
		&n.Metadata,
		&n.IsRead,
		&n.CreatedAt,
	)
}
