package usecase

import (
	"context"
	"time"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/internal/repository"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// NotificationUsecase serves the in-app notification history and read state.
type NotificationUsecase struct {
	repo repository.NotificationRepository
	logs repository.SmsLogRepository
}

func NewNotificationUsecase(repo repository.NotificationRepository, logs repository.SmsLogRepository) *NotificationUsecase {
	return &NotificationUsecase{repo: repo, logs: logs}
}

func (uc *NotificationUsecase) List(ctx context.Context, farmerID string, limit, offset int) ([]*domain.InAppNotification, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.ListByFarmer(ctx, farmerID, limit, offset)
}

func (uc *NotificationUsecase) ListUnread(ctx context.Context, farmerID string, limit, offset int) ([]*domain.InAppNotification, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.ListUnread(ctx, farmerID, limit, offset)
}

func (uc *NotificationUsecase) CountUnread(ctx context.Context, farmerID string) (int, error) {
	return uc.repo.CountUnread(ctx, farmerID)
}

func (uc *NotificationUsecase) MarkAsRead(ctx context.Context, id int64, farmerID string) error {
	if id <= 0 {
		return xerrors.ErrInvalidInput
	}
	return uc.repo.MarkAsRead(ctx, id, farmerID)
}

func (uc *NotificationUsecase) MarkAllRead(ctx context.Context, farmerID string) (int64, error) {
	return uc.repo.MarkAllRead(ctx, farmerID)
}

func (uc *NotificationUsecase) Delete(ctx context.Context, id int64, farmerID string) error {
	if id <= 0 {
		return xerrors.ErrInvalidInput
	}
	return uc.repo.DeleteByID(ctx, id, farmerID)
}

// PruneRead deletes read records older than maxAge (retention job).
func (uc *NotificationUsecase) PruneRead(ctx context.Context, maxAge time.Duration) (int64, error) {
	return uc.repo.DeleteReadBefore(ctx, time.Now().Add(-maxAge))
}

// SmsAudit lists the farmer's SMS delivery log for support and audit.
func (uc *NotificationUsecase) SmsAudit(ctx context.Context, farmerID string, limit, offset int) ([]*domain.SmsDeliveryLog, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.logs.ListByFarmer(ctx, farmerID, limit, offset)
}
