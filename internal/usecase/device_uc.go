package usecase

import (
	"context"
	"time"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/internal/repository"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// DeviceUsecase manages the push token registry.
type DeviceUsecase struct {
	repo repository.DeviceRepository
}

func NewDeviceUsecase(repo repository.DeviceRepository) *DeviceUsecase {
	return &DeviceUsecase{repo: repo}
}

// Register upserts a token for a farmer; re-registering an existing token
// refreshes it and reactivates it.
func (uc *DeviceUsecase) Register(ctx context.Context, farmerID, token, deviceType string) (*domain.DeviceToken, error) {
	if farmerID == "" || token == "" {
		return nil, xerrors.ErrInvalidInput
	}
	if deviceType == "" {
		deviceType = "android"
	}
	return uc.repo.Upsert(ctx, &domain.DeviceToken{
		FarmerID:   farmerID,
		Token:      token,
		DeviceType: deviceType,
	})
}

// Unregister deactivates a token; the row stays for the retention job.
func (uc *DeviceUsecase) Unregister(ctx context.Context, farmerID, token string) error {
	if farmerID == "" || token == "" {
		return xerrors.ErrInvalidInput
	}
	return uc.repo.Deactivate(ctx, farmerID, token)
}

func (uc *DeviceUsecase) ListActive(ctx context.Context, farmerID string) ([]*domain.DeviceToken, error) {
	return uc.repo.ListActiveByFarmer(ctx, farmerID)
}

// PruneInactive hard-deletes tokens that have been inactive past maxAge.
func (uc *DeviceUsecase) PruneInactive(ctx context.Context, maxAge time.Duration) (int64, error) {
	return uc.repo.DeleteInactiveBefore(ctx, time.Now().Add(-maxAge))
}
