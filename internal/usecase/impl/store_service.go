package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"
	"ratehub/internal/domain/validation"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// storeService implements the StoreUsecase interface.
type storeService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	qrService  service.QRCodeService
	logger     *slog.Logger
}

// StoreServiceParams holds dependencies for storeService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	StoreRepo  repository.StoreRepository
	RatingRepo repository.RatingRepository
	QRService  service.QRCodeService
	Logger     *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		storeRepo:  params.StoreRepo,
		ratingRepo: params.RatingRepo,
		qrService:  params.QRService,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// validateStoreFields checks the shared field rules for store create and update.
func validateStoreFields(name, email, address string) []string {
	var violations []string

	if n := len(name); n < 1 || n > 60 {
		violations = append(violations, "Name must be between 1 and 60 characters.")
	}
	if email != "" && !validation.ValidEmail(email) {
		violations = append(violations, "Invalid email format.")
	}
	if len(address) > 400 {
		violations = append(violations, "Address must not exceed 400 characters.")
	}

	return violations
}

// CreateStore registers a new store.
func (srv *storeService) CreateStore(ctx context.Context, input *usecase.CreateStoreInput) (*entity.Store, error) {
	if violations := validateStoreFields(input.Name, input.Email, input.Address); len(violations) > 0 {
		return nil, domainerrors.NewValidationError(violations)
	}

	store := &entity.Store{
		Name:    input.Name,
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Address: input.Address,
		OwnerID: input.OwnerID,
	}

	if err := srv.storeRepo.Create(ctx, store); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WithDetails("owner does not exist")
		}
		srv.log(ctx).Error("Failed to create store", slog.Any("error", err))

		return nil, domainerrors.ErrStoreCreationFailed
	}

	srv.log(ctx).Info("Store registered", slog.String("storeID", store.ID.String()))

	return store, nil
}

// GetStore returns one store with its rounded average rating.
func (srv *storeService) GetStore(ctx context.Context, storeID uuid.UUID) (*entity.StoreWithRating, error) {
	store, err := srv.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, domainerrors.ErrInternalError
	}

	average, _, err := srv.ratingRepo.AverageByStore(ctx, storeID)
	if err != nil {
		srv.log(ctx).Error("Failed to average store ratings", slog.String("storeID", storeID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	return &entity.StoreWithRating{
		Store:         *store,
		AverageRating: average,
	}, nil
}

// ListStores returns stores matching the filter, each with its average rating.
func (srv *storeService) ListStores(ctx context.Context, filter repository.StoreFilter, forUser *uuid.UUID) ([]*entity.StoreWithRating, error) {
	stores, err := srv.storeRepo.ListWithRatings(ctx, filter, forUser)
	if err != nil {
		srv.log(ctx).Error("Failed to list stores", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	return stores, nil
}

// UpdateStore modifies a store.
func (srv *storeService) UpdateStore(ctx context.Context, input *usecase.UpdateStoreInput) (*entity.Store, error) {
	if violations := validateStoreFields(input.Name, input.Email, input.Address); len(violations) > 0 {
		return nil, domainerrors.NewValidationError(violations)
	}

	store := &entity.Store{
		ID:      input.StoreID,
		Name:    input.Name,
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Address: input.Address,
		OwnerID: input.OwnerID,
	}

	if err := srv.storeRepo.Update(ctx, store); err != nil {
		switch {
		case errors.Is(err, repository.ErrStoreNotFound):
			return nil, domainerrors.ErrStoreNotFound
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, domainerrors.ErrUserNotFound.WithDetails("owner does not exist")
		default:
			srv.log(ctx).Error("Failed to update store", slog.String("storeID", input.StoreID.String()), slog.Any("error", err))

			return nil, domainerrors.ErrInternalError
		}
	}

	updated, err := srv.storeRepo.FindByID(ctx, input.StoreID)
	if err != nil {
		return nil, domainerrors.ErrInternalError
	}

	return updated, nil
}

// DeleteStore removes a store.
func (srv *storeService) DeleteStore(ctx context.Context, storeID uuid.UUID) error {
	if err := srv.storeRepo.Delete(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return domainerrors.ErrStoreNotFound
		}
		srv.log(ctx).Error("Failed to delete store", slog.String("storeID", storeID.String()), slog.Any("error", err))

		return domainerrors.ErrInternalError
	}

	srv.log(ctx).Info("Store deleted", slog.String("storeID", storeID.String()))

	return nil
}

// StoreQRCode generates the PNG QR code for a store's rating page.
// Owners may only request codes for stores they own.
func (srv *storeService) StoreQRCode(ctx context.Context, requester *entity.User, storeID uuid.UUID) ([]byte, error) {
	store, err := srv.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, domainerrors.ErrInternalError
	}

	if requester.Role != entity.RoleAdmin {
		if store.OwnerID == nil || *store.OwnerID != requester.ID {
			return nil, domainerrors.ErrForbidden
		}
	}

	png, err := srv.qrService.GenerateStoreQR(store.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate store QR code", slog.String("storeID", storeID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	return png, nil
}

// ResolveStoreQR decodes a scanned QR payload and returns the store it points at.
func (srv *storeService) ResolveStoreQR(ctx context.Context, qrData string) (*entity.StoreWithRating, error) {
	storeID, err := srv.qrService.ParseStoreQR(qrData)
	if err != nil {
		srv.log(ctx).Warn("Rejected unparseable store QR payload", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidQRCode
	}

	return srv.GetStore(ctx, storeID)
}
