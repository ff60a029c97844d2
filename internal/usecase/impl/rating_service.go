package impl

import (
	"context"
	"log/slog"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	txManager  repository.TransactionManager
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// RatingServiceParams holds dependencies for ratingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	RatingRepo repository.RatingRepository
	StoreRepo  repository.StoreRepository
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		txManager:  params.TxManager,
		ratingRepo: params.RatingRepo,
		storeRepo:  params.StoreRepo,
		publisher:  params.Publisher,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitRating records a user's first rating of a store. The pre-check gives a
// clean duplicate error on the common path; the composite unique index catches
// the race when two submissions arrive together, so the second one still fails.
func (srv *ratingService) SubmitRating(ctx context.Context, input *usecase.SubmitRatingInput) (*entity.Rating, error) {
	if !entity.ValidValue(input.Value) {
		return nil, domainerrors.ErrInvalidRatingValue
	}

	var created *entity.Rating
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		if _, err := storeRepo.FindByID(ctx, input.StoreID); err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound
			}

			return errors.Wrap(err, "failed to load store for rating")
		}

		if _, err := ratingRepo.FindByUserAndStore(ctx, input.UserID, input.StoreID); err == nil {
			return domainerrors.ErrDuplicateRating
		} else if !errors.Is(err, repository.ErrRatingNotFound) {
			return errors.Wrap(err, "failed to check for existing rating")
		}

		rating := &entity.Rating{
			UserID:  input.UserID,
			StoreID: input.StoreID,
			Value:   input.Value,
		}
		if err := ratingRepo.Create(ctx, rating); err != nil {
			if errors.Is(err, repository.ErrDuplicateRating) {
				return domainerrors.ErrDuplicateRating
			}

			return errors.Wrap(err, "failed to create rating")
		}

		created = rating

		return nil
	})
	if err != nil {
		if appErr := asAppError(err); appErr != nil {
			return nil, appErr
		}
		srv.log(ctx).Error("Failed to execute rating submission transaction",
			slog.String("userID", input.UserID.String()),
			slog.String("storeID", input.StoreID.String()),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrInternalError
	}

	srv.publishRatingEvent(ctx, created)

	return created, nil
}

// publishRatingEvent notifies downstream consumers of a new rating.
// Publishing is best-effort; a failure is logged and never fails the request.
func (srv *ratingService) publishRatingEvent(ctx context.Context, rating *entity.Rating) {
	event := &service.RatingEvent{
		RequestID: deliverycontext.RequestIDFrom(ctx),
		RatingID:  rating.ID.String(),
		UserID:    rating.UserID.String(),
		StoreID:   rating.StoreID.String(),
		Value:     rating.Value,
		RatedAt:   rating.CreatedAt,
	}

	if err := srv.publisher.PublishRatingEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish rating event",
			slog.String("ratingID", rating.ID.String()),
			slog.Any("error", err),
		)
	}
}

// UpdateRating changes the value of the caller's existing rating of a store.
// It never creates a rating: updating before submitting is a 404.
func (srv *ratingService) UpdateRating(ctx context.Context, input *usecase.SubmitRatingInput) error {
	if !entity.ValidValue(input.Value) {
		return domainerrors.ErrInvalidRatingValue
	}

	if err := srv.ratingRepo.UpdateValue(ctx, input.UserID, input.StoreID, input.Value); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return domainerrors.ErrRatingNotFound
		}
		if appErr := asAppError(err); appErr != nil {
			return appErr
		}
		srv.log(ctx).Error("Failed to update rating",
			slog.String("userID", input.UserID.String()),
			slog.String("storeID", input.StoreID.String()),
			slog.Any("error", err),
		)

		return domainerrors.ErrInternalError
	}

	return nil
}

// ListMyRatings returns the caller's ratings joined with store info.
func (srv *ratingService) ListMyRatings(ctx context.Context, userID uuid.UUID) ([]*entity.UserRating, error) {
	ratings, err := srv.ratingRepo.ListByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list user ratings", slog.String("userID", userID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	return ratings, nil
}

// ListAllRatings returns every rating on the platform.
func (srv *ratingService) ListAllRatings(ctx context.Context) ([]*entity.RatingDetail, error) {
	ratings, err := srv.ratingRepo.ListAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list all ratings", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	return ratings, nil
}

// ListOwnerRatings returns the ratings submitted against the owner's stores.
func (srv *ratingService) ListOwnerRatings(ctx context.Context, ownerID uuid.UUID) ([]*entity.RatingDetail, error) {
	stores, err := srv.storeRepo.ListWithRatings(ctx, repository.StoreFilter{OwnerID: &ownerID}, nil)
	if err != nil {
		srv.log(ctx).Error("Failed to list owner stores", slog.String("ownerID", ownerID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	var details []*entity.RatingDetail
	for _, store := range stores {
		storeRatings, err := srv.ratingRepo.ListByStore(ctx, store.ID)
		if err != nil {
			srv.log(ctx).Error("Failed to list store ratings", slog.String("storeID", store.ID.String()), slog.Any("error", err))

			return nil, domainerrors.ErrInternalError
		}
		details = append(details, storeRatings...)
	}

	return details, nil
}

// OwnerAverages returns the rounded average for each of the owner's stores.
func (srv *ratingService) OwnerAverages(ctx context.Context, ownerID uuid.UUID) ([]*usecase.StoreAverageOutput, error) {
	stores, err := srv.storeRepo.ListWithRatings(ctx, repository.StoreFilter{OwnerID: &ownerID}, nil)
	if err != nil {
		srv.log(ctx).Error("Failed to list owner stores", slog.String("ownerID", ownerID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	averages := make([]*usecase.StoreAverageOutput, 0, len(stores))
	for _, store := range stores {
		avg, count, err := srv.ratingRepo.AverageByStore(ctx, store.ID)
		if err != nil {
			srv.log(ctx).Error("Failed to average store ratings", slog.String("storeID", store.ID.String()), slog.Any("error", err))

			return nil, domainerrors.ErrInternalError
		}
		averages = append(averages, &usecase.StoreAverageOutput{
			StoreID:       store.ID,
			StoreName:     store.Name,
			AverageRating: avg,
			RatingCount:   count,
		})
	}

	return averages, nil
}

// UpdateRatingByID changes a rating's value by ID.
func (srv *ratingService) UpdateRatingByID(ctx context.Context, ratingID uuid.UUID, value int) error {
	if !entity.ValidValue(value) {
		return domainerrors.ErrInvalidRatingValue
	}

	if err := srv.ratingRepo.UpdateValueByID(ctx, ratingID, value); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return domainerrors.ErrRatingNotFound
		}
		if appErr := asAppError(err); appErr != nil {
			return appErr
		}

		return domainerrors.ErrInternalError
	}

	return nil
}

// DeleteRating removes a rating by ID.
func (srv *ratingService) DeleteRating(ctx context.Context, ratingID uuid.UUID) error {
	if err := srv.ratingRepo.Delete(ctx, ratingID); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return domainerrors.ErrRatingNotFound
		}

		return domainerrors.ErrInternalError
	}

	return nil
}

// OverallAverage returns the rounded mean across every rating on the platform.
func (srv *ratingService) OverallAverage(ctx context.Context) (float64, error) {
	average, err := srv.ratingRepo.AverageOverall(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to compute overall average", slog.Any("error", err))

		return 0, domainerrors.ErrInternalError
	}

	return average, nil
}

// AveragesPerStore returns the rounded mean for every store that has ratings.
func (srv *ratingService) AveragesPerStore(ctx context.Context) ([]*repository.StoreAverage, error) {
	averages, err := srv.ratingRepo.AveragesPerStore(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to compute per-store averages", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	return averages, nil
}
