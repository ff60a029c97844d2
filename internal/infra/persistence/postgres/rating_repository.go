package postgres

import (
	"context"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ratingRepository implements the domain.RatingRepository interface using GORM.
// All averages are rounded in SQL with ROUND(AVG(value)::numeric, 1) so the
// half-up one-decimal semantics live in exactly one place.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

// Create inserts a new rating. The composite unique index on (user_id, store_id)
// is the authoritative duplicate guard: when two requests race past the
// application pre-check, the second insert lands here as ErrDuplicateRating.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRating
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrStoreNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidRatingValue
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// FindByUserAndStore retrieves the rating a user gave a store, if any.
func (repo *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel
	err := repo.db.WithContext(ctx).
		First(&ratingM, "user_id = ? AND store_id = ?", userID, storeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by user and store")
	}

	return toRatingDomain(&ratingM), nil
}

// UpdateValue changes the value of the existing rating for the (user, store)
// pair. RowsAffected of zero means no rating exists; update never upserts.
func (repo *ratingRepository) UpdateValue(ctx context.Context, userID, storeID uuid.UUID, value int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Update("value", value)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidRatingValue
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// UpdateValueByID changes a rating's value by rating ID.
func (repo *ratingRepository) UpdateValueByID(ctx context.Context, id uuid.UUID, value int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("id = ?", id).
		Update("value", value)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidRatingValue
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update rating by id")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// Delete removes a rating by ID.
func (repo *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.RatingModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// ListByUser retrieves all of a user's ratings joined with store info.
func (repo *ratingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserRating, error) {
	var rows []*entity.UserRating
	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("ratings.id AS rating_id, ratings.store_id, stores.name AS store_name, stores.address AS store_address, ratings.value, ratings.created_at").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Where("ratings.user_id = ?", userID).
		Order("ratings.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by user")
	}

	return rows, nil
}

// ListAll retrieves every rating joined with user and store info, newest first.
func (repo *ratingRepository) ListAll(ctx context.Context) ([]*entity.RatingDetail, error) {
	var rows []*entity.RatingDetail
	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("ratings.id AS rating_id, ratings.value, stores.name AS store_name, stores.address AS store_address, users.name AS user_name, users.email AS user_email, ratings.created_at").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Joins("JOIN users ON users.id = ratings.user_id").
		Order("ratings.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all ratings")
	}

	return rows, nil
}

// ListByStore retrieves a store's ratings joined with user info, newest first.
func (repo *ratingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.RatingDetail, error) {
	var rows []*entity.RatingDetail
	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("ratings.id AS rating_id, ratings.value, stores.name AS store_name, stores.address AS store_address, users.name AS user_name, users.email AS user_email, ratings.created_at").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by store")
	}

	return rows, nil
}

// AverageByStore returns the rounded mean of a store's ratings and the rating count.
func (repo *ratingRepository) AverageByStore(ctx context.Context, storeID uuid.UUID) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("COALESCE(ROUND(AVG(value)::numeric, 1), 0)::float8 AS average, COUNT(*) AS total").
		Where("store_id = ?", storeID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to average ratings for store")
	}

	return row.Average, row.Total, nil
}

// AverageOverall returns the rounded mean across all ratings, 0 when none exist.
func (repo *ratingRepository) AverageOverall(ctx context.Context) (float64, error) {
	var average float64
	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("COALESCE(ROUND(AVG(value)::numeric, 1), 0)::float8").
		Scan(&average).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to average all ratings")
	}

	return average, nil
}

// AveragesPerStore returns the rounded mean for every store that has ratings.
func (repo *ratingRepository) AveragesPerStore(ctx context.Context) ([]*repository.StoreAverage, error) {
	var rows []*repository.StoreAverage
	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("ratings.store_id, stores.name AS store_name, ROUND(AVG(ratings.value)::numeric, 1)::float8 AS average").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Group("ratings.store_id, stores.name").
		Order("stores.name").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to average ratings per store")
	}

	return rows, nil
}

// Count returns the total number of ratings.
func (repo *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.RatingModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count ratings")
	}

	return count, nil
}

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		UserID:    data.UserID,
		StoreID:   data.StoreID,
		Value:     data.Value,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel for persistence.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:      data.ID,
		UserID:  data.UserID,
		StoreID: data.StoreID,
		Value:   data.Value,
	}
}
