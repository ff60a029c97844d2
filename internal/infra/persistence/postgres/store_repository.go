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

// storeRepository implements the domain.StoreRepository interface using GORM.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

// Create persists a new store entity.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// FindByID retrieves a single store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel
	if err := repo.db.WithContext(ctx).First(&storeM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}

	return toStoreDomain(&storeM), nil
}

// Update modifies an existing store.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	updates := map[string]any{
		"name":     store.Name,
		"email":    store.Email,
		"address":  store.Address,
		"owner_id": store.OwnerID,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", store.ID).
		Updates(updates)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// Delete removes a store by ID.
func (repo *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.StoreModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// storeWithRatingRow is the scan target for the store listing join.
type storeWithRatingRow struct {
	model.StoreModel
	AverageRating float64
	UserRating    *int
}

// ListWithRatings retrieves stores matching the filter, each with the rounded
// average of its ratings. When forUser is non-nil, each row also carries that
// user's own rating of the store. The average is computed and rounded in SQL
// so every read surface agrees on the same one-decimal value.
func (repo *storeRepository) ListWithRatings(ctx context.Context, filter repository.StoreFilter, forUser *uuid.UUID) ([]*entity.StoreWithRating, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Select("stores.*, COALESCE(ROUND(AVG(ratings.value)::numeric, 1), 0)::float8 AS average_rating").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id")

	if forUser != nil {
		query = query.
			Select("stores.*, COALESCE(ROUND(AVG(ratings.value)::numeric, 1), 0)::float8 AS average_rating, MAX(own.value) AS user_rating").
			Joins("LEFT JOIN ratings AS own ON own.store_id = stores.id AND own.user_id = ?", *forUser)
	}

	if filter.Name != "" {
		query = query.Where("stores.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		query = query.Where("stores.email ILIKE ?", "%"+filter.Email+"%")
	}
	if filter.Address != "" {
		query = query.Where("stores.address ILIKE ?", "%"+filter.Address+"%")
	}
	if filter.OwnerID != nil {
		query = query.Where("stores.owner_id = ?", *filter.OwnerID)
	}

	switch filter.SortBy {
	case "name":
		query = query.Order(orderClause("stores.name", filter.Desc))
	case "email":
		query = query.Order(orderClause("stores.email", filter.Desc))
	}

	var rows []*storeWithRatingRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores with ratings")
	}

	stores := make([]*entity.StoreWithRating, 0, len(rows))
	for _, row := range rows {
		stores = append(stores, &entity.StoreWithRating{
			Store:         *toStoreDomain(&row.StoreModel),
			AverageRating: row.AverageRating,
			UserRating:    row.UserRating,
		})
	}

	return stores, nil
}

// Count returns the total number of stores.
func (repo *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.StoreModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count stores")
	}

	return count, nil
}

func orderClause(column string, desc bool) string {
	if desc {
		return column + " DESC"
	}

	return column
}

// toStoreDomain converts a GORM StoreModel to a domain Store entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Address:   data.Address,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromStoreDomain converts a domain Store entity to a GORM StoreModel for persistence.
func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:      data.ID,
		Name:    data.Name,
		Email:   data.Email,
		Address: data.Address,
		OwnerID: data.OwnerID,
	}
}
