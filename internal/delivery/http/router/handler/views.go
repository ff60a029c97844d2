package handler

import (
	"time"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
)

// userView is the wire shape of an account. The password hash never appears here.
type userView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	return &userView{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// userDetailView extends userView with the owner's average rating when present.
type userDetailView struct {
	userView
	AverageRating *float64 `json:"average_rating,omitempty"`
}

func toUserDetailView(detail *usecase.UserDetail) *userDetailView {
	return &userDetailView{
		userView:      *toUserView(detail.User),
		AverageRating: detail.AverageRating,
	}
}

// storeCoreView is the wire shape of a store without derived rating data,
// returned by the administrative create and update operations.
type storeCoreView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toStoreCoreView(store *entity.Store) *storeCoreView {
	if store == nil {
		return nil
	}

	return &storeCoreView{
		ID:        store.ID,
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}

// storeView is the wire shape of a store in listings, with rating data attached.
type storeView struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Address       string     `json:"address"`
	OwnerID       *uuid.UUID `json:"owner_id,omitempty"`
	AverageRating float64    `json:"average_rating"`
	UserRating    *int       `json:"user_rating,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toStoreView(store *entity.StoreWithRating) *storeView {
	if store == nil {
		return nil
	}

	return &storeView{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: store.AverageRating,
		UserRating:    store.UserRating,
		CreatedAt:     store.CreatedAt,
	}
}

func toStoreViews(stores []*entity.StoreWithRating) []*storeView {
	views := make([]*storeView, 0, len(stores))
	for _, store := range stores {
		views = append(views, toStoreView(store))
	}

	return views
}

// ratingView is the wire shape of a submitted rating.
type ratingView struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRatingView(rating *entity.Rating) *ratingView {
	if rating == nil {
		return nil
	}

	return &ratingView{
		ID:        rating.ID,
		StoreID:   rating.StoreID,
		Value:     rating.Value,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// userRatingView is the wire shape of one of the caller's ratings with store info.
type userRatingView struct {
	RatingID     uuid.UUID `json:"rating_id"`
	StoreID      uuid.UUID `json:"store_id"`
	StoreName    string    `json:"store_name"`
	StoreAddress string    `json:"store_address"`
	Value        int       `json:"value"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserRatingViews(ratings []*entity.UserRating) []*userRatingView {
	views := make([]*userRatingView, 0, len(ratings))
	for _, rating := range ratings {
		views = append(views, &userRatingView{
			RatingID:     rating.RatingID,
			StoreID:      rating.StoreID,
			StoreName:    rating.StoreName,
			StoreAddress: rating.StoreAddress,
			Value:        rating.Value,
			CreatedAt:    rating.CreatedAt,
		})
	}

	return views
}

// ratingDetailView is the wire shape of a rating joined with its user and store,
// served to administrators and store owners.
type ratingDetailView struct {
	RatingID     uuid.UUID `json:"rating_id"`
	Value        int       `json:"value"`
	StoreName    string    `json:"store_name"`
	StoreAddress string    `json:"store_address"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	CreatedAt    time.Time `json:"created_at"`
}

func toRatingDetailViews(details []*entity.RatingDetail) []*ratingDetailView {
	views := make([]*ratingDetailView, 0, len(details))
	for _, detail := range details {
		views = append(views, &ratingDetailView{
			RatingID:     detail.RatingID,
			Value:        detail.Value,
			StoreName:    detail.StoreName,
			StoreAddress: detail.StoreAddress,
			UserName:     detail.UserName,
			UserEmail:    detail.UserEmail,
			CreatedAt:    detail.CreatedAt,
		})
	}

	return views
}

// storeAverageView is the wire shape of a store's rounded average rating.
type storeAverageView struct {
	StoreID       uuid.UUID `json:"store_id"`
	StoreName     string    `json:"store_name"`
	AverageRating float64   `json:"average_rating"`
	RatingCount   int64     `json:"rating_count,omitempty"`
}

func toStoreAverageViews(averages []*usecase.StoreAverageOutput) []*storeAverageView {
	views := make([]*storeAverageView, 0, len(averages))
	for _, avg := range averages {
		views = append(views, &storeAverageView{
			StoreID:       avg.StoreID,
			StoreName:     avg.StoreName,
			AverageRating: avg.AverageRating,
			RatingCount:   avg.RatingCount,
		})
	}

	return views
}

func toRepoStoreAverageViews(averages []*repository.StoreAverage) []*storeAverageView {
	views := make([]*storeAverageView, 0, len(averages))
	for _, avg := range averages {
		views = append(views, &storeAverageView{
			StoreID:       avg.StoreID,
			StoreName:     avg.StoreName,
			AverageRating: avg.Average,
		})
	}

	return views
}
