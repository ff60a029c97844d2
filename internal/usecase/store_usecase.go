package usecase

import (
	"context"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateStoreInput defines the data required to register a store.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID *uuid.UUID
}

// UpdateStoreInput defines the mutable fields of a store.
type UpdateStoreInput struct {
	StoreID uuid.UUID
	Name    string
	Email   string
	Address string
	OwnerID *uuid.UUID
}

// StoreUsecase defines the interface for store catalogue operations.
type StoreUsecase interface {
	// CreateStore registers a new store (administrative).
	CreateStore(ctx context.Context, input *CreateStoreInput) (*entity.Store, error)

	// GetStore returns one store with its rounded average rating.
	GetStore(ctx context.Context, storeID uuid.UUID) (*entity.StoreWithRating, error)

	// ListStores returns stores matching the filter, each with its average rating.
	// When forUser is non-nil, each row also carries that user's own rating.
	ListStores(ctx context.Context, filter repository.StoreFilter, forUser *uuid.UUID) ([]*entity.StoreWithRating, error)

	// UpdateStore modifies a store (administrative).
	UpdateStore(ctx context.Context, input *UpdateStoreInput) (*entity.Store, error)

	// DeleteStore removes a store (administrative).
	DeleteStore(ctx context.Context, storeID uuid.UUID) error

	// StoreQRCode generates the PNG QR code for a store's rating page.
	// A store owner may only request codes for stores they own; admins may
	// request any store's code.
	StoreQRCode(ctx context.Context, requester *entity.User, storeID uuid.UUID) ([]byte, error)

	// ResolveStoreQR decodes a scanned QR payload and returns the store it
	// points at, with its average rating.
	ResolveStoreQR(ctx context.Context, qrData string) (*entity.StoreWithRating, error)
}
