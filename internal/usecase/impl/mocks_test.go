package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Repository mocks ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)

	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockStoreRepo struct {
	mock.Mock
}

func (m *mockStoreRepo) Create(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)

	return args.Error(0)
}

func (m *mockStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *mockStoreRepo) Update(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)

	return args.Error(0)
}

func (m *mockStoreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockStoreRepo) ListWithRatings(ctx context.Context, filter repository.StoreFilter, forUser *uuid.UUID) ([]*entity.StoreWithRating, error) {
	args := m.Called(ctx, filter, forUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.StoreWithRating), args.Error(1)
}

func (m *mockStoreRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockRatingRepo struct {
	mock.Mock
}

func (m *mockRatingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)

	return args.Error(0)
}

func (m *mockRatingRepo) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *mockRatingRepo) UpdateValue(ctx context.Context, userID, storeID uuid.UUID, value int) error {
	args := m.Called(ctx, userID, storeID, value)

	return args.Error(0)
}

func (m *mockRatingRepo) UpdateValueByID(ctx context.Context, id uuid.UUID, value int) error {
	args := m.Called(ctx, id, value)

	return args.Error(0)
}

func (m *mockRatingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockRatingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserRating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.UserRating), args.Error(1)
}

func (m *mockRatingRepo) ListAll(ctx context.Context) ([]*entity.RatingDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RatingDetail), args.Error(1)
}

func (m *mockRatingRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.RatingDetail, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RatingDetail), args.Error(1)
}

func (m *mockRatingRepo) AverageByStore(ctx context.Context, storeID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, storeID)

	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *mockRatingRepo) AverageOverall(ctx context.Context) (float64, error) {
	args := m.Called(ctx)

	return args.Get(0).(float64), args.Error(1)
}

func (m *mockRatingRepo) AveragesPerStore(ctx context.Context) ([]*repository.StoreAverage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.StoreAverage), args.Error(1)
}

func (m *mockRatingRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

// --- Transaction manager mock ---

// mockTxManager runs the callback against a factory that hands back the test's
// repository mocks, so transactional code paths are exercised without a database.
type mockTxManager struct {
	userRepo   *mockUserRepo
	storeRepo  *mockStoreRepo
	ratingRepo *mockRatingRepo
}

func (m *mockTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *mockTxManager) UserRepo() repository.UserRepository {
	return m.userRepo
}

func (m *mockTxManager) StoreRepo() repository.StoreRepository {
	return m.storeRepo
}

func (m *mockTxManager) RatingRepo() repository.RatingRepository {
	return m.ratingRepo
}

// --- Domain service mocks ---

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(userID uuid.UUID, role entity.Role) (string, error) {
	args := m.Called(userID, role)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Validate(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *mockTokenService) AccessTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishRatingEvent(ctx context.Context, event *service.RatingEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

type mockQRService struct {
	mock.Mock
}

func (m *mockQRService) GenerateStoreQR(storeID uuid.UUID) ([]byte, error) {
	args := m.Called(storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockQRService) ParseStoreQR(qrData string) (uuid.UUID, error) {
	args := m.Called(qrData)

	return args.Get(0).(uuid.UUID), args.Error(1)
}
