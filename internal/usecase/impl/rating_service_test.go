package impl

import (
	"context"
	"testing"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ratingFixture struct {
	ratingRepo *mockRatingRepo
	storeRepo  *mockStoreRepo
	publisher  *mockPublisher
	svc        usecase.RatingUsecase
}

func newRatingFixture() *ratingFixture {
	f := &ratingFixture{
		ratingRepo: &mockRatingRepo{},
		storeRepo:  &mockStoreRepo{},
		publisher:  &mockPublisher{},
	}
	tx := &mockTxManager{storeRepo: f.storeRepo, ratingRepo: f.ratingRepo}
	f.svc = NewRatingService(RatingServiceParams{
		TxManager:  tx,
		RatingRepo: f.ratingRepo,
		StoreRepo:  f.storeRepo,
		Publisher:  f.publisher,
		Logger:     newDiscardLogger(),
	})

	return f
}

func TestRatingService_SubmitRating(t *testing.T) {
	f := newRatingFixture()

	userID := uuid.New()
	storeID := uuid.New()
	f.storeRepo.On("FindByID", mock.Anything, storeID).Return(&entity.Store{ID: storeID}, nil)
	f.ratingRepo.On("FindByUserAndStore", mock.Anything, userID, storeID).Return(nil, repository.ErrRatingNotFound)
	f.ratingRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Rating) bool {
		return r.UserID == userID && r.StoreID == storeID && r.Value == 4
	})).Return(nil)
	f.publisher.On("PublishRatingEvent", mock.Anything, mock.MatchedBy(func(e *service.RatingEvent) bool {
		return e.Value == 4 && e.StoreID == storeID.String()
	})).Return(nil)

	rating, err := f.svc.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Value:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Value)
	f.publisher.AssertExpectations(t)
}

func TestRatingService_SubmitRating_ValueOutOfRange(t *testing.T) {
	f := newRatingFixture()

	for _, value := range []int{0, 6, -1, 100} {
		_, err := f.svc.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
			UserID:  uuid.New(),
			StoreID: uuid.New(),
			Value:   value,
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidRatingValue, "value %d should be rejected", value)
	}
	f.ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRatingService_SubmitRating_StoreMissing(t *testing.T) {
	f := newRatingFixture()

	storeID := uuid.New()
	f.storeRepo.On("FindByID", mock.Anything, storeID).Return(nil, repository.ErrStoreNotFound)

	_, err := f.svc.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  uuid.New(),
		StoreID: storeID,
		Value:   3,
	})
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestRatingService_SubmitRating_DuplicatePreCheck(t *testing.T) {
	f := newRatingFixture()

	userID := uuid.New()
	storeID := uuid.New()
	f.storeRepo.On("FindByID", mock.Anything, storeID).Return(&entity.Store{ID: storeID}, nil)
	f.ratingRepo.On("FindByUserAndStore", mock.Anything, userID, storeID).
		Return(&entity.Rating{UserID: userID, StoreID: storeID, Value: 5}, nil)

	_, err := f.svc.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Value:   3,
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateRating)
	f.ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRatingService_SubmitRating_DuplicateRace(t *testing.T) {
	f := newRatingFixture()

	// Pre-check passes but a concurrent writer wins; the unique index reports
	// the duplicate at insert time.
	userID := uuid.New()
	storeID := uuid.New()
	f.storeRepo.On("FindByID", mock.Anything, storeID).Return(&entity.Store{ID: storeID}, nil)
	f.ratingRepo.On("FindByUserAndStore", mock.Anything, userID, storeID).Return(nil, repository.ErrRatingNotFound)
	f.ratingRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateRating)

	_, err := f.svc.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Value:   3,
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateRating)
}

func TestRatingService_SubmitRating_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newRatingFixture()

	userID := uuid.New()
	storeID := uuid.New()
	f.storeRepo.On("FindByID", mock.Anything, storeID).Return(&entity.Store{ID: storeID}, nil)
	f.ratingRepo.On("FindByUserAndStore", mock.Anything, userID, storeID).Return(nil, repository.ErrRatingNotFound)
	f.ratingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishRatingEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	rating, err := f.svc.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Value:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Value)
}

func TestRatingService_UpdateRating(t *testing.T) {
	f := newRatingFixture()

	userID := uuid.New()
	storeID := uuid.New()
	f.ratingRepo.On("UpdateValue", mock.Anything, userID, storeID, 2).Return(nil)

	err := f.svc.UpdateRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Value:   2,
	})
	require.NoError(t, err)
}

func TestRatingService_UpdateRating_NeverUpserts(t *testing.T) {
	f := newRatingFixture()

	userID := uuid.New()
	storeID := uuid.New()
	f.ratingRepo.On("UpdateValue", mock.Anything, userID, storeID, 2).Return(repository.ErrRatingNotFound)

	err := f.svc.UpdateRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Value:   2,
	})
	assert.ErrorIs(t, err, domainerrors.ErrRatingNotFound)
	f.ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRatingService_ListOwnerRatings(t *testing.T) {
	f := newRatingFixture()

	ownerID := uuid.New()
	storeA := uuid.New()
	storeB := uuid.New()
	f.storeRepo.On("ListWithRatings", mock.Anything, repository.StoreFilter{OwnerID: &ownerID}, (*uuid.UUID)(nil)).
		Return([]*entity.StoreWithRating{
			{Store: entity.Store{ID: storeA, Name: "Alpha"}},
			{Store: entity.Store{ID: storeB, Name: "Beta"}},
		}, nil)
	f.ratingRepo.On("ListByStore", mock.Anything, storeA).
		Return([]*entity.RatingDetail{{StoreName: "Alpha", Value: 5}}, nil)
	f.ratingRepo.On("ListByStore", mock.Anything, storeB).
		Return([]*entity.RatingDetail{{StoreName: "Beta", Value: 3}, {StoreName: "Beta", Value: 4}}, nil)

	details, err := f.svc.ListOwnerRatings(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, details, 3)
}

func TestRatingService_OwnerAverages(t *testing.T) {
	f := newRatingFixture()

	ownerID := uuid.New()
	storeID := uuid.New()
	f.storeRepo.On("ListWithRatings", mock.Anything, repository.StoreFilter{OwnerID: &ownerID}, (*uuid.UUID)(nil)).
		Return([]*entity.StoreWithRating{{Store: entity.Store{ID: storeID, Name: "Alpha"}}}, nil)
	f.ratingRepo.On("AverageByStore", mock.Anything, storeID).Return(3.7, int64(11), nil)

	averages, err := f.svc.OwnerAverages(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, averages, 1)
	assert.Equal(t, "Alpha", averages[0].StoreName)
	assert.InDelta(t, 3.7, averages[0].AverageRating, 0.001)
	assert.Equal(t, int64(11), averages[0].RatingCount)
}

func TestRatingService_OwnerAverages_NoStores(t *testing.T) {
	f := newRatingFixture()

	ownerID := uuid.New()
	f.storeRepo.On("ListWithRatings", mock.Anything, repository.StoreFilter{OwnerID: &ownerID}, (*uuid.UUID)(nil)).
		Return([]*entity.StoreWithRating{}, nil)

	averages, err := f.svc.OwnerAverages(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Empty(t, averages)
}

func TestRatingService_UpdateRatingByID_InvalidValue(t *testing.T) {
	f := newRatingFixture()

	err := f.svc.UpdateRatingByID(context.Background(), uuid.New(), 9)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRatingValue)
}

func TestRatingService_DeleteRating_NotFound(t *testing.T) {
	f := newRatingFixture()

	ratingID := uuid.New()
	f.ratingRepo.On("Delete", mock.Anything, ratingID).Return(repository.ErrRatingNotFound)

	err := f.svc.DeleteRating(context.Background(), ratingID)
	assert.ErrorIs(t, err, domainerrors.ErrRatingNotFound)
}

func TestRatingService_OverallAverage(t *testing.T) {
	f := newRatingFixture()

	f.ratingRepo.On("AverageOverall", mock.Anything).Return(4.1, nil)

	average, err := f.svc.OverallAverage(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 4.1, average, 0.001)
}
