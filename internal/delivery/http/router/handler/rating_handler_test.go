package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/validator"
	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRatingUsecase struct {
	mock.Mock
}

func (m *mockRatingUsecase) SubmitRating(ctx context.Context, input *usecase.SubmitRatingInput) (*entity.Rating, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *mockRatingUsecase) UpdateRating(ctx context.Context, input *usecase.SubmitRatingInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *mockRatingUsecase) ListMyRatings(ctx context.Context, userID uuid.UUID) ([]*entity.UserRating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.UserRating), args.Error(1)
}

func (m *mockRatingUsecase) ListAllRatings(ctx context.Context) ([]*entity.RatingDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RatingDetail), args.Error(1)
}

func (m *mockRatingUsecase) ListOwnerRatings(ctx context.Context, ownerID uuid.UUID) ([]*entity.RatingDetail, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RatingDetail), args.Error(1)
}

func (m *mockRatingUsecase) OwnerAverages(ctx context.Context, ownerID uuid.UUID) ([]*usecase.StoreAverageOutput, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*usecase.StoreAverageOutput), args.Error(1)
}

func (m *mockRatingUsecase) UpdateRatingByID(ctx context.Context, ratingID uuid.UUID, value int) error {
	return m.Called(ctx, ratingID, value).Error(0)
}

func (m *mockRatingUsecase) DeleteRating(ctx context.Context, ratingID uuid.UUID) error {
	return m.Called(ctx, ratingID).Error(0)
}

func (m *mockRatingUsecase) OverallAverage(ctx context.Context) (float64, error) {
	args := m.Called(ctx)

	return args.Get(0).(float64), args.Error(1)
}

func (m *mockRatingUsecase) AveragesPerStore(ctx context.Context) ([]*repository.StoreAverage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.StoreAverage), args.Error(1)
}

func newHandlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRatingRequestContext builds an echo context with the request validator
// installed, the way the server assembles it.
func newRatingRequestContext(method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, userID)

	return c, rec
}

func TestRatingHandler_SubmitRating(t *testing.T) {
	uc := &mockRatingUsecase{}
	h := NewRatingHandler(uc, newHandlerTestLogger())

	userID := uuid.New()
	storeID := uuid.New()
	uc.On("SubmitRating", mock.Anything, &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Value:   4,
	}).Return(&entity.Rating{ID: uuid.New(), StoreID: storeID, Value: 4}, nil)

	body := `{"store_id":"` + storeID.String() + `","value":4}`
	c, rec := newRatingRequestContext(http.MethodPost, "/user/ratings", body, userID)

	err := h.SubmitRating(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestRatingHandler_SubmitRating_ValueOutOfRange(t *testing.T) {
	uc := &mockRatingUsecase{}
	h := NewRatingHandler(uc, newHandlerTestLogger())

	body := `{"store_id":"` + uuid.New().String() + `","value":6}`
	c, rec := newRatingRequestContext(http.MethodPost, "/user/ratings", body, uuid.New())

	err := h.SubmitRating(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "SubmitRating", mock.Anything, mock.Anything)
}

func TestRatingHandler_SubmitRating_MissingStoreID(t *testing.T) {
	uc := &mockRatingUsecase{}
	h := NewRatingHandler(uc, newHandlerTestLogger())

	c, rec := newRatingRequestContext(http.MethodPost, "/user/ratings", `{"value":3}`, uuid.New())

	err := h.SubmitRating(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "SubmitRating", mock.Anything, mock.Anything)
}

func TestRatingHandler_SubmitRating_MalformedStoreID(t *testing.T) {
	uc := &mockRatingUsecase{}
	h := NewRatingHandler(uc, newHandlerTestLogger())

	c, rec := newRatingRequestContext(http.MethodPost, "/user/ratings", `{"store_id":"not-a-uuid","value":3}`, uuid.New())

	err := h.SubmitRating(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "SubmitRating", mock.Anything, mock.Anything)
}

func TestRatingHandler_UpdateRating_ValueOutOfRange(t *testing.T) {
	uc := &mockRatingUsecase{}
	h := NewRatingHandler(uc, newHandlerTestLogger())

	storeID := uuid.New()
	c, rec := newRatingRequestContext(http.MethodPut, "/user/ratings/"+storeID.String(), `{"value":0}`, uuid.New())
	c.SetParamNames("store_id")
	c.SetParamValues(storeID.String())

	err := h.UpdateRating(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything)
}
