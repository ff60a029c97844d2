package handler

import (
	"log/slog"
	"net/http"

	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/response"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RatingHandler holds dependencies for rating-related handlers.
type RatingHandler struct {
	uc     usecase.RatingUsecase
	logger *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler, injected by Fx.
func NewRatingHandler(uc usecase.RatingUsecase, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitRatingRequest struct {
	StoreID string `json:"store_id" validate:"required,uuid"`
	Value   int    `json:"value" validate:"required,min=1,max=5"`
}

// SubmitRating records the caller's first rating of a store.
func (h *RatingHandler) SubmitRating(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	rating, err := h.uc.SubmitRating(c.Request().Context(), &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Value:   req.Value,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toRatingView(rating), "Rating submitted successfully")
}

type updateRatingValueRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

// UpdateRating changes the value of the caller's existing rating of a store.
func (h *RatingHandler) UpdateRating(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}

	storeID, err := uuid.Parse(c.Param("store_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	var req updateRatingValueRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	err = h.uc.UpdateRating(c.Request().Context(), &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Value:   req.Value,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Rating updated successfully")
}

// ListMyRatings returns the caller's ratings joined with store info.
func (h *RatingHandler) ListMyRatings(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}

	ratings, err := h.uc.ListMyRatings(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserRatingViews(ratings), "")
}

// ListOwnerRatings returns the ratings submitted against the owner's stores.
func (h *RatingHandler) ListOwnerRatings(c echo.Context) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}

	details, err := h.uc.ListOwnerRatings(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRatingDetailViews(details), "")
}

// OwnerAverages returns the rounded average for each of the owner's stores.
func (h *RatingHandler) OwnerAverages(c echo.Context) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}

	averages, err := h.uc.OwnerAverages(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreAverageViews(averages), "")
}
