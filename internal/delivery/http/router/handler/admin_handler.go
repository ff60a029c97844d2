package handler

import (
	"log/slog"
	"net/http"

	"ratehub/internal/delivery/http/response"
	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the administrative endpoints.
type AdminHandler struct {
	accountUC usecase.AccountUsecase
	ratingUC  usecase.RatingUsecase
	logger    *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(accountUC usecase.AccountUsecase, ratingUC usecase.RatingUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		accountUC: accountUC,
		ratingUC:  ratingUC,
		logger:    logger,
	}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address"`
	Role     string `json:"role" validate:"required"`
}

// CreateUser registers an account on behalf of an administrator.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	user, err := h.accountUC.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserView(user), "User created successfully")
}

// ListUsers returns accounts matching the query filters.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	filter := repository.UserFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		Role:    entity.Role(c.QueryParam("role")),
		SortBy:  c.QueryParam("sort_by"),
		Desc:    c.QueryParam("order") == "desc",
	}

	users, err := h.accountUC.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// GetUser returns one account. Store owners carry their average rating.
func (h *AdminHandler) GetUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	detail, err := h.accountUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserDetailView(detail), "")
}

type updateUserRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address"`
	Role    string `json:"role" validate:"required"`
}

// UpdateUser modifies an account's profile fields.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	user, err := h.accountUC.UpdateUser(c.Request().Context(), &usecase.UpdateUserInput{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Role:    entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "User updated successfully")
}

// DeleteUser removes an account.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	if err := h.accountUC.DeleteUser(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

type dashboardView struct {
	Users         int64   `json:"users"`
	Stores        int64   `json:"stores"`
	Ratings       int64   `json:"ratings"`
	AverageRating float64 `json:"average_rating"`
}

// Dashboard returns the platform-wide totals and the overall average rating.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	totals, err := h.accountUC.DashboardTotals(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	average, err := h.ratingUC.OverallAverage(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dashboardView{
		Users:         totals.Users,
		Stores:        totals.Stores,
		Ratings:       totals.Ratings,
		AverageRating: average,
	}, "")
}

// ListRatings returns every rating on the platform.
func (h *AdminHandler) ListRatings(c echo.Context) error {
	details, err := h.ratingUC.ListAllRatings(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRatingDetailViews(details), "")
}

type updateRatingRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

// UpdateRating changes a rating's value by ID.
func (h *AdminHandler) UpdateRating(c echo.Context) error {
	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid rating ID")
	}

	var req updateRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.ratingUC.UpdateRatingByID(c.Request().Context(), ratingID, req.Value); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Rating updated successfully")
}

// DeleteRating removes a rating by ID.
func (h *AdminHandler) DeleteRating(c echo.Context) error {
	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid rating ID")
	}

	if err := h.ratingUC.DeleteRating(c.Request().Context(), ratingID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Rating deleted successfully")
}

// StoreAverages returns the rounded average for every store that has ratings.
func (h *AdminHandler) StoreAverages(c echo.Context) error {
	averages, err := h.ratingUC.AveragesPerStore(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRepoStoreAverageViews(averages), "")
}
