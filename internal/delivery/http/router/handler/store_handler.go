package handler

import (
	"log/slog"
	"net/http"

	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/response"
	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StoreHandler holds dependencies for store-related handlers.
type StoreHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler, injected by Fx.
func NewStoreHandler(uc usecase.StoreUsecase, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		uc:     uc,
		logger: logger,
	}
}

// storeFilterFromQuery builds the listing filter from query parameters.
func storeFilterFromQuery(c echo.Context) repository.StoreFilter {
	return repository.StoreFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		SortBy:  c.QueryParam("sort_by"),
		Desc:    c.QueryParam("order") == "desc",
	}
}

// ListStores returns stores with averages and the caller's own ratings.
func (h *StoreHandler) ListStores(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}

	stores, err := h.uc.ListStores(c.Request().Context(), storeFilterFromQuery(c), &userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreViews(stores), "")
}

// AdminListStores returns stores with averages for the admin catalogue view.
func (h *StoreHandler) AdminListStores(c echo.Context) error {
	stores, err := h.uc.ListStores(c.Request().Context(), storeFilterFromQuery(c), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreViews(stores), "")
}

// GetStore returns one store with its average rating.
func (h *StoreHandler) GetStore(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	store, err := h.uc.GetStore(c.Request().Context(), storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreView(store), "")
}

type storeRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID string `json:"owner_id" validate:"omitempty,uuid"`
}

func (req *storeRequest) ownerID(c echo.Context) (*uuid.UUID, error) {
	if req.OwnerID == "" {
		return nil, nil
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return nil, response.BadRequest(c, "INVALID_INPUT", "Invalid owner ID")
	}

	return &ownerID, nil
}

// CreateStore registers a new store.
func (h *StoreHandler) CreateStore(c echo.Context) error {
	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ownerID, err := req.ownerID(c)
	if err != nil {
		return err
	}

	store, err := h.uc.CreateStore(c.Request().Context(), &usecase.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: ownerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toStoreCoreView(store), "Store registered successfully")
}

// UpdateStore modifies a store.
func (h *StoreHandler) UpdateStore(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ownerID, err := req.ownerID(c)
	if err != nil {
		return err
	}

	store, err := h.uc.UpdateStore(c.Request().Context(), &usecase.UpdateStoreInput{
		StoreID: storeID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: ownerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreCoreView(store), "Store updated successfully")
}

// DeleteStore removes a store.
func (h *StoreHandler) DeleteStore(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	if err := h.uc.DeleteStore(c.Request().Context(), storeID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Store deleted successfully")
}

type resolveQRRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

// ResolveStoreQR resolves a scanned QR payload to the store it belongs to.
func (h *StoreHandler) ResolveStoreQR(c echo.Context) error {
	var req resolveQRRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid QR payload")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	store, err := h.uc.ResolveStoreQR(c.Request().Context(), req.QRData)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreView(store), "")
}

// StoreQRCode returns the PNG QR code linking to a store's rating page.
func (h *StoreHandler) StoreQRCode(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}
	role, ok := middleware.Role(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated role")
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	requester := &entity.User{ID: userID, Role: role}
	png, err := h.uc.StoreQRCode(c.Request().Context(), requester, storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
