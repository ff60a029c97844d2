// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"
	"ratehub/internal/domain/validation"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	storeRepo    repository.StoreRepository
	ratingRepo   repository.RatingRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	StoreRepo    repository.StoreRepository
	RatingRepo   repository.RatingRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		storeRepo:    params.StoreRepo,
		ratingRepo:   params.RatingRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new account with a self-registrable role.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleUser
	}
	// Admin accounts can only be created by another administrator.
	if role == entity.RoleAdmin {
		srv.log(ctx).Warn("Signup rejected for non-self-registrable role", slog.String("email", input.Email))

		return nil, domainerrors.ErrRoleNotAllowed
	}

	violations := validation.ValidateNewAccount(validation.AccountInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Address:  input.Address,
		Role:     role,
	}, validation.PolicySelf)
	if len(violations) > 0 {
		return nil, domainerrors.NewValidationError(violations)
	}

	user, err := srv.createAccount(ctx, input.Name, input.Email, input.Password, input.Address, role)
	if err != nil {
		return nil, err
	}

	token, err := srv.tokenService.Issue(user.ID, user.Role)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token after signup", slog.String("userID", user.ID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed
	}

	srv.log(ctx).Info("Account registered",
		slog.String("userID", user.ID.String()),
		slog.String("role", user.Role.String()),
	)

	return &usecase.SignupOutput{
		AccessToken: token,
		ExpiresIn:   int64(srv.tokenService.AccessTokenDuration().Seconds()),
		User:        user,
	}, nil
}

// createAccount hashes the password and inserts the user inside a transaction.
// The email pre-check is a fast path for a clean 409; the unique index remains
// the authoritative guard when two signups race.
func (srv *accountService) createAccount(ctx context.Context, name, email, password, address string, role entity.Role) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hashedPassword, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	var created *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return domainerrors.ErrEmailTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		newUser := &entity.User{
			Name:         name,
			Email:        email,
			PasswordHash: hashedPassword,
			Address:      address,
			Role:         role,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			if errors.Is(err, repository.ErrEmailTaken) {
				return domainerrors.ErrEmailTaken
			}

			return errors.Wrap(err, "failed to create user")
		}

		created = newUser

		return nil
	})
	if err != nil {
		if appErr := asAppError(err); appErr != nil {
			return nil, appErr
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrUserCreationFailed
	}

	return created, nil
}

// Login verifies credentials and issues a session token. A missing account and
// a wrong password both surface as ErrInvalidCredentials so the response never
// reveals whether the email is registered.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		srv.log(ctx).Error("Failed to load user during login", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.Issue(user.ID, user.Role)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.String("userID", user.ID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed
	}

	srv.log(ctx).Info("Login succeeded", slog.String("userID", user.ID.String()))

	return &usecase.LoginOutput{
		AccessToken: token,
		ExpiresIn:   int64(srv.tokenService.AccessTokenDuration().Seconds()),
		User:        user,
	}, nil
}

// GetMe returns the account behind an authenticated session.
func (srv *accountService) GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.ErrInternalError
	}

	return user, nil
}

// UpdatePassword changes the caller's password after verifying the old one.
func (srv *accountService) UpdatePassword(ctx context.Context, input *usecase.UpdatePasswordInput) error {
	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return domainerrors.ErrInternalError
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		return domainerrors.ErrOldPasswordMismatch
	}

	if err := validation.ValidatePassword(input.NewPassword); err != nil {
		return domainerrors.NewValidationError([]string{err.Error()})
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed
	}

	if err := srv.userRepo.UpdatePassword(ctx, input.UserID, hashedPassword); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		srv.log(ctx).Error("Failed to persist new password", slog.String("userID", input.UserID.String()), slog.Any("error", err))

		return domainerrors.ErrUserUpdateFailed
	}

	srv.log(ctx).Info("Password updated", slog.String("userID", input.UserID.String()))

	return nil
}

// CreateUser registers an account on behalf of an administrator.
// The stricter administrative name rule applies and any role is allowed.
func (srv *accountService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	violations := validation.ValidateNewAccount(validation.AccountInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Address:  input.Address,
		Role:     input.Role,
	}, validation.PolicyAdmin)
	if len(violations) > 0 {
		return nil, domainerrors.NewValidationError(violations)
	}

	user, err := srv.createAccount(ctx, input.Name, input.Email, input.Password, input.Address, input.Role)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account created by administrator",
		slog.String("userID", user.ID.String()),
		slog.String("role", user.Role.String()),
	)

	return user, nil
}

// GetUser returns one account. Store owners additionally carry the rounded
// average rating across their stores.
func (srv *accountService) GetUser(ctx context.Context, userID uuid.UUID) (*usecase.UserDetail, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.ErrInternalError
	}

	detail := &usecase.UserDetail{User: user}
	if user.Role != entity.RoleStoreOwner {
		return detail, nil
	}

	average, err := srv.ownerAverageRating(ctx, userID)
	if err != nil {
		srv.log(ctx).Warn("Failed to compute owner average rating", slog.String("userID", userID.String()), slog.Any("error", err))

		return detail, nil
	}
	detail.AverageRating = average

	return detail, nil
}

// ownerAverageRating computes the rating-count weighted mean across all stores
// owned by the user, rounded to one decimal. Nil means the owner has no rated store.
func (srv *accountService) ownerAverageRating(ctx context.Context, ownerID uuid.UUID) (*float64, error) {
	stores, err := srv.storeRepo.ListWithRatings(ctx, repository.StoreFilter{OwnerID: &ownerID}, nil)
	if err != nil {
		return nil, err
	}

	var sum float64
	var total int64
	for _, store := range stores {
		avg, count, err := srv.ratingRepo.AverageByStore(ctx, store.ID)
		if err != nil {
			return nil, err
		}
		sum += avg * float64(count)
		total += count
	}

	if total == 0 {
		return nil, nil
	}

	average := math.Round(sum/float64(total)*10) / 10

	return &average, nil
}

// ListUsers returns the accounts matching the filter.
func (srv *accountService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to list users", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	return users, nil
}

// UpdateUser modifies an account's profile fields.
func (srv *accountService) UpdateUser(ctx context.Context, input *usecase.UpdateUserInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, domainerrors.NewValidationError([]string{"Invalid role."})
	}

	user := &entity.User{
		ID:      input.UserID,
		Name:    input.Name,
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Address: input.Address,
		Role:    input.Role,
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, domainerrors.ErrUserNotFound
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, domainerrors.ErrEmailTaken
		default:
			srv.log(ctx).Error("Failed to update user", slog.String("userID", input.UserID.String()), slog.Any("error", err))

			return nil, domainerrors.ErrUserUpdateFailed
		}
	}

	return srv.GetMe(ctx, input.UserID)
}

// DeleteUser removes an account.
func (srv *accountService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		srv.log(ctx).Error("Failed to delete user", slog.String("userID", userID.String()), slog.Any("error", err))

		return domainerrors.ErrInternalError
	}

	srv.log(ctx).Info("Account deleted", slog.String("userID", userID.String()))

	return nil
}

// DashboardTotals returns the platform-wide entity counts.
func (srv *accountService) DashboardTotals(ctx context.Context) (*usecase.DashboardTotals, error) {
	users, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, domainerrors.ErrInternalError
	}

	stores, err := srv.storeRepo.Count(ctx)
	if err != nil {
		return nil, domainerrors.ErrInternalError
	}

	ratings, err := srv.ratingRepo.Count(ctx)
	if err != nil {
		return nil, domainerrors.ErrInternalError
	}

	return &usecase.DashboardTotals{
		Users:   users,
		Stores:  stores,
		Ratings: ratings,
	}, nil
}

// asAppError unwraps err to an AppError if one is in its chain.
func asAppError(err error) domainerrors.AppError {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return nil
}
