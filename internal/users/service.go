package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minjaepark/commerce-backend/pkg/config"
	"github.com/minjaepark/commerce-backend/pkg/db"
	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
	"github.com/minjaepark/commerce-backend/pkg/security"
)

// Service defines account operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*UserView, error)
	Get(ctx context.Context, userID uuid.UUID) (*UserView, error)
	Authenticate(ctx context.Context, loginID, password string) (*UserView, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
}

type service struct {
	repo     Repository
	password config.PasswordConfig
}

// NewService builds a user service with the required dependencies.
func NewService(repo Repository, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, password: password}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*UserView, error) {
	loginID := strings.TrimSpace(input.LoginID)
	if loginID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "login id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.BirthDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "birth date required")
	}
	if err := security.ValidateRawPassword(input.Password, input.BirthDate); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		LoginID:      loginID,
		PasswordHash: hash,
		Name:         name,
		BirthDate:    input.BirthDate,
		Email:        strings.TrimSpace(input.Email),
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "idx_users_login_id") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "login id already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	view := toUserView(user)
	return &view, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	view := toUserView(user)
	return &view, nil
}

// Authenticate resolves a login id and password to the account they belong
// to. Unknown accounts and wrong passwords read the same way to callers.
func (s *service) Authenticate(ctx context.Context, loginID, password string) (*UserView, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	user, err := s.repo.FindByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	view := toUserView(user)
	return &view, nil
}

func (s *service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password does not match")
	}

	if err := security.ValidateRawPassword(input.NewPassword, user.BirthDate); err != nil {
		return err
	}

	hash, err := security.HashPassword(input.NewPassword, s.password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return nil
}

func toUserView(user *models.User) UserView {
	return UserView{
		ID:        user.ID,
		LoginID:   user.LoginID,
		Name:      user.Name,
		BirthDate: user.BirthDate,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
