package controllers

import (
	"net/http"
	"time"

	"github.com/minjaepark/commerce-backend/api/responses"
	"github.com/minjaepark/commerce-backend/api/validators"
	"github.com/minjaepark/commerce-backend/internal/users"
	pkgAuth "github.com/minjaepark/commerce-backend/pkg/auth"
	"github.com/minjaepark/commerce-backend/pkg/config"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
	"github.com/minjaepark/commerce-backend/pkg/logger"
)

type loginRequest struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	User        *users.UserView `json:"user"`
}

// AuthLogin verifies credentials and issues an access token.
func AuthLogin(svc users.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Authenticate(r.Context(), body.LoginID, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := pkgAuth.MintAccessToken(jwtCfg, time.Now(), pkgAuth.AccessTokenPayload{
			UserID:  user.ID,
			LoginID: user.LoginID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issuing token"))
			return
		}

		responses.WriteSuccess(w, loginResponse{AccessToken: token, User: user})
	}
}
