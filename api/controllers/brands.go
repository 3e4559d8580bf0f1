package controllers

import (
	"net/http"

	"github.com/minjaepark/commerce-backend/api/responses"
	"github.com/minjaepark/commerce-backend/api/validators"
	"github.com/minjaepark/commerce-backend/internal/brands"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
	"github.com/minjaepark/commerce-backend/pkg/logger"
)

type registerBrandRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type updateBrandRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// BrandRegister creates a new brand.
func BrandRegister(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body registerBrandRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Register(r.Context(), brands.RegisterInput{
			Name:        body.Name,
			Description: body.Description,
			ImageURL:    body.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

// BrandGet returns a single live brand.
func BrandGet(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brandID, err := validators.ParseUUIDParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Get(r.Context(), brandID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}

// BrandList returns a page of live brands, newest first.
func BrandList(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// BrandUpdate applies partial edits to a brand.
func BrandUpdate(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brandID, err := validators.ParseUUIDParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateBrandRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Update(r.Context(), brandID, brands.UpdateInput{
			Name:        body.Name,
			Description: body.Description,
			ImageURL:    body.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}

// BrandDelete soft-deletes a brand and everything sold under it.
func BrandDelete(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brandID, err := validators.ParseUUIDParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), brandID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
