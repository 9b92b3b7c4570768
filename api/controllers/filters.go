package controllers

import (
	"net/http"

	"github.com/shopease/shopease-backend/api/middleware"
	"github.com/shopease/shopease-backend/api/responses"
	"github.com/shopease/shopease-backend/api/validators"
	pkgerrors "github.com/shopease/shopease-backend/pkg/errors"
	"github.com/shopease/shopease-backend/pkg/logger"
)

type setFiltersPayload struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

type filtersView struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// FiltersSet stores the session-owned search text and category selection.
func FiltersSet(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		var payload setFiltersPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sess.SetFilters(payload.Search, payload.Category)
		search, category := sess.Filters()
		responses.WriteSuccess(w, filtersView{Search: search, Category: category})
	}
}

// FiltersGet returns the stored filter inputs.
func FiltersGet(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		search, category := sess.Filters()
		responses.WriteSuccess(w, filtersView{Search: search, Category: category})
	}
}
