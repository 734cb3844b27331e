// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/models"
	"github.com/tomtom215/bookend/internal/validation"
)

// CriteriaRequest holds the catalog filter parameters shared by the
// overview, ranking and listing endpoints.
type CriteriaRequest struct {
	Genres  []string `query:"genres" validate:"max=50,dive,max=200"`
	Authors []string `query:"authors" validate:"max=50,dive,max=200"`
	YearMin *int     `query:"year_min" validate:"omitempty,gte=0,lte=9999"`
	YearMax *int     `query:"year_max" validate:"omitempty,gte=0,lte=9999"`
	Era     string   `query:"era" validate:"omitempty,era"`
	Where   string   `query:"where" validate:"max=1024"`
	Session string   `query:"session" validate:"omitempty,session_id"`
}

// parseCriteriaRequest reads the criteria parameters of r.
func parseCriteriaRequest(r *http.Request) (*CriteriaRequest, *validation.RequestValidationError) {
	q := r.URL.Query()
	req := &CriteriaRequest{
		Genres:  queryValues(r, "genres"),
		Authors: repeatedValues(r, "authors"),
		Era:     strings.ToLower(strings.TrimSpace(q.Get("era"))),
		Where:   strings.TrimSpace(q.Get("where")),
		Session: strings.TrimSpace(q.Get("session")),
	}

	var verr *validation.RequestValidationError
	if req.YearMin, verr = optionalIntParam(r, "year_min"); verr != nil {
		return nil, verr
	}
	if req.YearMax, verr = optionalIntParam(r, "year_max"); verr != nil {
		return nil, verr
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}

// state builds the raw filter state. A bound left open defaults to the
// dataset bound on that side.
func (c *CriteriaRequest) state(bounds models.YearRange) models.FilterState {
	state := models.FilterState{
		Genres:  c.Genres,
		Authors: c.Authors,
		Era:     models.Era(c.Era),
		Where:   c.Where,
	}
	if c.YearMin != nil || c.YearMax != nil {
		years := bounds
		if c.YearMin != nil {
			years.Min = *c.YearMin
		}
		if c.YearMax != nil {
			years.Max = *c.YearMax
		}
		state.Years = &years
	}
	return state
}

// criteria resolves the filter state of a catalog request. A session
// parameter loads the saved state and ignores the other criteria;
// otherwise the query parameters are normalized.
func (h *Handler) criteria(r *http.Request) (models.FilterState, error) {
	req, verr := parseCriteriaRequest(r)
	if verr != nil {
		return models.FilterState{}, verr
	}

	if req.Session != "" {
		ctx := logging.ContextWithFilterSession(r.Context(), req.Session)
		state, err := h.filters.Load(ctx, req.Session)
		if err != nil {
			return models.FilterState{}, err
		}
		logging.Ctx(ctx).Debug().Msg("Criteria loaded from filter session")
		return state, nil
	}

	return h.catalog.Normalize(req.state(h.catalog.Options().Years))
}
