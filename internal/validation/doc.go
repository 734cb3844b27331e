// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

// Package validation validates API request structs with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide. Request structs carry
// `validate` tags; failures become a *RequestValidationError whose
// ToAPIError form is the VALIDATION_ERROR body the API returns:
//
//	type listingRequest struct {
//	    Era    string `query:"era" validate:"omitempty,era"`
//	    Limit  int    `query:"limit" validate:"min=1,max=500"`
//	    Offset int    `query:"offset" validate:"min=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
package validation
