// Package handlers contains the HTTP layer. Handlers parse the request,
// call one planning.Service method and translate the outcome into the
// message/data envelope. All business rules live in pkg/planning.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"strategic-planning-backend/pkg/database"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"
)

// writeServiceError maps domain errors to HTTP status codes. Validation
// failures and conflicts come back as 400, missing documents as a
// standardized 404; anything unexpected is logged and hidden behind 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		utils.WriteBadRequestResponse(w, verrs.First())
	case errors.Is(err, database.ErrNotFound):
		utils.WriteNotFoundResponse(w, "Resource not found")
	case errors.Is(err, database.ErrDuplicate),
		errors.Is(err, planning.ErrAlreadyInvited),
		errors.Is(err, planning.ErrNoPendingInvitation),
		errors.Is(err, planning.ErrInvalidResetToken),
		errors.Is(err, planning.ErrUnknownCategory):
		utils.WriteBadRequestResponse(w, err.Error())
	case errors.Is(err, planning.ErrInvalidCredentials):
		utils.WriteUnauthorizedResponse(w, err.Error())
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		utils.WriteInternalServerErrorResponse(w, "Internal server error")
	}
}

// writeServiceErrorUnlessNotFound behaves like writeServiceError but
// swallows missing-document errors by writing the caller's success
// message instead. Used where revealing existence would leak data.
func writeServiceErrorUnlessNotFound(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, database.ErrNotFound) {
		utils.WriteSuccessResponse(w, "If the email is registered, a reset token has been issued", nil)
		return
	}
	writeServiceError(w, r, err)
}

// decodeBody parses a JSON body into v, rejecting unknown fields. On
// failure it writes the 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := utils.ParseJSONBody(r, v); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
