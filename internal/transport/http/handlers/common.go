package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kingsubin/soob/internal/domain/model"
	"github.com/kingsubin/soob/internal/repo/postgres"
	accountssvc "github.com/kingsubin/soob/internal/services/accounts"
	authsvc "github.com/kingsubin/soob/internal/services/auth"
	commentssvc "github.com/kingsubin/soob/internal/services/comments"
	heartssvc "github.com/kingsubin/soob/internal/services/hearts"
	postssvc "github.com/kingsubin/soob/internal/services/posts"
	httperrors "github.com/kingsubin/soob/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func urlParamID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeConflict(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

// handleServiceError maps the service sentinels onto HTTP statuses. Anything
// unrecognized is an internal error; the concrete cause stays in the logs.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accountssvc.ErrInvalidEmail),
		errors.Is(err, accountssvc.ErrInvalidNickname),
		errors.Is(err, accountssvc.ErrInvalidPassword),
		errors.Is(err, accountssvc.ErrPasswordMismatch),
		errors.Is(err, accountssvc.ErrVerificationKey),
		errors.Is(err, postssvc.ErrEmptyTitle),
		errors.Is(err, postssvc.ErrEmptyContent),
		errors.Is(err, commentssvc.ErrEmptyContent):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, accountssvc.ErrDuplicateEmail),
		errors.Is(err, accountssvc.ErrDuplicateNickname):
		writeConflict(w, "DUPLICATE", err.Error())
	case errors.Is(err, accountssvc.ErrPasswordNotMatched):
		writeUnauthorized(w, "UNAUTHORIZED", "invalid credentials")
	case errors.Is(err, postssvc.ErrNotAuthor),
		errors.Is(err, commentssvc.ErrNotAuthor),
		errors.Is(err, heartssvc.ErrOwnContent):
		writeForbidden(w, "FORBIDDEN", err.Error())
	case errors.Is(err, postgres.ErrAccountNotFound),
		errors.Is(err, postgres.ErrBoardNotFound),
		errors.Is(err, postgres.ErrPostNotFound),
		errors.Is(err, postgres.ErrCommentNotFound),
		errors.Is(err, postgres.ErrAttachmentNotFound):
		writeNotFound(w, "NOT_FOUND", err.Error())
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

// accountLoader resolves the request principal into a stored account.
type accountLoader interface {
	FindByEmail(ctx context.Context, email string) (model.Account, error)
}

// currentAccount loads the account behind the authenticated principal.
// A false return means the response has already been written.
func currentAccount(w http.ResponseWriter, r *http.Request, loader accountLoader) (model.Account, bool) {
	principal, ok := authsvc.PrincipalFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return model.Account{}, false
	}

	account, err := loader.FindByEmail(r.Context(), principal.Subject)
	if err != nil {
		handleServiceError(w, err)
		return model.Account{}, false
	}
	return account, true
}

func parseListParams(r *http.Request) (limit, offset int) {
	query := r.URL.Query()
	limit, _ = strconv.Atoi(query.Get("limit"))
	offset, _ = strconv.Atoi(query.Get("offset"))
	return limit, offset
}
