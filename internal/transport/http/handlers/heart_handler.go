package handlers

import (
	"context"
	"net/http"

	accountssvc "github.com/kingsubin/soob/internal/services/accounts"
	heartssvc "github.com/kingsubin/soob/internal/services/hearts"
	"github.com/kingsubin/soob/internal/transport/http/dto"
	httperrors "github.com/kingsubin/soob/internal/transport/http/errors"
)

type HeartHandler struct {
	hearts   *heartssvc.Service
	accounts *accountssvc.Service
}

func NewHeartHandler(hearts *heartssvc.Service, accounts *accountssvc.Service) *HeartHandler {
	return &HeartHandler{hearts: hearts, accounts: accounts}
}

func (h *HeartHandler) HeartPost(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, h.hearts.HeartPost)
}

func (h *HeartHandler) UnheartPost(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, h.hearts.UnheartPost)
}

func (h *HeartHandler) HeartComment(w http.ResponseWriter, r *http.Request) {
	h.comment(w, r, h.hearts.HeartComment)
}

func (h *HeartHandler) UnheartComment(w http.ResponseWriter, r *http.Request) {
	h.comment(w, r, h.hearts.UnheartComment)
}

func (h *HeartHandler) post(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, accountID, postID int64) (int, error)) {
	postID, ok := urlParamID(r, "postID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid post id")
		return
	}

	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	count, err := op(r.Context(), account.ID, postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.HeartCountResponse{HeartCount: count})
}

func (h *HeartHandler) comment(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, accountID, commentID int64) (int, error)) {
	commentID, ok := urlParamID(r, "commentID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid comment id")
		return
	}

	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	count, err := op(r.Context(), account.ID, commentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.HeartCountResponse{HeartCount: count})
}
