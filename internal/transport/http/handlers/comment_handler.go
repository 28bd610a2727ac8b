package handlers

import (
	"net/http"

	accountssvc "github.com/kingsubin/soob/internal/services/accounts"
	commentssvc "github.com/kingsubin/soob/internal/services/comments"
	"github.com/kingsubin/soob/internal/transport/http/dto"
	httperrors "github.com/kingsubin/soob/internal/transport/http/errors"
)

type CommentHandler struct {
	comments *commentssvc.Service
	accounts *accountssvc.Service
}

func NewCommentHandler(comments *commentssvc.Service, accounts *accountssvc.Service) *CommentHandler {
	return &CommentHandler{comments: comments, accounts: accounts}
}

func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := urlParamID(r, "postID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid post id")
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.NewCommentListResponse(comments))
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, ok := urlParamID(r, "postID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid post id")
		return
	}

	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	comment, err := h.comments.Create(r.Context(), postID, account.ID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, dto.NewCommentResponse(comment))
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, ok := urlParamID(r, "commentID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid comment id")
		return
	}

	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	comment, err := h.comments.Update(r.Context(), commentID, account.ID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.NewCommentResponse(comment))
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, ok := urlParamID(r, "commentID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid comment id")
		return
	}

	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	if err := h.comments.Delete(r.Context(), commentID, account.ID); err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
