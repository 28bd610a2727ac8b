package handlers

import (
	"net/http"

	accountssvc "github.com/kingsubin/soob/internal/services/accounts"
	postssvc "github.com/kingsubin/soob/internal/services/posts"
	"github.com/kingsubin/soob/internal/transport/http/dto"
	httperrors "github.com/kingsubin/soob/internal/transport/http/errors"
)

type PostHandler struct {
	posts    *postssvc.Service
	accounts *accountssvc.Service
}

func NewPostHandler(posts *postssvc.Service, accounts *accountssvc.Service) *PostHandler {
	return &PostHandler{posts: posts, accounts: accounts}
}

func (h *PostHandler) Boards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.posts.Boards(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.NewBoardListResponse(boards))
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	boardID, ok := urlParamID(r, "boardID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid board id")
		return
	}

	limit, offset := parseListParams(r)
	posts, err := h.posts.ListByBoard(r.Context(), boardID, limit, offset)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.NewPostListResponse(posts))
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := urlParamID(r, "postID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid post id")
		return
	}

	post, err := h.posts.Get(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.NewPostResponse(post))
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	boardID, ok := urlParamID(r, "boardID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid board id")
		return
	}

	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	post, err := h.posts.Create(r.Context(), boardID, account.ID, req.Title, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, dto.NewPostResponse(post))
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, ok := urlParamID(r, "postID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid post id")
		return
	}

	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	post, err := h.posts.Update(r.Context(), postID, account.ID, req.Title, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.NewPostResponse(post))
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, ok := urlParamID(r, "postID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid post id")
		return
	}

	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), postID, account.ID); err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
