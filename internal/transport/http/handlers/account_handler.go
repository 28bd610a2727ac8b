package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	accountssvc "github.com/kingsubin/soob/internal/services/accounts"
	authsvc "github.com/kingsubin/soob/internal/services/auth"
	"github.com/kingsubin/soob/internal/transport/http/dto"
	httperrors "github.com/kingsubin/soob/internal/transport/http/errors"
)

type AccountHandler struct {
	accounts *accountssvc.Service
	sessions *authsvc.Service
	cookies  authsvc.CookieCarrier
}

func NewAccountHandler(accounts *accountssvc.Service, sessions *authsvc.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions}
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	account, err := h.accounts.Signup(r.Context(), req.Email, req.Nickname, req.Password, req.ConfirmPassword)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewAccountResponse(account))
}

// Login verifies the password, opens a session and hands both credentials to
// the client as cookies. A repeat login issues a fresh pair without touching
// the previous session, so earlier logins on other devices stay valid.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	account, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password answer identically.
		writeUnauthorized(w, "UNAUTHORIZED", "invalid credentials")
		return
	}

	pair, err := h.sessions.Issue(r.Context(), account.Email)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
		return
	}

	h.cookies.Write(w, authsvc.AccessTokenCookie, pair.AccessToken, h.sessions.AccessTTL())
	h.cookies.Write(w, authsvc.RefreshTokenCookie, pair.RefreshToken, h.sessions.RefreshTTL())

	httperrors.Write(w, http.StatusOK, dto.NewAccountResponse(account))
}

// Logout clears both credential cookies. The session store entry is left to
// age out on its own TTL.
func (h *AccountHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.cookies.Clear(w, authsvc.AccessTokenCookie)
	h.cookies.Clear(w, authsvc.RefreshTokenCookie)

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}
	httperrors.Write(w, http.StatusOK, dto.NewAccountResponse(account))
}

func (h *AccountHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "email query parameter is required")
		return
	}

	duplicated, err := h.accounts.CheckEmailDuplicated(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.DuplicatedResponse{Duplicated: duplicated})
}

func (h *AccountHandler) CheckNickname(w http.ResponseWriter, r *http.Request) {
	nickname := r.URL.Query().Get("nickname")
	if nickname == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "nickname query parameter is required")
		return
	}

	duplicated, err := h.accounts.CheckNicknameDuplicated(r.Context(), nickname)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.DuplicatedResponse{Duplicated: duplicated})
}

func (h *AccountHandler) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.EmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.accounts.SendSignupVerificationEmail(r.Context(), req.Email); err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AccountHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "verification key is required")
		return
	}

	if err := h.accounts.VerifyEmail(r.Context(), key); err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AccountHandler) SendTempPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.EmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.accounts.SendTempPasswordEmail(r.Context(), req.Email); err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AccountHandler) UpdateNickname(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	var req dto.UpdateNicknameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.accounts.UpdateNickname(r.Context(), account.ID, req.Nickname); err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AccountHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.accounts.UpdatePassword(r.Context(), account.ID, req.CurrentPassword, req.NewPassword, req.ConfirmNewPassword); err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *AccountHandler) UpdateProfileImage(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	var req dto.UpdateProfileImageRequest
	if err := decodeJSON(r, &req); err != nil || req.AttachmentID <= 0 {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.accounts.UpdateProfileImage(r.Context(), account.ID, req.AttachmentID); err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

// Delete removes the account and ends the browser session in one response.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(w, r, h.accounts)
	if !ok {
		return
	}

	if err := h.accounts.Delete(r.Context(), account.ID); err != nil {
		handleServiceError(w, err)
		return
	}

	h.cookies.Clear(w, authsvc.AccessTokenCookie)
	h.cookies.Clear(w, authsvc.RefreshTokenCookie)
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
