package handlers

import (
	"errors"
	"net/http"

	accountssvc "github.com/kingsubin/soob/internal/services/accounts"
	attachmentssvc "github.com/kingsubin/soob/internal/services/attachments"
	"github.com/kingsubin/soob/internal/transport/http/dto"
	httperrors "github.com/kingsubin/soob/internal/transport/http/errors"
)

const uploadFormField = "file"

type AttachmentHandler struct {
	attachments *attachmentssvc.Service
	accounts    *accountssvc.Service
}

func NewAttachmentHandler(attachments *attachmentssvc.Service, accounts *accountssvc.Service) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments, accounts: accounts}
}

func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentAccount(w, r, h.accounts); !ok {
		return
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	attachment, err := h.attachments.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		if errors.Is(err, attachmentssvc.ErrInvalidUpload) || errors.Is(err, attachmentssvc.ErrTooLarge) {
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
			return
		}
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, dto.NewAttachmentResponse(attachment))
}

func (h *AttachmentHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	attachmentID, ok := urlParamID(r, "attachmentID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid attachment id")
		return
	}

	url, err := h.attachments.DownloadURL(r.Context(), attachmentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.AttachmentURLResponse{URL: url})
}

func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	attachmentID, ok := urlParamID(r, "attachmentID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid attachment id")
		return
	}

	if _, ok := currentAccount(w, r, h.accounts); !ok {
		return
	}

	if err := h.attachments.Delete(r.Context(), attachmentID); err != nil {
		handleServiceError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
