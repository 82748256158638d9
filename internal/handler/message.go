package handler

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	domain "github.com/oggyb/qr-message-service/internal/domain/message"
	"github.com/oggyb/qr-message-service/internal/response"
	"github.com/oggyb/qr-message-service/internal/service"
	"github.com/oggyb/qr-message-service/internal/web"
)

// CreateRequest is the JSON body for message creation.
type CreateRequest struct {
	Message string `json:"message"`
}

// MessageHandler wires the HTTP endpoints to the message service.
type MessageHandler struct {
	svc        service.MessageService
	previewLen int
}

// NewMessageHandler constructs a new MessageHandler with its dependencies.
func NewMessageHandler(svc service.MessageService, previewLen int) *MessageHandler {
	return &MessageHandler{
		svc:        svc,
		previewLen: previewLen,
	}
}

// Create godoc
// @Summary     Create a message
// @Description Validates the text, persists a message record and returns its QR code.
// @Tags        messages
// @Accept      json
// @Produce     json
// @Param       request body handler.CreateRequest true "Message text"
// @Success     200 {object} response.CreatePayload
// @Failure     400 {object} response.ErrorResponse
// @Failure     500 {object} response.ErrorResponse
// @Router      /api/create [post]
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msg, err := h.svc.Create(r.Context(), req.Message, r.Host)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyText):
			response.RespondError(w, http.StatusBadRequest, "message text is required")
		case errors.Is(err, domain.ErrTextTooLong):
			response.RespondError(w, http.StatusBadRequest, "message is too long (max 1000 characters)")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create message")
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, response.FromDomainMessage(msg))
}

// List godoc
// @Summary     List recent messages
// @Description Returns the most recent messages, newest first, with text previews.
// @Tags        messages
// @Produce     json
// @Success     200 {object} response.MessagesPayload
// @Failure     500 {object} response.ErrorResponse
// @Router      /api/messages [get]
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.List(r.Context(), 0)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}

	payload := response.MessagesPayload{
		Success:  true,
		Messages: response.FromDomainMessages(msgs, h.previewLen),
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// Delete godoc
// @Summary     Delete a message
// @Description Removes a message by id. Deleting a missing id still succeeds.
// @Tags        messages
// @Produce     json
// @Param       id path string true "Message id"
// @Success     200 {object} response.DeletePayload
// @Failure     500 {object} response.ErrorResponse
// @Router      /api/delete/{id} [delete]
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to delete message")
		return
	}

	response.RespondJSON(w, http.StatusOK, response.DeletePayload{
		Success: true,
		Deleted: deleted,
	})
}

// View godoc
// @Summary     View a message
// @Description Renders the message page with its text, timestamp and QR code.
// @Tags        messages
// @Produce     html
// @Param       id path string true "Message id"
// @Success     200 {string} string "rendered message page"
// @Failure     404 {string} string "message not found page"
// @Failure     500 {string} string "server error page"
// @Router      /view/{id} [get]
func (h *MessageHandler) View(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	msg, err := h.svc.Get(r.Context(), id)
	if err != nil {
		// Browser navigation gets HTML pages, never raw JSON.
		if errors.Is(err, domain.ErrNotFound) {
			web.RenderNotFound(w)
			return
		}
		web.RenderError(w)
		return
	}

	web.RenderView(w, web.ViewData{
		ID:        msg.ID,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt.UTC().Format("15:04 02/01/2006"),
		QRImage:   template.URL(msg.QRImage),
	})
}
