package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/oggyb/qr-message-service/internal/db"
	"github.com/oggyb/qr-message-service/internal/response"
	"github.com/oggyb/qr-message-service/internal/web"
)

// HomeHandler serves the home page and the health endpoint.
type HomeHandler struct {
	db db.DB
}

// NewHomeHandler returns a new HomeHandler backed by the given database.
func NewHomeHandler(database db.DB) *HomeHandler {
	return &HomeHandler{db: database}
}

// Index godoc
// @Summary     Home page
// @Description Serves the message creation page.
// @Tags        home
// @Produce     html
// @Success     200 {string} string "rendered home page"
// @Router      / [get]
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	web.RenderHome(w)
}

// Health godoc
// @Summary     Health check
// @Description Reports service status and whether the database is reachable.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.HealthPayload
// @Router      /health [get]
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbState := "connected"

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil || h.db.Ping(ctx) != nil {
		dbState = "disconnected"
	}

	payload := response.HealthPayload{
		Status:    "healthy",
		Timestamp: response.FormatTime(time.Now()),
		Database:  dbState,
	}

	response.RespondJSON(w, http.StatusOK, payload)
}
