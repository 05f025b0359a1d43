package handlers

import (
	"net/http"

	"TRIPMATE_BACK-END/internal/config"
	"TRIPMATE_BACK-END/internal/middleware"
	"TRIPMATE_BACK-END/internal/utils"
	"TRIPMATE_BACK-END/internal/ws"
)

// WSHandler upgrades authenticated websocket connections for
// notification push
type WSHandler struct {
	hub *ws.Hub
	cfg *config.Config
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *ws.Hub, cfg *config.Config) *WSHandler {
	return &WSHandler{hub: hub, cfg: cfg}
}

// Serve handles GET /ws?token=<jwt>. Browsers cannot set an Authorization
// header on websocket dials, so the token travels in the query string.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "token query parameter required")
		return
	}

	claims, err := middleware.ValidateToken(token, &h.cfg.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid token")
		return
	}

	h.hub.ServeWS(w, r, claims.UserID)
}
