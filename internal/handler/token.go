package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bistroboss/bistroboss/internal/handler/dto"
	"github.com/bistroboss/bistroboss/internal/model"
)

// TokenIssuer mints signed tokens for identity payloads.
type TokenIssuer interface {
	Issue(identity model.Identity) (string, error)
}

// TokenHandler handles token issuance.
type TokenHandler struct {
	issuer TokenIssuer
	logger *slog.Logger
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(issuer TokenIssuer, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{issuer: issuer, logger: logger}
}

// Issue handles POST /jwt. The supplied identity payload is signed
// into a one-hour token. No credential check happens here: the
// upstream identity provider has already authenticated the user.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "email is required")
		return
	}

	token, err := h.issuer.Issue(model.Identity{Email: email})
	if err != nil {
		h.logger.Error("token signing failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "SIGNING_FAILED", "Could not issue token")
		return
	}

	h.logger.Info("token issued", slog.String("email", email))
	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}
