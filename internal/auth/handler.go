package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/domain"
	"certledger/pkg/platform/httputil"
	"certledger/pkg/requestcontext"
)

// Handler exposes the token endpoint. It sits outside the authenticated
// router group: callers hit it to obtain the bearer token everything else
// requires.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/token", h.handleToken)
}

type tokenRequest struct {
	Address string `json:"address"`
	Secret  string `json:"secret"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, expiresAt, err := h.service.IssueToken(ctx, domain.Address(req.Address), req.Secret)
	if err != nil {
		h.logger.WarnContext(ctx, "token issuance rejected",
			"request_id", requestcontext.RequestID(ctx),
			"address", req.Address,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
