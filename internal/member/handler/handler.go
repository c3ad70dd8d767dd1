// Package handler exposes the member API over HTTP. It decodes requests,
// delegates to the member service and renders the JSON envelopes; no business
// logic lives here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"memberlist/internal/member/models"
	"memberlist/internal/member/service"
	"memberlist/internal/platform/metrics"
	"memberlist/internal/platform/middleware"
	dErrors "memberlist/pkg/domain-errors"
)

// Service defines the member operations the handler depends on.
type Service interface {
	RegisterMember(ctx context.Context, p service.RegisterMemberParams) (*models.Member, error)
	ListMembers(ctx context.Context) ([]*models.Member, error)
}

//go:generate mockgen -source=handler.go -destination=mocks/member-mocks.go -package=mocks Service

// Handler handles the member endpoints.
type Handler struct {
	logger  *slog.Logger
	members Service
	metrics *metrics.Metrics
}

// New creates a member Handler.
func New(members Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		members: members,
		metrics: metrics,
	}
}

// Register registers the member routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	memberRouter := chi.NewRouter()
	memberRouter.Use(middleware.Recovery(h.logger))
	memberRouter.Use(middleware.RequestID)
	memberRouter.Use(middleware.Logger(h.logger))
	memberRouter.Use(middleware.Timeout(30 * time.Second))
	memberRouter.Use(middleware.ContentTypeJSON)
	memberRouter.Use(middleware.LatencyMiddleware(h.metrics))
	memberRouter.Get("/api/members", h.handleListMembers)
	memberRouter.Post("/api/members", h.handleCreateMember)

	r.Mount("/", memberRouter)
}

// handleListMembers returns all active members, newest first.
func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := h.members.ListMembers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list members",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}

	views := make([]MemberView, 0, len(members))
	for _, member := range members {
		views = append(views, newMemberView(member))
	}
	writeSuccess(w, http.StatusOK, msgListSuccess, views)
}

// handleCreateMember registers a new member.
func (h *Handler) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "unreadable create member request",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeError(w, dErrors.New(dErrors.CodeInternal, "invalid request body"))
		return
	}

	member, err := h.members.RegisterMember(ctx, req.params())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeConflict) {
			h.logger.WarnContext(ctx, "member registration rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
		} else {
			h.logger.ErrorContext(ctx, "failed to register member",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, msgCreateSuccess, newMemberView(member))
}
