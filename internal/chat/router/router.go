// Package router is the chat dialogue engine: it loads the user's
// conversation state, runs the ordered rule table and writes state back.
package router

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"food-assistant/internal/chat/catalog"
	"food-assistant/internal/chat/fallback"
	"food-assistant/internal/chat/orders"
	"food-assistant/internal/chat/session"
	"food-assistant/internal/common/boundary"
	apperrors "food-assistant/internal/common/errors"
	"food-assistant/internal/common/logger"
	"food-assistant/internal/common/metrics"
	"food-assistant/internal/common/observability"
	"food-assistant/internal/models"
)

const (
	DefaultGuestUserID         = "guest"
	DefaultPartialDisplayLimit = 5
)

type Config struct {
	GuestUserID         string
	Restaurant          models.RestaurantOrigin
	Region              models.ServiceRegion
	Aliases             []catalog.Alias
	PartialDisplayLimit int
}

// Dependencies are the collaborators a Router talks to. Observability may be nil.
type Dependencies struct {
	Sessions      session.Store
	Catalog       catalog.Source
	Orders        orders.Repository
	Fallback      *fallback.Responder
	Observability *observability.Observability
}

// Request is one inbound chat message.
type Request struct {
	Message     string
	UserID      string
	Coordinates *models.Location
}

type Router struct {
	cfg      Config
	sessions session.Store
	catalog  catalog.Source
	orders   orders.Repository
	fallback *fallback.Responder
	obs      *observability.Observability
	logger   logger.Logger
	tracer   trace.Tracer
	rules    []rule
}

func New(cfg Config, deps Dependencies, log logger.Logger) *Router {
	if cfg.GuestUserID == "" {
		cfg.GuestUserID = DefaultGuestUserID
	}
	if cfg.PartialDisplayLimit <= 0 {
		cfg.PartialDisplayLimit = DefaultPartialDisplayLimit
	}
	if cfg.Aliases == nil {
		cfg.Aliases = catalog.DefaultAliases()
	}
	if deps.Sessions == nil {
		deps.Sessions = session.NewMemoryStore(session.DefaultShards)
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.StaticSource(nil)
	}
	if deps.Orders == nil {
		deps.Orders = orders.UnavailableRepository{}
	}
	if deps.Fallback == nil {
		deps.Fallback = fallback.NewResponder(nil, log)
	}

	r := &Router{
		cfg:      cfg,
		sessions: deps.Sessions,
		catalog:  deps.Catalog,
		orders:   deps.Orders,
		fallback: deps.Fallback,
		obs:      deps.Observability,
		logger:   log.WithFields(map[string]interface{}{"component": "router"}),
		tracer:   otel.Tracer("chat/router"),
	}
	r.rules = r.buildRules()
	return r
}

// turn carries the state of a single Handle call.
type turn struct {
	ctx   context.Context
	req   Request
	msg   string
	user  string
	state models.ConversationState
	dirty bool

	menuLoaded bool
	menuItems  []models.MenuItem
	menuErr    error

	search catalog.Result
	span   trace.Span
}

func (t *turn) isGuest(guestID string) bool {
	return t.user == guestID
}

// setState replaces the conversation state and marks it for writing.
func (t *turn) setState(s models.ConversationState) {
	t.state = s
	t.dirty = true
}

// Handle produces the reply for one message. It never fails: collaborator
// errors become reply text.
func (r *Router) Handle(ctx context.Context, req Request) models.Reply {
	start := time.Now()

	user := strings.TrimSpace(req.UserID)
	if user == "" {
		user = r.cfg.GuestUserID
	}

	ctx, span := r.tracer.Start(ctx, "ChatRouter.Handle", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	t := &turn{
		ctx:  ctx,
		req:  req,
		msg:  strings.ToLower(strings.TrimSpace(req.Message)),
		user: user,
		span: span,
	}
	t.state = r.loadState(t)

	var (
		reply    models.Reply
		ruleName string
	)
	for _, rl := range r.rules {
		if rl.match(t) {
			ruleName = rl.name
			reply = rl.handle(t)
			break
		}
	}

	if t.dirty {
		r.saveState(t)
	}

	elapsed := time.Since(start)
	metrics.ChatRuleMatches.WithLabelValues(ruleName).Inc()
	metrics.ChatRepliesTotal.WithLabelValues(string(reply.Source)).Inc()
	metrics.ChatTurnDuration.WithLabelValues(ruleName).Observe(elapsed.Seconds())
	r.obs.RecordTurn(ctx, string(reply.Source), elapsed)

	span.SetAttributes(
		attribute.String("chat.rule", ruleName),
		attribute.String("chat.source", string(reply.Source)),
		attribute.Bool("chat.guest", t.isGuest(r.cfg.GuestUserID)),
	)

	r.logger.Info("chat turn handled", map[string]interface{}{
		"userId":     user,
		"rule":       ruleName,
		"source":     reply.Source,
		"pending":    t.state.PendingIntent,
		"durationMs": elapsed.Milliseconds(),
	})
	return reply
}

func (r *Router) loadState(t *turn) models.ConversationState {
	state, err := r.sessions.Get(t.ctx, t.user)
	if err != nil {
		r.collaboratorFailed(t, "session", apperrors.NewSessionStoreFailedError(err))
		return models.ConversationState{}
	}
	return state
}

func (r *Router) saveState(t *turn) {
	t.state.Touch()
	if err := r.sessions.Set(t.ctx, t.user, t.state); err != nil {
		r.collaboratorFailed(t, "session", apperrors.NewSessionStoreFailedError(err))
	}
}

// menu fetches the catalog at most once per turn.
func (r *Router) menu(t *turn) ([]models.MenuItem, error) {
	if t.menuLoaded {
		return t.menuItems, t.menuErr
	}
	t.menuLoaded = true

	out := boundary.Call(t.ctx, "catalog", r.catalog.ListMenuItems)
	if out.Failed() {
		t.menuErr = out.Err
		r.collaboratorFailed(t, "catalog", apperrors.NewCatalogUnavailableError(out.Err))
		return nil, t.menuErr
	}
	t.menuItems = out.Value
	return t.menuItems, nil
}

// menuOrEmpty treats a failed catalog fetch as an empty menu.
func (r *Router) menuOrEmpty(t *turn) []models.MenuItem {
	items, _ := r.menu(t)
	return items
}

func (r *Router) collaboratorFailed(t *turn, collaborator string, stdErr *apperrors.StandardError) {
	metrics.ChatCollaboratorFailures.WithLabelValues(collaborator).Inc()
	t.span.RecordError(stdErr)
	t.span.SetStatus(codes.Error, string(stdErr.Code))
	r.logger.Warn("collaborator call failed", map[string]interface{}{
		"userId":       t.user,
		"collaborator": collaborator,
		"errorCode":    stdErr.Code,
		"details":      stdErr.Details,
		"retryable":    stdErr.Retryable,
	})
}
