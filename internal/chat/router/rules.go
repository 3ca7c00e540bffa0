package router

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"food-assistant/internal/chat/catalog"
	"food-assistant/internal/chat/fallback"
	"food-assistant/internal/chat/geo"
	"food-assistant/internal/common/boundary"
	apperrors "food-assistant/internal/common/errors"
	"food-assistant/internal/models"
)

// Rule names, also used as metric labels.
const (
	RuleCoordinates    = "coordinates"
	RuleOrderTracking  = "order_tracking"
	RuleOrderIDRequest = "order_id_request"
	RuleGreeting       = "greeting"
	RuleOrdering       = "ordering_intent"
	RuleDelivery       = "delivery_intent"
	RulePendingLoc     = "pending_location"
	RulePendingOrderID = "pending_order_id"
	RuleMenu           = "menu"
	RuleDeliveryTime   = "delivery_time"
	RulePriceFilter    = "price_filter"
	RuleCatalogSearch  = "catalog_search"
	RuleOrderingHelp   = "ordering_help"
	RuleFallback       = "fallback"
)

var (
	trackingPhrases     = []string{"track my order", "track order", "order status", "my orders", "where is my order"}
	orderIDPhrases      = []string{"order id", "order number", "check order", "find order"}
	orderingPhrases     = []string{"buy", "purchase", "add to cart", "want to order", "order now", "i want to eat"}
	deliveryPhrases     = []string{"deliver", "where", "location", "address", "area"}
	menuPhrases         = []string{"menu", "food", "categories", "category", "dishes"}
	orderingHelpPhrases = []string{"how to order", "place order", "place an order", "checkout", "how do i order"}

	// Greetings must be whole words so "this" or "high" do not count.
	greetingPattern  = regexp.MustCompile(`\b(hi|hello|hey|salam|salaam|assalam\w*|aoa|good (morning|afternoon|evening)|how are you)\b`)
	islamicGreeting  = regexp.MustCompile(`\b(salam|salaam|assalam\w*|aoa)\b`)
	howAreYou        = regexp.MustCompile(`\bhow are you\b`)
	greetingBlockers = []string{"deliver", "location", "where"}

	// Whole words only, so "vegetable" and "sometimes" stay catalog queries.
	deliveryTimePattern = regexp.MustCompile(`\b(how long|time|eta|when will)\b`)

	priceLimitPattern = regexp.MustCompile(`\b(?:under|below)\s+(?:rs\.?\s*)?(\d+)(?:\s*rs\b|\b)`)
	orderIDPrefix     = regexp.MustCompile(`(?i)^(?:my\s+)?order\s+(?:id|number)\s*(?:is\s*)?[:#]?\s*(\S+)$`)
)

type rule struct {
	name   string
	match  func(t *turn) bool
	handle func(t *turn) models.Reply
}

func (r *Router) buildRules() []rule {
	return []rule{
		{RuleCoordinates, hasCoordinates, r.handleCoordinates},
		{RuleOrderTracking, mentions(trackingPhrases), r.handleOrderTracking},
		{RuleOrderIDRequest, requestsOrderID, r.handleOrderIDRequest},
		{RuleGreeting, isGreeting, r.handleGreeting},
		{RuleOrdering, mentions(orderingPhrases), r.handleOrdering},
		{RuleDelivery, mentions(deliveryPhrases), r.handleDelivery},
		{RulePendingLoc, awaiting(models.PendingAwaitingLocation), r.handlePendingLocation},
		{RulePendingOrderID, awaiting(models.PendingAwaitingOrderID), r.handlePendingOrderID},
		{RuleMenu, mentions(menuPhrases), r.handleMenu},
		{RuleDeliveryTime, matches(deliveryTimePattern), r.handleDelivery},
		{RulePriceFilter, hasPriceLimit, r.handlePriceFilter},
		{RuleCatalogSearch, r.matchesCatalog, r.handleCatalogSearch},
		{RuleOrderingHelp, mentions(orderingHelpPhrases), r.handleOrderingHelp},
		{RuleFallback, always, r.handleFallback},
	}
}

// ==================== Predicates ====================

func hasCoordinates(t *turn) bool {
	return t.req.Coordinates != nil
}

func mentions(phrases []string) func(t *turn) bool {
	return func(t *turn) bool {
		return containsAny(t.msg, phrases)
	}
}

func matches(p *regexp.Regexp) func(t *turn) bool {
	return func(t *turn) bool {
		return p.MatchString(t.msg)
	}
}

// A reply to the order id prompt is the id itself, even when it repeats the phrase.
func requestsOrderID(t *turn) bool {
	return !t.state.IsAwaiting(models.PendingAwaitingOrderID) && containsAny(t.msg, orderIDPhrases)
}

func awaiting(intent models.PendingIntent) func(t *turn) bool {
	return func(t *turn) bool {
		return t.state.IsAwaiting(intent)
	}
}

func isGreeting(t *turn) bool {
	return greetingPattern.MatchString(t.msg) && !containsAny(t.msg, greetingBlockers)
}

func hasPriceLimit(t *turn) bool {
	_, ok := priceLimit(t.msg)
	return ok
}

func always(*turn) bool { return true }

func (r *Router) matchesCatalog(t *turn) bool {
	if t.msg == "" {
		return false
	}
	t.search = catalog.Search(t.msg, r.menuOrEmpty(t), r.cfg.Aliases)
	_, none := t.search.(catalog.NoMatch)
	return !none
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// pendingOrderID strips a leading "order id is" so "my order id is 42" looks up 42.
func pendingOrderID(msg string) string {
	id := strings.TrimSpace(msg)
	if m := orderIDPrefix.FindStringSubmatch(id); m != nil {
		return m[1]
	}
	return id
}

func priceLimit(msg string) (float64, bool) {
	m := priceLimitPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ==================== Handlers ====================

func (r *Router) handleCoordinates(t *turn) models.Reply {
	loc := *t.req.Coordinates
	if !geo.WithinRegion(loc.Coordinates, r.cfg.Region) {
		t.setState(models.ConversationState{})
		return models.Reply{
			Reply:  fmt.Sprintf("Sorry, we currently deliver only within %s. The pinned location is outside our service area.", r.cfg.Region.Name),
			Source: models.SourceLocationRejected,
		}
	}

	est := geo.EstimateDelivery(r.cfg.Restaurant.Coordinates, loc.Coordinates)
	t.setState(models.ConversationState{
		PendingIntent:    models.PendingNone,
		SelectedLocation: &loc,
		DeliveryEstimate: &est,
	})

	place := ""
	if name := strings.TrimSpace(loc.Name); name != "" {
		place = " (" + name + ")"
	}
	return models.Reply{
		Reply: fmt.Sprintf("📍 Location confirmed%s!\nEstimated delivery time from %s: about %d minutes (%.1f km).",
			place, r.cfg.Restaurant.Name, est.Minutes, est.DistanceKm),
		Source: models.SourceLocation,
	}
}

func (r *Router) handleOrderTracking(t *turn) models.Reply {
	if t.isGuest(r.cfg.GuestUserID) {
		return models.Reply{
			Reply:  "Please sign in to track your orders. Once you're logged in, ask me \"track my order\" again.",
			Source: models.SourceOrderTrackingGuest,
		}
	}

	out := boundary.Call(t.ctx, "orders", func(ctx context.Context) (*models.OrderSummary, error) {
		return r.orders.FindLatestOrderForUser(ctx, t.user)
	})
	if out.Failed() {
		r.collaboratorFailed(t, "orders", apperrors.NewOrderLookupFailedError(out.Err))
		return models.Reply{Reply: "Error fetching order: " + out.Err.Error(), Source: models.SourceOrderTrackingError}
	}
	if out.Value == nil {
		return models.Reply{
			Reply:  "You haven't placed any orders yet. Browse the menu to place your first order! 🍔",
			Source: models.SourceOrderTrackingEmpty,
		}
	}
	return models.Reply{Reply: formatOrder(*out.Value), Source: models.SourceOrderTracking}
}

func (r *Router) handleOrderIDRequest(t *turn) models.Reply {
	next := t.state
	next.PendingIntent = models.PendingAwaitingOrderID
	t.setState(next)
	return models.Reply{
		Reply:  "Sure! Please type your order ID and I'll look it up.",
		Source: models.SourceOrderIDRequest,
	}
}

func (r *Router) handlePendingOrderID(t *turn) models.Reply {
	next := t.state
	next.PendingIntent = models.PendingNone
	t.setState(next)

	id := pendingOrderID(t.req.Message)
	out := boundary.Call(t.ctx, "orders", func(ctx context.Context) (*models.OrderSummary, error) {
		return r.orders.FindOrderByID(ctx, id)
	})
	if out.Failed() {
		r.collaboratorFailed(t, "orders", apperrors.NewOrderLookupFailedError(out.Err))
		return models.Reply{Reply: "Error fetching order: " + out.Err.Error(), Source: models.SourceOrderLookupError}
	}
	if out.Value == nil {
		return models.Reply{
			Reply:  fmt.Sprintf("No order found for ID %s. Please check the ID and ask me again.", id),
			Source: models.SourceOrderLookupMissing,
		}
	}
	return models.Reply{Reply: formatOrder(*out.Value), Source: models.SourceOrderLookup}
}

func (r *Router) handleGreeting(t *turn) models.Reply {
	t.setState(models.ConversationState{})
	return models.Reply{
		Reply:  greetingText(t.msg, r.cfg.Region.Name, r.cfg.Restaurant.Name),
		Source: models.SourceGreeting,
	}
}

func (r *Router) handleOrdering(t *turn) models.Reply {
	return models.Reply{
		Reply:            "Great choice! 🛒 Browse the menu, tap \"Add to cart\" on the dishes you like, then open your cart to check out.",
		Source:           models.SourceOrdering,
		ShowOrderOptions: true,
	}
}

// handleDelivery serves both the delivery and the delivery-time rules.
func (r *Router) handleDelivery(t *turn) models.Reply {
	next := t.state
	next.PendingIntent = models.PendingAwaitingLocation
	t.setState(next)
	return models.Reply{
		Reply: fmt.Sprintf("📍 Please share your delivery location using the location pin so I can check coverage and estimate delivery time. We deliver across %s.",
			r.cfg.Region.Name),
		Source:        models.SourceDelivery,
		NeedsLocation: true,
	}
}

func (r *Router) handlePendingLocation(t *turn) models.Reply {
	return models.Reply{
		Reply:         "I still need your delivery location 📍 Tap the location pin to share it and I'll estimate your delivery time.",
		Source:        models.SourceAwaitingLocation,
		NeedsLocation: true,
	}
}

func (r *Router) handleMenu(t *turn) models.Reply {
	items, err := r.menu(t)
	if err != nil {
		return models.Reply{
			Reply:  fmt.Sprintf("Unable to fetch the menu at the moment (%s). Please try again later.", err.Error()),
			Source: models.SourceMenuError,
		}
	}
	if len(items) == 0 {
		return models.Reply{Reply: "Sorry, the menu is not available right now.", Source: models.SourceMenuUnavailable}
	}
	return models.Reply{
		Reply:  "🍽️ Here's our menu:\n\n" + formatGroups(models.GroupByCategory(items)) + "\n\nAsk me about any dish or category for details.",
		Source: models.SourceMenu,
	}
}

func (r *Router) handlePriceFilter(t *turn) models.Reply {
	limit, _ := priceLimit(t.msg)

	var matched []models.MenuItem
	for _, item := range r.menuOrEmpty(t) {
		if item.Price < limit {
			matched = append(matched, item)
		}
	}
	if len(matched) == 0 {
		return models.Reply{
			Reply:  fmt.Sprintf("Sorry, I couldn't find any items under %s.", FormatPrice(limit)),
			Source: models.SourcePriceFilterEmpty,
		}
	}
	return models.Reply{
		Reply:  fmt.Sprintf("💰 Items under %s:\n%s", FormatPrice(limit), formatItems(matched)),
		Source: models.SourcePriceFilter,
	}
}

func (r *Router) handleCatalogSearch(t *turn) models.Reply {
	switch res := t.search.(type) {
	case catalog.ProductMatch:
		return models.Reply{
			Reply: fmt.Sprintf("✅ Yes, we have *%s* (%s) for %s.\nTap \"Add to cart\" on the menu to order it.",
				res.Item.Name, res.Item.CategoryOrDefault(), FormatPrice(res.Item.Price)),
			Source:           models.SourceSearchProduct,
			ShowOrderOptions: true,
		}
	case catalog.CategoryAliasMatch:
		return models.Reply{
			Reply:  fmt.Sprintf("Here are our %s options:\n\n%s", res.Alias, formatGroups(res.Groups)),
			Source: models.SourceSearchAlias,
		}
	case catalog.CategoryMatch:
		return models.Reply{
			Reply:  fmt.Sprintf("Here's what we have in %s:\n%s", res.Category, formatItems(res.Matched)),
			Source: models.SourceSearchCategory,
		}
	case catalog.PartialMatch:
		return models.Reply{
			Reply: fmt.Sprintf("I found these items matching \"%s\":\n%s", res.Query,
				formatLimited(res.Matched, r.cfg.PartialDisplayLimit)),
			Source: models.SourceSearchPartial,
		}
	}
	return r.handleFallback(t)
}

func (r *Router) handleOrderingHelp(t *turn) models.Reply {
	return models.Reply{
		Reply:            orderingHelpText,
		Source:           models.SourceOrderingHelp,
		ShowOrderOptions: true,
	}
}

func (r *Router) handleFallback(t *turn) models.Reply {
	return r.fallback.Respond(t.ctx, t.req.Message, fallback.Context{
		HasCatalog: len(r.menuOrEmpty(t)) > 0,
		Restaurant: r.cfg.Restaurant.Name,
		Region:     r.cfg.Region.Name,
	})
}
