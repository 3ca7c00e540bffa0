package models

// ReplySource tags which branch of the router produced a reply.
type ReplySource string

const (
	SourceLocation            ReplySource = "location"
	SourceLocationRejected    ReplySource = "location_rejected"
	SourceOrderTracking       ReplySource = "order_tracking"
	SourceOrderTrackingGuest  ReplySource = "order_tracking_guest"
	SourceOrderTrackingEmpty  ReplySource = "order_tracking_empty"
	SourceOrderTrackingError  ReplySource = "order_tracking_error"
	SourceOrderIDRequest      ReplySource = "order_id_request"
	SourceOrderLookup         ReplySource = "order_lookup"
	SourceOrderLookupMissing  ReplySource = "order_lookup_missing"
	SourceOrderLookupError    ReplySource = "order_lookup_error"
	SourceGreeting            ReplySource = "greeting"
	SourceOrdering            ReplySource = "ordering"
	SourceDelivery            ReplySource = "delivery"
	SourceAwaitingLocation    ReplySource = "awaiting_location"
	SourceMenu                ReplySource = "menu"
	SourceMenuUnavailable     ReplySource = "menu_unavailable"
	SourceMenuError           ReplySource = "menu_error"
	SourcePriceFilter         ReplySource = "price_filter"
	SourcePriceFilterEmpty    ReplySource = "price_filter_empty"
	SourceSearchProduct       ReplySource = "search_product"
	SourceSearchAlias         ReplySource = "search_alias"
	SourceSearchCategory      ReplySource = "search_category"
	SourceSearchPartial       ReplySource = "search_partial"
	SourceOrderingHelp        ReplySource = "ordering_help"
	SourceGenerative          ReplySource = "generative"
	SourceFallback            ReplySource = "fallback"
)

// Reply is the payload returned for one chat turn.
type Reply struct {
	Reply            string      `json:"reply"`
	Source           ReplySource `json:"source"`
	NeedsLocation    bool        `json:"needsLocation,omitempty"`
	ShowOrderOptions bool        `json:"showOrderOptions,omitempty"`
}
