package model

import "github.com/softscanner-sw/spa-multigraph/internal/origin"

// CallContextKind discriminates the tagged CallContext variant (spec §3,
// "WidgetEvent").
type CallContextKind string

const (
	CallNavigate    CallContextKind = "Navigate"
	CallServiceCall CallContextKind = "ServiceCall"
	CallStateUpdate CallContextKind = "StateUpdate"
	CallUIEffect    CallContextKind = "UIEffect"
	CallUnknown     CallContextKind = "Unknown"
)

// NavigateTarget is the Navigate variant's payload: exactly one of Route
// or URL is set.
type NavigateTarget struct {
	Route string
	URL   string
}

// CallContext is one bounded call made from inside a handler method body
// (spec §3, §4.6).
type CallContext struct {
	Kind CallContextKind

	Navigate      NavigateTarget // valid when Kind == CallNavigate
	ServiceMethod string         // "class.method"; valid when Kind == CallServiceCall

	Args   []string // bounded argument strings
	Origin origin.Origin
}

// WidgetEvent maps one widget's one event type to its handler and call
// contexts (spec §3, "WidgetEvent").
type WidgetEvent struct {
	WidgetID      string
	EventType     string
	HandlerName   string
	HandlerOrigin *origin.Origin
	CallContexts  []CallContext
}
