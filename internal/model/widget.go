package model

import "github.com/softscanner-sw/spa-multigraph/internal/origin"

// WidgetKind enumerates the interactive template elements the component
// pipeline recognizes (spec §3, "Widget").
type WidgetKind string

const (
	WidgetButton   WidgetKind = "Button"
	WidgetLink     WidgetKind = "Link"
	WidgetInput    WidgetKind = "Input"
	WidgetSelect   WidgetKind = "Select"
	WidgetTextarea WidgetKind = "Textarea"
	WidgetForm     WidgetKind = "Form"
	WidgetCheckbox WidgetKind = "Checkbox"
	WidgetRadio    WidgetKind = "Radio"
	WidgetMenuItem WidgetKind = "MenuItem"
	WidgetUnknown  WidgetKind = "Unknown"
)

// BindingKind discriminates an attribute/bound-attribute/event binding.
type BindingKind string

const (
	BindingAttribute      BindingKind = "attribute"
	BindingBoundAttribute BindingKind = "boundAttribute"
	BindingEvent          BindingKind = "event"
)

// Binding is one attribute/bound-attribute/event on a widget element
// (spec §3, "Widget").
type Binding struct {
	Kind   BindingKind
	Name   string
	Value  string
	Origin origin.Origin
}

// Validators summarizes form-control validation derived from template
// attributes (spec §4.5.1, "Validators").
type Validators struct {
	Required  bool
	MinLength int // 0 means absent
	MaxLength int // 0 means absent
	Pattern   string
}

// PredicateKind enumerates the predicate categories attached to widgets
// (spec §3, "A predicate has a kind").
type PredicateKind string

const (
	PredicateNgIf              PredicateKind = "ngIf"
	PredicateNgSwitchCase      PredicateKind = "ngSwitchCase"
	PredicateDisabled          PredicateKind = "disabled"
	PredicateHidden            PredicateKind = "hidden"
	PredicateCustomDirective   PredicateKind = "customDirective"
	PredicatePermissionDirective PredicateKind = "permissionDirective"
	PredicateUnknown           PredicateKind = "unknown"
)

// Predicate is a bounded visibility/enablement condition attached to a
// widget (spec §3, §4.5.2).
type Predicate struct {
	Kind        PredicateKind
	Expression  string // bounded (truncateDeterministically)
	Identifiers []string // sorted/unique
	Origin      origin.Origin
	// HasSpan records whether this predicate carried a template span;
	// predicates without one attach conservatively to every widget
	// (spec §4.5.2, Open Question (b)).
	HasSpan bool
}

// Widget is identified by
// "<componentId>|<startOffset>|<kind>|<stableIndex>", where startOffset
// is the element's start byte offset in its template (0 when the element
// has no span). The template file and line/column are not part of the id.
type Widget struct {
	ID          string
	ComponentID string
	Kind        WidgetKind
	Tag         string
	StableIndex int
	PathString  string // ancestor1>ancestor2>...>Kind, or >Kind[i]

	Attributes map[string]string // bounded, trimmed, truncated
	Bindings   []Binding

	TextLabel string // omitted (empty) when no text children

	Validators *Validators // nil when no validators present

	VisibilityPredicates []Predicate
	EnablementPredicates []Predicate

	Origin origin.Origin
}
