package model

import "github.com/softscanner-sw/spa-multigraph/internal/origin"

// InlineTemplateSentinel marks a Component whose template is inline
// rather than resolved from a templateUrl (spec §3, "Component").
const InlineTemplateSentinel = "<inline>"

// Component is identified by "<file>#<className>" (spec §3, "Component").
type Component struct {
	ID       string
	Name     string // class name
	File     string
	Selector string

	// TemplateRef is either InlineTemplateSentinel or the resolved
	// template file path.
	TemplateRef    string
	TemplateOrigin origin.Origin

	WidgetIDs []string // ordered, per §4.5.1 pre-order-then-resort

	// ChildSelectors are the lower-cased tag names of nested custom
	// elements referenced in the template (spec §4.5, step 7).
	ChildSelectors []string // sorted/unique

	DeclaringModules []string // modules that declare this component, sorted

	Origin origin.Origin
}
