// Package events implements the event/handler analyzer of spec §4.6: it
// turns each widget's template bindings into WidgetEvents, synthesizing
// a "navigation" event for routerLink/href widgets and resolving bound
// (click)-style handlers to bounded call contexts inside the owning
// component's method bodies.
package events

import (
	"regexp"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/softscanner-sw/spa-multigraph/internal/astaccess"
	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

// maxCallContexts bounds how many call contexts a single handler method
// contributes (spec §4.6).
const maxCallContexts = 20

// handlerCallPattern extracts `identifierOrMember(args)` call sites from
// a handler method body, the textual heuristic spec §4.6 prescribes
// instead of full dataflow analysis.
var handlerCallPattern = regexp.MustCompile(`(\b[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)?)\s*\(([^()]*)\)`)

var navigateCallees = map[string]bool{
	"router.navigate": true, "router.navigatebyurl": true, "this.router.navigate": true,
}

// Analyze builds one WidgetEvent per recognized binding on each widget
// (spec §4.6). componentFile maps a component id to its declaring
// source file so handler bodies can be located.
func Analyze(project *astaccess.Project, widgets []*model.Widget, componentFile map[string]string) []*model.WidgetEvent {
	var out []*model.WidgetEvent
	for _, w := range widgets {
		out = append(out, analyzeWidget(project, w, componentFile[w.ComponentID])...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WidgetID != out[j].WidgetID {
			return out[i].WidgetID < out[j].WidgetID
		}
		return out[i].EventType < out[j].EventType
	})
	return out
}

func analyzeWidget(project *astaccess.Project, w *model.Widget, file string) []*model.WidgetEvent {
	var out []*model.WidgetEvent

	if ev, ok := syntheticNavigationEvent(w); ok {
		out = append(out, ev)
	}

	for _, b := range w.Bindings {
		if b.Kind != model.BindingEvent {
			continue
		}
		ev := &model.WidgetEvent{
			WidgetID:  w.ID,
			EventType: b.Name,
		}
		handlerName, args := parseHandlerCall(b.Value)
		ev.HandlerName = handlerName
		if handlerName != "" && file != "" {
			if f, ok := project.FileByPath(file); ok {
				ev.CallContexts = extractCallContexts(f, handlerName, args)
			}
		}
		out = append(out, ev)
	}

	return out
}

// syntheticNavigationEvent builds the implicit "navigation" event for a
// routerLink/href-bound widget (spec §4.6).
func syntheticNavigationEvent(w *model.Widget) (*model.WidgetEvent, bool) {
	var target string
	for _, b := range w.Bindings {
		name := strings.ToLower(b.Name)
		if name == "routerlink" {
			target = b.Value
			break
		}
	}
	if target == "" {
		if v, ok := w.Attributes["href"]; ok {
			target = v
		} else if v, ok := w.Attributes["routerlink"]; ok {
			target = v
		}
	}
	if target == "" {
		return nil, false
	}
	return &model.WidgetEvent{
		WidgetID:  w.ID,
		EventType: "navigation",
		CallContexts: []model.CallContext{{
			Kind:     model.CallNavigate,
			Navigate: model.NavigateTarget{Route: target},
			Args:     []string{astaccess.TruncateDeterministically(target, 200)},
		}},
	}, true
}

// parseHandlerCall extracts the method name and raw argument text of a
// bound event's handler expression, e.g. "onSave($event)" -> ("onSave",
// "$event").
func parseHandlerCall(expr string) (name, args string) {
	expr = strings.TrimSpace(expr)
	idx := strings.IndexByte(expr, '(')
	if idx < 0 {
		return expr, ""
	}
	name = strings.TrimSpace(expr[:idx])
	end := strings.LastIndexByte(expr, ')')
	if end < idx {
		return name, ""
	}
	return name, expr[idx+1 : end]
}

// extractCallContexts locates handlerName's method body in f and scans
// it for up to maxCallContexts bounded call sites, classifying each into
// Navigate/ServiceCall/StateUpdate/UIEffect (spec §4.6).
func extractCallContexts(f *astaccess.File, handlerName, callArgs string) []model.CallContext {
	method := findMethod(f, handlerName)
	if method == nil {
		return nil
	}
	body := f.Content(int(method.StartByte()), int(method.EndByte()))

	var out []model.CallContext
	for _, m := range handlerCallPattern.FindAllStringSubmatch(body, -1) {
		if len(out) >= maxCallContexts {
			break
		}
		callee := m[1]
		argText := astaccess.TruncateDeterministically(strings.TrimSpace(m[2]), 200)
		lower := strings.ToLower(callee)

		cc := model.CallContext{Args: []string{argText}}
		switch {
		case navigateCallees[lower]:
			cc.Kind = model.CallNavigate
			cc.Navigate = model.NavigateTarget{Route: argText}
		case strings.Contains(callee, "."):
			cc.Kind = model.CallServiceCall
			cc.ServiceMethod = callee
		case strings.HasPrefix(lower, "set") || strings.HasSuffix(lower, "update"):
			cc.Kind = model.CallStateUpdate
		default:
			cc.Kind = model.CallUIEffect
		}
		out = append(out, cc)
	}
	return out
}

// findMethod returns the first method_definition node named `name`
// found in a pre-order walk of f's whole tree, in whichever class it is
// declared.
func findMethod(f *astaccess.File, name string) *sitter.Node {
	var found *sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil || found != nil {
			return
		}
		if n.Type() == "method_definition" {
			for i := 0; i < int(n.ChildCount()); i++ {
				c := n.Child(i)
				if c != nil && c.Type() == "property_identifier" {
					if f.Content(int(c.StartByte()), int(c.EndByte())) == name {
						found = n
					}
					break
				}
			}
		}
		for i := 0; i < int(n.ChildCount()) && found == nil; i++ {
			walk(n.Child(i))
		}
	}
	walk(f.Tree.RootNode())
	return found
}
