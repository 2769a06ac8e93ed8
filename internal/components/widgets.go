package components

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/softscanner-sw/spa-multigraph/internal/astaccess"
	"github.com/softscanner-sw/spa-multigraph/internal/model"
	"github.com/softscanner-sw/spa-multigraph/internal/origin"
	"github.com/softscanner-sw/spa-multigraph/internal/template"
)

// widgetTags maps an element tag name directly to its WidgetKind (spec
// §4.5.1, "Widget classification rules: tag-based").
var widgetTags = map[string]model.WidgetKind{
	"button":   model.WidgetButton,
	"a":        model.WidgetLink,
	"input":    model.WidgetInput,
	"select":   model.WidgetSelect,
	"textarea": model.WidgetTextarea,
	"form":     model.WidgetForm,
}

// inputTypeOverrides reclassifies <input type="..."> elements (spec
// §4.5.1).
var inputTypeOverrides = map[string]model.WidgetKind{
	"checkbox": model.WidgetCheckbox,
	"radio":    model.WidgetRadio,
}

// boundedAttrs is the allowlist of widget attributes the pipeline
// retains, with their values truncated to the global bound (spec §4.5.1,
// "bounded attribute/binding allowlists").
var boundedAttrs = map[string]bool{
	"type": true, "name": true, "placeholder": true, "formcontrolname": true,
	"required": true, "disabled": true, "hidden": true, "href": true,
	"routerlink": true, "role": true, "id": true,
}

var boundedBindings = map[string]bool{
	"disabled": true, "hidden": true, "routerlink": true, "href": true,
	"ngmodel": true, "formcontrolname": true, "value": true,
}

// extractWidgets walks roots in pre-order, assigns a stable per-kind
// index, then re-sorts by (startLine, startCol, id) (spec §4.5.1,
// "stable per-kind index ... re-sort").
func extractWidgets(roots []*template.Node, componentID string, templateText string) []*model.Widget {
	counters := map[model.WidgetKind]int{}
	var widgets []*model.Widget

	var walk func(n *template.Node, path []string)
	walk = func(n *template.Node, path []string) {
		if n == nil {
			return
		}
		if n.Kind == template.KindElement {
			kind := classifyWidget(n)
			if kind != model.WidgetUnknown {
				idx := counters[kind]
				counters[kind] = idx + 1
				w := buildWidget(n, componentID, kind, idx, path, templateText)
				widgets = append(widgets, w)
				path = append(path, string(kind))
			} else {
				path = append(path, n.Name)
			}
		}
		for _, c := range n.Children {
			walk(c, path)
		}
	}
	for _, r := range roots {
		walk(r, nil)
	}

	attachPredicates(roots, widgets)

	sort.SliceStable(widgets, func(i, j int) bool {
		si, sj := widgets[i].Origin, widgets[j].Origin
		if si.StartLine != sj.StartLine {
			return si.StartLine < sj.StartLine
		}
		if si.StartCol != sj.StartCol {
			return si.StartCol < sj.StartCol
		}
		return widgets[i].ID < widgets[j].ID
	})
	return widgets
}

// classifyWidget applies tag-based, then directive-attribute-based, then
// navigation-binding-based rules, in that priority order (spec §4.5.1).
func classifyWidget(n *template.Node) model.WidgetKind {
	tag := strings.ToLower(n.Name)

	if kind, ok := widgetTags[tag]; ok {
		if kind == model.WidgetInput {
			for _, a := range n.ByKind(template.KindAttr) {
				if strings.ToLower(a.Name) == "type" {
					if override, ok := inputTypeOverrides[strings.ToLower(a.Value)]; ok {
						return override
					}
				}
			}
		}
		return kind
	}

	for _, a := range append(n.ByKind(template.KindAttr), n.ByKind(template.KindBoundAttr)...) {
		name := strings.ToLower(a.Name)
		if name == "mat-menu-item" || name == "menuitem" {
			return model.WidgetMenuItem
		}
	}

	for _, a := range n.ByKind(template.KindBoundAttr) {
		if strings.ToLower(a.Name) == "routerlink" {
			return model.WidgetLink
		}
	}
	for _, a := range n.ByKind(template.KindAttr) {
		if strings.ToLower(a.Name) == "routerlink" {
			return model.WidgetLink
		}
	}

	return model.WidgetUnknown
}

func buildWidget(n *template.Node, componentID string, kind model.WidgetKind, idx int, ancestry []string, templateText string) *model.Widget {
	id := componentID + "|" + strconv.Itoa(spanStart(n)) + "|" + string(kind) + "|" + strconv.Itoa(idx)

	w := &model.Widget{
		ID:          id,
		ComponentID: componentID,
		Kind:        kind,
		Tag:         n.Name,
		StableIndex: idx,
		PathString:  pathString(ancestry, kind, idx),
		Attributes:  map[string]string{},
	}

	for _, a := range n.ByKind(template.KindAttr) {
		name := strings.ToLower(a.Name)
		if boundedAttrs[name] {
			w.Attributes[name] = astaccess.TruncateDeterministically(a.Value, 200)
		}
	}
	for _, a := range n.ByKind(template.KindBoundAttr) {
		name := strings.ToLower(a.Name)
		if boundedBindings[name] {
			w.Bindings = append(w.Bindings, model.Binding{
				Kind:  model.BindingBoundAttribute,
				Name:  a.Name,
				Value: astaccess.TruncateDeterministically(a.Value, 200),
			})
		}
	}
	for _, a := range n.ByKind(template.KindEvent) {
		w.Bindings = append(w.Bindings, model.Binding{
			Kind:  model.BindingEvent,
			Name:  a.Name,
			Value: astaccess.TruncateDeterministically(a.Value, 200),
		})
	}
	sort.Slice(w.Bindings, func(i, j int) bool {
		if w.Bindings[i].Kind != w.Bindings[j].Kind {
			return w.Bindings[i].Kind < w.Bindings[j].Kind
		}
		return w.Bindings[i].Name < w.Bindings[j].Name
	})

	w.Validators = extractValidators(n)
	w.TextLabel = extractTextLabel(n)
	w.Origin = spanOrigin(n, templateText)

	return w
}

func spanStart(n *template.Node) int {
	if n.Span == nil {
		return 0
	}
	return n.Span.Start
}

// spanOrigin derives line/column from a byte-offset span by counting
// newlines/columns in templateText up to each offset (template.Span
// carries only byte offsets; spec §4.5.1 requires line/col for the
// widget re-sort).
func spanOrigin(n *template.Node, templateText string) origin.Origin {
	if n.Span == nil {
		return origin.Origin{}
	}
	sLine, sCol := lineCol(templateText, n.Span.Start)
	eLine, eCol := lineCol(templateText, n.Span.End)
	return origin.Origin{
		StartLine: sLine, StartCol: sCol,
		EndLine: eLine, EndCol: eCol,
		Start: n.Span.Start, End: n.Span.End,
	}
}

func lineCol(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func pathString(ancestry []string, kind model.WidgetKind, idx int) string {
	base := strings.Join(ancestry, ">")
	leaf := string(kind)
	if idx > 0 {
		leaf = leaf + "[" + strconv.Itoa(idx) + "]"
	}
	if base == "" {
		return ">" + leaf
	}
	return base + ">" + leaf
}

// extractValidators reads required/minlength/maxlength/pattern template
// attributes into a Validators summary, or nil when none are present
// (spec §4.5.1, "Validators").
func extractValidators(n *template.Node) *model.Validators {
	var v model.Validators
	found := false
	for _, a := range append(n.ByKind(template.KindAttr), n.ByKind(template.KindBoundAttr)...) {
		switch strings.ToLower(a.Name) {
		case "required":
			v.Required = true
			found = true
		case "minlength":
			if n, err := strconv.Atoi(strings.TrimSpace(a.Value)); err == nil {
				v.MinLength = n
				found = true
			}
		case "maxlength":
			if n, err := strconv.Atoi(strings.TrimSpace(a.Value)); err == nil {
				v.MaxLength = n
				found = true
			}
		case "pattern":
			v.Pattern = a.Value
			found = true
		}
	}
	if !found {
		return nil
	}
	return &v
}

// extractTextLabel concatenates the direct plain/bound text children of
// n, truncated, or "" when n has none (spec §4.5.1).
func extractTextLabel(n *template.Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		if c.Kind == template.KindText || c.Kind == template.KindBoundText {
			b.WriteString(strings.TrimSpace(c.Value))
			b.WriteString(" ")
		}
	}
	return astaccess.TruncateDeterministically(strings.TrimSpace(b.String()), 200)
}

// identifierPattern extracts bare identifier references from a predicate
// expression, used to populate Predicate.Identifiers (spec §4.5.2).
var identifierPattern = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// predicateKeywords are excluded from identifier extraction.
var predicateKeywords = map[string]bool{
	"true": true, "false": true, "null": true, "undefined": true,
	"this": true, "typeof": true, "in": true, "of": true,
}

// attachPredicates discovers visibility/enablement predicates from
// structural and bound attributes and attaches them to every widget
// whose template span falls inside the predicate's owning element (spec
// §4.5.2, "position-based approximate containment"). Predicates whose
// owning node carries no span attach conservatively to every widget
// (Open Question (b)).
func attachPredicates(roots []*template.Node, widgets []*model.Widget) {
	type scoped struct {
		pred model.Predicate
		span *template.Span
	}
	var all []scoped

	var walk func(n *template.Node)
	walk = func(n *template.Node) {
		if n == nil {
			return
		}
		for _, s := range n.ByKind(template.KindStructural) {
			all = append(all, scoped{pred: buildPredicate(visibilityKind(s.Name), s.Value, n), span: n.Span})
		}
		for _, a := range n.ByKind(template.KindBoundAttr) {
			if k, ok := enablementKind(a.Name); ok {
				all = append(all, scoped{pred: buildPredicate(k, a.Value, n), span: n.Span})
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}

	for _, w := range widgets {
		for _, s := range all {
			if s.span != nil && !contains(s.span, w.Origin) {
				continue
			}
			if isVisibility(s.pred.Kind) {
				w.VisibilityPredicates = append(w.VisibilityPredicates, s.pred)
			} else {
				w.EnablementPredicates = append(w.EnablementPredicates, s.pred)
			}
		}
		sort.Slice(w.VisibilityPredicates, func(i, j int) bool {
			return w.VisibilityPredicates[i].Expression < w.VisibilityPredicates[j].Expression
		})
		sort.Slice(w.EnablementPredicates, func(i, j int) bool {
			return w.EnablementPredicates[i].Expression < w.EnablementPredicates[j].Expression
		})
	}
}

func contains(span *template.Span, o origin.Origin) bool {
	return o.Start >= span.Start && o.End <= span.End
}

func visibilityKind(name string) model.PredicateKind {
	switch strings.ToLower(name) {
	case "ngif":
		return model.PredicateNgIf
	case "ngswitchcase":
		return model.PredicateNgSwitchCase
	default:
		return model.PredicateCustomDirective
	}
}

func enablementKind(name string) (model.PredicateKind, bool) {
	switch strings.ToLower(name) {
	case "disabled":
		return model.PredicateDisabled, true
	case "hidden":
		return model.PredicateHidden, true
	default:
		if strings.Contains(strings.ToLower(name), "permission") || strings.Contains(strings.ToLower(name), "role") {
			return model.PredicatePermissionDirective, true
		}
		return "", false
	}
}

func isVisibility(k model.PredicateKind) bool {
	return k == model.PredicateNgIf || k == model.PredicateNgSwitchCase ||
		k == model.PredicateCustomDirective || k == model.PredicateHidden
}

func buildPredicate(kind model.PredicateKind, expr string, owner *template.Node) model.Predicate {
	p := model.Predicate{
		Kind:       kind,
		Expression: astaccess.TruncateDeterministically(expr, 200),
		HasSpan:    owner.Span != nil,
	}
	seen := map[string]bool{}
	for _, m := range identifierPattern.FindAllString(expr, -1) {
		if predicateKeywords[m] || seen[m] {
			continue
		}
		seen[m] = true
		p.Identifiers = append(p.Identifiers, m)
	}
	sort.Strings(p.Identifiers)
	if owner.Span != nil {
		p.Origin = origin.Origin{Start: owner.Span.Start, End: owner.Span.End}
	}
	return p
}

// discoverNestedSelectors collects lower-cased custom-element tag names
// whose name starts with prefix (spec §4.5, step 7).
func discoverNestedSelectors(roots []*template.Node, prefix string) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(n *template.Node)
	walk = func(n *template.Node) {
		if n == nil {
			return
		}
		if n.Kind == template.KindElement {
			tag := strings.ToLower(n.Name)
			if strings.HasPrefix(tag, prefix) && !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	sort.Strings(out)
	return out
}
