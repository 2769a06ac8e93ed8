// Package components implements the component+template extraction
// pipeline of spec §4.5: decorator metadata, the selector invariant,
// sandboxed template resolution, widget extraction/classification, and
// predicate attachment.
package components

import (
	"log/slog"
	"path"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/softscanner-sw/spa-multigraph/internal/astaccess"
	"github.com/softscanner-sw/spa-multigraph/internal/model"
	"github.com/softscanner-sw/spa-multigraph/internal/origin"
	"github.com/softscanner-sw/spa-multigraph/internal/template"
)

// NestedSelectorPrefix is the default custom-element tag prefix used to
// discover nested components in a template (spec §4.5, step 7); callers
// may override it through ExtractOptions.
const NestedSelectorPrefix = "app-"

// ExtractOptions configures one extraction run.
type ExtractOptions struct {
	NestedSelectorPrefix string
}

func (o ExtractOptions) prefix() string {
	if o.NestedSelectorPrefix == "" {
		return NestedSelectorPrefix
	}
	return o.NestedSelectorPrefix
}

// Result is everything the component pipeline produces for a single
// component class.
type Result struct {
	Component *model.Component
	Widgets   []*model.Widget
}

// Extract walks every @Component-decorated class in project and returns
// one Result per class that satisfies the selector invariant.
func Extract(project *astaccess.Project, opts ExtractOptions) []Result {
	var out []Result
	for _, f := range project.Files {
		for _, cls := range classDeclarations(f) {
			dec := astaccess.FindDecorator(f, cls, "Component")
			if dec == nil {
				continue
			}
			if r, ok := extractOne(project, f, cls, dec, opts); ok {
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Component.ID < out[j].Component.ID })
	return out
}

func classDeclarations(f *astaccess.File) []*sitter.Node {
	var out []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Type() == "class_declaration" {
			out = append(out, n)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(f.Tree.RootNode())
	return out
}

func extractOne(project *astaccess.Project, f *astaccess.File, cls, dec *sitter.Node, opts ExtractOptions) (Result, bool) {
	name := className(f, cls)
	id := f.Path + "#" + name

	decObj := decoratorObject(f, dec)

	selector := ""
	if v := astaccess.ObjectProperty(f, decObj, "selector"); v != nil {
		if s, ok := astaccess.GetStringLiteralValue(f, v); ok {
			selector = strings.TrimSpace(s)
		}
	}
	if selector == "" {
		slog.Warn("component skipped: blank selector invariant", slog.String("component", id))
		return Result{}, false
	}

	c := &model.Component{
		ID:       id,
		Name:     name,
		File:     f.Path,
		Selector: selector,
		Origin:   astaccess.GetOrigin(f, cls, name),
	}

	templateText, templateOrigin := resolveTemplate(project, f, decObj, c)
	c.TemplateOrigin = templateOrigin

	roots := template.Parse(templateText, c.TemplateRef, template.Options{})

	widgets := extractWidgets(roots, c.ID, templateText)
	c.WidgetIDs = make([]string, 0, len(widgets))
	for _, w := range widgets {
		c.WidgetIDs = append(c.WidgetIDs, w.ID)
	}

	c.ChildSelectors = discoverNestedSelectors(roots, opts.prefix())

	return Result{Component: c, Widgets: widgets}, true
}

func className(f *astaccess.File, cls *sitter.Node) string {
	for i := 0; i < int(cls.ChildCount()); i++ {
		c := cls.Child(i)
		if c != nil && c.Type() == "type_identifier" {
			return f.Content(int(c.StartByte()), int(c.EndByte()))
		}
	}
	return ""
}

func decoratorObject(f *astaccess.File, dec *sitter.Node) *sitter.Node {
	for i := 0; i < int(dec.ChildCount()); i++ {
		c := dec.Child(i)
		if c == nil || c.Type() != "call_expression" {
			continue
		}
		for j := 0; j < int(c.ChildCount()); j++ {
			gc := c.Child(j)
			if gc != nil && gc.Type() == "arguments" {
				return astaccess.DecoratorFirstArg(gc)
			}
		}
	}
	return nil
}

// resolveTemplate applies inline-wins-over-URL precedence and sandboxes
// templateUrl resolution to the project root (spec §4.5, "Template
// resolution"): a templateUrl that resolves outside the project, or to a
// missing file, downgrades to an empty template rather than erroring.
func resolveTemplate(project *astaccess.Project, f *astaccess.File, decObj *sitter.Node, c *model.Component) (string, origin.Origin) {
	if v := astaccess.ObjectProperty(f, decObj, "template"); v != nil {
		if s, ok := astaccess.GetStringLiteralValue(f, v); ok {
			c.TemplateRef = model.InlineTemplateSentinel
			return s, astaccess.GetOrigin(f, v, "")
		}
	}

	if v := astaccess.ObjectProperty(f, decObj, "templateUrl"); v != nil {
		if s, ok := astaccess.GetStringLiteralValue(f, v); ok {
			resolved, ok := sandboxedTemplatePath(project, f, s)
			if !ok {
				slog.Warn("templateUrl escaped project sandbox or was unreadable, downgrading to empty template",
					slog.String("component", c.ID), slog.String("templateUrl", s))
				c.TemplateRef = s
				return "", astaccess.GetOrigin(f, v, "")
			}
			c.TemplateRef = resolved
			if data, ok := project.ReadRelative(resolved); ok {
				return string(data), astaccess.GetOrigin(f, v, "")
			}
		}
	}

	c.TemplateRef = model.InlineTemplateSentinel
	return "", origin.Origin{}
}

// sandboxedTemplatePath resolves a templateUrl relative to its owning
// file and rejects any path that climbs outside the project root (spec
// §4.5, "sandboxed template URL resolution").
func sandboxedTemplatePath(project *astaccess.Project, f *astaccess.File, templateURL string) (string, bool) {
	dir := path.Dir(f.Path)
	joined := path.Clean(path.Join(dir, templateURL))
	if strings.HasPrefix(joined, "..") {
		return "", false
	}
	if _, ok := project.ReadRelative(joined); ok {
		return joined, true
	}
	return "", false
}
