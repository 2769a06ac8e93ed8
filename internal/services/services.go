// Package services discovers @Injectable-decorated classes (spec §4.4's
// sibling service-discovery step referenced by §4.8's
// MODULE_PROVIDES_SERVICE/COMPONENT_CALLS_SERVICE edges).
package services

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/softscanner-sw/spa-multigraph/internal/astaccess"
	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

// Discover walks every project file for @Injectable-decorated classes.
func Discover(project *astaccess.Project) []*model.Service {
	var out []*model.Service
	for _, f := range project.Files {
		for _, cls := range classDeclarations(f) {
			dec := astaccess.FindDecorator(f, cls, "Injectable")
			if dec == nil {
				continue
			}
			name := className(f, cls)
			s := &model.Service{
				ID:     f.Path + "#" + name,
				Name:   name,
				File:   f.Path,
				Origin: astaccess.GetOrigin(f, cls, name),
			}
			if argsNode := decoratorArgsObject(f, dec); argsNode != nil {
				if v := astaccess.ObjectProperty(f, argsNode, "providedIn"); v != nil {
					if sv, ok := astaccess.GetStringLiteralValue(f, v); ok {
						s.ProvidedIn = sv
					}
				}
			}
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
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

func className(f *astaccess.File, cls *sitter.Node) string {
	for i := 0; i < int(cls.ChildCount()); i++ {
		c := cls.Child(i)
		if c != nil && c.Type() == "type_identifier" {
			return f.Content(int(c.StartByte()), int(c.EndByte()))
		}
	}
	return ""
}

func decoratorArgsObject(f *astaccess.File, dec *sitter.Node) *sitter.Node {
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
