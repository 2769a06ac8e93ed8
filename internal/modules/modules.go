// Package modules implements the two-pass module-extraction stage of
// spec §4.4: collect every @NgModule-decorated class with its
// imports/declarations/providers/exports, then classify each module's
// Role from that shared view.
package modules

import (
	"regexp"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/softscanner-sw/spa-multigraph/internal/astaccess"
	"github.com/softscanner-sw/spa-multigraph/internal/model"
	"github.com/softscanner-sw/spa-multigraph/internal/origin"
)

// bootstrapCallPattern recognizes the application's entry-point
// bootstrap call (platformBrowserDynamic().bootstrapModule(AppModule)),
// the textual heuristic spec §4.4 uses to seed Root classification. The
// standalone bootstrapApplication(...) form is not matched.
var bootstrapCallPattern = regexp.MustCompile(`bootstrapModule\(\s*(\w+)\s*\)`)

// dynamicImportPattern recognizes any `import('./...')` anywhere in a
// file, the signal that a module is reached only through lazy loading.
var dynamicImportPattern = regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)`)

// Extract runs the two-pass module extraction over project (spec §4.4).
func Extract(project *astaccess.Project) []*model.Module {
	var mods []*model.Module
	bootstrapped := map[string]bool{}
	lazyTargets := map[string]bool{}

	for _, f := range project.Files {
		for _, m := range bootstrapCallPattern.FindAllStringSubmatch(string(f.Source), -1) {
			bootstrapped[m[1]] = true
		}
		for _, m := range dynamicImportPattern.FindAllStringSubmatch(string(f.Source), -1) {
			if target, ok := project.ResolveImportTarget(f.Path, m[1]); ok {
				lazyTargets[target] = true
			}
		}
	}

	// pass 1: collect every @NgModule class.
	for _, f := range project.Files {
		for _, cls := range findClassDeclarations(f) {
			dec := astaccess.FindDecorator(f, cls, "NgModule")
			if dec == nil {
				continue
			}
			mods = append(mods, collectModule(f, cls, dec, bootstrapped))
		}
	}

	// pass 2: classify roles from the shared view built in pass 1.
	byName := map[string]*model.Module{}
	for _, m := range mods {
		byName[m.Name] = m
	}
	for _, m := range mods {
		m.Role = classifyRole(m, byName, lazyTargets)
	}

	sort.Slice(mods, func(i, j int) bool { return mods[i].ID < mods[j].ID })
	return mods
}

func findClassDeclarations(f *astaccess.File) []*sitter.Node {
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

func collectModule(f *astaccess.File, cls, dec *sitter.Node, bootstrapped map[string]bool) *model.Module {
	name := classNameOf(f, cls)
	m := &model.Module{
		ID:            f.Path,
		Name:          name,
		File:          f.Path,
		Role:          model.RoleUnknown,
		ImportOrigins: map[string]origin.Origin{},
		ExportOrigins: map[string]origin.Origin{},
		Origin:        astaccess.GetOrigin(f, cls, name),
	}

	_, argsNode := decoratorArgs(f, dec)
	obj := astaccess.DecoratorFirstArg(argsNode)
	if obj != nil && obj.Type() == "object" {
		m.Imports = namedArrayWithOrigins(f, obj, "imports", m.ImportOrigins)
		m.Components = stringArray(f, obj, "declarations")
		m.Providers = stringArray(f, obj, "providers")
		m.Exports = namedArrayWithOrigins(f, obj, "exports", m.ExportOrigins)
		if v := astaccess.ObjectProperty(f, obj, "bootstrap"); v != nil {
			m.Bootstrap = true
		}
	}

	if bootstrapped[name] {
		m.Bootstrap = true
	}

	return m
}

func classNameOf(f *astaccess.File, cls *sitter.Node) string {
	for i := 0; i < int(cls.ChildCount()); i++ {
		c := cls.Child(i)
		if c != nil && c.Type() == "type_identifier" {
			return f.Content(int(c.StartByte()), int(c.EndByte()))
		}
	}
	return ""
}

// decoratorArgs re-derives a decorator's callee name/arguments node; it
// mirrors astaccess's own internal helper since that one is unexported.
func decoratorArgs(f *astaccess.File, decorator *sitter.Node) (string, *sitter.Node) {
	for i := 0; i < int(decorator.ChildCount()); i++ {
		c := decorator.Child(i)
		if c == nil || c.Type() != "call_expression" {
			continue
		}
		var name string
		var args *sitter.Node
		for j := 0; j < int(c.ChildCount()); j++ {
			gc := c.Child(j)
			if gc == nil {
				continue
			}
			switch gc.Type() {
			case "identifier":
				if name == "" {
					name = f.Content(int(gc.StartByte()), int(gc.EndByte()))
				}
			case "arguments":
				args = gc
			}
		}
		return name, args
	}
	return "", nil
}

func stringArray(f *astaccess.File, obj *sitter.Node, key string) []string {
	v := astaccess.ObjectProperty(f, obj, key)
	if v == nil || v.Type() != "array" {
		return nil
	}
	return astaccess.ExtractArrayOfIdentifiers(f, v)
}

func namedArrayWithOrigins(f *astaccess.File, obj *sitter.Node, key string, origins map[string]origin.Origin) []string {
	v := astaccess.ObjectProperty(f, obj, key)
	if v == nil || v.Type() != "array" {
		return nil
	}
	names := astaccess.ExtractArrayOfIdentifiers(f, v)
	for i := 0; i < int(v.ChildCount()); i++ {
		c := v.Child(i)
		if c == nil || c.Type() != "identifier" {
			continue
		}
		name := f.Content(int(c.StartByte()), int(c.EndByte()))
		origins[name] = astaccess.GetOrigin(f, c, name)
	}
	return names
}

// rootModulePattern recognizes a module file path conventionally named
// the application root (spec §4.4). A match classifies the module as
// Root on its own, whether or not a bootstrapModule call was found.
var rootModulePattern = regexp.MustCompile(`(^|/)app[.-]module\.tsx?$`)

// classifyRole applies spec §4.4's role-classification heuristics in
// priority order: Root > GlobalShared > LazyFeature > Feature >
// DeadOrUnreachable > Unknown.
func classifyRole(m *model.Module, byName map[string]*model.Module, lazyTargets map[string]bool) model.ModuleRole {
	if m.Bootstrap || rootModulePattern.MatchString(m.File) {
		return model.RoleRoot
	}

	referencedBy := referencingModules(m, byName)

	if len(m.Exports) > 0 && len(referencedBy) > 1 {
		return model.RoleGlobalShared
	}

	if lazyTargets[m.File] {
		return model.RoleLazyFeature
	}

	if len(referencedBy) == 0 {
		return model.RoleDeadOrUnreachable
	}

	if len(referencedBy) > 0 {
		return model.RoleFeature
	}

	return model.RoleUnknown
}

func referencingModules(target *model.Module, byName map[string]*model.Module) []string {
	var out []string
	for name, m := range byName {
		if m.ID == target.ID {
			continue
		}
		for _, imp := range m.Imports {
			if imp == target.Name || strings.HasPrefix(imp, target.Name+".") {
				out = append(out, name)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
