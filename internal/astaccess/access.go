package astaccess

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/softscanner-sw/spa-multigraph/internal/origin"
)

// GetOrigin derives an Origin from a tree-sitter node's byte/point range
// (spec §4.1). Line/column are 1-based; Start/End are exact byte offsets.
func GetOrigin(f *File, node *sitter.Node, symbolHint string) origin.Origin {
	if f == nil || node == nil {
		return origin.Origin{}
	}
	start := node.StartPoint()
	end := node.EndPoint()
	o := origin.Origin{
		File:      f.Path,
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
		Start:     int(node.StartByte()),
		End:       int(node.EndByte()),
		Symbol:    symbolHint,
	}
	o.Snippet = TruncateDeterministically(f.Content(o.Start, o.End), 200)
	return o
}

// FindDecorator looks for a decorator named `name` attached to classNode
// (spec §4.1). Decorators surface as leading "decorator" nodes either as
// direct children of the class declaration or as preceding siblings when
// the class sits inside an export_statement wrapper.
func FindDecorator(f *File, classNode *sitter.Node, name string) *sitter.Node {
	if classNode == nil {
		return nil
	}
	if d := findDecoratorAmong(classNode, f, name); d != nil {
		return d
	}
	parent := classNode.Parent()
	if parent == nil {
		return nil
	}
	return findDecoratorAmong(parent, f, name)
}

func findDecoratorAmong(container *sitter.Node, f *File, name string) *sitter.Node {
	for i := 0; i < int(container.ChildCount()); i++ {
		c := container.Child(i)
		if c == nil || c.Type() != "decorator" {
			continue
		}
		n, _ := decoratorNameAndArgs(f, c)
		if n == name {
			return c
		}
	}
	return nil
}

// decoratorNameAndArgs extracts a decorator's callee name and its
// "arguments" node (the decorator's sole call argument, typically an
// object literal), mirroring the reference stack's
// extractDecoratorNameAndArgs.
func decoratorNameAndArgs(f *File, decorator *sitter.Node) (string, *sitter.Node) {
	for i := 0; i < int(decorator.ChildCount()); i++ {
		c := decorator.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "identifier":
			return f.Content(int(c.StartByte()), int(c.EndByte())), nil
		case "call_expression":
			var name string
			var args *sitter.Node
			for j := 0; j < int(c.ChildCount()); j++ {
				gc := c.Child(j)
				if gc == nil {
					continue
				}
				switch gc.Type() {
				case "identifier", "member_expression":
					if name == "" {
						name = f.Content(int(gc.StartByte()), int(gc.EndByte()))
					}
				case "arguments":
					args = gc
				}
			}
			return name, args
		}
	}
	return "", nil
}

// DecoratorFirstArg returns the decorator's first argument node that is
// an object literal, array literal, call expression or identifier, or nil.
func DecoratorFirstArg(args *sitter.Node) *sitter.Node {
	if args == nil {
		return nil
	}
	for i := 0; i < int(args.ChildCount()); i++ {
		c := args.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "object", "array", "call_expression", "identifier":
			return c
		}
	}
	return nil
}

// ObjectProperty finds the value node of `key` inside an object literal.
func ObjectProperty(f *File, obj *sitter.Node, key string) *sitter.Node {
	if obj == nil || obj.Type() != "object" {
		return nil
	}
	for i := 0; i < int(obj.ChildCount()); i++ {
		pair := obj.Child(i)
		if pair == nil || (pair.Type() != "pair" && pair.Type() != "shorthand_property_identifier") {
			continue
		}
		if pair.Type() == "shorthand_property_identifier" {
			if f.Content(int(pair.StartByte()), int(pair.EndByte())) == key {
				return pair
			}
			continue
		}
		var k, v *sitter.Node
		for j := 0; j < int(pair.ChildCount()); j++ {
			c := pair.Child(j)
			if c == nil {
				continue
			}
			if k == nil && (c.Type() == "property_identifier" || c.Type() == "string") {
				k = c
				continue
			}
			v = c
		}
		if k == nil {
			continue
		}
		name := f.Content(int(k.StartByte()), int(k.EndByte()))
		name = strings.Trim(name, `"'`)
		if name == key {
			return v
		}
	}
	return nil
}

// GetStringLiteralValue returns a string/template literal's value when
// it carries no interpolated substitution; nil (ok=false) otherwise
// (spec §4.1).
func GetStringLiteralValue(f *File, node *sitter.Node) (string, bool) {
	if f == nil || node == nil {
		return "", false
	}
	switch node.Type() {
	case "string":
		for i := 0; i < int(node.ChildCount()); i++ {
			c := node.Child(i)
			if c != nil && c.Type() == "string_fragment" {
				return f.Content(int(c.StartByte()), int(c.EndByte())), true
			}
		}
		raw := f.Content(int(node.StartByte()), int(node.EndByte()))
		return strings.Trim(raw, `"'`), true
	case "template_string":
		var b strings.Builder
		for i := 0; i < int(node.ChildCount()); i++ {
			c := node.Child(i)
			if c == nil {
				continue
			}
			switch c.Type() {
			case "string_fragment":
				b.WriteString(f.Content(int(c.StartByte()), int(c.EndByte())))
			case "template_substitution":
				return "", false // has interpolation; not a plain literal
			}
		}
		return b.String(), true
	default:
		return "", false
	}
}

// ExtractArrayOfIdentifiers walks an array-literal node and returns its
// top-level identifier elements, sorted and deduplicated (spec §4.1).
func ExtractArrayOfIdentifiers(f *File, node *sitter.Node) []string {
	if node == nil || node.Type() != "array" {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c == nil || c.Type() != "identifier" {
			continue
		}
		name := f.Content(int(c.StartByte()), int(c.EndByte()))
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ExtractArrayOfStringLiterals walks an array-literal node and returns
// its top-level string-literal elements, sorted and deduplicated.
func ExtractArrayOfStringLiterals(f *File, node *sitter.Node) []string {
	if node == nil || node.Type() != "array" {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c == nil {
			continue
		}
		if v, ok := GetStringLiteralValue(f, c); ok {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

// GetCallExpressionArgs returns up to 10 raw argument texts of a
// call_expression node, each bounded by TruncateDeterministically(maxLen)
// (spec §4.1).
func GetCallExpressionArgs(f *File, node *sitter.Node, maxLen int) []string {
	if f == nil || node == nil || node.Type() != "call_expression" {
		return nil
	}
	var argsNode *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c != nil && c.Type() == "arguments" {
			argsNode = c
			break
		}
	}
	if argsNode == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(argsNode.NamedChildCount()) && len(out) < 10; i++ {
		c := argsNode.NamedChild(i)
		if c == nil {
			continue
		}
		out = append(out, TruncateDeterministically(f.Content(int(c.StartByte()), int(c.EndByte())), maxLen))
	}
	return out
}

// TruncateDeterministically is the global truncation policy of spec
// §4.1: if |s| (in runes) exceeds maxLen, returns the first maxLen runes
// plus an ellipsis; otherwise returns s unchanged.
func TruncateDeterministically(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "…"
}

// ResolveImportTarget resolves a relative import specifier to an
// absolute-within-project file path, or ("", false) for a third-party
// (non-relative) specifier (spec §4.1).
func (p *Project) ResolveImportTarget(sourceFile string, specifier string) (string, bool) {
	if !strings.HasPrefix(specifier, ".") {
		return "", false
	}
	dir := path.Dir(filepath.ToSlash(sourceFile))
	joined := path.Clean(path.Join(dir, specifier))

	candidates := []string{joined + ".ts", joined + ".tsx", joined, joined + "/index.ts", joined + "/index.tsx"}
	for _, c := range candidates {
		if f, ok := p.FileByPath(c); ok {
			return f.Path, true
		}
	}
	return "", false
}

// ResolveSymbolToDeclaration searches project files, in sorted path
// order, for a top-level class or variable declaration named `name`
// (spec §4.1). Returns the first match deterministically.
func (p *Project) ResolveSymbolToDeclaration(name string) (*sitter.Node, *File, bool) {
	for _, f := range p.Files {
		root := f.Tree.RootNode()
		if n := findTopLevelDeclaration(f, root, name); n != nil {
			return n, f, true
		}
	}
	return nil, nil, false
}

func findTopLevelDeclaration(f *File, node *sitter.Node, name string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c == nil {
			continue
		}
		target := c
		if c.Type() == "export_statement" {
			for j := 0; j < int(c.ChildCount()); j++ {
				gc := c.Child(j)
				if gc != nil && (gc.Type() == "class_declaration" || gc.Type() == "lexical_declaration") {
					target = gc
					break
				}
			}
		}
		switch target.Type() {
		case "class_declaration":
			if declName(f, target, "type_identifier") == name {
				return target
			}
		case "lexical_declaration":
			if n := findDeclaratorNamed(f, target, name); n != nil {
				return n
			}
		}
	}
	return nil
}

func declName(f *File, node *sitter.Node, childType string) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c != nil && c.Type() == childType {
			return f.Content(int(c.StartByte()), int(c.EndByte()))
		}
	}
	return ""
}

func findDeclaratorNamed(f *File, lexDecl *sitter.Node, name string) *sitter.Node {
	for i := 0; i < int(lexDecl.ChildCount()); i++ {
		d := lexDecl.Child(i)
		if d == nil || d.Type() != "variable_declarator" {
			continue
		}
		id := d.Child(0)
		if id != nil && id.Type() == "identifier" && f.Content(int(id.StartByte()), int(id.EndByte())) == name {
			return d
		}
	}
	return nil
}
