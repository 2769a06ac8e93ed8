// Package template adapts an opaque HTML-like template into the uniform
// tree the component pipeline walks (spec §4.2, "Template Parser Adapter").
package template

// NodeKind enumerates the uniform template-AST node kinds (spec §4.2).
type NodeKind string

const (
	KindElement    NodeKind = "element"
	KindText       NodeKind = "text"
	KindBoundText  NodeKind = "boundText"
	KindAttr       NodeKind = "attr"
	KindBoundAttr  NodeKind = "boundAttr"
	KindEvent      NodeKind = "event"
	KindStructural NodeKind = "structural"
	KindDirective  NodeKind = "directive"
)

// Span is a byte-offset range into the original template text (bytes,
// not characters).
type Span struct {
	Start int
	End   int
}

// Node is one entry in the uniform template tree (spec §4.2).
type Node struct {
	Kind     NodeKind
	Name     string
	Value    string
	Children []*Node
	Span     *Span // nil when the underlying token carried no usable span

	// Attributes holds every attribute-shaped child of an element node —
	// plain attrs, bound ([x]) attrs, (event) outputs, and *structural
	// template attrs — each tagged with its own Kind. This mirrors the
	// template-engine oracle's split attributes/inputs/outputs/
	// templateAttrs collections (spec §6) without forcing four parallel
	// slices; callers filter by Kind.
	Attributes []*Node
}

// ByKind filters a node's Attributes to a single NodeKind.
func (n *Node) ByKind(k NodeKind) []*Node {
	var out []*Node
	for _, a := range n.Attributes {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}
