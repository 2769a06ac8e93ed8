package template

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// voidElements is the fixed HTML void-element set: tags that never carry
// a matching end tag and so are never pushed onto the nesting stack.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Options configures the template adapter. The zero value is usable.
type Options struct {
	// PreserveWhitespace is always false per spec §4.2 ("Whitespace
	// preservation is disabled"); kept as a field only so callers don't
	// need a separate no-op type to pass through §6's options shape.
	PreserveWhitespace bool
}

// Parse converts raw template text into the uniform tree (spec §4.2).
// It is fail-safe: any parser panic is recovered and converted into an
// empty node slice, and blank or whitespace-only text also yields [];
// text with no elements yields its text nodes.
func Parse(text string, url string, opts Options) (nodes []*Node) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("template parse failed, downgrading to empty AST",
				slog.String("url", url), slog.Any("panic", r))
			nodes = []*Node{}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return []*Node{}
	}

	p := &parser{src: text}
	return p.run()
}

type parser struct {
	src    string
	offset int
}

type frame struct {
	node *Node
	tag  string
}

// run tokenizes src with the raw x/net/html tokenizer (not the full
// HTML5 tree-construction algorithm, which would foster-parent unknown
// custom elements into places that don't reflect the author's template)
// and rebuilds nesting with an explicit stack, tracking each token's
// byte span via a running cursor advanced by len(z.Raw()) — x/net/html's
// tokenizer exposes no offsets directly, so the cursor is reconstructed
// the same way vcrobe-nojs-lab's template compiler does it.
func (p *parser) run() []*Node {
	z := html.NewTokenizer(strings.NewReader(p.src))
	var roots []*Node
	var stack []frame

	appendChild := func(n *Node) {
		if len(stack) == 0 {
			roots = append(roots, n)
			return
		}
		top := stack[len(stack)-1].node
		top.Children = append(top.Children, n)
	}

	for {
		tt := z.Next()
		raw := z.Raw()
		start := p.offset
		end := p.offset + len(raw)
		p.offset = end

		switch tt {
		case html.ErrorToken:
			return roots

		case html.TextToken:
			text := string(z.Text())
			if strings.TrimSpace(text) == "" {
				continue
			}
			kind := KindText
			if strings.Contains(text, "{{") {
				kind = KindBoundText
			}
			appendChild(&Node{Kind: kind, Value: text, Span: &Span{Start: start, End: end}})

		case html.StartTagToken, html.SelfClosingTagToken:
			// z.Token lower-cases attribute keys in place, so the keys'
			// original case is recovered from a copy of the raw tag text.
			rawText := string(raw)
			tok := z.Token()
			lowerRaw := []byte(rawText)
			for i, c := range lowerRaw {
				if 'A' <= c && c <= 'Z' {
					lowerRaw[i] = c + 'a' - 'A'
				}
			}
			pos := 1 + len(tok.Data)
			el := &Node{Kind: KindElement, Name: tok.Data, Span: &Span{Start: start, End: end}}
			for _, a := range tok.Attr {
				key := a.Key
				if i := strings.Index(string(lowerRaw[pos:]), a.Key); i >= 0 {
					key = rawText[pos+i : pos+i+len(a.Key)]
					pos += i + len(a.Key)
				}
				el.Attributes = append(el.Attributes, classifyAttr(key, a.Val, start, end))
			}
			appendChild(el)
			if tt == html.StartTagToken && !voidElements[tok.Data] {
				stack = append(stack, frame{node: el, tag: tok.Data})
			}

		case html.EndTagToken:
			tok := z.Token()
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].tag == tok.Data {
					if stack[i].node.Span != nil {
						stack[i].node.Span.End = end
					}
					stack = stack[:i]
					break
				}
			}

		case html.CommentToken, html.DoctypeToken:
			// not part of the widget/predicate surface; dropped.
		}
	}
}

// classifyAttr maps one raw HTML attribute into the template-engine
// oracle's attr/boundAttr/event/structural split (spec §4.2, §6):
//   - "*name"       -> structural template attribute
//   - "[(name)]"    -> boundAttr (banana-in-a-box; treated as bound)
//   - "[name]"      -> boundAttr
//   - "(name)"      -> event
//   - anything else -> plain attr
func classifyAttr(key, val string, start, end int) *Node {
	n := &Node{Value: val, Span: &Span{Start: start, End: end}}
	switch {
	case strings.HasPrefix(key, "*"):
		n.Kind = KindStructural
		n.Name = strings.TrimPrefix(key, "*")
	case strings.HasPrefix(key, "[(") && strings.HasSuffix(key, ")]"):
		n.Kind = KindBoundAttr
		n.Name = strings.TrimSuffix(strings.TrimPrefix(key, "[("), ")]")
	case strings.HasPrefix(key, "[") && strings.HasSuffix(key, "]"):
		n.Kind = KindBoundAttr
		n.Name = strings.TrimSuffix(strings.TrimPrefix(key, "["), "]")
	case strings.HasPrefix(key, "(") && strings.HasSuffix(key, ")"):
		n.Kind = KindEvent
		n.Name = strings.TrimSuffix(strings.TrimPrefix(key, "("), ")")
	default:
		n.Kind = KindAttr
		n.Name = key
	}
	return n
}
