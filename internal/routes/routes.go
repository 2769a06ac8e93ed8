// Package routes implements the route-extraction stage of spec §4.3: it
// discovers route-array literals, parses each route recursively
// (including lazy-loaded feature modules), normalizes paths, resolves
// component ids, and assembles the deduplicated RouteMap/ComponentRouteMap.
package routes

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/softscanner-sw/spa-multigraph/internal/astaccess"
	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

// loadChildrenPattern extracts the import specifier and the `.then(m =>
// m.Foo)` / `.then(m => m.Foo)` exported member of a lazy loadChildren
// arrow function body, e.g.
//
//	() => import('./admin/admin.module').then(m => m.AdminModule)
//
// Full static analysis of the dynamic-import promise chain is unneeded:
// this textual pattern covers every lazy-loading form the router
// actually supports (spec §4.3, "lazy module recursion").
var loadChildrenPattern = regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)(?:\s*\.then\(\s*\(?\s*\w*\s*\)?\s*=>\s*\w+\.(\w+)\s*\))?`)

// loadComponentPattern mirrors loadChildrenPattern for standalone
// loadComponent routes (Angular 14+'s component-level lazy loading).
var loadComponentPattern = loadChildrenPattern

// paramSegment matches a `:name` route-path segment.
var paramSegment = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// Extractor walks a project's router configuration and produces the
// final RouteMap / ComponentRouteMap (spec §4.3, "Output").
type Extractor struct {
	project *astaccess.Project

	// resolveComponent maps a component class name declared in
	// sourceFile to its canonical component id, following the
	// registry-lookup -> synthesize -> sentinel chain of spec §4.3.
	resolveComponent func(sourceFile, className string) string

	visitedSpecifiers map[string]bool
	seenRecordOrigins map[string]bool
}

// NewExtractor builds a route Extractor. resolveComponent must implement
// the component-id resolution chain (spec §4.3, "Component id
// resolution"); passing nil falls back to the synthesized-id-only path.
func NewExtractor(project *astaccess.Project, resolveComponent func(sourceFile, className string) string) *Extractor {
	if resolveComponent == nil {
		resolveComponent = func(sourceFile, className string) string {
			return sourceFile + "#" + className
		}
	}
	return &Extractor{
		project:           project,
		resolveComponent:  resolveComponent,
		visitedSpecifiers: map[string]bool{},
		seenRecordOrigins: map[string]bool{},
	}
}

// Extract runs route-array discovery over every project file and
// assembles the final RouteMap and ComponentRouteMap.
func (e *Extractor) Extract() (*model.RouteMap, *model.ComponentRouteMap) {
	rm := model.NewRouteMap()
	var all []*model.Route

	for _, f := range e.project.Files {
		for _, arr := range discoverRouteArrays(f) {
			all = append(all, e.parseRouteArray(f, arr, "", nil, true)...)
		}
	}

	all = dedupeAndMerge(all)
	sort.Slice(all, func(i, j int) bool { return all[i].FullPath < all[j].FullPath })

	for _, r := range all {
		rm.Routes = append(rm.Routes, r)
		rm.ByID[r.ID] = r
	}

	crm := &model.ComponentRouteMap{
		RouteMap:            rm,
		RoutesByComponentID: map[string][]*model.Route{},
		ComponentUsageCount: map[string]int{},
	}
	for _, r := range rm.Routes {
		if r.ComponentID == "" {
			continue
		}
		crm.RoutesByComponentID[r.ComponentID] = append(crm.RoutesByComponentID[r.ComponentID], r)
		crm.ComponentUsageCount[r.ComponentID]++
	}
	for id := range crm.RoutesByComponentID {
		list := crm.RoutesByComponentID[id]
		sort.Slice(list, func(i, j int) bool { return list[i].FullPath < list[j].FullPath })
	}

	return rm, crm
}

// discoverRouteArrays finds every array literal that looks like a route
// table in f: a `const routes: Routes = [...]` / `Route[]`-typed
// declarator, a variable literally named `routes`, or the sole array
// argument to RouterModule.forRoot/forChild (spec §4.3, "Route-array
// discovery").
func discoverRouteArrays(f *astaccess.File) []*sitter.Node {
	var out []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "variable_declarator":
			if isRouteArrayDeclarator(f, n) {
				if v := declaratorValue(n); v != nil && v.Type() == "array" {
					out = append(out, v)
				}
			}
		case "call_expression":
			if callee := calleeText(f, n); strings.HasSuffix(callee, "RouterModule.forRoot") || strings.HasSuffix(callee, "RouterModule.forChild") {
				if args := firstArgArray(f, n); args != nil {
					out = append(out, args)
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(f.Tree.RootNode())
	return out
}

func isRouteArrayDeclarator(f *astaccess.File, decl *sitter.Node) bool {
	id := decl.Child(0)
	if id == nil {
		return false
	}
	if id.Type() == "identifier" && f.Content(int(id.StartByte()), int(id.EndByte())) == "routes" {
		return true
	}
	// look for a ": Routes" / ": Route[]" type annotation sibling
	for i := 0; i < int(decl.ChildCount()); i++ {
		c := decl.Child(i)
		if c != nil && c.Type() == "type_annotation" {
			txt := f.Content(int(c.StartByte()), int(c.EndByte()))
			if strings.Contains(txt, "Routes") || strings.Contains(txt, "Route[]") || strings.Contains(txt, "Route>") {
				return true
			}
		}
	}
	return false
}

func declaratorValue(decl *sitter.Node) *sitter.Node {
	for i := 0; i < int(decl.ChildCount()); i++ {
		c := decl.Child(i)
		if c != nil && c.Type() == "array" {
			return c
		}
	}
	return nil
}

func calleeText(f *astaccess.File, call *sitter.Node) string {
	for i := 0; i < int(call.ChildCount()); i++ {
		c := call.Child(i)
		if c != nil && (c.Type() == "member_expression" || c.Type() == "identifier") {
			return f.Content(int(c.StartByte()), int(c.EndByte()))
		}
	}
	return ""
}

func firstArgArray(f *astaccess.File, call *sitter.Node) *sitter.Node {
	for i := 0; i < int(call.ChildCount()); i++ {
		c := call.Child(i)
		if c == nil || c.Type() != "arguments" {
			continue
		}
		if c.NamedChildCount() > 0 {
			arg := c.NamedChild(0)
			if arg.Type() == "array" {
				return arg
			}
			if arg.Type() == "identifier" {
				return nil // resolved separately if ever needed; arrays are the common case
			}
		}
	}
	return nil
}

// parseRouteArray parses every object-literal element of arr into Routes
// under parentFullPath/parentID, recursing into `children` arrays and
// lazy-loaded modules.
func (e *Extractor) parseRouteArray(f *astaccess.File, arr *sitter.Node, parentFullPath string, parentID *string, topLevel bool) []*model.Route {
	var out []*model.Route
	for i := 0; i < int(arr.NamedChildCount()); i++ {
		obj := arr.NamedChild(i)
		if obj == nil || obj.Type() != "object" {
			continue
		}
		r, children := e.parseRouteObject(f, obj, parentFullPath, parentID, topLevel)
		if r == nil {
			continue
		}
		out = append(out, r)
		if len(children) > 0 {
			r.ChildIDs = make([]string, 0, len(children))
			for _, c := range children {
				r.ChildIDs = append(r.ChildIDs, c.ID)
			}
			sort.Strings(r.ChildIDs)
			out = append(out, children...)
		}
	}
	return out
}

func (e *Extractor) parseRouteObject(f *astaccess.File, obj *sitter.Node, parentFullPath string, parentID *string, topLevel bool) (*model.Route, []*model.Route) {
	rawPath := ""
	if v := astaccess.ObjectProperty(f, obj, "path"); v != nil {
		if s, ok := astaccess.GetStringLiteralValue(f, v); ok {
			rawPath = s
		}
	}

	full := buildFullPath(parentFullPath, rawPath)
	o := astaccess.GetOrigin(f, obj, "")

	r := &model.Route{
		ModuleFile: f.Path,
		RawPath:    rawPath,
		FullPath:   full,
		ParentID:   parentID,
		IsTopLevel: topLevel,
		Params:     extractRouteParams(full),
		Origin:     o,
		Resolvers:  map[string]string{},
		Data:       map[string]string{},
	}

	switch {
	case rawPath == "**":
		r.Kind = model.RouteKindWildcard
	case astaccess.ObjectProperty(f, obj, "redirectTo") != nil:
		r.Kind = model.RouteKindRedirect
		if v := astaccess.ObjectProperty(f, obj, "redirectTo"); v != nil {
			if s, ok := astaccess.GetStringLiteralValue(f, v); ok {
				r.RedirectTo = s
				r.RedirectFullPath = normalizeRedirectTarget(full, s)
			}
		}
		r.RedirectPathMatch = model.PathMatchPrefix
		if v := astaccess.ObjectProperty(f, obj, "pathMatch"); v != nil {
			if s, ok := astaccess.GetStringLiteralValue(f, v); ok && s == "full" {
				r.RedirectPathMatch = model.PathMatchFull
			}
		}
	default:
		r.Kind = model.RouteKindComponent
		if v := astaccess.ObjectProperty(f, obj, "component"); v != nil && v.Type() == "identifier" {
			name := f.Content(int(v.StartByte()), int(v.EndByte()))
			r.ComponentID = e.resolveComponent(f.Path, name)
		} else if rawPath != "**" {
			r.ComponentID = "__unknown__"
		}
	}

	r.ID = full + "@" + f.Path

	if v := astaccess.ObjectProperty(f, obj, "outlet"); v != nil {
		if s, ok := astaccess.GetStringLiteralValue(f, v); ok {
			r.Outlet = s
		}
	}

	r.Guards = extractGuards(f, obj)
	r.Data = extractStringMap(f, obj, "data")
	r.Resolvers = extractStringMap(f, obj, "resolve")

	var children []*model.Route
	if v := astaccess.ObjectProperty(f, obj, "children"); v != nil && v.Type() == "array" {
		children = e.parseRouteArray(f, v, full, &r.ID, false)
	}

	if v := astaccess.ObjectProperty(f, obj, "loadChildren"); v != nil {
		children = append(children, e.followLazyChildren(f, v, full, &r.ID)...)
	}
	if v := astaccess.ObjectProperty(f, obj, "loadComponent"); v != nil {
		if id, ok := e.resolveLazyComponent(f, v); ok {
			r.ComponentID = id
		}
	}

	return r, children
}

// followLazyChildren resolves a loadChildren arrow function to its
// target module file, loads that file's own route array(s), and recurses
// (spec §4.3, "lazy module recursion"). visitedSpecifiers guards against
// import cycles; seenRecordOrigins guards against re-processing the same
// literal route-array node reached via two different import chains.
func (e *Extractor) followLazyChildren(f *astaccess.File, node *sitter.Node, parentFullPath string, parentID *string) []*model.Route {
	text := f.Content(int(node.StartByte()), int(node.EndByte()))
	m := loadChildrenPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	specifier := m[1]
	key := f.Path + "->" + specifier
	if e.visitedSpecifiers[key] {
		return nil
	}
	e.visitedSpecifiers[key] = true

	target, ok := e.project.ResolveImportTarget(f.Path, specifier)
	if !ok {
		if tf, ok2 := e.project.FileContaining(specifier); ok2 {
			target = tf.Path
		} else {
			return nil
		}
	}
	tf, ok := e.project.FileByPath(target)
	if !ok {
		return nil
	}

	var out []*model.Route
	for _, arr := range discoverRouteArrays(tf) {
		originKey := tf.Path + "@" + strconv.Itoa(int(arr.StartByte()))
		if e.seenRecordOrigins[originKey] {
			continue
		}
		e.seenRecordOrigins[originKey] = true
		out = append(out, e.parseRouteArray(tf, arr, parentFullPath, parentID, false)...)
	}
	return out
}

func (e *Extractor) resolveLazyComponent(f *astaccess.File, node *sitter.Node) (string, bool) {
	text := f.Content(int(node.StartByte()), int(node.EndByte()))
	m := loadComponentPattern.FindStringSubmatch(text)
	if m == nil || m[2] == "" {
		return "", false
	}
	specifier, className := m[1], m[2]
	target, ok := e.project.ResolveImportTarget(f.Path, specifier)
	if !ok {
		return "__unresolved__#" + className, true
	}
	return e.resolveComponent(target, className), true
}

func extractGuards(f *astaccess.File, obj *sitter.Node) []model.GuardBinding {
	kinds := []model.GuardKind{
		model.GuardCanActivate, model.GuardCanLoad,
		model.GuardCanActivateChild, model.GuardCanDeactivate,
	}
	var out []model.GuardBinding
	for _, k := range kinds {
		v := astaccess.ObjectProperty(f, obj, string(k))
		if v == nil || v.Type() != "array" {
			continue
		}
		for _, name := range astaccess.ExtractArrayOfIdentifiers(f, v) {
			out = append(out, model.GuardBinding{
				Kind:      k,
				GuardName: name,
				Origin:    astaccess.GetOrigin(f, v, name),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].GuardName < out[j].GuardName
	})
	return out
}

// extractStringMap reads an object-literal-valued property (`data` or
// `resolve`) into a flat key->raw-value-text map, bounded/truncated like
// every other free-text extraction surface (spec §4.1).
func extractStringMap(f *astaccess.File, obj *sitter.Node, key string) map[string]string {
	out := map[string]string{}
	v := astaccess.ObjectProperty(f, obj, key)
	if v == nil || v.Type() != "object" {
		return out
	}
	for i := 0; i < int(v.ChildCount()); i++ {
		pair := v.Child(i)
		if pair == nil || pair.Type() != "pair" {
			continue
		}
		k := pair.Child(0)
		val := pair.Child(int(pair.ChildCount()) - 1)
		if k == nil || val == nil {
			continue
		}
		name := strings.Trim(f.Content(int(k.StartByte()), int(k.EndByte())), `"'`)
		out[name] = astaccess.TruncateDeterministically(f.Content(int(val.StartByte()), int(val.EndByte())), 200)
	}
	return out
}

// buildFullPath joins a parent full path and a raw segment the way
// Angular's router does: empty segments collapse, and each non-empty
// segment is separated by exactly one slash (spec §4.3).
func buildFullPath(parent, raw string) string {
	parent = strings.Trim(parent, "/")
	raw = strings.Trim(raw, "/")
	switch {
	case parent == "" && raw == "":
		return "/"
	case parent == "":
		return "/" + raw
	case raw == "":
		return "/" + parent
	default:
		return "/" + parent + "/" + raw
	}
}

// normalizeRedirectTarget resolves a redirectTo value against the
// redirect route's own full path: absolute targets (leading "/") are
// used as-is; relative targets are joined, the same way buildFullPath
// joins route segments, onto the own full path with its last segment
// removed, so they resolve as siblings (spec §4.3).
func normalizeRedirectTarget(ownFullPath, redirectTo string) string {
	if strings.HasPrefix(redirectTo, "/") {
		return redirectTo
	}
	parentOfOwn := ownFullPath
	if idx := strings.LastIndex(strings.TrimSuffix(ownFullPath, "/"), "/"); idx >= 0 {
		parentOfOwn = ownFullPath[:idx]
	}
	return buildFullPath(parentOfOwn, redirectTo)
}

// extractRouteParams returns the sorted, deduplicated `:name` segments of
// a full path (spec §4.3, extractRouteParams).
func extractRouteParams(fullPath string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range paramSegment.FindAllStringSubmatch(fullPath, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	sort.Strings(out)
	return out
}

// dedupeAndMerge collapses routes sharing the same id, preferring the
// variant with higher resolution quality (any componentId containing "#"
// beats "__unresolved__#..." beats "__unknown__" beats ""; ids containing
// "#" rank equally, so a registry-resolved id and a synthesized one are
// not told apart) and merging the guard sets (spec §4.3, "canonical
// dedup/merge"). Data and resolvers are taken from the kept variant only.
func dedupeAndMerge(routes []*model.Route) []*model.Route {
	byID := map[string]*model.Route{}
	var order []string
	for _, r := range routes {
		existing, ok := byID[r.ID]
		if !ok {
			byID[r.ID] = r
			order = append(order, r.ID)
			continue
		}
		if resolutionQuality(r.ComponentID) > resolutionQuality(existing.ComponentID) {
			r.Guards = mergeGuards(existing.Guards, r.Guards)
			byID[r.ID] = r
		} else {
			existing.Guards = mergeGuards(existing.Guards, r.Guards)
		}
	}
	out := make([]*model.Route, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

func resolutionQuality(componentID string) int {
	switch {
	case componentID == "":
		return 0
	case componentID == "__unknown__":
		return 1
	case strings.HasPrefix(componentID, "__unresolved__#"):
		return 2
	case strings.Contains(componentID, "#"):
		return 3
	default:
		return 1
	}
}

func mergeGuards(a, b []model.GuardBinding) []model.GuardBinding {
	seen := map[string]bool{}
	var out []model.GuardBinding
	for _, g := range append(append([]model.GuardBinding{}, a...), b...) {
		key := string(g.Kind) + "::" + g.GuardName
		if !seen[key] {
			seen[key] = true
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].GuardName < out[j].GuardName
	})
	return out
}
