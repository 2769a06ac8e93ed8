// Package guards implements the bounded guard-constraint summarizer of
// spec §4.7: a textual-substring heuristic over a guard class's source,
// not an execution of the guard's actual logic.
package guards

import (
	"regexp"
	"sort"

	"github.com/softscanner-sw/spa-multigraph/internal/astaccess"
	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

var (
	authPattern    = regexp.MustCompile(`(?i)(isAuthenticated|isLoggedIn|authService|currentUser)`)
	rolePattern    = regexp.MustCompile(`(?i)(hasRole|hasPermission|checkRole|userRole|requiredRole|roles|permissions)`)
	featurePattern = regexp.MustCompile(`(?i)featureFlag[s]?\s*[.\[]\s*['"]?([A-Za-z0-9_\-]+)['"]?`)
	entityPattern  = regexp.MustCompile(`(?i)(route\.params|paramMap\.get|resolve\()`)

	// roleLiteralPattern collects the identifier-like string literals of a
	// guard whose text mentions one of rolePattern's indicators.
	roleLiteralPattern = regexp.MustCompile(`['"]([A-Za-z][A-Za-z0-9_\-]*)['"]`)
)

// Summary is the bounded constraint surface derived from one guard
// class's source text (spec §4.7).
type Summary struct {
	AuthRequired         bool
	RolesRequired        []string // sorted/unique
	FeatureFlags         []string // sorted/unique
	RequiresEntityState  bool
}

// Summarize scans the declaring file of guardClassName for the guard
// heuristics of spec §4.7. A guard class that cannot be resolved to a
// declaration yields the zero Summary.
func Summarize(project *astaccess.Project, guardClassName string) Summary {
	node, file, ok := project.ResolveSymbolToDeclaration(guardClassName)
	if !ok {
		return Summary{}
	}
	text := file.Content(int(node.StartByte()), int(node.EndByte()))
	return summarizeText(text)
}

func summarizeText(text string) Summary {
	var s Summary
	s.AuthRequired = authPattern.MatchString(text)
	s.RequiresEntityState = entityPattern.MatchString(text)

	seen := map[string]bool{}
	if rolePattern.MatchString(text) {
		for _, m := range roleLiteralPattern.FindAllStringSubmatch(text, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				s.RolesRequired = append(s.RolesRequired, m[1])
			}
		}
	}
	sort.Strings(s.RolesRequired)

	seenFlags := map[string]bool{}
	for _, m := range featurePattern.FindAllStringSubmatch(text, -1) {
		if !seenFlags[m[1]] {
			seenFlags[m[1]] = true
			s.FeatureFlags = append(s.FeatureFlags, m[1])
		}
	}
	sort.Strings(s.FeatureFlags)

	return s
}

// ToConstraintSurface folds a guard Summary into a route's
// ConstraintSurface (spec §4.8, "executable edges carry a bounded
// ConstraintSurface").
func (s Summary) ToConstraintSurface(guardName string) model.ConstraintSurface {
	var cs model.ConstraintSurface
	cs.Guards = []string{guardName}
	cs.Roles = append(cs.Roles, s.RolesRequired...)
	if s.AuthRequired {
		cs.Evidence = append(cs.Evidence, "authRequired")
	}
	if s.RequiresEntityState {
		cs.Evidence = append(cs.Evidence, "requiresEntityState")
	}
	for _, f := range s.FeatureFlags {
		cs.Evidence = append(cs.Evidence, "featureFlag:"+f)
	}
	sort.Strings(cs.Evidence)
	return cs
}

// MergeConstraintSurfaces combines several guard summaries attached to
// the same route into a single deduplicated/sorted ConstraintSurface.
func MergeConstraintSurfaces(surfaces []model.ConstraintSurface) model.ConstraintSurface {
	var out model.ConstraintSurface
	guardSeen, roleSeen, evSeen := map[string]bool{}, map[string]bool{}, map[string]bool{}
	for _, s := range surfaces {
		for _, g := range s.Guards {
			if !guardSeen[g] {
				guardSeen[g] = true
				out.Guards = append(out.Guards, g)
			}
		}
		for _, r := range s.Roles {
			if !roleSeen[r] {
				roleSeen[r] = true
				out.Roles = append(out.Roles, r)
			}
		}
		for _, e := range s.Evidence {
			if !evSeen[e] {
				evSeen[e] = true
				out.Evidence = append(out.Evidence, e)
			}
		}
	}
	sort.Strings(out.Guards)
	sort.Strings(out.Roles)
	sort.Strings(out.Evidence)
	return out
}
