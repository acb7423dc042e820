package weave

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MethodAny registers an entry for every HTTP verb.
const MethodAny = "*"

var knownMethods = map[string]bool{
	http.MethodConnect: true,
	http.MethodDelete:  true,
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodPatch:   true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodTrace:   true,
}

// Entry declares one route: an HTTP verb (or MethodAny), a path pattern, and
// the handler to run on a match. Patterns mix literal segments with
// parameters written {name} or {name:constraint}, one path segment each.
type Entry struct {
	Method  string
	Pattern string
	Handler Handler
}

// constraint validates one bound path segment.
type constraint func(seg string) bool

// Built-in parameter constraints.
var builtinConstraints = map[string]constraint{
	"alpha": func(seg string) bool {
		for _, r := range seg {
			if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
				return false
			}
		}
		return true
	},
	"int": func(seg string) bool {
		if seg[0] == '-' {
			seg = seg[1:]
		}
		if seg == "" {
			return false
		}
		for _, r := range seg {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	},
	"uuid": func(seg string) bool {
		_, err := uuid.Parse(seg)
		return err == nil
	},
}

// segment is one compiled pattern position: either a literal or a parameter,
// the latter optionally constrained.
type segment struct {
	literal string
	param   string
	check   constraint // nil means any non-empty segment
}

type route struct {
	entry    Entry
	segments []segment
	nparams  int
}

// Table is an ordered, immutable collection of compiled routes. It is built
// once at startup and is safe for unsynchronized concurrent reads.
type Table struct {
	routes      []route
	constraints map[string]constraint
}

// TableOption configures a Table during compilation.
type TableOption func(*Table)

// WithConstraint registers a named parameter constraint backed by a regular
// expression, available to this table's patterns as {name:<cname>}. It may
// shadow a built-in constraint of the same name.
func WithConstraint(name string, re *regexp.Regexp) TableOption {
	return func(t *Table) {
		t.constraints[name] = re.MatchString
	}
}

// NewTable compiles the entries, in order, into a route table. Registration
// order is the resolution policy: the first entry that fully matches a
// request wins, so entries may overlap freely. Compilation fails on an
// unknown verb, a malformed pattern, a duplicate parameter name within one
// pattern, or a reference to an unregistered constraint.
func NewTable(entries []Entry, opts ...TableOption) (*Table, error) {
	t := &Table{
		routes:      make([]route, 0, len(entries)),
		constraints: make(map[string]constraint, len(builtinConstraints)),
	}
	for name, fn := range builtinConstraints {
		t.constraints[name] = fn
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, e := range entries {
		if e.Handler == nil {
			return nil, fmt.Errorf("%w: '%s %s'", ErrNilHandler, e.Method, e.Pattern)
		}
		if e.Method != MethodAny && !knownMethods[e.Method] {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidMethod, e.Method)
		}
		segs, nparams, err := t.compilePattern(e.Pattern)
		if err != nil {
			return nil, err
		}
		t.routes = append(t.routes, route{entry: e, segments: segs, nparams: nparams})
	}
	return t, nil
}

// MustTable is NewTable that panics on a compilation error, for declarative
// package-level route lists.
func MustTable(entries []Entry, opts ...TableOption) *Table {
	t, err := NewTable(entries, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Routes returns the method and pattern of every entry in registration
// order, for debugging and startup logging.
func (t *Table) Routes() []Entry {
	out := make([]Entry, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.entry
	}
	return out
}

func (t *Table) compilePattern(pattern string) ([]segment, int, error) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return nil, 0, fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
	}

	parts := strings.Split(pattern[1:], "/")
	segs := make([]segment, 0, len(parts))
	seen := map[string]bool{}

	for _, part := range parts {
		if !strings.Contains(part, "{") {
			if strings.Contains(part, "}") {
				return nil, 0, fmt.Errorf("%w: '%s'", ErrParamDelimiter, pattern)
			}
			segs = append(segs, segment{literal: part})
			continue
		}
		if part[0] != '{' || part[len(part)-1] != '}' {
			return nil, 0, fmt.Errorf("%w: '%s'", ErrParamDelimiter, pattern)
		}

		key, cname, constrained := strings.Cut(part[1:len(part)-1], ":")
		if key == "" {
			return nil, 0, fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
		}
		if seen[key] {
			return nil, 0, fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateParam, key, pattern)
		}
		seen[key] = true

		var check constraint
		if constrained {
			fn, ok := t.constraints[cname]
			if !ok {
				return nil, 0, fmt.Errorf("%w: '%s' in '%s'", ErrUnknownConstraint, cname, pattern)
			}
			check = fn
		}
		segs = append(segs, segment{param: key, check: check})
	}

	return segs, len(seen), nil
}

// MatchResult carries the outcome of a successful table lookup: the entry
// that matched and the route values bound from its parameter segments.
type MatchResult struct {
	Entry  *Entry
	Params map[string]string
}

// Match scans the table in registration order and returns the first entry
// whose verb and full path both match. Matching is all-or-nothing per entry:
// a segment that fails its constraint disqualifies that entry only, and the
// scan continues. The second return is false when no entry matches.
func (t *Table) Match(method, path string) (MatchResult, bool) {
	if path == "" || path[0] != '/' {
		return MatchResult{}, false
	}
	parts := strings.Split(path[1:], "/")

	for i := range t.routes {
		r := &t.routes[i]
		if r.entry.Method != MethodAny && r.entry.Method != method {
			continue
		}
		params, ok := r.match(parts)
		if !ok {
			continue
		}
		return MatchResult{Entry: &r.entry, Params: params}, true
	}
	return MatchResult{}, false
}

func (r *route) match(parts []string) (map[string]string, bool) {
	if len(parts) != len(r.segments) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range r.segments {
		part := parts[i]
		if seg.param == "" {
			if part != seg.literal {
				return nil, false
			}
			continue
		}
		// Parameter segments consume exactly one non-empty path segment.
		if part == "" {
			return nil, false
		}
		if seg.check != nil && !seg.check(part) {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string, r.nparams)
		}
		params[seg.param] = part
	}
	return params, true
}
