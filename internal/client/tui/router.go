// Package tui is the terminal front end. A small path router decides which
// page is shown; the pages themselves are bubbletea models driven by the
// session manager and the note stores.
package tui

import "strings"

// Page identifies one of the client's screens.
type Page int

const (
	PageList Page = iota
	PageNote
	PageCreate
	PageEdit
	PageLogin
	PageNotFound
)

func (p Page) String() string {
	switch p {
	case PageList:
		return "list"
	case PageNote:
		return "note"
	case PageCreate:
		return "create"
	case PageEdit:
		return "edit"
	case PageLogin:
		return "login"
	default:
		return "not-found"
	}
}

type route struct {
	pattern      string
	page         Page
	requiresAuth bool
}

// Router resolves navigation paths to pages. Unknown paths fall through
// to PageNotFound.
type Router struct {
	routes []route
}

// NewRouter builds the route table. Creating and editing notes require an
// authenticated session; viewing is open to everyone.
func NewRouter() *Router {
	return &Router{routes: []route{
		{pattern: "/", page: PageList},
		{pattern: "/note/:id", page: PageNote},
		{pattern: "/create", page: PageCreate, requiresAuth: true},
		{pattern: "/edit/:id", page: PageEdit, requiresAuth: true},
		{pattern: "/login", page: PageLogin},
	}}
}

// Match is the result of resolving a path.
type Match struct {
	Page         Page
	Path         string
	Params       map[string]string
	RequiresAuth bool
}

// Resolve matches path against the route table.
func (r *Router) Resolve(path string) Match {
	for _, rt := range r.routes {
		if params, ok := matchPattern(rt.pattern, path); ok {
			return Match{Page: rt.page, Path: path, Params: params, RequiresAuth: rt.requiresAuth}
		}
	}
	return Match{Page: PageNotFound, Path: path, Params: map[string]string{}}
}

// matchPattern matches a concrete path against a pattern where segments
// starting with ':' capture the corresponding path segment.
func matchPattern(pattern string, path string) (map[string]string, bool) {
	patParts := splitPath(pattern)
	pathParts := splitPath(path)
	if len(patParts) != len(pathParts) {
		return nil, false
	}

	params := map[string]string{}
	for i, part := range patParts {
		if strings.HasPrefix(part, ":") {
			if pathParts[i] == "" {
				return nil, false
			}
			params[part[1:]] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
