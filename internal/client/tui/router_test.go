package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveStaticRoutes(t *testing.T) {
	r := NewRouter()

	tests := []struct {
		path string
		page Page
		auth bool
	}{
		{"/", PageList, false},
		{"/create", PageCreate, true},
		{"/login", PageLogin, false},
	}

	for _, tt := range tests {
		m := r.Resolve(tt.path)
		require.Equal(t, tt.page, m.Page, tt.path)
		require.Equal(t, tt.auth, m.RequiresAuth, tt.path)
	}
}

func TestResolveCapturesParams(t *testing.T) {
	r := NewRouter()

	m := r.Resolve("/note/note_123_abc")
	require.Equal(t, PageNote, m.Page)
	require.False(t, m.RequiresAuth)
	require.Equal(t, "note_123_abc", m.Params["id"])

	m = r.Resolve("/edit/42")
	require.Equal(t, PageEdit, m.Page)
	require.True(t, m.RequiresAuth)
	require.Equal(t, "42", m.Params["id"])
}

func TestResolveUnknownPathIsNotFound(t *testing.T) {
	r := NewRouter()

	for _, path := range []string{"/nope", "/note", "/note/1/extra", "/edit/"} {
		m := r.Resolve(path)
		require.Equal(t, PageNotFound, m.Page, path)
	}
}

func TestTrailingSlashesIgnored(t *testing.T) {
	r := NewRouter()

	require.Equal(t, PageList, r.Resolve("").Page)
	require.Equal(t, PageCreate, r.Resolve("/create/").Page)
}
