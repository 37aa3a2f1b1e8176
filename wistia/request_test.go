package wistia

import (
	"bytes"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T, debug DebugMode, logger zerolog.Logger) *RequestBuilder {
	t.Helper()
	b, err := NewRequestBuilder(DefaultBaseURL, "abc1234567890", debug, logger)
	require.NoError(t, err)
	return b
}

func TestNewRequestBuilder(t *testing.T) {
	t.Run("missing credential", func(t *testing.T) {
		_, err := NewRequestBuilder(DefaultBaseURL, "", DebugOff, zerolog.Nop())
		assert.ErrorIs(t, err, ErrMissingCredential)
	})

	t.Run("adds trailing slash", func(t *testing.T) {
		b, err := NewRequestBuilder("https://api.wistia.com/v1", "key", DebugOff, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "https://api.wistia.com/v1/", b.BaseURL())
	})

	for _, base := range []string{"not a url", "/v1/", "http://%zz/"} {
		t.Run("rejects "+base, func(t *testing.T) {
			_, err := NewRequestBuilder(base, "key", DebugOff, zerolog.Nop())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidURL)

			var urlErr *URLError
			assert.ErrorAs(t, err, &urlErr)
		})
	}
}

func TestBuildShowMedia(t *testing.T) {
	b := newTestBuilder(t, DebugOff, zerolog.Nop())

	req, err := b.Build(MediaRoute("abcd123"))
	require.NoError(t, err)

	assert.Equal(t, MethodGet, req.Method)
	assert.Nil(t, req.Body)
	assert.Equal(t, "https", req.URL.Scheme)
	assert.Equal(t, "api.wistia.com", req.URL.Host)
	assert.Equal(t, "/v1/medias/abcd123.json", req.URL.Path)
	assert.Equal(t, []string{"abc1234567890"}, req.URL.Query()[CredentialParam])
	assert.Equal(t, RouteMedia, req.Route.Kind())
}

func TestBuildListProjects(t *testing.T) {
	b := newTestBuilder(t, DebugOff, zerolog.Nop())

	req, err := b.Build(ProjectsRoute())
	require.NoError(t, err)

	assert.Equal(t, "/v1/projects.json", req.URL.Path)
	assert.Equal(t, "abc1234567890", req.URL.Query().Get(CredentialParam))
}

func TestBuildCredentialWinsOverCallerQuery(t *testing.T) {
	b := newTestBuilder(t, DebugOff, zerolog.Nop())

	req, err := b.Build(MediasRoute(), WithQuery(url.Values{
		CredentialParam: {"attacker"},
		"page":          {"2"},
	}))
	require.NoError(t, err)

	q := req.URL.Query()
	assert.Equal(t, []string{"abc1234567890"}, q[CredentialParam])
	assert.Equal(t, "2", q.Get("page"))
}

func TestBuildQueryReplacesPerKey(t *testing.T) {
	b := newTestBuilder(t, DebugOff, zerolog.Nop())

	req, err := b.Build(MediasRoute(),
		WithQuery(url.Values{"page": {"1"}, "per_page": {"10"}}),
		WithQuery(url.Values{"page": {"3"}}),
	)
	require.NoError(t, err)

	assert.Equal(t, "3", req.URL.Query().Get("page"))
	assert.Equal(t, "10", req.URL.Query().Get("per_page"))
}

func TestBuildMethodAndBody(t *testing.T) {
	b := newTestBuilder(t, DebugOff, zerolog.Nop())

	body := []byte(`{"name":"renamed"}`)
	req, err := b.Build(MediaRoute("abcd123"), WithMethod(MethodPut), WithBody(body))
	require.NoError(t, err)

	assert.Equal(t, MethodPut, req.Method)
	assert.Equal(t, body, req.Body)
}

func TestBuildHeatmapKeepsPublicToken(t *testing.T) {
	b := newTestBuilder(t, DebugOff, zerolog.Nop())

	req, err := b.Build(HeatmapRoute("ev1", "pub"))
	require.NoError(t, err)

	assert.Equal(t, "/v1/stats/events/ev1/iframe.html", req.URL.Path)
	assert.Equal(t, "pub", req.URL.Query().Get("public_token"))
	assert.Equal(t, []string{"abc1234567890"}, req.URL.Query()[CredentialParam])
}

func TestBuildHeatmapPublicTokenOverridesCaller(t *testing.T) {
	b := newTestBuilder(t, DebugOff, zerolog.Nop())

	req, err := b.Build(HeatmapRoute("ev1", "pub"), WithQuery(url.Values{"public_token": {"forged"}}))
	require.NoError(t, err)

	assert.Equal(t, []string{"pub"}, req.URL.Query()["public_token"])
}

func TestBuildHeatmapUsesConfiguredHost(t *testing.T) {
	b, err := NewRequestBuilder("http://127.0.0.1:8080/api/", "abc1234567890", DebugOff, zerolog.Nop())
	require.NoError(t, err)

	req, err := b.Build(HeatmapRoute("ev1", "pub"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", req.URL.Host)
	assert.Equal(t, "/api/stats/events/ev1/iframe.html", req.URL.Path)
	assert.Equal(t, "pub", req.URL.Query().Get("public_token"))
}

func TestBuildRejectsInvalidIdentifiers(t *testing.T) {
	b := newTestBuilder(t, DebugOff, zerolog.Nop())

	for _, route := range []Route{MediaRoute(""), ProjectRoute(".."), HeatmapRoute("ev1", "")} {
		t.Run(route.Name(), func(t *testing.T) {
			req, err := b.Build(route)
			assert.Nil(t, req)
			assert.True(t, errors.Is(err, ErrInvalidURL))
		})
	}

	assert.Panics(t, func() { b.MustBuild(MediaRoute("")) })
	assert.NotPanics(t, func() { b.MustBuild(MediasRoute()) })
}

func TestBuildIsPure(t *testing.T) {
	b := newTestBuilder(t, DebugOff, zerolog.Nop())

	first, err := b.Build(MediaRoute("abcd123"))
	require.NoError(t, err)
	second, err := b.Build(MediaRoute("abcd123"))
	require.NoError(t, err)

	assert.Equal(t, first.URL.String(), second.URL.String())
}

func TestBuildDebugLoggingRedactsCredential(t *testing.T) {
	quiet := newTestBuilder(t, DebugOff, zerolog.Nop())
	want, err := quiet.Build(MediaRoute("abcd123"))
	require.NoError(t, err)

	for _, mode := range []DebugMode{DebugSummary, DebugVerbose} {
		t.Run(mode.String(), func(t *testing.T) {
			var buf bytes.Buffer
			b := newTestBuilder(t, mode, zerolog.New(&buf))

			got, err := b.Build(MediaRoute("abcd123"))
			require.NoError(t, err)

			assert.Equal(t, want.URL.String(), got.URL.String())
			assert.Equal(t, want.Method, got.Method)
			assert.Contains(t, buf.String(), "Built Wistia request")
			assert.NotContains(t, buf.String(), "abc1234567890")
		})
	}
}

func TestParseDebugMode(t *testing.T) {
	tests := []struct {
		in      string
		want    DebugMode
		wantErr bool
	}{
		{"", DebugOff, false},
		{"off", DebugOff, false},
		{"Summary", DebugSummary, false},
		{" verbose ", DebugVerbose, false},
		{"loud", DebugOff, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDebugMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
