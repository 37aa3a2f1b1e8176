package wistia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutePath(t *testing.T) {
	tests := []struct {
		name  string
		route Route
		want  string
	}{
		{"medias", MediasRoute(), "medias.json"},
		{"projects", ProjectsRoute(), "projects.json"},
		{"media", MediaRoute("abcd123"), "medias/abcd123.json"},
		{"media captions", MediaCaptionsRoute("abcd123"), "medias/abcd123/captions.json"},
		{"project", ProjectRoute("p1"), "projects/p1.json"},
		{"account stats", AccountStatsRoute(), "stats/account.json"},
		{"project stats", ProjectStatsRoute("p1"), "stats/projects/p1.json"},
		{"media stats", MediaStatsRoute("abcd123"), "stats/medias/abcd123.json"},
		{"media engagement", MediaEngagementRoute("abcd123"), "stats/medias/abcd123/engagement.json"},
		{"visitors", VisitorsRoute(), "stats/visitors.json"},
		{"visitor", VisitorRoute("v1"), "stats/visitors/v1.json"},
		{"events", EventsRoute(), "stats/events.json"},
		{"event", EventRoute("e1"), "stats/events/e1.json"},
		{
			"heatmap",
			HeatmapRoute("e1", "tok"),
			"https://api.wistia.com/v1/stats/events/e1/iframe.html?public_token=tok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.route.Path())
			// Rendering twice gives the same result.
			assert.Equal(t, tt.route.Path(), tt.route.Path())
		})
	}
}

func TestRoutePathEscapesIdentifiers(t *testing.T) {
	assert.Equal(t, "medias/a%2Fb.json", MediaRoute("a/b").Path())
	assert.Equal(t, "stats/visitors/a%3Fx=1.json", VisitorRoute("a?x=1").Path())
	assert.Equal(t, "projects/a%20b.json", ProjectRoute("a b").Path())
}

func TestRouteIsAbsolute(t *testing.T) {
	assert.True(t, HeatmapRoute("e1", "tok").IsAbsolute())
	assert.False(t, MediaRoute("abcd123").IsAbsolute())
	assert.False(t, MediasRoute().IsAbsolute())
}

func TestRouteNames(t *testing.T) {
	assert.Equal(t, "medias", MediasRoute().Name())
	assert.Equal(t, "stats_media_engagement", MediaEngagementRoute("x").Name())
	assert.Equal(t, "media(abcd123)", MediaRoute("abcd123").String())
	assert.Equal(t, "projects", ProjectsRoute().String())
	assert.Equal(t, "unknown", RouteKind(99).String())
}

func TestRouteValidate(t *testing.T) {
	tests := []struct {
		name    string
		route   Route
		wantErr bool
	}{
		{"list route needs no id", MediasRoute(), false},
		{"valid id", MediaRoute("abcd123"), false},
		{"empty id", MediaRoute(""), true},
		{"blank id", VisitorRoute("   "), true},
		{"dot segment", ProjectRoute("."), true},
		{"parent segment", EventRoute(".."), true},
		{"heatmap without token", HeatmapRoute("e1", ""), true},
		{"heatmap", HeatmapRoute("e1", "tok"), false},
		{"unknown kind", Route{kind: RouteKind(99)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.route.validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestHeatmapURLHasNoCredential(t *testing.T) {
	link := HeatmapURL("ev 1", "tok")
	assert.Equal(t, "https://api.wistia.com/v1/stats/events/ev%201/iframe.html?public_token=tok", link)
	assert.NotContains(t, link, CredentialParam)
}
