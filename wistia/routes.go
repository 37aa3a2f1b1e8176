package wistia

import (
	"fmt"
	"net/url"
	"strings"
)

// RouteKind identifies one logical endpoint of the Data or Stats API.
type RouteKind int

const (
	// Data API
	RouteMedias RouteKind = iota
	RouteProjects
	RouteMedia
	RouteMediaCaptions
	RouteProject

	// Stats API
	RouteAccountStats
	RouteProjectStats
	RouteMediaStats
	RouteMediaEngagement
	RouteVisitors
	RouteVisitor
	RouteEvents
	RouteEvent
	RouteHeatmap
)

var routeNames = map[RouteKind]string{
	RouteMedias:          "medias",
	RouteProjects:        "projects",
	RouteMedia:           "media",
	RouteMediaCaptions:   "media_captions",
	RouteProject:         "project",
	RouteAccountStats:    "stats_account",
	RouteProjectStats:    "stats_project",
	RouteMediaStats:      "stats_media",
	RouteMediaEngagement: "stats_media_engagement",
	RouteVisitors:        "stats_visitors",
	RouteVisitor:         "stats_visitor",
	RouteEvents:          "stats_events",
	RouteEvent:           "stats_event",
	RouteHeatmap:         "stats_heatmap",
}

// String returns the route name used in logs and metrics labels
func (k RouteKind) String() string {
	if name, ok := routeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Route is a single endpoint together with the identifiers it needs.
// Routes are values: build them with the constructor functions below.
//
// Identifiers are path-escaped when the route is rendered, so a hashed id or
// visitor key containing reserved characters cannot alter the path structure.
type Route struct {
	kind  RouteKind
	id    string
	token string
}

// MediasRoute lists all medias in the account.
func MediasRoute() Route { return Route{kind: RouteMedias} }

// ProjectsRoute lists all projects in the account.
func ProjectsRoute() Route { return Route{kind: RouteProjects} }

// MediaRoute shows a single media by hashed id.
func MediaRoute(hashedID string) Route { return Route{kind: RouteMedia, id: hashedID} }

// MediaCaptionsRoute lists the captions of a media.
func MediaCaptionsRoute(hashedID string) Route {
	return Route{kind: RouteMediaCaptions, id: hashedID}
}

// ProjectRoute shows a single project by hashed id.
func ProjectRoute(hashedID string) Route { return Route{kind: RouteProject, id: hashedID} }

// AccountStatsRoute returns the account wide stats.
func AccountStatsRoute() Route { return Route{kind: RouteAccountStats} }

// ProjectStatsRoute returns stats for one project.
func ProjectStatsRoute(projectID string) Route {
	return Route{kind: RouteProjectStats, id: projectID}
}

// MediaStatsRoute returns stats for one media.
func MediaStatsRoute(mediaID string) Route { return Route{kind: RouteMediaStats, id: mediaID} }

// MediaEngagementRoute returns the engagement graph data of a media.
func MediaEngagementRoute(mediaID string) Route {
	return Route{kind: RouteMediaEngagement, id: mediaID}
}

// VisitorsRoute lists visitors.
func VisitorsRoute() Route { return Route{kind: RouteVisitors} }

// VisitorRoute shows a single visitor.
func VisitorRoute(visitorKey string) Route { return Route{kind: RouteVisitor, id: visitorKey} }

// EventsRoute lists viewing events.
func EventsRoute() Route { return Route{kind: RouteEvents} }

// EventRoute shows a single viewing event.
func EventRoute(eventKey string) Route { return Route{kind: RouteEvent, id: eventKey} }

// HeatmapRoute points at the heatmap iframe of an event. Unlike every other
// route its path is an absolute URL that already carries the public token.
func HeatmapRoute(eventKey, publicToken string) Route {
	return Route{kind: RouteHeatmap, id: eventKey, token: publicToken}
}

// Kind returns the endpoint this route targets.
func (r Route) Kind() RouteKind { return r.kind }

// Name returns the route name, see RouteKind.String.
func (r Route) Name() string { return r.kind.String() }

// String implements fmt.Stringer.
func (r Route) String() string {
	if r.id == "" {
		return r.Name()
	}
	return fmt.Sprintf("%s(%s)", r.Name(), r.id)
}

// IsAbsolute reports whether Path renders a complete URL instead of a path
// relative to the API base URL.
func (r Route) IsAbsolute() bool { return r.kind == RouteHeatmap }

// Path renders the route. It is pure: the same route always yields the same
// string.
func (r Route) Path() string {
	id := url.PathEscape(r.id)

	switch r.kind {
	case RouteMedias:
		return "medias.json"
	case RouteProjects:
		return "projects.json"
	case RouteMedia:
		return "medias/" + id + ".json"
	case RouteMediaCaptions:
		return "medias/" + id + "/captions.json"
	case RouteProject:
		return "projects/" + id + ".json"
	case RouteAccountStats:
		return "stats/account.json"
	case RouteProjectStats:
		return "stats/projects/" + id + ".json"
	case RouteMediaStats:
		return "stats/medias/" + id + ".json"
	case RouteMediaEngagement:
		return "stats/medias/" + id + "/engagement.json"
	case RouteVisitors:
		return "stats/visitors.json"
	case RouteVisitor:
		return "stats/visitors/" + id + ".json"
	case RouteEvents:
		return "stats/events.json"
	case RouteEvent:
		return "stats/events/" + id + ".json"
	case RouteHeatmap:
		return HeatmapURL(r.id, r.token)
	default:
		return ""
	}
}

// parameterized reports whether the route carries an identifier.
func (r Route) parameterized() bool {
	switch r.kind {
	case RouteMedias, RouteProjects, RouteAccountStats, RouteVisitors, RouteEvents:
		return false
	}
	return true
}

// validate rejects identifiers that would render a path pointing at a
// different resource than the route names.
func (r Route) validate() error {
	if _, ok := routeNames[r.kind]; !ok {
		return fmt.Errorf("unknown route kind %d", int(r.kind))
	}
	if !r.parameterized() {
		return nil
	}
	switch strings.TrimSpace(r.id) {
	case "":
		return fmt.Errorf("%s: identifier is empty", r.Name())
	case ".", "..":
		return fmt.Errorf("%s: identifier %q is a dot segment", r.Name(), r.id)
	}
	if r.kind == RouteHeatmap && r.token == "" {
		return fmt.Errorf("%s: public token is empty", r.Name())
	}
	return nil
}

// HeatmapURL returns the embeddable heatmap link for an event on the default
// host. The link is authorized by the event's public token and never carries
// the API password, so it is safe to hand to a browser.
func HeatmapURL(eventKey, publicToken string) string {
	return heatmapURL(DefaultBaseURL, eventKey, publicToken)
}

func heatmapURL(baseURL, eventKey, publicToken string) string {
	q := url.Values{}
	q.Set("public_token", publicToken)
	return baseURL + "stats/events/" + url.PathEscape(eventKey) + "/iframe.html?" + q.Encode()
}
