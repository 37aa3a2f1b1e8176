package wistia

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Project is a folder of medias in the Data API.
type Project struct {
	ID          int64      `json:"id"`
	HashedID    string     `json:"hashedId" validate:"required"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	MediaCount  int        `json:"mediaCount"`
	Public      bool       `json:"public"`
	Created     *time.Time `json:"created,omitempty"`
	Updated     *time.Time `json:"updated,omitempty"`
	Medias      []Media    `json:"medias" validate:"dive"`
}

// ProjectRef is the short project summary embedded in a media.
type ProjectRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	HashedID string `json:"hashed_id"`
}

// Media is a video, audio file or image hosted in the account.
type Media struct {
	ID          int64       `json:"id"`
	HashedID    string      `json:"hashed_id" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	Type        string      `json:"type" validate:"required"`
	Description string      `json:"description"`
	Section     *string     `json:"section,omitempty"`
	Duration    *float64    `json:"duration,omitempty"`
	Status      string      `json:"status,omitempty"`
	Progress    float64     `json:"progress,omitempty"`
	Created     *time.Time  `json:"created,omitempty"`
	Updated     *time.Time  `json:"updated,omitempty"`
	Thumbnail   Thumbnail   `json:"thumbnail" validate:"required"`
	Assets      []Asset     `json:"assets" validate:"dive"`
	EmbedCode   *string     `json:"embedCode,omitempty"`
	Project     *ProjectRef `json:"project,omitempty"`
}

// Thumbnail is the still image shown before playback.
type Thumbnail struct {
	URL    string `json:"url" validate:"required,url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Caption is one captions track of a media.
type Caption struct {
	EnglishName string `json:"english_name" validate:"required"`
	NativeName  string `json:"native_name" validate:"required"`
	Language    string `json:"language" validate:"required"`
	Text        string `json:"text"`
}

// AssetKind is the file variant of an asset, serialized as the API's type
// token. Decoding rejects tokens outside the known set.
type AssetKind string

const (
	AssetOriginal   AssetKind = "OriginalFile"
	AssetIphone     AssetKind = "IphoneVideoFile"
	AssetHLS        AssetKind = "HlsVideoFile"
	AssetSmallMP4   AssetKind = "Mp4VideoFile"
	AssetMdMP4      AssetKind = "MdMp4VideoFile"
	AssetHdMP4      AssetKind = "HdMp4VideoFile"
	AssetStillImage AssetKind = "StillImageFile"
	AssetStoryboard AssetKind = "StoryboardFile"
)

// AssetKinds lists every known kind in API order.
var AssetKinds = []AssetKind{
	AssetOriginal,
	AssetIphone,
	AssetHLS,
	AssetSmallMP4,
	AssetMdMP4,
	AssetHdMP4,
	AssetStillImage,
	AssetStoryboard,
}

// Valid reports whether k is one of the known kinds.
func (k AssetKind) Valid() bool {
	for _, known := range AssetKinds {
		if k == known {
			return true
		}
	}
	return false
}

// String returns the API token
func (k AssetKind) String() string { return string(k) }

// ParseAssetKind matches s against the known tokens, ignoring case.
func ParseAssetKind(s string) (AssetKind, error) {
	for _, known := range AssetKinds {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAssetKind, s)
}

// Asset is one stored file of a media.
type Asset struct {
	URL         string    `json:"url" validate:"required,url"`
	ContentType string    `json:"contentType" validate:"required"`
	Type        AssetKind `json:"type" validate:"required,assetkind"`
	FileSize    int64     `json:"fileSize"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
}

// FormattedFileSize returns the file size for display, e.g. "12 MB".
func (a Asset) FormattedFileSize() string {
	if a.FileSize < 0 {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(a.FileSize))
}

// AssetsOfKind returns the assets whose kind is exactly k.
func (m *Media) AssetsOfKind(k AssetKind) []Asset {
	var out []Asset
	for _, a := range m.Assets {
		if a.Type == k {
			out = append(out, a)
		}
	}
	return out
}

// AssetsMatching returns the assets whose kind token equals kind, ignoring
// case. It is a local projection and issues no request.
func (m *Media) AssetsMatching(kind string) []Asset {
	var out []Asset
	for _, a := range m.Assets {
		if strings.EqualFold(string(a.Type), kind) {
			out = append(out, a)
		}
	}
	return out
}

// AssetURLs returns the URLs of all assets of kind k.
func (m *Media) AssetURLs(k AssetKind) []string {
	var urls []string
	for _, a := range m.AssetsOfKind(k) {
		urls = append(urls, a.URL)
	}
	return urls
}

// AdminURL returns the media's page in the account dashboard.
func (m *Media) AdminURL(account string) string {
	return fmt.Sprintf("https://%s.wistia.com/medias/%s", account, m.HashedID)
}

// AccountStats aggregates plays over the whole account.
type AccountStats struct {
	LoadCount    int64   `json:"load_count"`
	PlayCount    int64   `json:"play_count"`
	HoursWatched float64 `json:"hours_watched"`
}

// ProjectStats aggregates plays over one project.
type ProjectStats struct {
	LoadCount      int64   `json:"load_count"`
	PlayCount      int64   `json:"play_count"`
	HoursWatched   float64 `json:"hours_watched"`
	NumberOfVideos int     `json:"number_of_videos"`
}

// MediaStats aggregates plays of one media.
type MediaStats struct {
	LoadCount    int64   `json:"load_count"`
	PlayCount    int64   `json:"play_count"`
	PlayRate     float64 `json:"play_rate"`
	HoursWatched float64 `json:"hours_watched"`
	Engagement   float64 `json:"engagement"`
	Visitors     int64   `json:"visitors"`
}

// MediaEngagement is the per-second engagement graph of a media.
type MediaEngagement struct {
	Engagement     float64 `json:"engagement"`
	EngagementData []int64 `json:"engagement_data"`
	RewatchData    []int64 `json:"rewatch_data"`
}

// Visitor is a browser that loaded at least one embed.
type Visitor struct {
	VisitorKey       string            `json:"visitor_key" validate:"required"`
	CreatedAt        *time.Time        `json:"created_at,omitempty"`
	LastActiveAt     *time.Time        `json:"last_active_at,omitempty"`
	LastEventKey     string            `json:"last_event_key,omitempty"`
	LoadCount        int64             `json:"load_count"`
	PlayCount        int64             `json:"play_count"`
	VisitorIdentity  *VisitorIdentity  `json:"visitor_identity,omitempty"`
	UserAgentDetails *UserAgentDetails `json:"user_agent_details,omitempty"`
}

// VisitorIdentity is what is known about the person behind a visitor.
type VisitorIdentity struct {
	Name  *string           `json:"name,omitempty"`
	Email *string           `json:"email,omitempty"`
	Org   map[string]string `json:"org,omitempty"`
}

// UserAgentDetails describes the visitor's browser.
type UserAgentDetails struct {
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browser_version"`
	Platform       string `json:"platform"`
	Mobile         bool   `json:"mobile"`
}

// Event is one viewing session of a media.
type Event struct {
	EventKey      string     `json:"event_key" validate:"required"`
	VisitorKey    string     `json:"visitor_key,omitempty"`
	ReceivedAt    *time.Time `json:"received_at,omitempty"`
	Email         *string    `json:"email,omitempty"`
	PercentViewed float64    `json:"percent_viewed"`
	MediaID       string     `json:"media_id" validate:"required"`
	MediaName     string     `json:"media_name"`
	MediaURL      string     `json:"media_url,omitempty"`
	EmbedURL      *string    `json:"embed_url,omitempty"`
	IP            string     `json:"ip,omitempty"`
	Country       string     `json:"country,omitempty"`
	Region        string     `json:"region,omitempty"`
	City          string     `json:"city,omitempty"`
}
