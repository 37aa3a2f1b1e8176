package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/wistia/config"
	"github.com/s0up4200/wistia/wistia"
)

func sampleMedias() []wistia.Media {
	duration := 93.0
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []wistia.Media{
		{
			HashedID: "abcd123",
			Name:     "Launch video",
			Type:     "Video",
			Status:   "ready",
			Duration: &duration,
			Created:  &created,
			Project:  &wistia.ProjectRef{Name: "Launch"},
			Assets: []wistia.Asset{
				{URL: "https://example.com/hd.bin", ContentType: "video/mp4", Type: wistia.AssetHdMP4, FileSize: 8_000_000, Width: 1280, Height: 720},
			},
		},
		{HashedID: "efgh456", Name: "Podcast", Type: "Audio"},
	}
}

func TestFormatMediaList(t *testing.T) {
	f := &ConsoleFormatter{Account: "acme"}
	out := f.FormatMediaList(sampleMedias())

	assert.Contains(t, out, "Medias (2):")
	assert.Contains(t, out, "├── Launch video [abcd123]")
	assert.Contains(t, out, "╰── Podcast [efgh456]")
	assert.Contains(t, out, "Video | 1m33s | ready")
	assert.Contains(t, out, "Project: Launch")
	assert.Contains(t, out, "Created: 2024-03-01")
	assert.Contains(t, out, "https://acme.wistia.com/medias/abcd123")

	assert.Equal(t, "No medias found\n", f.FormatMediaList(nil))
}

func TestFormatAssets(t *testing.T) {
	f := &ConsoleFormatter{}
	out := f.FormatAssets(sampleMedias()[0].Assets)

	assert.Contains(t, out, "Asset (1):")
	assert.Contains(t, out, "╰── HdMp4VideoFile")
	assert.Contains(t, out, "video/mp4 | 8.0 MB | 1280x720")
}

func TestFormatPlayStats(t *testing.T) {
	out := (&ConsoleFormatter{}).FormatPlayStats("Account", 12000, 3000, 41.5)

	assert.Contains(t, out, "Loads: 12,000")
	assert.Contains(t, out, "Plays: 3,000")
	assert.Contains(t, out, "Play rate: 25.0%")
	assert.Contains(t, out, "Hours watched: 41.50")
}

func TestFormatVisitorTitle(t *testing.T) {
	name := "Ada"
	assert.Equal(t, "Ada [v1]", visitorTitle(wistia.Visitor{VisitorKey: "v1", VisitorIdentity: &wistia.VisitorIdentity{Name: &name}}))
	assert.Equal(t, "v2", visitorTitle(wistia.Visitor{VisitorKey: "v2"}))
}

func TestWriteResult(t *testing.T) {
	medias := sampleMedias()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResult(&buf, "json", medias, func() string {
			t.Fatal("text formatter must not run for json output")
			return ""
		}))

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "abcd123", decoded[0]["hashed_id"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResult(&buf, "text", medias, func() string { return "hello\n" }))
		assert.Equal(t, "hello\n", buf.String())
	})
}

func TestGetFilterExpression(t *testing.T) {
	cfg = &config.Config{Filter: config.FilterConfig{
		Default: `Type == "Video"`,
		Presets: map[string]string{"long": "Duration > 600"},
	}}
	t.Cleanup(func() {
		cfg = nil
		filterExpr = ""
		preset = ""
	})

	expression, err := getFilterExpression()
	require.NoError(t, err)
	assert.Equal(t, `Type == "Video"`, expression)

	preset = "long"
	expression, err = getFilterExpression()
	require.NoError(t, err)
	assert.Equal(t, "Duration > 600", expression)

	filterExpr = `AssetCount > 2`
	expression, err = getFilterExpression()
	require.NoError(t, err)
	assert.Equal(t, "AssetCount > 2", expression)

	filterExpr = ""
	preset = "missing"
	_, err = getFilterExpression()
	assert.Error(t, err)
}

func TestDetectCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("see https://acme.wistia.com/medias/abcd123 and http://wi.st/x9"))
	rootCmd.SetArgs([]string{"detect"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "https://acme.wistia.com/medias/abcd123\nhttp://wi.st/x9\n", out.String())
}
