package wistia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMedia() *Media {
	return &Media{
		HashedID: "abcd123",
		Name:     "Launch video",
		Type:     "Video",
		Assets: []Asset{
			{URL: "https://example.com/orig", Type: AssetOriginal, FileSize: 12_000_000},
			{URL: "https://example.com/hd1", Type: AssetHdMP4, FileSize: 8_000_000},
			{URL: "https://example.com/hd2", Type: AssetHdMP4},
			{URL: "https://example.com/sd", Type: AssetSmallMP4},
		},
	}
}

func TestAssetsOfKind(t *testing.T) {
	m := testMedia()

	assert.Len(t, m.AssetsOfKind(AssetHdMP4), 2)
	assert.Len(t, m.AssetsOfKind(AssetOriginal), 1)
	assert.Empty(t, m.AssetsOfKind(AssetStoryboard))
	assert.Equal(t, []string{"https://example.com/hd1", "https://example.com/hd2"}, m.AssetURLs(AssetHdMP4))
}

func TestAssetsMatching(t *testing.T) {
	m := testMedia()

	assert.Len(t, m.AssetsMatching("hdmp4videofile"), 2)
	// Mp4VideoFile is a suffix of HdMp4VideoFile and must match only itself.
	matched := m.AssetsMatching("Mp4VideoFile")
	require.Len(t, matched, 1)
	assert.Equal(t, AssetSmallMP4, matched[0].Type)
	assert.Empty(t, m.AssetsMatching("Video"))
}

func TestParseAssetKind(t *testing.T) {
	for _, k := range AssetKinds {
		got, err := ParseAssetKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.True(t, k.Valid())
	}

	got, err := ParseAssetKind(" hlsvideofile ")
	require.NoError(t, err)
	assert.Equal(t, AssetHLS, got)

	_, err = ParseAssetKind("Mp3")
	assert.ErrorIs(t, err, ErrUnknownAssetKind)
	assert.False(t, AssetKind("Mp3").Valid())
}

func TestAssetFormattedFileSize(t *testing.T) {
	assert.Equal(t, "12 MB", Asset{FileSize: 12_000_000}.FormattedFileSize())
	assert.Equal(t, "0 B", Asset{}.FormattedFileSize())
	assert.Equal(t, "0 B", Asset{FileSize: -1}.FormattedFileSize())
}

func TestMediaAdminURL(t *testing.T) {
	assert.Equal(t, "https://acme.wistia.com/medias/abcd123", testMedia().AdminURL("acme"))
}

func TestDetectURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "embed and share links",
			text: `Watch https://acme.wistia.com/medias/abcd123 or http://wi.st/x9 today`,
			want: []string{"https://acme.wistia.com/medias/abcd123", "http://wi.st/x9"},
		},
		{
			name: "html attribute",
			text: `<iframe src="https://fast.wistia.net/embed/iframe/abcd123"></iframe>`,
			want: []string{"https://fast.wistia.net/embed/iframe/abcd123"},
		},
		{
			name: "case insensitive",
			text: "HTTPS://Home.Wistia.com/medias/A1",
			want: []string{"HTTPS://Home.Wistia.com/medias/A1"},
		},
		{
			name: "lookalike host",
			text: "https://wistia.com.evil.example/x https://example.com/wistia.com/",
			want: nil,
		},
		{
			name: "none",
			text: "no links here",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectURLs(tt.text))
		})
	}
}
