package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRendition_SkipsOtherContainers(t *testing.T) {
	renditions := []Rendition{
		{Itag: 18, Container: "mp4", QualityLabel: "360p", Height: 360, Progressive: true},
		{Itag: 22, Container: "mp4", QualityLabel: "720p", Height: 720, Progressive: true},
		{Itag: 43, Container: "webm", QualityLabel: "1080p", Height: 1080, Progressive: true},
	}

	selected, ok := SelectRendition(renditions, "mp4")
	require.True(t, ok)
	assert.Equal(t, 22, selected.Itag)
	assert.Equal(t, 720, selected.Resolution())
}

func TestSelectRendition_SkipsAdaptive(t *testing.T) {
	renditions := []Rendition{
		{Itag: 137, Container: "mp4", Height: 1080, Progressive: false},
		{Itag: 140, Container: "mp4", Progressive: false},
		{Itag: 18, Container: "mp4", Height: 360, Progressive: true},
	}

	selected, ok := SelectRendition(renditions, "mp4")
	require.True(t, ok)
	assert.Equal(t, 18, selected.Itag)
}

func TestSelectRendition_NoMatch(t *testing.T) {
	tests := []struct {
		name       string
		renditions []Rendition
	}{
		{name: "empty", renditions: nil},
		{name: "only webm", renditions: []Rendition{{Itag: 43, Container: "webm", Height: 360, Progressive: true}}},
		{name: "only adaptive mp4", renditions: []Rendition{{Itag: 137, Container: "mp4", Height: 1080}}},
		{name: "unknown resolution", renditions: []Rendition{{Itag: 1, Container: "mp4", Progressive: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := SelectRendition(tt.renditions, "mp4")
			assert.False(t, ok)
		})
	}
}

func TestSelectRendition_IsMaximal(t *testing.T) {
	renditions := []Rendition{
		{Itag: 1, Container: "mp4", Height: 240, Progressive: true},
		{Itag: 2, Container: "MP4", QualityLabel: "480p", Progressive: true},
		{Itag: 3, Container: "mp4", Height: 144, Progressive: true},
		{Itag: 4, Container: "webm", Height: 2160, Progressive: true},
		{Itag: 5, Container: "mp4", Height: 1440, Progressive: false},
		{Itag: 6, Container: "mp4", Height: 480, Progressive: true},
	}

	selected, ok := SelectRendition(renditions, "mp4")
	require.True(t, ok)

	for _, r := range FilterRenditions(renditions, true, "mp4") {
		assert.GreaterOrEqual(t, selected.Resolution(), r.Resolution())
	}
	// equal resolutions keep provider order
	assert.Equal(t, 2, selected.Itag)
}

func TestSelectRendition_DoesNotReorderInput(t *testing.T) {
	renditions := []Rendition{
		{Itag: 18, Container: "mp4", Height: 360, Progressive: true},
		{Itag: 22, Container: "mp4", Height: 720, Progressive: true},
	}

	_, ok := SelectRendition(renditions, "mp4")
	require.True(t, ok)
	assert.Equal(t, 18, renditions[0].Itag)
}

func TestParseQualityLabel(t *testing.T) {
	assert.Equal(t, 720, ParseQualityLabel("720p"))
	assert.Equal(t, 1080, ParseQualityLabel("1080p60"))
	assert.Equal(t, 0, ParseQualityLabel("tiny"))
	assert.Equal(t, 0, ParseQualityLabel(""))
	assert.Equal(t, 0, ParseQualityLabel("p"))
}

func TestContainerFromMimeType(t *testing.T) {
	assert.Equal(t, "mp4", ContainerFromMimeType(`video/mp4; codecs="avc1.42001E, mp4a.40.2"`))
	assert.Equal(t, "webm", ContainerFromMimeType(`video/webm; codecs="vp9"`))
	assert.Equal(t, "mp4", ContainerFromMimeType("audio/MP4"))
	assert.Equal(t, "", ContainerFromMimeType("garbage"))
	assert.Equal(t, "", ContainerFromMimeType(""))
}
