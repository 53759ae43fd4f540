package youtube

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	yt "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/TubeFlow/config"
	"github.com/Conte777/TubeFlow/internal/domain/video/entities"
	pkgerrors "github.com/Conte777/TubeFlow/pkg/errors"
)

type fakeClient struct {
	video     *yt.Video
	resolve   error
	stream    string
	streamErr error
	readErr   error
	gotItag   int
}

func (c *fakeClient) GetVideoContext(ctx context.Context, url string) (*yt.Video, error) {
	if c.resolve != nil {
		return nil, c.resolve
	}
	return c.video, nil
}

func (c *fakeClient) GetStreamContext(ctx context.Context, video *yt.Video, format *yt.Format) (io.ReadCloser, int64, error) {
	c.gotItag = format.ItagNo
	if c.streamErr != nil {
		return nil, 0, c.streamErr
	}
	var r io.Reader = strings.NewReader(c.stream)
	if c.readErr != nil {
		r = io.MultiReader(r, &failingReader{err: c.readErr})
	}
	return io.NopCloser(r), int64(len(c.stream)), nil
}

type failingReader struct{ err error }

func (r *failingReader) Read([]byte) (int, error) { return 0, r.err }

func testVideo() *yt.Video {
	return &yt.Video{
		ID:     "abc123",
		Title:  "Cats / Dogs: the movie?",
		Author: "someone",
		Formats: yt.FormatList{
			{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, QualityLabel: "360p", Width: 640, Height: 360, AudioChannels: 2},
			{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p", Width: 1920, Height: 1080},
			{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2},
			{ItagNo: 22, MimeType: `video/mp4; codecs="avc1.64001F, mp4a.40.2"`, QualityLabel: "720p", AudioChannels: 2},
		},
	}
}

func newTestSource(t *testing.T, client Client) (*Source, string) {
	t.Helper()
	dir := t.TempDir()
	return NewSource(client, &config.DownloadConfig{Dir: dir}, zerolog.Nop()), dir
}

func TestSource_ResolveMapsFormats(t *testing.T) {
	source, _ := newTestSource(t, &fakeClient{video: testVideo()})

	video, err := source.Resolve(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", video.ID)
	assert.Equal(t, "https://youtu.be/abc123", video.URL)
	require.Len(t, video.Renditions, 4)

	assert.True(t, video.Renditions[0].Progressive)
	assert.Equal(t, "mp4", video.Renditions[0].Container)
	assert.False(t, video.Renditions[1].Progressive, "video-only")
	assert.False(t, video.Renditions[2].Progressive, "audio-only")
	assert.True(t, video.Renditions[3].Progressive, "resolution from quality label")

	selected, ok := entities.SelectRendition(video.Renditions, "mp4")
	require.True(t, ok)
	assert.Equal(t, 22, selected.Itag)
}

func TestSource_ResolveFailure(t *testing.T) {
	source, _ := newTestSource(t, &fakeClient{resolve: yt.ErrVideoPrivate})

	_, err := source.Resolve(context.Background(), "https://youtu.be/private")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsResolutionError(err))
	assert.ErrorIs(t, err, yt.ErrVideoPrivate)
}

func TestSource_FetchAndDiscard(t *testing.T) {
	client := &fakeClient{video: testVideo(), stream: "mp4-payload"}
	source, root := newTestSource(t, client)

	video, err := source.Resolve(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)

	media, err := source.Fetch(context.Background(), video, video.Renditions[3])
	require.NoError(t, err)

	assert.Equal(t, 22, client.gotItag)
	assert.Equal(t, int64(len("mp4-payload")), media.Size)
	assert.Equal(t, root, filepath.Dir(media.Dir))
	assert.Equal(t, "Cats_Dogs_the_movie.mp4", filepath.Base(media.Path))

	data, err := os.ReadFile(media.Path)
	require.NoError(t, err)
	assert.Equal(t, "mp4-payload", string(data))

	require.NoError(t, source.Discard(media))
	_, err = os.Stat(media.Dir)
	assert.True(t, os.IsNotExist(err))
}

func TestSource_FetchUsesDistinctDirs(t *testing.T) {
	source, _ := newTestSource(t, &fakeClient{video: testVideo(), stream: "x"})

	video, err := source.Resolve(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)

	first, err := source.Fetch(context.Background(), video, video.Renditions[0])
	require.NoError(t, err)
	second, err := source.Fetch(context.Background(), video, video.Renditions[0])
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
}

func TestSource_FetchFailureRemovesWorkDir(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{name: "stream open", client: &fakeClient{video: testVideo(), streamErr: errors.New("403")}},
		{name: "stream read", client: &fakeClient{video: testVideo(), stream: "partial", readErr: errors.New("connection reset")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, root := newTestSource(t, tt.client)

			video, err := source.Resolve(context.Background(), "https://youtu.be/abc123")
			require.NoError(t, err)

			_, err = source.Fetch(context.Background(), video, video.Renditions[0])
			require.Error(t, err)
			assert.True(t, pkgerrors.IsTransferError(err))

			entries, err := os.ReadDir(root)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestSource_FetchUnknownRendition(t *testing.T) {
	source, _ := newTestSource(t, &fakeClient{video: testVideo()})

	video, err := source.Resolve(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)

	_, err = source.Fetch(context.Background(), video, entities.Rendition{Itag: 999})
	assert.True(t, pkgerrors.IsTransferError(err))

	_, err = source.Fetch(context.Background(), &entities.Video{ID: "x"}, video.Renditions[0])
	assert.True(t, pkgerrors.IsTransferError(err))
}

func TestSource_DiscardNil(t *testing.T) {
	source, _ := newTestSource(t, &fakeClient{})
	assert.NoError(t, source.Discard(nil))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		title, id, container, want string
	}{
		{"My Video", "id1", "mp4", "My_Video.mp4"},
		{"  ../../etc/passwd ", "id1", "mp4", "etc_passwd.mp4"},
		{"Привет мир", "id1", "mp4", "Привет_мир.mp4"},
		{"???", "id1", "mp4", "id1.mp4"},
		{"", "", "", "video.mp4"},
		{strings.Repeat("a", 200), "id1", "webm", strings.Repeat("a", maxFileNameRunes) + ".webm"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.title, tt.id, tt.container), tt.title)
	}
}
