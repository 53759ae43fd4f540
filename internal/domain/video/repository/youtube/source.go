// Package youtube contains the YouTube implementation of deps.VideoSource
package youtube

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	yt "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"

	"github.com/Conte777/TubeFlow/config"
	"github.com/Conte777/TubeFlow/internal/domain/video/entities"
	videoerrors "github.com/Conte777/TubeFlow/internal/domain/video/errors"
	pkgerrors "github.com/Conte777/TubeFlow/pkg/errors"
)

const maxFileNameRunes = 80

// Client is the subset of the kkdai/youtube client used by Source
type Client interface {
	GetVideoContext(ctx context.Context, url string) (*yt.Video, error)
	GetStreamContext(ctx context.Context, video *yt.Video, format *yt.Format) (io.ReadCloser, int64, error)
}

// Source implements deps.VideoSource on top of YouTube
type Source struct {
	client  Client
	rootDir string
	logger  zerolog.Logger
}

// NewSource creates a YouTube source writing fetched media under cfg.Dir
func NewSource(client Client, cfg *config.DownloadConfig, logger zerolog.Logger) *Source {
	return &Source{
		client:  client,
		rootDir: cfg.Dir,
		logger:  logger.With().Str("component", "youtube").Logger(),
	}
}

// Resolve implements deps.VideoSource interface
func (s *Source) Resolve(ctx context.Context, rawURL string) (*entities.Video, error) {
	video, err := s.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, pkgerrors.NewResolutionError("resolve youtube url", err)
	}

	s.logger.Debug().
		Str("video_id", video.ID).
		Int("formats", len(video.Formats)).
		Msg("Video resolved")

	return toVideo(rawURL, video), nil
}

// Fetch implements deps.VideoSource interface.
// Every fetch gets its own directory so concurrent requests never collide.
func (s *Source) Fetch(ctx context.Context, video *entities.Video, rendition entities.Rendition) (*entities.LocalMedia, error) {
	source, ok := video.Source.(*yt.Video)
	if !ok || source == nil {
		return nil, pkgerrors.NewTransferError("fetch rendition", fmt.Errorf("video %s was not resolved by youtube", video.ID))
	}

	format := findFormat(source, rendition.Itag)
	if format == nil {
		return nil, pkgerrors.NewTransferError(fmt.Sprintf("fetch itag %d", rendition.Itag), videoerrors.ErrRenditionNotFound)
	}

	dir := filepath.Join(s.rootDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.NewTransferError("create work dir", err)
	}

	media, err := s.download(ctx, source, format, dir, FileName(video.Title, video.ID, rendition.Container))
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("dir", dir).Msg("Failed to remove partial download")
		}
		return nil, err
	}

	s.logger.Info().
		Str("video_id", video.ID).
		Int("itag", rendition.Itag).
		Int64("bytes", media.Size).
		Str("path", media.Path).
		Msg("Rendition fetched")

	return media, nil
}

func (s *Source) download(ctx context.Context, video *yt.Video, format *yt.Format, dir, name string) (*entities.LocalMedia, error) {
	stream, _, err := s.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, pkgerrors.NewTransferError("open stream", err)
	}
	defer stream.Close()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return nil, pkgerrors.NewTransferError("create local file", err)
	}

	written, err := io.Copy(file, stream)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, pkgerrors.NewTransferError("write local file", err)
	}

	return &entities.LocalMedia{Path: path, Dir: dir, Size: written}, nil
}

// Discard implements deps.VideoSource interface
func (s *Source) Discard(media *entities.LocalMedia) error {
	if media == nil {
		return nil
	}

	target := media.Dir
	if target == "" {
		target = media.Path
	}

	if err := os.RemoveAll(target); err != nil {
		return pkgerrors.NewTransferError("remove local media", err)
	}

	s.logger.Debug().Str("path", target).Msg("Local media discarded")
	return nil
}

func toVideo(rawURL string, video *yt.Video) *entities.Video {
	renditions := make([]entities.Rendition, 0, len(video.Formats))
	for i := range video.Formats {
		renditions = append(renditions, toRendition(&video.Formats[i]))
	}

	return &entities.Video{
		ID:         video.ID,
		URL:        rawURL,
		Title:      video.Title,
		Author:     video.Author,
		Duration:   video.Duration,
		Renditions: renditions,
		Source:     video,
	}
}

// toRendition maps a provider format. A format is progressive when it
// carries audio channels and a video resolution.
func toRendition(f *yt.Format) entities.Rendition {
	r := entities.Rendition{
		Itag:          f.ItagNo,
		MimeType:      f.MimeType,
		Container:     entities.ContainerFromMimeType(f.MimeType),
		QualityLabel:  f.QualityLabel,
		Width:         f.Width,
		Height:        f.Height,
		Bitrate:       f.Bitrate,
		ContentLength: f.ContentLength,
	}
	r.Progressive = f.AudioChannels > 0 && r.Resolution() > 0
	return r
}

func findFormat(video *yt.Video, itag int) *yt.Format {
	for i := range video.Formats {
		if video.Formats[i].ItagNo == itag {
			return &video.Formats[i]
		}
	}
	return nil
}

// FileName builds a filesystem-safe file name from the video title,
// falling back to the video ID
func FileName(title, id, container string) string {
	base := sanitize(title)
	if base == "" {
		base = sanitize(id)
	}
	if base == "" {
		base = "video"
	}
	if container == "" {
		container = "mp4"
	}
	return base + "." + container
}

func sanitize(s string) string {
	var b strings.Builder
	runes := 0
	lastUnderscore := false

	for _, r := range strings.TrimSpace(s) {
		if runes >= maxFileNameRunes {
			break
		}
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '.':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if lastUnderscore {
				continue
			}
			b.WriteRune('_')
			lastUnderscore = true
		}
		runes++
	}

	return strings.Trim(b.String(), "_.")
}
