// Package business contains business logic for the video domain
package business

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/TubeFlow/internal/domain/video/consts"
	"github.com/Conte777/TubeFlow/internal/domain/video/deps"
	"github.com/Conte777/TubeFlow/internal/domain/video/dto"
	"github.com/Conte777/TubeFlow/internal/domain/video/entities"
	videoerrors "github.com/Conte777/TubeFlow/internal/domain/video/errors"
	pkgerrors "github.com/Conte777/TubeFlow/pkg/errors"
)

// UseCase contains business logic for video download requests
type UseCase struct {
	source    deps.VideoSource
	publisher deps.DownloadEventPublisher
	metrics   deps.MetricsRecorder
	sender    deps.TelegramSender
	logger    zerolog.Logger

	newRequestID func() string
	now          func() time.Time
}

// NewUseCase creates a new UseCase instance
// Note: sender is not passed here to break cyclic dependency
// Use SetSender after creating TelegramHandlers
func NewUseCase(
	source deps.VideoSource,
	publisher deps.DownloadEventPublisher,
	metrics deps.MetricsRecorder,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		source:       source,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
		newRequestID: uuid.NewString,
		now:          time.Now,
	}
}

// SetSender sets the TelegramSender after construction
// This is called by fx.Invoke to resolve cyclic dependency
func (uc *UseCase) SetSender(sender deps.TelegramSender) {
	uc.sender = sender
}

// HandleStart handles /start command
func (uc *UseCase) HandleStart(ctx context.Context, req *dto.StartCommandRequest) (*dto.CommandResponse, error) {
	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("username", req.Username).
		Msg("User started bot")

	name := req.FirstName
	if name == "" {
		name = req.Username
	}

	return &dto.CommandResponse{Message: fmt.Sprintf(consts.GreetingTemplate, name)}, nil
}

// HandleHelp handles /help command
func (uc *UseCase) HandleHelp(ctx context.Context) (*dto.CommandResponse, error) {
	return &dto.CommandResponse{Message: consts.HelpMessage}, nil
}

// HandleTextMessage treats the message text as a video URL: it resolves the
// video, picks a rendition, downloads it and sends it back to the chat while
// keeping a single progress notice up to date.
//
// Every fault is logged and answered with one generic notice; the returned
// error carries the fault kind for callers that want to inspect it. A video
// without a suitable rendition is not an error. The progress notice and the
// local file are released on every exit path.
func (uc *UseCase) HandleTextMessage(ctx context.Context, req *dto.DownloadRequest) (*dto.DownloadResult, error) {
	if uc.sender == nil {
		uc.logger.Error().Msg("TelegramSender is not set")
		return nil, videoerrors.ErrSenderNotSet
	}

	started := uc.now()
	r := &request{
		req: req,
		result: &dto.DownloadResult{
			RequestID: uc.newRequestID(),
		},
	}
	r.logger = uc.logger.With().
		Str("request_id", r.result.RequestID).
		Int64("chat_id", req.ChatID).
		Logger()

	r.logger.Info().Str("text", req.Text).Msg("Processing download request")

	err := uc.process(ctx, r)
	if err != nil {
		r.result.Outcome = consts.OutcomeFailed
		kind := pkgerrors.TypeOf(err).String()

		r.logger.Error().Err(err).Str("error_kind", kind).Msg("Download request failed")
		uc.metrics.RecordFault(kind)

		if sendErr := uc.sender.SendMessage(ctx, req.ChatID, consts.GenericFailureMessage); sendErr != nil {
			r.logger.Error().Err(sendErr).Msg("Failed to send failure notice")
		}
	}

	uc.release(ctx, r)

	elapsed := uc.now().Sub(started)
	uc.metrics.RecordRequest(r.result.Outcome, elapsed.Seconds())
	uc.publish(ctx, r, err, elapsed)

	r.logger.Info().
		Str("outcome", r.result.Outcome).
		Dur("duration", elapsed).
		Msg("Download request finished")

	return r.result, err
}

// request holds the resources owned by one download request
type request struct {
	req      *dto.DownloadRequest
	result   *dto.DownloadResult
	logger   zerolog.Logger
	video    *entities.Video
	notice   *entities.ProgressNotice
	media    *entities.LocalMedia
	selected entities.Rendition
}

// process runs the download steps in order. Each step starts only after the
// previous one completed.
func (uc *UseCase) process(ctx context.Context, r *request) error {
	chatID := r.req.ChatID

	messageID, err := uc.sender.SendMessageAndGetID(ctx, chatID, consts.ProcessingMessage)
	if err != nil {
		return fmt.Errorf("send progress notice: %w", err)
	}
	r.notice = &entities.ProgressNotice{ChatID: chatID, MessageID: messageID}

	video, err := uc.source.Resolve(ctx, r.req.Text)
	if err != nil {
		return fmt.Errorf("resolve video: %w", err)
	}
	r.video = video
	r.result.Title = video.Title

	selected, ok := entities.SelectRendition(video.Renditions, consts.PreferredContainer)
	if !ok {
		r.result.Outcome = consts.OutcomeNoMatch
		r.logger.Info().
			Str("video_id", video.ID).
			Int("renditions", len(video.Renditions)).
			Msg("No downloadable stream found")

		if err := uc.sender.SendMessage(ctx, chatID, consts.NoStreamMessage); err != nil {
			r.logger.Error().Err(err).Msg("Failed to send no-stream notice")
		}
		return nil
	}
	r.selected = selected
	r.result.Itag = selected.Itag

	r.logger.Debug().
		Str("video_id", video.ID).
		Int("itag", selected.Itag).
		Str("quality", selected.QualityLabel).
		Str("mime_type", selected.MimeType).
		Int64("content_length", selected.ContentLength).
		Msg("Rendition selected")

	if err := uc.sender.EditMessageText(ctx, chatID, r.notice.MessageID, fmt.Sprintf(consts.DownloadingTemplate, video.Title)); err != nil {
		return fmt.Errorf("update progress notice: %w", err)
	}

	media, err := uc.source.Fetch(ctx, video, selected)
	if err != nil {
		return fmt.Errorf("fetch rendition %d: %w", selected.Itag, err)
	}
	r.media = media
	r.result.Bytes = media.Size
	uc.metrics.RecordFetchedBytes(media.Size)

	if err := uc.sender.EditMessageText(ctx, chatID, r.notice.MessageID, consts.UploadingMessage); err != nil {
		return fmt.Errorf("update progress notice: %w", err)
	}

	upload := &entities.VideoUpload{
		Path:              media.Path,
		Caption:           video.Title,
		SupportsStreaming: true,
	}
	if err := uc.sender.SendVideo(ctx, chatID, upload); err != nil {
		return fmt.Errorf("send video: %w", err)
	}

	notice := r.notice
	r.notice = nil
	if err := uc.sender.DeleteMessage(ctx, chatID, notice.MessageID); err != nil {
		return fmt.Errorf("delete progress notice: %w", err)
	}

	r.media = nil
	if err := uc.source.Discard(media); err != nil {
		return fmt.Errorf("discard local media: %w", err)
	}

	r.result.Outcome = consts.OutcomeDelivered
	return nil
}

// release frees whatever the request still owns after an early exit
func (uc *UseCase) release(ctx context.Context, r *request) {
	if r.notice != nil {
		if err := uc.sender.DeleteMessage(ctx, r.notice.ChatID, r.notice.MessageID); err != nil {
			r.logger.Warn().Err(err).Int("message_id", r.notice.MessageID).Msg("Failed to delete progress notice")
		}
		r.notice = nil
	}

	if r.media != nil {
		if err := uc.source.Discard(r.media); err != nil {
			r.logger.Warn().Err(err).Str("path", r.media.Path).Msg("Failed to discard local media")
		}
		r.media = nil
	}
}

func (uc *UseCase) publish(ctx context.Context, r *request, procErr error, elapsed time.Duration) {
	event := &dto.DownloadEvent{
		RequestID:  r.result.RequestID,
		ChatID:     r.req.ChatID,
		UserID:     r.req.UserID,
		URL:        r.req.Text,
		Title:      r.result.Title,
		Itag:       r.selected.Itag,
		Quality:    r.selected.QualityLabel,
		MimeType:   r.selected.MimeType,
		Width:      r.selected.Width,
		Height:     r.selected.Height,
		Bitrate:    r.selected.Bitrate,
		Expected:   r.selected.ContentLength,
		Outcome:    r.result.Outcome,
		Bytes:      r.result.Bytes,
		DurationMs: elapsed.Milliseconds(),
		OccurredAt: uc.now().UTC().Format(time.RFC3339),
	}

	if r.video != nil {
		event.VideoID = r.video.ID
		event.Author = r.video.Author
		event.VideoSec = int64(r.video.Duration.Seconds())
	}

	switch {
	case procErr != nil:
		event.ErrorKind = pkgerrors.TypeOf(procErr).String()
		event.Error = procErr.Error()
	case r.result.Outcome == consts.OutcomeNoMatch:
		event.ErrorKind = pkgerrors.TypeOf(videoerrors.ErrNoDownloadableStream).String()
	}

	if err := uc.publisher.PublishDownloadEvent(ctx, event); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to publish download event")
	}
}
