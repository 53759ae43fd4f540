// Package deps contains interface definitions for the video domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/TubeFlow/internal/domain/video/dto"
	"github.com/Conte777/TubeFlow/internal/domain/video/entities"
)

// TelegramSender defines interface for outbound calls to the chat platform.
// This interface is used to break the cyclic dependency between UseCase and TelegramHandler
type TelegramSender interface {
	// SendMessage sends a text message to chat
	SendMessage(ctx context.Context, chatID int64, text string) error

	// SendMessageAndGetID sends a text message to chat and returns the telegram message ID
	SendMessageAndGetID(ctx context.Context, chatID int64, text string) (messageID int, err error)

	// EditMessageText edits text of a previously sent message
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error

	// DeleteMessage deletes a previously sent message
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// SendVideo uploads a local file to chat as a video attachment
	SendVideo(ctx context.Context, chatID int64, video *entities.VideoUpload) error
}

// VideoSource defines the video-hosting capability
type VideoSource interface {
	// Resolve resolves a URL to a video with its renditions
	Resolve(ctx context.Context, rawURL string) (*entities.Video, error)

	// Fetch downloads a rendition to local storage; the source decides the path
	Fetch(ctx context.Context, video *entities.Video, rendition entities.Rendition) (*entities.LocalMedia, error)

	// Discard removes fetched media from local storage
	Discard(media *entities.LocalMedia) error
}

// DownloadEventPublisher defines interface for publishing download lifecycle events
type DownloadEventPublisher interface {
	// PublishDownloadEvent publishes the outcome of a download request
	PublishDownloadEvent(ctx context.Context, event *dto.DownloadEvent) error
}

// MetricsRecorder defines interface for recording download metrics
type MetricsRecorder interface {
	// RecordRequest records the outcome and duration (seconds) of a download request
	RecordRequest(outcome string, duration float64)

	// RecordFault records a fault by kind
	RecordFault(kind string)

	// RecordFetchedBytes records the size of a fetched file
	RecordFetchedBytes(bytes int64)
}
