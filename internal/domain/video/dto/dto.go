// Package dto contains data transfer objects for the video domain
package dto

// StartCommandRequest represents a request to handle /start command
type StartCommandRequest struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
}

// CommandResponse represents a response for bot commands
type CommandResponse struct {
	Message string `json:"message"`
}

// DownloadRequest represents an incoming text message to be treated as a video URL
type DownloadRequest struct {
	ChatID int64  `json:"chatId"`
	UserID int64  `json:"userId"`
	Text   string `json:"text"`
}

// DownloadResult summarizes one handled download request
type DownloadResult struct {
	RequestID string `json:"requestId"`
	Outcome   string `json:"outcome"`
	Title     string `json:"title,omitempty"`
	Itag      int    `json:"itag,omitempty"`
	Bytes     int64  `json:"bytes,omitempty"`
}

// DownloadEvent represents a Kafka event published after each download request
type DownloadEvent struct {
	RequestID  string `json:"request_id"`
	ChatID     int64  `json:"chat_id"`
	UserID     int64  `json:"user_id"`
	URL        string `json:"url"`
	VideoID    string `json:"video_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
	VideoSec   int64  `json:"video_duration_sec,omitempty"`
	Itag       int    `json:"itag,omitempty"`
	Quality    string `json:"quality,omitempty"`
	MimeType   string `json:"mime_type,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Bitrate    int    `json:"bitrate,omitempty"`
	Expected   int64  `json:"expected_bytes,omitempty"`
	Outcome    string `json:"outcome"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Error      string `json:"error,omitempty"`
	Bytes      int64  `json:"bytes,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	OccurredAt string `json:"occurred_at"`
}
