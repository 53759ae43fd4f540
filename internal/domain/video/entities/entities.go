// Package entities contains domain entities
package entities

import "time"

// Rendition is one encoded version of a source video
type Rendition struct {
	Itag          int    `json:"itag"`
	MimeType      string `json:"mimeType"`
	Container     string `json:"container"`
	QualityLabel  string `json:"qualityLabel"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Progressive   bool   `json:"progressive"` // audio and video in one file
	Bitrate       int    `json:"bitrate"`
	ContentLength int64  `json:"contentLength"`
}

// Video is a resolved source video. Read-only once resolved.
type Video struct {
	ID         string
	URL        string
	Title      string
	Author     string
	Duration   time.Duration
	Renditions []Rendition

	// Source holds the provider payload the video was resolved from
	Source any
}

// LocalMedia is a fetched rendition on local storage, owned by one request
type LocalMedia struct {
	Path string
	Dir  string
	Size int64
}

// ProgressNotice is the status message edited in place while a request runs
type ProgressNotice struct {
	ChatID    int64
	MessageID int
}

// VideoUpload describes a local file to be sent as a video attachment
type VideoUpload struct {
	Path              string
	Caption           string
	SupportsStreaming bool
}
