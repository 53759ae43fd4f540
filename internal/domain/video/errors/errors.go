// Package errors contains domain-specific errors for the video domain
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/Conte777/TubeFlow/pkg/errors"
)

// Domain errors for download operations
var (
	ErrNoDownloadableStream = pkgerrors.NewNoMatchError("no progressive mp4 rendition found")
	ErrSenderNotSet         = pkgerrors.NewTransportError("telegram sender is not set", nil)
	ErrEmptyMessage         = pkgerrors.NewTransportError("message text cannot be empty", nil)
	ErrRenditionNotFound    = stderrors.New("rendition not found in resolved video")
)
