package consts

// User-facing texts
const (
	GreetingTemplate = "Hi %s!\n\nJust send me a YouTube video link and I'll download and send it to you."
	HelpMessage      = "Send me a link to a YouTube video and I'll download it and send it back to you as a video.\n\n/start - start the bot\n/help - show this message"

	ProcessingMessage     = "🔗 Got your link! Processing..."
	DownloadingTemplate   = "✅ Found it! Downloading '%s'..."
	UploadingMessage      = "📥 Download complete! Uploading to Telegram..."
	NoStreamMessage       = "Couldn't find a downloadable video stream."
	GenericFailureMessage = "❌ Oops! Something went wrong. Please make sure you sent a valid YouTube video URL."
)

// Rendition selection policy
const (
	PreferredContainer = "mp4"
)

// Download outcomes reported to metrics and events
const (
	OutcomeDelivered = "delivered"
	OutcomeNoMatch   = "no_match"
	OutcomeFailed    = "failed"
)
