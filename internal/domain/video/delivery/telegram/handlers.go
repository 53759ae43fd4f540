// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Conte777/TubeFlow/internal/domain/video/dto"
	"github.com/Conte777/TubeFlow/internal/domain/video/entities"
	videoerrors "github.com/Conte777/TubeFlow/internal/domain/video/errors"
	"github.com/Conte777/TubeFlow/internal/domain/video/usecase/business"
	pkgerrors "github.com/Conte777/TubeFlow/pkg/errors"
)

// Handlers contains Telegram update handlers
// Implements deps.TelegramSender interface
type Handlers struct {
	uc      *business.UseCase
	bot     *tgbot.Bot
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewHandlers creates new Telegram handlers.
// limiter is shared by all outbound Bot API calls.
func NewHandlers(uc *business.UseCase, bot *tgbot.Bot, limiter *rate.Limiter, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:      uc,
		bot:     bot,
		limiter: limiter,
		logger:  logger,
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	req := startRequestFromUpdate(update)
	if req == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.logCommand(req.UserID, "/start", "processing")

	resp, err := h.uc.HandleStart(ctx, req)
	if err != nil {
		h.logError(req.UserID, "/start", err)
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
	h.logCommand(req.UserID, "/start", "success")
}

// HandleHelp handles /help command
func (h *Handlers) HandleHelp(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	req := startRequestFromUpdate(update)
	if req == nil {
		return
	}
	chatID := update.Message.Chat.ID

	resp, err := h.uc.HandleHelp(ctx)
	if err != nil {
		h.logError(req.UserID, "/help", err)
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
	h.logCommand(req.UserID, "/help", "success")
}

// HandleTextMessage handles plain text messages as video links
func (h *Handlers) HandleTextMessage(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	req := downloadRequestFromUpdate(update)
	if req == nil {
		return
	}

	result, err := h.uc.HandleTextMessage(ctx, req)
	if err != nil {
		// already reported to the user by the use case
		h.logger.Debug().Int64("chat_id", req.ChatID).Err(err).Msg("Text message handled with fault")
		return
	}

	h.logger.Debug().
		Int64("chat_id", req.ChatID).
		Str("request_id", result.RequestID).
		Str("outcome", result.Outcome).
		Msg("Text message handled")
}

// CommandName returns the bot command of a message text without the
// leading slash, the @botname suffix and arguments: "/start@tube_bot ref" -> "start".
// ok is false for text that is not a command.
func CommandName(text string) (name string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	token, _, _ := strings.Cut(text[1:], " ")
	token, _, _ = strings.Cut(token, "\n")
	token, _, _ = strings.Cut(token, "@")
	if token == "" {
		return "", false
	}
	return strings.ToLower(token), true
}

// MatchCommand matches messages invoking the given bot command in any of
// its forms (plain, addressed to the bot, with a deep-link payload)
func MatchCommand(name string) func(update *models.Update) bool {
	return func(update *models.Update) bool {
		if update == nil || update.Message == nil {
			return false
		}
		cmd, ok := CommandName(update.Message.Text)
		return ok && cmd == name
	}
}

// IsDownloadRequest matches text messages that are not bot commands
func IsDownloadRequest(update *models.Update) bool {
	if update == nil || update.Message == nil {
		return false
	}
	text := strings.TrimSpace(update.Message.Text)
	return text != "" && !strings.HasPrefix(text, "/")
}

func startRequestFromUpdate(update *models.Update) *dto.StartCommandRequest {
	if update == nil || update.Message == nil {
		return nil
	}

	req := &dto.StartCommandRequest{UserID: update.Message.Chat.ID}
	if from := update.Message.From; from != nil {
		req.UserID = from.ID
		req.Username = from.Username
		req.FirstName = from.FirstName
	}
	return req
}

func downloadRequestFromUpdate(update *models.Update) *dto.DownloadRequest {
	if !IsDownloadRequest(update) {
		return nil
	}

	req := &dto.DownloadRequest{
		ChatID: update.Message.Chat.ID,
		Text:   strings.TrimSpace(update.Message.Text),
	}
	if update.Message.From != nil {
		req.UserID = update.Message.From.ID
	}
	return req
}

// SendMessage implements deps.TelegramSender interface
func (h *Handlers) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := h.SendMessageAndGetID(ctx, chatID, text)
	return err
}

// SendMessageAndGetID implements deps.TelegramSender interface
func (h *Handlers) SendMessageAndGetID(ctx context.Context, chatID int64, text string) (int, error) {
	if text == "" {
		h.logger.Warn().Int64("chat_id", chatID).Msg("Attempt to send empty message")
		return 0, videoerrors.ErrEmptyMessage
	}

	if err := h.wait(ctx); err != nil {
		return 0, err
	}

	msg, err := h.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return 0, h.handleSendError(chatID, "sendMessage", err)
	}

	h.logger.Debug().Int64("chat_id", chatID).Int("message_id", msg.ID).Msg("Message sent")
	return msg.ID, nil
}

// EditMessageText implements deps.TelegramSender interface
func (h *Handlers) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	if err := h.wait(ctx); err != nil {
		return err
	}

	_, err := h.bot.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		return h.handleSendError(chatID, "editMessageText", err)
	}

	return nil
}

// DeleteMessage implements deps.TelegramSender interface
func (h *Handlers) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := h.wait(ctx); err != nil {
		return err
	}

	_, err := h.bot.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return h.handleSendError(chatID, "deleteMessage", err)
	}

	return nil
}

// SendVideo implements deps.TelegramSender interface
func (h *Handlers) SendVideo(ctx context.Context, chatID int64, video *entities.VideoUpload) error {
	file, err := os.Open(video.Path)
	if err != nil {
		return pkgerrors.NewTransferError("open local media", err)
	}
	defer file.Close()

	if err := h.wait(ctx); err != nil {
		return err
	}

	h.logger.Info().Int64("chat_id", chatID).Str("path", video.Path).Msg("Uploading video")

	_, err = h.bot.SendVideo(ctx, &tgbot.SendVideoParams{
		ChatID:            chatID,
		Video:             &models.InputFileUpload{Filename: filepath.Base(video.Path), Data: file},
		Caption:           video.Caption,
		SupportsStreaming: video.SupportsStreaming,
	})
	if err != nil {
		return h.handleSendError(chatID, "sendVideo", err)
	}

	return nil
}

func (h *Handlers) wait(ctx context.Context) error {
	if err := h.limiter.Wait(ctx); err != nil {
		return pkgerrors.NewTransportError("rate limiter", err)
	}
	return nil
}

func (h *Handlers) sendResponse(ctx context.Context, chatID int64, text string) {
	if err := h.SendMessage(ctx, chatID, text); err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to send Telegram response")
	}
}

// handleSendError logs a rejected Bot API call and wraps it as a transport fault
func (h *Handlers) handleSendError(chatID int64, method string, err error) error {
	errorMsg := err.Error()

	var hint string
	switch {
	case strings.Contains(errorMsg, "Forbidden"):
		hint = "User blocked the bot or chat not found"
	case strings.Contains(errorMsg, "chat not found"):
		hint = "Chat not found"
	case strings.Contains(errorMsg, "Too Many Requests"):
		hint = "Rate limit exceeded"
	case strings.Contains(errorMsg, "Request Entity Too Large"), strings.Contains(errorMsg, "too big"):
		hint = "File rejected as too large"
	case strings.Contains(errorMsg, "timeout"), strings.Contains(errorMsg, "network error"):
		hint = "Network error while calling Telegram"
	}

	if hint == "" {
		h.logger.Error().Int64("chat_id", chatID).Str("method", method).Err(err).Msg("Unknown Telegram API error")
	} else {
		h.logger.Warn().Int64("chat_id", chatID).Str("method", method).Err(err).Msg(hint)
	}

	return pkgerrors.NewTransportError(fmt.Sprintf("telegram %s", method), err)
}

func (h *Handlers) logCommand(userID int64, command, result string) {
	h.logger.Info().Int64("user_id", userID).Str("command", command).Str("result", result).Msg("Command processed")
}

func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Error().Int64("user_id", userID).Str("command", command).Err(err).Msg("Command failed")
}
