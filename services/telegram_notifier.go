package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Devak1234/Fitness-Chatbot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender delivers a plain text message to a chat.
type TelegramSender interface {
	SendText(chatID int64, text string) error
}

// TelegramLinker binds a chat to the user who issued the link code.
type TelegramLinker interface {
	LinkTelegramChat(ctx context.Context, code string, chatID int64) error
}

type TelegramNotifier struct {
	API    *tgbotapi.BotAPI
	Linker TelegramLinker
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{API: api}, nil
}

func (t *TelegramNotifier) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := t.API.Send(msg)
	return err
}

const startHelp = "Hi! To get reminders here, create a Telegram link code in your notification settings and send /start <code>."

// reply answers a bot command. /start with a link code binds the chat.
func (t *TelegramNotifier) reply(ctx context.Context, command, args string, chatID int64) string {
	switch strings.ToLower(command) {
	case "start":
		code := strings.TrimSpace(args)
		if code == "" || t.Linker == nil {
			return startHelp
		}
		err := t.Linker.LinkTelegramChat(ctx, code, chatID)
		switch {
		case err == nil:
			return "Linked! Reminders and alerts will arrive in this chat."
		case errors.Is(err, ErrNotFound):
			return "That link code is unknown or expired. Create a new one in your notification settings."
		default:
			utils.Logger().Warnw("telegram link failed", "chat_id", chatID, "error", err)
			return "Linking failed. Please try again later."
		}
	case "id":
		return fmt.Sprintf("This chat id is %d.", chatID)
	default:
		return ""
	}
}

// Run answers bot commands until ctx is cancelled.
func (t *TelegramNotifier) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.API.GetUpdatesChan(u)
	utils.Logger().Infow("telegram listener started", "bot", t.API.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			t.API.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			chatID := update.Message.Chat.ID
			text := t.reply(ctx, update.Message.Command(), update.Message.CommandArguments(), chatID)
			if text == "" {
				continue
			}
			if err := t.SendText(chatID, text); err != nil {
				utils.Logger().Warnw("telegram reply failed", "chat_id", chatID, "error", err)
			}
		}
	}
}
