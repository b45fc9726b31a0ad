// Package telegram exposes the control commands through a bot
package telegram

import (
	"context"
	"fmt"
	"strconv"

	"plate/command"
	"plate/misc"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Connect do connection to telegram
func Connect(telegramToken, telegramChatID string) (*tgbotapi.BotAPI, int64, error) {
	chatID, err := strconv.ParseInt(telegramChatID, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("chat id: %w", err)
	}
	bot, err := tgbotapi.NewBotAPI(telegramToken)
	if err != nil {
		return nil, 0, fmt.Errorf("telegram api: %w", err)
	}
	return bot, chatID, nil
}

// Reply return the answer to a message, commands from other chats are ignored
func Reply(h *command.Handler, chatID int64, message *tgbotapi.Message) string {
	if message == nil || message.Chat == nil || message.Chat.ID != chatID || !message.IsCommand() {
		return ""
	}
	reply, _ := h.ExecCommand(message.Command())
	return reply
}

// Listen serve commands of the chat until ctx is done or a stop command
func Listen(ctx context.Context, bot *tgbotapi.BotAPI, chatID int64, h *command.Handler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)
	defer bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			reply := Reply(h, chatID, update.Message)
			if reply == "" {
				continue
			}
			if _, err := bot.Send(tgbotapi.NewMessage(chatID, reply)); err != nil {
				misc.Error("tg_send", "send message", err)
			}
		}
	}
}
