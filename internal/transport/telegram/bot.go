package telegram

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/transport"
)

// ProcessingReply is sent before a trade message goes to the oracle.
const ProcessingReply = "🔄 Processing..."

const maxMessageRunes = 4096

// sender is the subset of *telego.Bot used to reply.
type sender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// Bot connects a Telegram bot to the journal. The same update handler serves
// long polling and webhook delivery.
type Bot struct {
	api           *telego.Bot
	send          sender
	journal       interfaces.Journal
	timeout       time.Duration
	summaryChatID int64
}

var _ interfaces.Notifier = (*Bot)(nil)

// Params configure a Bot.
type Params struct {
	Token          string
	MessageTimeout time.Duration
	SummaryChatID  int64 // 0 disables Notify
	Options        []telego.BotOption
}

func New(p Params, journal interfaces.Journal) (*Bot, error) {
	api, err := telego.NewBot(p.Token, p.Options...)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Bot{
		api:           api,
		send:          api,
		journal:       journal,
		timeout:       p.MessageTimeout,
		summaryChatID: p.SummaryChatID,
	}, nil
}

// Poll receives updates by long polling until ctx is cancelled. Any
// registered webhook is removed first, since Telegram rejects getUpdates
// while one is set.
func (b *Bot) Poll(ctx context.Context) error {
	if err := b.api.DeleteWebhook(ctx, &telego.DeleteWebhookParams{}); err != nil {
		logger.Warn(ctx, "Failed to delete webhook before polling", "error", err)
	}

	updates, err := b.api.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("start long polling: %w", err)
	}

	logger.Info(ctx, "Telegram long polling started")
	for update := range updates {
		go b.HandleUpdate(ctx, update)
	}
	logger.Info(ctx, "Telegram long polling stopped")
	return nil
}

// RegisterWebhook points Telegram at url. secret, when set, is echoed back in
// the X-Telegram-Bot-Api-Secret-Token header of every delivery.
func (b *Bot) RegisterWebhook(ctx context.Context, url, secret string) error {
	err := b.api.SetWebhook(ctx, &telego.SetWebhookParams{
		URL:         url,
		SecretToken: secret,
	})
	if err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	logger.Info(ctx, "Telegram webhook registered", "url", url)
	return nil
}

// HandleUpdate answers one update. Non-text updates and unknown commands are
// ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update telego.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}
	chatID := msg.Chat.ID

	if transport.Parse(msg.Text) == transport.CmdTrade {
		b.reply(ctx, chatID, ProcessingReply)
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	reply, ok := transport.Dispatch(ctx, b.journal, msg.Text)
	if !ok {
		return
	}
	b.reply(context.WithoutCancel(ctx), chatID, reply)
}

// Notify sends text to the configured summary chat.
func (b *Bot) Notify(ctx context.Context, text string) error {
	if b.summaryChatID == 0 {
		logger.Debug(ctx, "No summary chat configured, skipping push")
		return nil
	}
	_, err := b.send.SendMessage(ctx, tu.Message(tu.ID(b.summaryChatID), clip(text)))
	return err
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if _, err := b.send.SendMessage(ctx, tu.Message(tu.ID(chatID), clip(text))); err != nil {
		logger.ErrorWithErr(ctx, "Failed to send Telegram reply", err, "chat_id", chatID)
	}
}

// clip keeps text within Telegram's message length limit.
func clip(text string) string {
	if utf8.RuneCountInString(text) <= maxMessageRunes {
		return text
	}
	r := []rune(text)
	return string(r[:maxMessageRunes-1]) + "…"
}
