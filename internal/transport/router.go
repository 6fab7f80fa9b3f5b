package transport

import (
	"context"
	"strings"

	"llm-trade-journal/internal/interfaces"
)

// Command is what an inbound chat message asks for.
type Command string

const (
	CmdStart  Command = "start"
	CmdStats  Command = "stats"
	CmdDaily  Command = "daily"
	CmdTrade  Command = "trade"
	CmdIgnore Command = "" // unknown slash command or blank text
)

// Parse classifies text. Slash commands may carry a bot mention
// ("/stats@journal_bot") and trailing arguments, both ignored.
func Parse(text string) Command {
	text = strings.TrimSpace(text)
	if text == "" {
		return CmdIgnore
	}
	if !strings.HasPrefix(text, "/") {
		return CmdTrade
	}

	name := strings.Fields(text)[0][1:]
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	switch Command(strings.ToLower(name)) {
	case CmdStart:
		return CmdStart
	case CmdStats:
		return CmdStats
	case CmdDaily:
		return CmdDaily
	default:
		return CmdIgnore
	}
}

// Dispatch routes text to the journal. ok is false when the message should be
// left unanswered.
func Dispatch(ctx context.Context, j interfaces.Journal, text string) (reply string, ok bool) {
	switch Parse(text) {
	case CmdStart:
		return j.Start(ctx), true
	case CmdStats:
		return j.Stats(ctx), true
	case CmdDaily:
		return j.Daily(ctx), true
	case CmdTrade:
		return j.HandleMessage(ctx, text), true
	default:
		return "", false
	}
}
