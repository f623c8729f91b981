package telegram

import (
	"context"
	"strconv"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"golang.org/x/time/rate"
)

// MaxSendDurr configures the limiter to send at most 1 message per MaxSendDurr
var MaxSendDurr = 500 * time.Millisecond

// https://github.com/yagop/node-telegram-bot-api/issues/165
const maxMessageSize = 4096

// longer messages are dropped, diagnostics should never be this big
const maxParts = 9

type Bot struct {
	ctx       context.Context
	channelID int64
	api       *tgbotapi.BotAPI
	limiter   *rate.Limiter
}

func New(ctx context.Context, token string, channelID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		ctx:       ctx,
		channelID: channelID,
		api:       api,
		// limit message spam to once every MaxSendDurr
		limiter: rate.NewLimiter(rate.Every(MaxSendDurr), 1),
	}, nil
}

// Send sends a message to the channel, optionally sending notifications depending on disableNotification
// internally ratelimited to once every MaxSendDurr
func (t *Bot) Send(txt string, disableNotification bool) error {
	for _, part := range split(txt, maxMessageSize) {
		if err := t.limiter.Wait(t.ctx); err != nil {
			return err
		}

		msg := tgbotapi.NewMessage(t.channelID, part)
		msg.DisableNotification = disableNotification
		if _, err := t.api.Send(msg); err != nil {
			return err
		}
	}

	return nil
}

// split cuts txt into parts of at most limit bytes,
// numbering them " (i)" when there is more than one
func split(txt string, limit int) []string {
	if len(txt) <= limit {
		return []string{txt}
	}

	const postfixLength = 4
	size := limit - postfixLength
	var parts []string
	for i := 1; len(txt) > 0 && i <= maxParts; i++ {
		end := size
		if len(txt) <= end {
			end = len(txt)
		} else {
			// never cut a rune in half, telegram rejects invalid utf-8
			for end > 0 && !utf8.RuneStart(txt[end]) {
				end--
			}
		}
		parts = append(parts, txt[:end]+" ("+strconv.Itoa(i)+")")
		txt = txt[end:]
	}

	return parts
}
