package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-trending-ads/internal/domain/ports/adapter"
)

var _ adapter.ChannelGateway = (*Gateway)(nil)

// Gateway wraps the raw Telegram API with the send/delete primitives the
// core needs. It carries no flow logic; the Bot router sits on top of it.
type Gateway struct {
	api *tgbotapi.BotAPI
}

func NewGateway(api *tgbotapi.BotAPI) *Gateway {
	return &Gateway{api: api}
}

func (g *Gateway) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := g.api.Send(msg)
	return err
}

func (g *Gateway) SendHTML(ctx context.Context, chatID int64, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := g.api.Send(msg)
	return err
}

func (g *Gateway) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = buildMarkup(rows)
	_, err := g.api.Send(msg)
	return err
}

func (g *Gateway) SendPhoto(ctx context.Context, chatID int64, photoURL, captionHTML string, rows [][]adapter.InlineButton) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = captionHTML
	photo.ParseMode = tgbotapi.ModeHTML
	if len(rows) > 0 {
		photo.ReplyMarkup = buildMarkup(rows)
	}
	sent, err := g.api.Send(photo)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (g *Gateway) SendPhotoBytes(ctx context.Context, chatID int64, name string, png []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: png})
	_, err := g.api.Send(photo)
	return err
}

func (g *Gateway) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := g.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func buildMarkup(rows [][]adapter.InlineButton) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			switch {
			case btn.URL != "":
				r = append(r, tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL))
			case btn.Data != "":
				r = append(r, tgbotapi.NewInlineKeyboardButtonData(label, btn.Data))
			default:
				r = append(r, tgbotapi.NewInlineKeyboardButtonData(label, label))
			}
		}
		kbRows = append(kbRows, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}
