package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// ChannelGateway is the send/receive/delete surface the core needs from the
// messaging transport. Implemented by the Telegram adapter and by a noop
// double in tests.
type ChannelGateway interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendHTML(ctx context.Context, chatID int64, html string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	// SendPhoto posts a photo by URL with an HTML caption and optional inline
	// buttons, returning the resulting message id.
	SendPhoto(ctx context.Context, chatID int64, photoURL, captionHTML string, rows [][]InlineButton) (int, error)
	// SendPhotoBytes uploads an in-memory PNG (payment QR codes).
	SendPhotoBytes(ctx context.Context, chatID int64, name string, png []byte) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}
