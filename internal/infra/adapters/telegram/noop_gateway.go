package telegram

import (
	"context"
	"sync"

	"telegram-trending-ads/internal/domain/ports/adapter"
)

var _ adapter.ChannelGateway = (*NoopGateway)(nil)

// NoopGateway records sends instead of talking to Telegram. Used in tests.
type NoopGateway struct {
	mu     sync.Mutex
	nextID int

	Sent    []SentMessage
	Deleted []DeletedMessage
}

type SentMessage struct {
	ChatID    int64
	Text      string
	PhotoURL  string
	MessageID int
}

type DeletedMessage struct {
	ChatID    int64
	MessageID int
}

func NewNoopGateway() *NoopGateway { return &NoopGateway{} }

func (g *NoopGateway) record(chatID int64, text, photoURL string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	g.Sent = append(g.Sent, SentMessage{ChatID: chatID, Text: text, PhotoURL: photoURL, MessageID: g.nextID})
	return g.nextID
}

func (g *NoopGateway) SendMessage(ctx context.Context, chatID int64, text string) error {
	g.record(chatID, text, "")
	return nil
}

func (g *NoopGateway) SendHTML(ctx context.Context, chatID int64, html string) error {
	g.record(chatID, html, "")
	return nil
}

func (g *NoopGateway) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	g.record(chatID, text, "")
	return nil
}

func (g *NoopGateway) SendPhoto(ctx context.Context, chatID int64, photoURL, captionHTML string, rows [][]adapter.InlineButton) (int, error) {
	return g.record(chatID, captionHTML, photoURL), nil
}

func (g *NoopGateway) SendPhotoBytes(ctx context.Context, chatID int64, name string, png []byte) error {
	g.record(chatID, name, "")
	return nil
}

func (g *NoopGateway) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Deleted = append(g.Deleted, DeletedMessage{ChatID: chatID, MessageID: messageID})
	return nil
}

// Messages returns a snapshot of sent messages for assertions.
func (g *NoopGateway) Messages() []SentMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]SentMessage, len(g.Sent))
	copy(out, g.Sent)
	return out
}

// Deletions returns a snapshot of deleted messages for assertions.
func (g *NoopGateway) Deletions() []DeletedMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]DeletedMessage, len(g.Deleted))
	copy(out, g.Deleted)
	return out
}
