package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-trending-ads/internal/application"
	"telegram-trending-ads/internal/config"
	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/adapter"
	derror "telegram-trending-ads/internal/error"
)

// Bot polls Telegram updates and routes them to the facade with a bounded
// worker fan-out, so one slow verification or metadata call cannot stall
// unrelated submitters.
type Bot struct {
	api     *tgbotapi.BotAPI
	gw      *Gateway
	cfg     *config.BotConfig
	facade  *application.BotFacade
	log     *zerolog.Logger
	workers int

	cancelPolling context.CancelFunc
}

func NewBot(api *tgbotapi.BotAPI, gw *Gateway, cfg *config.BotConfig, facade *application.BotFacade, logger *zerolog.Logger) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}
	l := logger.With().Str("component", "TelegramBot").Logger()
	return &Bot{
		api:     api,
		gw:      gw,
		cfg:     cfg,
		facade:  facade,
		log:     &l,
		workers: workers,
	}, nil
}

func (b *Bot) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	b.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					if err := b.handleUpdate(ctx, up); err != nil {
						b.log.Error().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (b *Bot) StopPolling() {
	if b.cancelPolling != nil {
		b.cancelPolling()
	}
}

type cbHandler func(ctx context.Context, chatID int64, data string) error

// Exact-match callbacks
func (b *Bot) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		"submit_coin": func(ctx context.Context, id int64, _ string) error {
			return b.promptSubmission(ctx, id)
		},
		"verify_payment": func(ctx context.Context, id int64, _ string) error {
			return b.gw.SendMessage(ctx, id, "Please send the transaction hash to verify the payment.")
		},
		"view_pending": func(ctx context.Context, id int64, _ string) error {
			return b.sendPendingCount(ctx, id)
		},
		"clear_pending": func(ctx context.Context, id int64, _ string) error {
			return b.sendClearMenu(ctx, id)
		},
		"clear_all": func(ctx context.Context, id int64, _ string) error {
			b.facade.ClearAll()
			return b.gw.SendMessage(ctx, id, "All pending submissions cleared.")
		},
		"clear_one": func(ctx context.Context, id int64, _ string) error {
			return b.clearOne(ctx, id)
		},
	}
}

// Prefix-match callbacks
func (b *Bot) cbPrefixRoutes() []struct {
	Prefix string
	Fn     cbHandler
} {
	return []struct {
		Prefix string
		Fn     cbHandler
	}{
		{
			Prefix: "plan_",
			Fn: func(ctx context.Context, id int64, data string) error {
				planID := model.PlanID(strings.TrimPrefix(data, "plan_"))
				return b.startPayment(ctx, id, planID)
			},
		},
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return b.handleQuery(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil {
		return nil
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "/") {
		return b.handleCommand(ctx, chatID, strings.Fields(text)[0])
	}

	// Free text is either coin details or a transaction hash, decided by
	// where the submitter is in the flow.
	if b.facade.HasPlanSelected(ctx, chatID) {
		return b.verifyAndPublish(ctx, chatID, text)
	}
	if strings.Contains(text, "-") {
		return b.receiveSubmission(ctx, chatID, text)
	}
	return b.gw.SendMessage(ctx, chatID, "No plan or submission found. Please restart with /start.")
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) error {
	switch command {
	case "/start", "/help":
		return b.sendWelcome(ctx, chatID)
	case "/submit_coin":
		return b.promptSubmission(ctx, chatID)
	case "/view_pending":
		return b.sendPendingCount(ctx, chatID)
	case "/clear_pending":
		return b.sendClearMenu(ctx, chatID)
	case "/clear_all":
		b.facade.ClearAll()
		return b.gw.SendMessage(ctx, chatID, "All pending submissions cleared.")
	case "/clear_one":
		return b.clearOne(ctx, chatID)
	default:
		return b.sendWelcome(ctx, chatID)
	}
}

func (b *Bot) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the telegram spinner when we return.
	defer func() { _, _ = b.api.Request(tgbotapi.NewCallback(query.ID, "")) }()

	var chatID int64
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	} else {
		chatID = query.From.ID
	}
	if chatID == 0 {
		return nil
	}

	data := strings.TrimSpace(query.Data)
	if fn, ok := b.cbRoutes()[data]; ok {
		return fn(ctx, chatID, data)
	}
	for _, pr := range b.cbPrefixRoutes() {
		if strings.HasPrefix(data, pr.Prefix) {
			return pr.Fn(ctx, chatID, data)
		}
	}
	return fmt.Errorf("unknown callback data %q", data)
}

func (b *Bot) sendWelcome(ctx context.Context, chatID int64) error {
	rows := [][]adapter.InlineButton{{
		{Text: "Submit Coin", Data: "submit_coin"},
		{Text: "Pending Submissions", Data: "view_pending"},
		{Text: "Clear Pending", Data: "clear_pending"},
	}}
	caption := b.facade.WelcomeCaption()
	if img := b.facade.PromoImage(); img != "" {
		_, err := b.gw.SendPhoto(ctx, chatID, img, caption, rows)
		return err
	}
	return b.gw.SendButtons(ctx, chatID, caption, rows)
}

func (b *Bot) promptSubmission(ctx context.Context, chatID int64) error {
	if err := b.facade.HandleSubmitPrompt(ctx, chatID); err != nil {
		switch {
		case errors.Is(err, derror.ErrDuplicateActiveSubmission):
			return b.gw.SendMessage(ctx, chatID, "You already have an active submission. Please complete it first.")
		case errors.Is(err, derror.ErrRateLimited):
			return b.gw.SendMessage(ctx, chatID, "Rate limit exceeded. Please try again later.")
		default:
			return err
		}
	}
	return b.gw.SendMessage(ctx, chatID, "Please enter your coin details in the format: `Coin Name - Address - Link`")
}

func (b *Bot) receiveSubmission(ctx context.Context, chatID int64, text string) error {
	sub, err := b.facade.HandleSubmission(ctx, chatID, text)
	if err != nil {
		switch {
		case errors.Is(err, derror.ErrMalformedSubmissionFormat):
			return b.gw.SendMessage(ctx, chatID, "❌ Invalid format. Please use:\n`Coin Name - Address - Link`")
		case errors.Is(err, derror.ErrDuplicateActiveSubmission):
			return b.gw.SendMessage(ctx, chatID, "You already have an active submission. Please complete it first.")
		default:
			return err
		}
	}
	ack := fmt.Sprintf(
		"✅ Submission received!\n\n🔹 Name: %s\n🔹 Contract Address: <code>%s</code>\n🔹 Link: <a href='%s'>%s</a>",
		sub.Name, sub.ContractAddress, sub.Link, sub.Name)
	if err := b.gw.SendHTML(ctx, chatID, ack); err != nil {
		return err
	}
	return b.sendPaymentMenu(ctx, chatID)
}

func (b *Bot) sendPaymentMenu(ctx context.Context, chatID int64) error {
	rows := [][]adapter.InlineButton{{
		{Text: "🌅 Daily", Data: "plan_daily"},
		{Text: "⏳ Weekly", Data: "plan_weekly"},
		{Text: "🚀 Fast Track", Data: "plan_monthly"},
	}}
	text := "🛍️ Payment Plans\nChoose a plan:\n" +
		"🌅 Daily Plan (0.7 SOL)\n" +
		"⏳ Weekly Plan (3 SOL)\n" +
		"🚀 Fast Track (10 SOL)"
	return b.gw.SendButtons(ctx, chatID, text, rows)
}

func (b *Bot) startPayment(ctx context.Context, chatID int64, planID model.PlanID) error {
	req, err := b.facade.HandlePlan(ctx, chatID, planID)
	if err != nil {
		switch {
		case errors.Is(err, derror.ErrNoActiveSubmission):
			return b.gw.SendMessage(ctx, chatID, "You must submit your coin details first. Use /start to begin.")
		case errors.Is(err, derror.ErrInvalidPlan):
			return b.gw.SendMessage(ctx, chatID, "Invalid plan selected")
		default:
			return err
		}
	}
	amount := strconv.FormatFloat(req.Plan.PriceSOL, 'f', -1, 64)
	instructions := fmt.Sprintf(
		"To complete payment for the %s Plan, scan the QR code below or use this address:\n<code>%s</code>\n\nExpected Amount: %s SOL",
		req.Plan.Title(), req.Recipient, amount)
	if err := b.gw.SendHTML(ctx, chatID, instructions); err != nil {
		return err
	}
	if err := b.gw.SendPhotoBytes(ctx, chatID, fmt.Sprintf("payment_qr_%d_%s.png", chatID, planID), req.QRPNG); err != nil {
		return err
	}
	rows := [][]adapter.InlineButton{{{Text: "✅ Verify Payment", Data: "verify_payment"}}}
	return b.gw.SendButtons(ctx, chatID, "After payment, click the button below to verify.", rows)
}

func (b *Bot) verifyAndPublish(ctx context.Context, chatID int64, txID string) error {
	if err := b.facade.HandleVerify(ctx, chatID, txID); err != nil {
		if errors.Is(err, derror.ErrNoActiveSubmission) {
			return b.gw.SendMessage(ctx, chatID, "No plan or submission found. Please restart with /start.")
		}
		return b.gw.SendMessage(ctx, chatID, "❌ Payment verification failed: "+verifyFailureText(err))
	}
	if err := b.gw.SendMessage(ctx, chatID, "✅ Payment verified! Your post is now being processed."); err != nil {
		return err
	}

	_, err := b.facade.HandlePublish(ctx, chatID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, derror.ErrNotInQueue):
		return b.gw.SendMessage(ctx, chatID, "💠 Your submission was not found in the pending queue.")
	case errors.Is(err, derror.ErrMetadataUnavailable):
		return b.gw.SendMessage(ctx, chatID, "Failed to fetch token details. Please try again later.")
	case errors.Is(err, derror.ErrPublishFailed):
		// The payment is already consumed at this point; be explicit that a
		// human has to sort it out.
		return b.gw.SendMessage(ctx, chatID, "⚠️ Your payment was verified but posting failed. Please contact support.")
	default:
		return err
	}
}

func (b *Bot) sendPendingCount(ctx context.Context, chatID int64) error {
	return b.gw.SendMessage(ctx, chatID, fmt.Sprintf("There are %d pending submissions.", b.facade.PendingCount()))
}

func (b *Bot) sendClearMenu(ctx context.Context, chatID int64) error {
	rows := [][]adapter.InlineButton{{
		{Text: "Clear All", Data: "clear_all"},
		{Text: "Clear One", Data: "clear_one"},
	}}
	return b.gw.SendButtons(ctx, chatID, "Choose an option:", rows)
}

func (b *Bot) clearOne(ctx context.Context, chatID int64) error {
	entry, ok := b.facade.ClearOne()
	if !ok {
		return b.gw.SendMessage(ctx, chatID, "No pending submissions to clear.")
	}
	return b.gw.SendMessage(ctx, chatID, fmt.Sprintf("Cleared submission for %s.", entry.Submission.Name))
}

func verifyFailureText(err error) string {
	switch {
	case errors.Is(err, derror.ErrAlreadyUsed):
		return "This transaction has already been verified."
	case errors.Is(err, derror.ErrTransactionNotSuccessful):
		return "Transaction is not successful."
	case errors.Is(err, derror.ErrAmountOrRecipientMismatch):
		return "Transaction details do not match the expected amount or recipient."
	case errors.Is(err, derror.ErrOracleUnavailable):
		return "Error verifying payment: " + err.Error()
	default:
		return err.Error()
	}
}
