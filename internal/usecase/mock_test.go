//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// mockLookup is a scripted transfer-lookup provider that counts its calls so
// tests can assert the replay fast path skips the network.
type mockLookup struct {
	calls         int32
	TransfersFunc func(ctx context.Context, txID string) (*adapter.TransferResult, error)
}

func (m *mockLookup) Transfers(ctx context.Context, txID string) (*adapter.TransferResult, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.TransfersFunc != nil {
		return m.TransfersFunc(ctx, txID)
	}
	return nil, errors.New("mockLookup: no TransfersFunc")
}

func (m *mockLookup) Calls() int32 { return atomic.LoadInt32(&m.calls) }

// singleTransfer scripts a lookup that reports one successful transfer.
func singleTransfer(destination string, lamports int64) *mockLookup {
	return &mockLookup{
		TransfersFunc: func(ctx context.Context, txID string) (*adapter.TransferResult, error) {
			return &adapter.TransferResult{
				Status: "success",
				Transfers: []adapter.Transfer{
					{Action: "transfer", Status: "Successful", Destination: destination, Amount: lamports},
				},
			}, nil
		},
	}
}

type mockMetadata struct {
	LookupFunc func(ctx context.Context, contractAddress string) (*model.TokenInfo, error)
}

func (m *mockMetadata) Lookup(ctx context.Context, contractAddress string) (*model.TokenInfo, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, contractAddress)
	}
	return &model.TokenInfo{Symbol: "MOCK", PairURL: "https://dexscreener.test/pair"}, nil
}

type mockBuilder struct {
	BuildFunc func(planID model.PlanID) (*model.PaymentRequest, error)
}

func (m *mockBuilder) Build(planID model.PlanID) (*model.PaymentRequest, error) {
	if m.BuildFunc != nil {
		return m.BuildFunc(planID)
	}
	plan, err := model.PlanByID(planID)
	if err != nil {
		return nil, err
	}
	return &model.PaymentRequest{Plan: plan, Recipient: "mock-recipient", URI: "solana:mock"}, nil
}

// mockScheduler records Schedule and Cancel calls.
type mockScheduler struct {
	mu        sync.Mutex
	scheduled []model.PublishedPost
	canceled  []int64
}

func (m *mockScheduler) Schedule(post model.PublishedPost) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduled = append(m.scheduled, post)
}

func (m *mockScheduler) Cancel(submitterID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.canceled = append(m.canceled, submitterID)
}

func (m *mockScheduler) Scheduled() []model.PublishedPost {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.PublishedPost, len(m.scheduled))
	copy(out, m.scheduled)
	return out
}

func (m *mockScheduler) Canceled() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int64, len(m.canceled))
	copy(out, m.canceled)
	return out
}
