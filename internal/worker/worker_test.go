package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tavola/internal/dto"
	"tavola/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubInvoices struct {
	inv *dto.InvoiceResponse
	err error
}

func (s *stubInvoices) Invoice(_ context.Context, orderID uint) (*dto.InvoiceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	inv := *s.inv
	inv.OrderID = orderID
	return &inv, nil
}

type stubSender struct {
	err  error
	sent []string
}

func (s *stubSender) Send(to, _, _, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, to)
	return nil
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// ── Receipt worker ───────────────────────────────────────────────────────────

func TestReceiptWorker_WritesPDF(t *testing.T) {
	dir := t.TempDir()
	inv := &dto.InvoiceResponse{
		OrderNumber: "ORD-00C0FFEE",
		Lines:       []dto.InvoiceLine{{MenuItemName: "Risotto", Quantity: 1, Subtotal: decimal.NewFromInt(14)}},
		Subtotal:    decimal.NewFromInt(14),
		TaxRate:     decimal.RequireFromString("0.10"),
		TaxAmount:   decimal.RequireFromString("1.40"),
		TotalAmount: decimal.RequireFromString("15.40"),
		IssuedAt:    time.Now(),
	}
	// nil dispatcher drops the follow-up e-mail
	w := NewReceiptWorker(&stubInvoices{inv: inv}, nil, dir, "Tavola")

	err := w.Process(context.Background(), mustJSON(t, ReceiptJobPayload{PaymentID: 1, OrderID: 9, ToEmail: "guest@example.com"}))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "invoice_ORD-00C0FFEE.pdf"))
	assert.NoError(t, err)
}

func TestReceiptWorker_InvoiceErrorIsRetried(t *testing.T) {
	w := NewReceiptWorker(&stubInvoices{err: errors.New("db down")}, nil, t.TempDir(), "Tavola")
	err := w.Process(context.Background(), mustJSON(t, ReceiptJobPayload{OrderID: 9}))
	assert.Error(t, err)
}

func TestReceiptWorker_BadPayloadIsDropped(t *testing.T) {
	w := NewReceiptWorker(&stubInvoices{}, nil, t.TempDir(), "Tavola")
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{"order_id":"x"`)))
}

// ── E-mail worker ────────────────────────────────────────────────────────────

func TestEmailWorker_Sends(t *testing.T) {
	sender := &stubSender{}
	w := NewEmailWorker(sender, infra.NewCircuitBreaker(infra.MailerBreakerConfig()))

	err := w.Process(context.Background(), mustJSON(t, EmailJobPayload{ToEmail: "a@b.c", Subject: "hi"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.c"}, sender.sent)

	// Empty recipient is skipped
	require.NoError(t, w.Process(context.Background(), mustJSON(t, EmailJobPayload{Subject: "hi"})))
	assert.Len(t, sender.sent, 1)
}

func TestEmailWorker_FailureTripsBreaker(t *testing.T) {
	breaker := infra.NewCircuitBreaker(infra.MailerBreakerConfig())
	w := NewEmailWorker(&stubSender{err: errors.New("connection refused")}, breaker)
	payload := mustJSON(t, EmailJobPayload{ToEmail: "a@b.c"})

	for i := 0; i < 3; i++ {
		assert.Error(t, w.Process(context.Background(), payload))
	}
	assert.Equal(t, infra.BreakerOpen, breaker.State())
	assert.ErrorIs(t, w.Process(context.Background(), payload), infra.ErrCircuitOpen)
}

func TestEmailWorker_DisabledMailerIsDropped(t *testing.T) {
	breaker := infra.NewCircuitBreaker(infra.MailerBreakerConfig())
	w := NewEmailWorker(&stubSender{err: infra.ErrMailerDisabled}, breaker)
	payload := mustJSON(t, EmailJobPayload{ToEmail: "a@b.c"})

	for i := 0; i < 5; i++ {
		assert.NoError(t, w.Process(context.Background(), payload))
	}
	assert.Equal(t, infra.BreakerClosed, breaker.State())
}

// ── Dispatcher without Redis ─────────────────────────────────────────────────

func TestDispatcher_DisabledDropsJobs(t *testing.T) {
	var nilDispatcher *Dispatcher
	assert.False(t, nilDispatcher.Enabled())
	assert.NoError(t, nilDispatcher.EnqueueReceipt(context.Background(), 1, 2, "a@b.c"))

	d := NewDispatcher(nil)
	assert.False(t, d.Enabled())
	assert.NoError(t, d.EnqueueEmail(context.Background(), EmailJobPayload{ToEmail: "a@b.c"}))

	// Returns immediately without Redis
	StartWorkerPool(context.Background(), d, 2)
	StartStockAlertCron(context.Background(), StockAlertConfig{AlertEmail: "a@b.c", Interval: time.Minute})
}

// ── Worker loop ──────────────────────────────────────────────────────────────

func TestPopBackoff(t *testing.T) {
	assert.Zero(t, popBackoff(redis.Nil))
	assert.Zero(t, popBackoff(context.Canceled))
	assert.Equal(t, errorBackoff, popBackoff(errors.New("dial tcp: connection refused")))
}

func TestRunWorker_StopsWhileRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	d := NewDispatcher(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.runWorker(ctx, 0)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
