package service_test

import (
	"context"
	"testing"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"
	"tavola/internal/service"
	"tavola/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var taxRate = decimal.RequireFromString("0.10")

// ── Fixtures ─────────────────────────────────────────────────────────────────

type spyReceipts struct {
	calls []uint
	email string
}

func (s *spyReceipts) EnqueueReceipt(_ context.Context, paymentID, _ uint, toEmail string) error {
	s.calls = append(s.calls, paymentID)
	s.email = toEmail
	return nil
}

type orderEnv struct {
	db       *gorm.DB
	menu     service.MenuService
	orders   service.OrderService
	payments service.PaymentService
	receipts *spyReceipts
}

func newOrderEnv(t *testing.T) *orderEnv {
	t.Helper()
	db := testutil.NewDB(t)
	menuRepo := repository.NewMenuItemRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	spy := &spyReceipts{}
	return &orderEnv{
		db:       db,
		menu:     service.NewMenuService(repository.NewCategoryRepository(db), menuRepo, nil),
		orders:   service.NewOrderService(orderRepo, menuRepo, tableRepo, taxRate),
		payments: service.NewPaymentService(repository.NewPaymentRepository(db), orderRepo, spy, taxRate, "Tavola"),
		receipts: spy,
	}
}

func (e *orderEnv) item(t *testing.T, name, price string, available bool) uint {
	t.Helper()
	ctx := context.Background()
	cats, err := e.menu.ListCategories(ctx, 0, 1)
	require.NoError(t, err)
	var catID uint
	if len(cats) == 0 {
		cat, err := e.menu.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Mains"})
		require.NoError(t, err)
		catID = cat.ID
	} else {
		catID = cats[0].ID
	}
	it, err := e.menu.CreateItem(ctx, dto.CreateMenuItemRequest{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: &available,
		CategoryID:  catID,
	})
	require.NoError(t, err)
	return it.ID
}

// twoLineOrder places 12.50 x2 + 7.00 x1.
func (e *orderEnv) twoLineOrder(t *testing.T) *dto.OrderResponse {
	t.Helper()
	pasta := e.item(t, "Pasta", "12.50", true)
	salad := e.item(t, "Salad", "7.00", true)
	o, err := e.orders.Create(context.Background(), nil, dto.CreateOrderRequest{
		OrderType: "dine_in",
		Items: []dto.OrderItemRequest{
			{MenuItemID: pasta, Quantity: 2},
			{MenuItemID: salad, Quantity: 1},
		},
	})
	require.NoError(t, err)
	return o
}

// ── Orders ───────────────────────────────────────────────────────────────────

func TestOrderCreate_Totals(t *testing.T) {
	env := newOrderEnv(t)
	o := env.twoLineOrder(t)

	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, o.OrderNumber)
	assert.Equal(t, model.OrderPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Pasta", o.Items[0].MenuItemName)
	assert.True(t, o.Subtotal.Equal(decimal.RequireFromString("32.00")), o.Subtotal.String())
	assert.True(t, o.TaxAmount.Equal(decimal.RequireFromString("3.20")), o.TaxAmount.String())
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("35.20")), o.TotalAmount.String())

	// Totals are derived again on read
	got, err := env.orders.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(o.TotalAmount))
	assert.True(t, got.TotalAmount.Equal(got.Subtotal.Add(got.TaxAmount)))
}

func TestOrderCreate_SnapshotsPrice(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	id := env.item(t, "Soup", "5.00", true)
	o, err := env.orders.Create(ctx, nil, dto.CreateOrderRequest{
		OrderType: "takeaway",
		Items:     []dto.OrderItemRequest{{MenuItemID: id, Quantity: 1}},
	})
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("9.00")
	_, err = env.menu.UpdateItem(ctx, id, dto.UpdateMenuItemRequest{Price: &newPrice})
	require.NoError(t, err)

	got, err := env.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.RequireFromString("5.00")))
}

func TestOrderCreate_Rejections(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	off := env.item(t, "Seasonal", "4.00", false)

	_, err := env.orders.Create(ctx, nil, dto.CreateOrderRequest{
		OrderType: "dine_in",
		Items:     []dto.OrderItemRequest{{MenuItemID: off, Quantity: 1}},
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = env.orders.Create(ctx, nil, dto.CreateOrderRequest{
		OrderType: "dine_in",
		Items:     []dto.OrderItemRequest{{MenuItemID: 999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	table := uint(42)
	_, err = env.orders.Create(ctx, nil, dto.CreateOrderRequest{
		OrderType: "dine_in",
		TableID:   &table,
		Items:     []dto.OrderItemRequest{{MenuItemID: off, Quantity: 1}},
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderStatus(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	o := env.twoLineOrder(t)

	_, err := env.orders.UpdateStatus(ctx, o.ID, "teleported")
	assert.ErrorIs(t, err, service.ErrValidation)

	got, err := env.orders.UpdateStatus(ctx, o.ID, model.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPreparing, got.Status)

	got, err = env.orders.UpdateItemStatus(ctx, o.ID, o.Items[0].ID, model.ItemReady)
	require.NoError(t, err)
	assert.Equal(t, model.ItemReady, got.Items[0].Status)

	_, err = env.orders.UpdateItemStatus(ctx, o.ID, 999, model.ItemReady)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = env.orders.UpdateStatus(ctx, 999, model.OrderReady)
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, env.orders.Delete(ctx, o.ID))
	_, err = env.orders.Get(ctx, o.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, env.orders.Delete(ctx, o.ID), service.ErrNotFound)
}

// ── Payments ─────────────────────────────────────────────────────────────────

func TestPaymentProcess_ExactTotal(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	o := env.twoLineOrder(t)

	_, err := env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: o.ID, Amount: decimal.RequireFromString("30.00"), PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, service.ErrAmountMismatch)

	// Tax-exclusive subtotal is not accepted either
	_, err = env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: o.ID, Amount: decimal.RequireFromString("32.00"), PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, service.ErrAmountMismatch)

	email := "guest@example.com"
	p, err := env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: o.ID, Amount: decimal.RequireFromString("35.20"), PaymentMethod: "cash",
		CustomerEmail: &email,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, p.Status)
	assert.Equal(t, []uint{p.ID}, env.receipts.calls)
	assert.Equal(t, email, env.receipts.email)

	got, err := env.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, got.Status)
}

func TestPaymentProcess_SubCentTaxRoundsToPrintedTotal(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	id := env.item(t, "Risotto", "12.35", true)
	o, err := env.orders.Create(ctx, nil, dto.CreateOrderRequest{
		OrderType: "dine_in",
		Items:     []dto.OrderItemRequest{{MenuItemID: id, Quantity: 1}},
	})
	require.NoError(t, err)

	// 12.35 x 0.10 = 1.235, rounded half-up to 1.24
	assert.True(t, o.TaxAmount.Equal(decimal.RequireFromString("1.24")), o.TaxAmount.String())
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("13.59")), o.TotalAmount.String())

	inv, err := env.payments.Invoice(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, inv.TotalAmount.Equal(o.TotalAmount))

	_, err = env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: o.ID, Amount: decimal.RequireFromString("13.585"), PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, service.ErrAmountMismatch)

	p, err := env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: o.ID, Amount: decimal.RequireFromString("13.59"), PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, "13.59", p.Amount.StringFixed(2))
}

func TestPaymentProcess_SettledOrderIsConflict(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	paid := env.twoLineOrder(t)

	_, err := env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: paid.ID, Amount: paid.TotalAmount, PaymentMethod: "cash",
	})
	require.NoError(t, err)
	_, err = env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: paid.ID, Amount: paid.TotalAmount, PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, service.ErrConflict)

	cancelled, err := env.orders.Create(ctx, nil, dto.CreateOrderRequest{
		OrderType: "takeaway",
		Items:     []dto.OrderItemRequest{{MenuItemID: paid.Items[0].MenuItemID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = env.orders.UpdateStatus(ctx, cancelled.ID, model.OrderCancelled)
	require.NoError(t, err)
	_, err = env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: cancelled.ID, Amount: cancelled.TotalAmount, PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, service.ErrConflict)

	list, err := env.payments.ListByOrder(ctx, paid.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPaymentProcess_UnknownOrder(t *testing.T) {
	env := newOrderEnv(t)
	_, err := env.payments.Process(context.Background(), dto.ProcessPaymentRequest{
		OrderID: 77, Amount: decimal.NewFromInt(1), PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPaymentProcess_DuplicateTransaction(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	first := env.twoLineOrder(t)
	tx := "TX-1"

	_, err := env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: first.ID, Amount: first.TotalAmount, PaymentMethod: "credit_card", TransactionID: &tx,
	})
	require.NoError(t, err)

	second, err := env.orders.Create(ctx, nil, dto.CreateOrderRequest{
		OrderType: "takeaway",
		Items:     []dto.OrderItemRequest{{MenuItemID: first.Items[0].MenuItemID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: second.ID, Amount: second.TotalAmount, PaymentMethod: "credit_card", TransactionID: &tx,
	})
	assert.ErrorIs(t, err, service.ErrConflict)
	assert.Empty(t, env.receipts.calls)
}

func TestPaymentRefund(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	o := env.twoLineOrder(t)

	p, err := env.payments.Process(ctx, dto.ProcessPaymentRequest{
		OrderID: o.ID, Amount: o.TotalAmount, PaymentMethod: "debit_card",
	})
	require.NoError(t, err)

	refunded, err := env.payments.Refund(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentRefunded, refunded.Status)

	got, err := env.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, got.Status)

	_, err = env.payments.Refund(ctx, p.ID)
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = env.payments.Refund(ctx, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)

	list, err := env.payments.ListByOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.PaymentRefunded, list[0].Status)
}

func TestPaymentInvoice(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	o := env.twoLineOrder(t)

	inv, err := env.payments.Invoice(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, inv.OrderNumber)
	assert.Len(t, inv.Lines, 2)
	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("35.20")))

	pdf, name, err := env.payments.InvoicePDF(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice_"+o.OrderNumber+".pdf", name)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	_, err = env.payments.Invoice(ctx, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
