package order

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/koishop/internal/client/cart"
	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/client/storage/boltdb"
	"github.com/iudanet/koishop/internal/models"
	"github.com/iudanet/koishop/pkg/api"
)

var (
	errNotSignedIn = errors.New("not signed in")
	errForbidden   = errors.New("forbidden")
)

// fakeClient implements Client for testing
type fakeClient struct {
	createErr   error
	resp        *api.OrderResponse
	order       *api.OrderRequest
	idemKey     string
	historyUser string
	status      string
	cancel      *api.CancelOrderRequest
	comment     *api.CommentRequest
	calls       []string
}

func (f *fakeClient) CreateOrder(ctx context.Context, req api.OrderRequest, key string) (*api.OrderResponse, error) {
	f.calls = append(f.calls, "create")
	f.order = &req
	f.idemKey = key
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.resp, nil
}

func (f *fakeClient) OrderHistory(ctx context.Context, userID string) ([]api.Order, error) {
	f.calls = append(f.calls, "history")
	f.historyUser = userID
	return []api.Order{{ID: "o1", UserID: userID}}, nil
}

func (f *fakeClient) OrdersByStatus(ctx context.Context, status string) ([]api.Order, error) {
	f.calls = append(f.calls, "status")
	f.status = status
	return []api.Order{{ID: "o1", Status: status}}, nil
}

func (f *fakeClient) CancelOrder(ctx context.Context, req api.CancelOrderRequest) error {
	f.calls = append(f.calls, "cancel")
	f.cancel = &req
	return nil
}

func (f *fakeClient) ConfirmOrder(ctx context.Context, orderID string) error {
	f.calls = append(f.calls, "confirm:"+orderID)
	return nil
}

func (f *fakeClient) CompleteOrder(ctx context.Context, orderID string) error {
	f.calls = append(f.calls, "complete:"+orderID)
	return nil
}

func (f *fakeClient) AddComment(ctx context.Context, req api.CommentRequest) error {
	f.calls = append(f.calls, "comment")
	f.comment = &req
	return nil
}

// fakeSessions implements Sessions for testing
type fakeSessions struct {
	session  *storage.Session
	savedPts *int64
	saveErr  error
}

func (f *fakeSessions) Current(ctx context.Context) (*storage.Session, error) {
	if f.session == nil {
		return nil, errNotSignedIn
	}
	copied := *f.session
	return &copied, nil
}

func (f *fakeSessions) RequireRole(ctx context.Context, roles ...string) (*storage.Session, error) {
	session, err := f.Current(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r == session.Role {
			return session, nil
		}
	}
	return nil, errForbidden
}

func (f *fakeSessions) SavePoints(ctx context.Context, points int64) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedPts = &points
	return nil
}

type fixture struct {
	svc      *Service
	client   *fakeClient
	sessions *fakeSessions
	cart     *cart.Store
	db       *boltdb.Storage
}

func newFixture(t *testing.T, role string, points int64) *fixture {
	t.Helper()

	db, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "order.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	f := &fixture{
		client:   &fakeClient{resp: &api.OrderResponse{ID: "o-1"}},
		sessions: &fakeSessions{session: &storage.Session{UserID: "u-1", Role: role, Point: points}},
		cart:     cart.New(context.Background(), db, nil, nil),
		db:       db,
	}
	f.svc = NewService(f.client, f.cart, f.sessions, nil)
	return f
}

func (f *fixture) fill(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	_, err := f.cart.Add(ctx, api.Product{ID: "k1", Price: decimal.NewFromInt(1_000_000)}, 2)
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, api.Product{ID: "k2", Price: decimal.NewFromInt(500_000)}, 1)
	require.NoError(t, err)
}

func codForm() models.CheckoutForm {
	return models.CheckoutForm{
		Address:       api.Address{Street: "12 Le Loi", District: "1", City: "HCMC"},
		PaymentMethod: models.PaymentCOD,
	}
}

func TestNewQuote(t *testing.T) {
	tests := []struct {
		name       string
		subtotal   int64
		points     int64
		usePoint   bool
		wantTotal  string
		wantDisc   string
		wantPoints int64
	}{
		{name: "points not used", subtotal: 1000, points: 300, usePoint: false, wantTotal: "1000", wantDisc: "0"},
		{name: "partial discount", subtotal: 1000, points: 300, usePoint: true, wantTotal: "700", wantDisc: "300", wantPoints: 300},
		{name: "discount exceeds subtotal", subtotal: 1000, points: 5000, usePoint: true, wantTotal: "0", wantDisc: "5000", wantPoints: 1000},
		{name: "no balance", subtotal: 1000, points: 0, usePoint: true, wantTotal: "1000", wantDisc: "0"},
		{name: "empty cart", subtotal: 0, points: 10, usePoint: true, wantTotal: "0", wantDisc: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuote(decimal.NewFromInt(tt.subtotal), tt.points, tt.usePoint)
			assert.Equal(t, tt.wantTotal, q.Total.String())
			assert.Equal(t, tt.wantDisc, q.Discount.String())
			assert.Equal(t, tt.wantPoints, q.PointsUsed)
			assert.False(t, q.Total.IsNegative())
		})
	}
}

func TestService_Quote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.RoleCustomer, 200_000)
	f.fill(t)

	q, err := f.svc.Quote(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "2500000", q.Subtotal.String())
	assert.Equal(t, "2300000", q.Total.String())

	f.sessions.session = nil
	_, err = f.svc.Quote(ctx, true)
	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestService_CheckoutCOD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.RoleCustomer, 0)
	f.fill(t)

	receipt, err := f.svc.Checkout(ctx, codForm())
	require.NoError(t, err)
	assert.Equal(t, "o-1", receipt.OrderID)
	assert.Empty(t, receipt.PaymentURL)
	assert.Equal(t, "2500000", receipt.Quote.Total.String())

	assert.Equal(t, "u-1", f.client.order.UserID)
	assert.Equal(t, "COD", f.client.order.PaymentMethod)
	assert.Equal(t, []api.CartDetail{{KoiID: "k2", Quantity: 1}, {KoiID: "k1", Quantity: 2}}, f.client.order.CartDetails)
	assert.False(t, f.client.order.UsePoint)

	_, err = uuid.Parse(f.client.idemKey)
	assert.NoError(t, err, "idempotency key is a uuid")

	assert.Zero(t, f.cart.Len())
	assert.Zero(t, cart.New(ctx, f.db, nil, nil).Len(), "cleared cart is persisted")
}

func TestService_CheckoutOnline(t *testing.T) {
	ctx := context.Background()

	t.Run("payment url returned", func(t *testing.T) {
		f := newFixture(t, models.RoleCustomer, 0)
		f.fill(t)
		f.client.resp = &api.OrderResponse{ID: "o-2", OrderURL: "https://pay.example/o-2"}

		form := codForm()
		form.PaymentMethod = models.PaymentOnline
		receipt, err := f.svc.Checkout(ctx, form)
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/o-2", receipt.PaymentURL)
		assert.Zero(t, f.cart.Len())
	})

	t.Run("missing payment url keeps cart", func(t *testing.T) {
		f := newFixture(t, models.RoleCustomer, 0)
		f.fill(t)

		form := codForm()
		form.PaymentMethod = models.PaymentOnline
		_, err := f.svc.Checkout(ctx, form)
		assert.ErrorIs(t, err, ErrNoPaymentURL)
		assert.Equal(t, 2, f.cart.Len())
	})
}

func TestService_CheckoutWithPoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.RoleCustomer, 3_000_000)
	f.fill(t)

	form := codForm()
	form.UsePoint = true
	receipt, err := f.svc.Checkout(ctx, form)
	require.NoError(t, err)

	assert.True(t, f.client.order.UsePoint)
	assert.True(t, receipt.Quote.Total.IsZero())
	require.NotNil(t, f.sessions.savedPts)
	assert.Equal(t, int64(500_000), *f.sessions.savedPts)
}

func TestService_CheckoutFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid form sends nothing", func(t *testing.T) {
		f := newFixture(t, models.RoleCustomer, 0)
		f.fill(t)

		_, err := f.svc.Checkout(ctx, models.CheckoutForm{PaymentMethod: "CARD"})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "address.street")
		assert.Contains(t, verr.Fields, "paymentMethod")
		assert.Empty(t, f.client.calls)
		assert.Equal(t, 2, f.cart.Len())
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newFixture(t, models.RoleCustomer, 0)
		_, err := f.svc.Checkout(ctx, codForm())
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Empty(t, f.client.calls)
	})

	t.Run("not signed in", func(t *testing.T) {
		f := newFixture(t, models.RoleCustomer, 0)
		f.fill(t)
		f.sessions.session = nil
		_, err := f.svc.Checkout(ctx, codForm())
		assert.ErrorIs(t, err, errNotSignedIn)
	})

	t.Run("server error keeps cart", func(t *testing.T) {
		f := newFixture(t, models.RoleCustomer, 100)
		f.fill(t)
		f.client.createErr = errors.New("out of stock")

		form := codForm()
		form.UsePoint = true
		_, err := f.svc.Checkout(ctx, form)
		assert.EqualError(t, err, "out of stock")
		assert.Equal(t, 2, f.cart.Len())
		assert.Nil(t, f.sessions.savedPts)
	})

	t.Run("point save failure does not fail the order", func(t *testing.T) {
		f := newFixture(t, models.RoleCustomer, 100)
		f.fill(t)
		f.sessions.saveErr = errors.New("disk full")

		form := codForm()
		form.UsePoint = true
		_, err := f.svc.Checkout(ctx, form)
		require.NoError(t, err)
		assert.Zero(t, f.cart.Len())
	})
}

func TestService_History(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.RoleCustomer, 0)

	orders, err := f.svc.History(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "u-1", f.client.historyUser)
}

func TestService_StaffOperations(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, models.RoleStaff, 0)
	orders, err := f.svc.ByStatus(ctx, models.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, orders[0].Status)
	require.NoError(t, f.svc.Confirm(ctx, "o1"))
	require.NoError(t, f.svc.Complete(ctx, "o1"))
	assert.Equal(t, []string{"status", "confirm:o1", "complete:o1"}, f.client.calls)

	assert.Error(t, f.svc.Confirm(ctx, " "))
	_, err = f.svc.ByStatus(ctx, "")
	assert.Error(t, err)

	customer := newFixture(t, models.RoleCustomer, 0)
	_, err = customer.svc.ByStatus(ctx, models.OrderProcessing)
	assert.ErrorIs(t, err, errForbidden)
	assert.ErrorIs(t, customer.svc.Confirm(ctx, "o1"), errForbidden)
	assert.ErrorIs(t, customer.svc.Complete(ctx, "o1"), errForbidden)
	assert.Empty(t, customer.client.calls)
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.RoleCustomer, 0)

	require.NoError(t, f.svc.Cancel(ctx, "o1", "changed my mind"))
	assert.Equal(t, api.CancelOrderRequest{OrderID: "o1", Reason: "changed my mind"}, *f.client.cancel)

	err := f.svc.Cancel(ctx, "o1", " ")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "reason")
}

func TestService_Comment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.RoleCustomer, 0)

	err := f.svc.Comment(ctx, models.CommentForm{KoiID: "k1", OrderID: "o1", Rating: 5, Content: "Beautiful"})
	require.NoError(t, err)
	assert.Equal(t, api.CommentRequest{KoiID: "k1", UserID: "u-1", OrderID: "o1", Rating: 5, Content: "Beautiful"}, *f.client.comment)

	err = f.svc.Comment(ctx, models.CommentForm{KoiID: "k1", Rating: 9, Content: "x"})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}
