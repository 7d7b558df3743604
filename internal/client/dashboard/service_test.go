package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/koishop/internal/client/api"
	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/models"
)

var errForbidden = errors.New("forbidden")

type roleAuthorizer struct {
	role string
}

func (a roleAuthorizer) RequireRole(ctx context.Context, roles ...string) (*storage.Session, error) {
	for _, r := range roles {
		if r == a.role {
			return &storage.Session{UserID: "admin-1", Role: a.role}, nil
		}
	}
	return nil, errForbidden
}

func newTestServer(t *testing.T, queries *[]url.Values) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*queries = append(*queries, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/dashboard/daily":
			_, _ = w.Write([]byte(`{"status":"success","data":[
				{"date":"2026-10-01","revenue":"1500000","orders":2},
				{"date":"2026-10-02","revenue":"250000.5","orders":1}
			]}`))
		case "/dashboard/month":
			_, _ = w.Write([]byte(`{"status":"success","data":[{"month":1,"revenue":"9000000"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestService_Daily(t *testing.T) {
	ctx := context.Background()
	var queries []url.Values
	server := newTestServer(t, &queries)
	svc := NewService(api.NewClient(server.URL, nil), roleAuthorizer{role: models.RoleAdmin})

	start := time.Date(2026, 10, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)

	report, err := svc.Daily(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, report.Buckets, 2)
	assert.Equal(t, "2026-10-01", report.Buckets[0].Date)
	assert.Equal(t, "1750000.5", report.Total.String())

	require.Len(t, queries, 1)
	assert.Equal(t, "2026-10-01", queries[0].Get("startTime"))
	assert.Equal(t, "2026-10-02", queries[0].Get("endTime"))

	_, err = svc.Daily(ctx, end, start)
	assert.Error(t, err)
	assert.Len(t, queries, 1, "invalid range is rejected locally")
}

func TestService_Monthly(t *testing.T) {
	ctx := context.Background()
	var queries []url.Values
	server := newTestServer(t, &queries)
	svc := NewService(api.NewClient(server.URL, nil), roleAuthorizer{role: models.RoleAdmin})

	report, err := svc.Monthly(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Buckets[0].Month)
	assert.Equal(t, "9000000", report.Total.String())
	assert.Equal(t, "2026", queries[0].Get("year"))

	_, err = svc.Monthly(ctx, 0)
	assert.Error(t, err)
}

func TestService_AdminOnly(t *testing.T) {
	ctx := context.Background()
	var queries []url.Values
	server := newTestServer(t, &queries)

	for _, role := range []string{models.RoleStaff, models.RoleCustomer} {
		svc := NewService(api.NewClient(server.URL, nil), roleAuthorizer{role: role})

		_, err := svc.Daily(ctx, time.Now(), time.Now())
		assert.ErrorIs(t, err, errForbidden, role)

		_, err = svc.Monthly(ctx, 2026)
		assert.ErrorIs(t, err, errForbidden, role)
	}
	assert.Empty(t, queries)
}

func TestService_EmptyReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":[]}`))
	}))
	defer server.Close()

	svc := NewService(api.NewClient(server.URL, nil), roleAuthorizer{role: models.RoleAdmin})
	report, err := svc.Monthly(context.Background(), 2026)
	require.NoError(t, err)
	assert.Empty(t, report.Buckets)
	assert.True(t, report.Total.IsZero())
}
