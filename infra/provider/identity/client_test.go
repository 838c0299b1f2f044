package identity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.Identity{BaseURL: srv.URL + "/customers/", Timeout: timeout}, slog.Default())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, body)
}

func TestFetchCustomer_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/c-42", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"code":"200.00.000","message":"SUCCESS","data":{
			"customerId":"c-42","firstName":"Marianela","lastName":"Montalvo","identification":"1719876543","status":"ACTIVE"}}`)
	}, time.Second)

	got, err := client.FetchCustomer(context.Background(), "c-42")
	require.NoError(t, err)
	assert.Equal(t, "c-42", got.CustomerID)
	assert.Equal(t, "Marianela", got.FirstName)
	assert.Equal(t, "1719876543", got.Identification)
}

func TestFetchCustomer_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found code", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"code":"404.01.000","message":"CUSTOMER_NOT_FOUND"}`)
		}},
		{"success code without data", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `{"code":"200.00.000","message":"SUCCESS"}`)
		}},
		{"undecodable data", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `{"code":"200.00.000","data":"not-an-object"}`)
		}},
		{"server error text", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}},
		{"timeout", func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(300 * time.Millisecond)
			writeJSON(w, http.StatusOK, `{"code":"200.00.000","data":{"customerId":"c-42"}}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler, 100*time.Millisecond)
			got, err := client.FetchCustomer(context.Background(), "c-42")
			assert.Nil(t, got)
			require.ErrorIs(t, err, domain.ErrIntegration)
		})
	}
}

func TestFetchCustomer_CalledOnce(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		writeJSON(w, http.StatusInternalServerError, `{"code":"500.00.000","message":"DEFAULT_ERROR"}`)
	}, time.Second)

	_, err := client.FetchCustomer(context.Background(), "c-42")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
