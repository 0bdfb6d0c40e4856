package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *newrelic.Application {
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("payment-service-test"),
		newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)
	t.Cleanup(func() { app.Shutdown(0) })
	return app
}

func TestInitNewRelic_Disabled(t *testing.T) {
	cfg := &models.Config{}
	assert.Nil(t, InitNewRelic(cfg))

	cfg.NewRelic.Enabled = true
	assert.Nil(t, InitNewRelic(cfg), "missing license key keeps the agent off")
}

func TestWithSegment(t *testing.T) {
	t.Run("without transaction", func(t *testing.T) {
		called := false
		err := WithSegment(context.Background(), "reconcile", func() error {
			called = true
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("with transaction", func(t *testing.T) {
		txn := newTestApp(t).StartTransaction("callback")
		defer txn.End()
		ctx := newrelic.NewContext(context.Background(), txn)

		wantErr := errors.New("boom")
		err := WithSegment(ctx, "reconcile", func() error { return wantErr })
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestInstrumentHTTPRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	txn := newTestApp(t).StartTransaction("email")
	defer txn.End()

	for _, ctx := range []context.Context{context.Background(), newrelic.NewContext(context.Background(), txn)} {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL, nil)
		require.NoError(t, err)

		resp, err := InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
			return http.DefaultClient.Do(req)
		})
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	}
}

func TestStartDatastoreSegment(t *testing.T) {
	assert.Nil(t, StartDatastoreSegment(context.Background(), "transactions", "SELECT"))

	txn := newTestApp(t).StartTransaction("callback")
	defer txn.End()
	seg := StartDatastoreSegment(newrelic.NewContext(context.Background(), txn), "transactions", "SELECT")
	require.NotNil(t, seg)
	assert.Equal(t, newrelic.DatastorePostgres, seg.Product)
	seg.End()

	AddTransactionAttribute(nil, "k", "v")
	NoticeTransactionError(nil, errors.New("ignored"))
}
