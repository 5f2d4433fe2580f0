package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	t.Run("Success_CreateBusinessMetrics", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)
	})
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulOperation", func(t *testing.T) {
		// Should not panic
		bm.RecordOperation(context.Background(), "finance", "account_list", "success")
	})

	t.Run("Success_RecordFailedOperation", func(t *testing.T) {
		// Should not panic
		bm.RecordOperation(context.Background(), "finance", "account_list", "error")
	})

	t.Run("Success_RecordMultipleDomains", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "finance", "transaction_create", "success")
		bm.RecordOperation(context.Background(), "keys", "key_import", "success")
		bm.RecordOperation(context.Background(), "keys", "key_export", "error")
	})
}

func TestBusinessMetrics_RecordDecryptFailure(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	t.Run("Success_RecordPerKind", func(t *testing.T) {
		// Should not panic
		bm.RecordDecryptFailure(context.Background(), "account")
		bm.RecordDecryptFailure(context.Background(), "transaction")
		bm.RecordDecryptFailure(context.Background(), "pool")
		bm.RecordDecryptFailure(context.Background(), "allocation")
	})
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.NotNil(t, noOpMetrics)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	t.Run("NoOp_RecordOperationDoesNotPanic", func(t *testing.T) {
		// Should not panic or do anything
		noOpMetrics.RecordOperation(context.Background(), "finance", "account_list", "success")
		noOpMetrics.RecordOperation(context.Background(), "keys", "key_import", "error")
	})

	t.Run("NoOp_RecordDurationDoesNotPanic", func(t *testing.T) {
		// Should not panic or do anything
		noOpMetrics.RecordDuration(
			context.Background(),
			"finance",
			"account_list",
			100*time.Millisecond,
			"success",
		)
		noOpMetrics.RecordDecryptFailure(context.Background(), "account")
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordOperation(ctx, "finance", "account_list", "success")
	bm.RecordOperation(ctx, "finance", "account_list", "success")
	bm.RecordOperation(ctx, "finance", "account_list", "error")
	bm.RecordOperation(ctx, "keys", "key_import", "success")

	bm.RecordDuration(ctx, "finance", "account_list", 50*time.Millisecond, "success")
	bm.RecordDuration(ctx, "finance", "account_list", 60*time.Millisecond, "success")

	bm.RecordDecryptFailure(ctx, "account")
	bm.RecordDecryptFailure(ctx, "account")
	bm.RecordDecryptFailure(ctx, "transaction")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	output := w.Body.String()

	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="finance".*operation="account_list".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="finance".*operation="account_list".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="finance".*operation="account_list".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_decrypt_failures_total`,
		`kind="account"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_decrypt_failures_total`,
		`kind="transaction"`,
		`1`,
	)
}
