package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizledger/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.Ledger.TxTimeout)
	assert.Equal(t, 1, cfg.Ledger.MaxRetryAttempts)
	assert.Equal(t, "@every 1h", cfg.Reconcile.Schedule)

	policies, err := cfg.Policies()
	require.NoError(t, err)
	assert.Equal(t, domain.StockPolicyReject, policies.Stock)
	assert.Equal(t, domain.OverpaymentReject, policies.Overpayment)
	assert.Equal(t, domain.ReceivingIdempotent, policies.Receiving)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LEDGER_TX_TIMEOUT", "2s")
	t.Setenv("LEDGER_OVERPAYMENT_POLICY", "clamp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2*time.Second, cfg.Ledger.TxTimeout)

	policies, err := cfg.Policies()
	require.NoError(t, err)
	assert.Equal(t, domain.OverpaymentClamp, policies.Overpayment)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("LEDGER_TX_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cfg.Ledger.ReceivingPolicy = "twice"
	assert.Error(t, cfg.Validate())

	cfg.Ledger.ReceivingPolicy = "reject"
	cfg.Ledger.MaxRetryAttempts = 0
	assert.Error(t, cfg.Validate())
}
