package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStockPolicy(t *testing.T) {
	p, err := ParseStockPolicy("")
	require.NoError(t, err)
	assert.Equal(t, StockPolicyReject, p)

	p, err = ParseStockPolicy(" ALLOW ")
	require.NoError(t, err)
	assert.Equal(t, StockPolicyAllow, p)

	_, err = ParseStockPolicy("clamp")
	assert.Error(t, err)
}

func TestParseOverpaymentPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    OverpaymentPolicy
		wantErr bool
	}{
		{"", OverpaymentReject, false},
		{"reject", OverpaymentReject, false},
		{"clamp", OverpaymentClamp, false},
		{"Allow", OverpaymentAllow, false},
		{"refund", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOverpaymentPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReceivingPolicy(t *testing.T) {
	p, err := ParseReceivingPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ReceivingIdempotent, p)

	p, err = ParseReceivingPolicy("reapply")
	require.NoError(t, err)
	assert.Equal(t, ReceivingReapply, p)

	_, err = ParseReceivingPolicy("twice")
	assert.Error(t, err)
}
