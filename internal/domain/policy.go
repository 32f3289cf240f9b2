package domain

import (
	"fmt"
	"strings"
)

// StockPolicy decides whether a sales order may drive stock below zero.
type StockPolicy string

const (
	StockPolicyReject StockPolicy = "reject"
	StockPolicyAllow  StockPolicy = "allow"
)

// OverpaymentPolicy decides what happens to a payment larger than the
// outstanding invoice balance.
type OverpaymentPolicy string

const (
	OverpaymentReject OverpaymentPolicy = "reject"
	OverpaymentClamp  OverpaymentPolicy = "clamp"
	OverpaymentAllow  OverpaymentPolicy = "allow"
)

// ReceivingPolicy decides what happens when an already received purchase
// order is received again.
type ReceivingPolicy string

const (
	ReceivingIdempotent ReceivingPolicy = "idempotent"
	ReceivingReject     ReceivingPolicy = "reject"
	ReceivingReapply    ReceivingPolicy = "reapply"
)

func ParseStockPolicy(s string) (StockPolicy, error) {
	switch p := StockPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case StockPolicyReject, StockPolicyAllow:
		return p, nil
	case "":
		return StockPolicyReject, nil
	default:
		return "", fmt.Errorf("unknown stock policy %q", s)
	}
}

func ParseOverpaymentPolicy(s string) (OverpaymentPolicy, error) {
	switch p := OverpaymentPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case OverpaymentReject, OverpaymentClamp, OverpaymentAllow:
		return p, nil
	case "":
		return OverpaymentReject, nil
	default:
		return "", fmt.Errorf("unknown overpayment policy %q", s)
	}
}

func ParseReceivingPolicy(s string) (ReceivingPolicy, error) {
	switch p := ReceivingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ReceivingIdempotent, ReceivingReject, ReceivingReapply:
		return p, nil
	case "":
		return ReceivingIdempotent, nil
	default:
		return "", fmt.Errorf("unknown receiving policy %q", s)
	}
}
