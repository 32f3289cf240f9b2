package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bizledger/internal/domain"
)

// GenerateOrderNumber builds a number such as SO-20260301-1A2B3C4D for
// orders submitted without one.
func GenerateOrderNumber(kind domain.OrderKind, at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return kind.NumberPrefix() + "-" + at.Format("20060102") + "-" + suffix
}
