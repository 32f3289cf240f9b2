package testutil

import (
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

// NewMockDB returns a sqlmock-backed *sql.DB that is closed when the test
// ends.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db, mock
}

type decimalArg struct {
	want decimal.Decimal
}

// DecimalArg matches a decimal query argument by value, so "80" and "80.00"
// compare equal.
func DecimalArg(s string) sqlmock.Argument {
	return decimalArg{want: decimal.RequireFromString(s)}
}

func (a decimalArg) Match(v driver.Value) bool {
	var got decimal.Decimal
	switch x := v.(type) {
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return false
		}
		got = d
	case []byte:
		d, err := decimal.NewFromString(string(x))
		if err != nil {
			return false
		}
		got = d
	case float64:
		got = decimal.NewFromFloat(x)
	case int64:
		got = decimal.NewFromInt(x)
	default:
		return false
	}
	return got.Equal(a.want)
}
