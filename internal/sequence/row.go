package sequence

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// Row is one result row keyed by column name. NULL values are nil.
type Row map[string]any

// Querier executes a single SQL statement and returns all of its rows.
type Querier interface {
	Query(ctx context.Context, sql string) ([]Row, error)
}

// value returns the raw column value with text-protocol bytes as a string.
func (r Row) value(key string) any {
	if b, ok := r[key].([]byte); ok {
		return string(b)
	}
	return r[key]
}

func (r Row) String(key string) string {
	v := r.value(key)
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// Int64 reports ok=false for NULL and for values that are not integers.
func (r Row) Int64(key string) (int64, bool) {
	switch v := r.value(key).(type) {
	case nil, bool:
		return 0, false
	case float32:
		return integral(float64(v))
	case float64:
		return integral(v)
	default:
		n, err := cast.ToInt64E(v)
		return n, err == nil
	}
}

func (r Row) Bool(key string) bool {
	b, err := cast.ToBoolE(r.value(key))
	return err == nil && b
}

func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
