package market

import "fmt"

// asFloat coerces a DSL-evaluated numeric value to float64. internal/interp's
// Value.ToAny hands back int64 for KindInt and float64 for KindFloat (spec.md
// §9's tagged integer/floating numeric model), so both are accepted here.
func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// asInt truncates a DSL numeric value (int64 or float64, via asFloat) to an
// int, for attributes that are conceptually whole numbers (miners, block
// size).
func asInt(v any) (int, error) {
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
