package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
)

// Largest magnitude a JSON number carries as an exact integer.
const maxExactInt = 1 << 53

// numberArg accepts only finite values.
func numberArg(args map[string]any, key string) (float64, error) {
	f, err := rawNumberArg(args, key)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number, got %v", contractx.ErrInvalidArgument, key, f)
	}
	return f, nil
}

func rawNumberArg(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: %s is required", contractx.ErrInvalidArgument, key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a number", contractx.ErrInvalidArgument, key)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a number, got %q", contractx.ErrInvalidArgument, key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", contractx.ErrInvalidArgument, key, raw)
	}
}

func intArg(args map[string]any, key string) (int, error) {
	f, err := numberArg(args, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", contractx.ErrInvalidArgument, key, f)
	}
	if math.Abs(f) > maxExactInt {
		return 0, fmt.Errorf("%w: %s is out of range, got %v", contractx.ErrInvalidArgument, key, f)
	}
	return int(f), nil
}

// boolArg returns def when the key is absent.
func boolArg(args map[string]any, key string, def bool) (bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("%w: %s must be a boolean, got %q", contractx.ErrInvalidArgument, key, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", contractx.ErrInvalidArgument, key, raw)
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%w: %s is required", contractx.ErrInvalidArgument, key)
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", contractx.ErrInvalidArgument, key, raw)
	}
	return v, nil
}
