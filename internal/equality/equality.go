// Package equality implements structural value equality with numeric-tower
// coercion and order-independent object comparison. Both compiler back ends
// use it for uniqueness and inclusion checks.
package equality

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	schemac "github.com/schemac/schemac"
)

// MaxDepth bounds the structural walk. Exceeding it reports a DepthError
// instead of overflowing the call stack.
const MaxDepth = 100

type pair struct {
	key string
	val any
}

// Normalize converts a value into its canonical comparison form: maps become
// key-sorted pair lists, sequences normalize element-wise preserving order,
// and every numeric type collapses into an exact rational so 1 and 1.0
// compare equal. Booleans, strings, and nil pass through unchanged, which
// keeps true distinct from 1. depth is the current recursion level.
func Normalize(v any, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, &schemac.DepthError{Limit: MaxDepth}
	}
	switch t := v.(type) {
	case nil, bool, string:
		return t, nil
	case map[string]any:
		pairs := make([]pair, 0, len(t))
		for k, vv := range t {
			nv, err := Normalize(vv, depth+1)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair{key: k, val: nv})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
		return pairs, nil
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			nv, err := Normalize(vv, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		if r, ok := toRat(v); ok {
			return r, nil
		}
		return v, nil
	}
}

// Rat converts a value from the numeric tower into an exact rational. It
// reports false for non-numeric values, including booleans.
func Rat(v any) (*big.Rat, bool) { return toRat(v) }

func toRat(v any) (*big.Rat, bool) {
	r := new(big.Rat)
	switch t := v.(type) {
	case int:
		return r.SetInt64(int64(t)), true
	case int8:
		return r.SetInt64(int64(t)), true
	case int16:
		return r.SetInt64(int64(t)), true
	case int32:
		return r.SetInt64(int64(t)), true
	case int64:
		return r.SetInt64(t), true
	case uint:
		return r.SetUint64(uint64(t)), true
	case uint8:
		return r.SetUint64(uint64(t)), true
	case uint16:
		return r.SetUint64(uint64(t)), true
	case uint32:
		return r.SetUint64(uint64(t)), true
	case uint64:
		return r.SetUint64(t), true
	case float32:
		return r.SetFloat64(float64(t)), true
	case float64:
		return r.SetFloat64(t), true
	case json.Number:
		if _, ok := r.SetString(t.String()); ok {
			return r, true
		}
		if f, err := strconv.ParseFloat(t.String(), 64); err == nil {
			return r.SetFloat64(f), true
		}
		return nil, false
	default:
		return nil, false
	}
}

// Key renders the canonical form of a value into a hashable string. Two
// values are structurally equal iff their keys match.
func Key(v any) (string, error) {
	nv, err := Normalize(v, 0)
	if err != nil {
		return "", err
	}
	b := &strings.Builder{}
	renderKey(b, nv)
	return b.String(), nil
}

func renderKey(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("z")
	case bool:
		if t {
			b.WriteString("b:1")
		} else {
			b.WriteString("b:0")
		}
	case string:
		b.WriteString("s:")
		b.WriteString(strconv.Quote(t))
	case *big.Rat:
		b.WriteString("n:")
		b.WriteString(t.RatString())
	case []pair:
		b.WriteString("{")
		for _, p := range t {
			b.WriteString(strconv.Quote(p.key))
			b.WriteString("=")
			renderKey(b, p.val)
			b.WriteString(";")
		}
		b.WriteString("}")
	case []any:
		b.WriteString("[")
		for _, e := range t {
			renderKey(b, e)
			b.WriteString(",")
		}
		b.WriteString("]")
	default:
		// Non-JSON values fall back to their Go representation.
		fmt.Fprintf(b, "g:%T:%v", t, t)
	}
}

// Equal reports structural equality between two values.
func Equal(a, b any) (bool, error) {
	ka, err := Key(a)
	if err != nil {
		return false, err
	}
	kb, err := Key(b)
	if err != nil {
		return false, err
	}
	return ka == kb, nil
}

// HasDuplicates reports whether the list contains two structurally equal
// elements. It is O(n) over a set of canonical keys and exits on the first
// collision.
func HasDuplicates(list []any) (bool, error) {
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		k, err := Key(v)
		if err != nil {
			return false, err
		}
		if _, dup := seen[k]; dup {
			return true, nil
		}
		seen[k] = struct{}{}
	}
	return false, nil
}
