package fieldexpr

import (
	"strings"
	"unicode"
)

// stringOps returns the string group. Every operation stringifies its
// primary operand null-safely first, so nil and Undefined behave as the
// empty string.
func stringOps() map[string]Operation {
	return map[string]Operation{
		"concat": func(args []any, _ *EvalContext) (any, error) {
			var b strings.Builder
			for _, a := range args {
				b.WriteString(ToString(a))
			}
			return b.String(), nil
		},
		"upper": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("upper", args, 1); err != nil {
				return nil, err
			}
			return strings.ToUpper(ToString(args[0])), nil
		},
		"lower": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("lower", args, 1); err != nil {
				return nil, err
			}
			return strings.ToLower(ToString(args[0])), nil
		},
		"capitalize": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("capitalize", args, 1); err != nil {
				return nil, err
			}
			s := ToString(args[0])
			if s == "" {
				return "", nil
			}
			runes := []rune(s)
			runes[0] = unicode.ToUpper(runes[0])
			return string(runes), nil
		},
		"trim": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("trim", args, 1); err != nil {
				return nil, err
			}
			return strings.TrimSpace(ToString(args[0])), nil
		},
		"substring": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("substring", args, 2, 3); err != nil {
				return nil, err
			}
			runes := []rune(ToString(args[0]))
			start := clampIndex(int(ToNumber(args[1])), len(runes))
			end := len(runes)
			if len(args) == 3 {
				end = clampIndex(int(ToNumber(args[2])), len(runes))
			}
			if start > end {
				return "", nil
			}
			return string(runes[start:end]), nil
		},
		"replace": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("replace", args, 3); err != nil {
				return nil, err
			}
			return strings.ReplaceAll(ToString(args[0]), ToString(args[1]), ToString(args[2])), nil
		},
		"split": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("split", args, 2); err != nil {
				return nil, err
			}
			parts := strings.Split(ToString(args[0]), ToString(args[1]))
			out := make([]any, len(parts))
			for i, p := range parts {
				out[i] = p
			}
			return out, nil
		},
		"join": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("join", args, 2); err != nil {
				return nil, err
			}
			list, ok := args[0].([]any)
			if !ok {
				return ToString(args[0]), nil
			}
			parts := make([]string, len(list))
			for i, item := range list {
				parts[i] = ToString(item)
			}
			return strings.Join(parts, ToString(args[1])), nil
		},
		"contains": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("contains", args, 2); err != nil {
				return nil, err
			}
			return strings.Contains(ToString(args[0]), ToString(args[1])), nil
		},
		"startsWith": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("startsWith", args, 2); err != nil {
				return nil, err
			}
			return strings.HasPrefix(ToString(args[0]), ToString(args[1])), nil
		},
		"endsWith": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("endsWith", args, 2); err != nil {
				return nil, err
			}
			return strings.HasSuffix(ToString(args[0]), ToString(args[1])), nil
		},
		"length": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("length", args, 1); err != nil {
				return nil, err
			}
			if list, ok := args[0].([]any); ok {
				return float64(len(list)), nil
			}
			return float64(len([]rune(ToString(args[0])))), nil
		},
	}
}

// clampIndex bounds i to [0, max], counting negative indexes from the end.
func clampIndex(i, max int) int {
	if i < 0 {
		i = max + i
	}
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
