package fieldexpr

import "strings"

// comparisonOps returns the comparison group. These back the dedicated
// condition node and are also reachable as plain operations; between is
// only an operation since conditions are strictly binary.
func comparisonOps() map[string]Operation {
	return map[string]Operation{
		"eq": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("eq", args, 2); err != nil {
				return nil, err
			}
			return Equal(args[0], args[1]), nil
		},
		"ne": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("ne", args, 2); err != nil {
				return nil, err
			}
			return !Equal(args[0], args[1]), nil
		},
		"gt": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("gt", args, 2); err != nil {
				return nil, err
			}
			return Compare(args[0], args[1]) > 0, nil
		},
		"gte": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("gte", args, 2); err != nil {
				return nil, err
			}
			return Compare(args[0], args[1]) >= 0, nil
		},
		"lt": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("lt", args, 2); err != nil {
				return nil, err
			}
			return Compare(args[0], args[1]) < 0, nil
		},
		"lte": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("lte", args, 2); err != nil {
				return nil, err
			}
			return Compare(args[0], args[1]) <= 0, nil
		},
		"in": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("in", args, 2); err != nil {
				return nil, err
			}
			switch container := args[1].(type) {
			case []any:
				for _, item := range container {
					if Equal(args[0], item) {
						return true, nil
					}
				}
				return false, nil
			case string:
				return strings.Contains(container, ToString(args[0])), nil
			default:
				return false, nil
			}
		},
		"between": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("between", args, 3); err != nil {
				return nil, err
			}
			return Compare(args[0], args[1]) >= 0 && Compare(args[0], args[2]) <= 0, nil
		},
	}
}
