package fieldexpr

// logicalOps returns the logical group. The evaluator short-circuits
// and, or, and if before arguments are evaluated; the entries here
// operate on already-evaluated values and serve direct dispatch and
// load-time validation.
func logicalOps() map[string]Operation {
	return map[string]Operation{
		"and": func(args []any, _ *EvalContext) (any, error) {
			for _, a := range args {
				if !IsTruthy(a) {
					return false, nil
				}
			}
			return true, nil
		},
		"or": func(args []any, _ *EvalContext) (any, error) {
			for _, a := range args {
				if IsTruthy(a) {
					return true, nil
				}
			}
			return false, nil
		},
		"not": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("not", args, 1); err != nil {
				return nil, err
			}
			return !IsTruthy(args[0]), nil
		},
		"if": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("if", args, 2, 3); err != nil {
				return nil, err
			}
			if IsTruthy(args[0]) {
				return args[1], nil
			}
			if len(args) == 3 {
				return args[2], nil
			}
			return nil, nil
		},
		"coalesce": func(args []any, _ *EvalContext) (any, error) {
			for _, a := range args {
				if !IsMissing(a) {
					return a, nil
				}
			}
			return nil, nil
		},
		"exists": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("exists", args, 1); err != nil {
				return nil, err
			}
			return !IsUndefined(args[0]), nil
		},
		"isNull": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("isNull", args, 1); err != nil {
				return nil, err
			}
			return IsMissing(args[0]), nil
		},
		"isEmpty": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("isEmpty", args, 1); err != nil {
				return nil, err
			}
			switch v := args[0].(type) {
			case string:
				return v == "", nil
			case []any:
				return len(v) == 0, nil
			case map[string]any:
				return len(v) == 0, nil
			case nil, undefined:
				return true, nil
			default:
				return false, nil
			}
		},
	}
}
