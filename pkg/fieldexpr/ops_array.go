package fieldexpr

// arrayOps returns the array group. These are field projections over lists
// of map-valued records, not general higher-order functions: map, filter,
// find, some, and every take a field name as a string. Keeping callbacks
// out of the language is what keeps expression trees JSON-serializable.
func arrayOps() map[string]Operation {
	return map[string]Operation{
		"count": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("count", args, 1); err != nil {
				return nil, err
			}
			return float64(len(asList(args[0]))), nil
		},
		"sum": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("sum", args, 1, 2); err != nil {
				return nil, err
			}
			total := 0.0
			for _, item := range projected(args) {
				total += ToNumber(item)
			}
			return total, nil
		},
		"avg": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("avg", args, 1, 2); err != nil {
				return nil, err
			}
			items := projected(args)
			if len(items) == 0 {
				return 0.0, nil
			}
			total := 0.0
			for _, item := range items {
				total += ToNumber(item)
			}
			return total / float64(len(items)), nil
		},
		"first": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("first", args, 1); err != nil {
				return nil, err
			}
			list := asList(args[0])
			if len(list) == 0 {
				return nil, nil
			}
			return list[0], nil
		},
		"last": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("last", args, 1); err != nil {
				return nil, err
			}
			list := asList(args[0])
			if len(list) == 0 {
				return nil, nil
			}
			return list[len(list)-1], nil
		},
		"map": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("map", args, 2); err != nil {
				return nil, err
			}
			field := ToString(args[1])
			list := asList(args[0])
			out := make([]any, len(list))
			for i, item := range list {
				out[i] = fieldOf(item, field)
			}
			return out, nil
		},
		"filter": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("filter", args, 2, 3); err != nil {
				return nil, err
			}
			out := []any{}
			for _, item := range asList(args[0]) {
				if matches(item, args) {
					out = append(out, item)
				}
			}
			return out, nil
		},
		"find": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("find", args, 2, 3); err != nil {
				return nil, err
			}
			for _, item := range asList(args[0]) {
				if matches(item, args) {
					return item, nil
				}
			}
			return nil, nil
		},
		"some": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("some", args, 2, 3); err != nil {
				return nil, err
			}
			for _, item := range asList(args[0]) {
				if matches(item, args) {
					return true, nil
				}
			}
			return false, nil
		},
		"every": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("every", args, 2, 3); err != nil {
				return nil, err
			}
			for _, item := range asList(args[0]) {
				if !matches(item, args) {
					return false, nil
				}
			}
			return true, nil
		},
		"slice": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("slice", args, 2, 3); err != nil {
				return nil, err
			}
			list := asList(args[0])
			start := clampIndex(int(ToNumber(args[1])), len(list))
			end := len(list)
			if len(args) == 3 {
				end = clampIndex(int(ToNumber(args[2])), len(list))
			}
			if start > end {
				return []any{}, nil
			}
			out := make([]any, end-start)
			copy(out, list[start:end])
			return out, nil
		},
		"unique": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("unique", args, 1); err != nil {
				return nil, err
			}
			out := []any{}
			for _, item := range asList(args[0]) {
				seen := false
				for _, kept := range out {
					if Equal(item, kept) {
						seen = true
						break
					}
				}
				if !seen {
					out = append(out, item)
				}
			}
			return out, nil
		},
		"flatten": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("flatten", args, 1); err != nil {
				return nil, err
			}
			out := []any{}
			for _, item := range asList(args[0]) {
				if inner, ok := item.([]any); ok {
					out = append(out, inner...)
					continue
				}
				out = append(out, item)
			}
			return out, nil
		},
	}
}

// asList normalizes the primary operand: lists pass through, missing
// values become empty, anything else is a single-element list.
func asList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case nil, undefined:
		return nil
	default:
		return []any{val}
	}
}

// fieldOf extracts a named field from a record item; non-map items yield
// Undefined.
func fieldOf(item any, field string) any {
	m, ok := item.(map[string]any)
	if !ok {
		return Undefined
	}
	return ResolveField(m, field)
}

// projected returns either the plain numeric list, or the named field
// extracted across an object list when a field argument is present.
func projected(args []any) []any {
	list := asList(args[0])
	if len(args) < 2 {
		return list
	}
	field := ToString(args[1])
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = fieldOf(item, field)
	}
	return out
}

// matches applies the projection predicate: with a comparison value the
// field must equal it, without one the field must be truthy.
func matches(item any, args []any) bool {
	v := fieldOf(item, ToString(args[1]))
	if len(args) == 3 {
		return Equal(v, args[2])
	}
	return IsTruthy(v)
}
