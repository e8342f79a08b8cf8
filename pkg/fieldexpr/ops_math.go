package fieldexpr

import "math"

// mathOps returns the math group. All operations coerce their arguments
// to numbers; non-numeric input degrades to NaN rather than erroring.
// Only division and modulo by exactly zero raise.
func mathOps() map[string]Operation {
	return map[string]Operation{
		"add": func(args []any, _ *EvalContext) (any, error) {
			if err := minArgs("add", args, 1); err != nil {
				return nil, err
			}
			total := 0.0
			for _, a := range args {
				total += ToNumber(a)
			}
			return total, nil
		},
		"subtract": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("subtract", args, 2); err != nil {
				return nil, err
			}
			return ToNumber(args[0]) - ToNumber(args[1]), nil
		},
		"multiply": func(args []any, _ *EvalContext) (any, error) {
			if err := minArgs("multiply", args, 1); err != nil {
				return nil, err
			}
			product := 1.0
			for _, a := range args {
				product *= ToNumber(a)
			}
			return product, nil
		},
		"divide": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("divide", args, 2); err != nil {
				return nil, err
			}
			divisor := ToNumber(args[1])
			if divisor == 0 {
				return nil, ErrDivisionByZero
			}
			return ToNumber(args[0]) / divisor, nil
		},
		"mod": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("mod", args, 2); err != nil {
				return nil, err
			}
			divisor := ToNumber(args[1])
			if divisor == 0 {
				return nil, ErrDivisionByZero
			}
			return math.Mod(ToNumber(args[0]), divisor), nil
		},
		"pow": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("pow", args, 2); err != nil {
				return nil, err
			}
			return math.Pow(ToNumber(args[0]), ToNumber(args[1])), nil
		},
		"abs": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("abs", args, 1); err != nil {
				return nil, err
			}
			return math.Abs(ToNumber(args[0])), nil
		},
		"round": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("round", args, 1); err != nil {
				return nil, err
			}
			return math.Round(ToNumber(args[0])), nil
		},
		"floor": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("floor", args, 1); err != nil {
				return nil, err
			}
			return math.Floor(ToNumber(args[0])), nil
		},
		"ceil": func(args []any, _ *EvalContext) (any, error) {
			if err := exactArgs("ceil", args, 1); err != nil {
				return nil, err
			}
			return math.Ceil(ToNumber(args[0])), nil
		},
		"min": func(args []any, _ *EvalContext) (any, error) {
			if err := minArgs("min", args, 1); err != nil {
				return nil, err
			}
			lowest := ToNumber(args[0])
			for _, a := range args[1:] {
				if n := ToNumber(a); n < lowest {
					lowest = n
				}
			}
			return lowest, nil
		},
		"max": func(args []any, _ *EvalContext) (any, error) {
			if err := minArgs("max", args, 1); err != nil {
				return nil, err
			}
			highest := ToNumber(args[0])
			for _, a := range args[1:] {
				if n := ToNumber(a); n > highest {
					highest = n
				}
			}
			return highest, nil
		},
	}
}
