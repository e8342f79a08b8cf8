package fieldexpr

import (
	"fmt"
	"time"
)

// dateOps returns the date group. Operations accept either a time.Time or
// an ISO-8601 string and normalize internally. Anything reading "now"
// goes through the context clock so hosts can pin evaluation time.
func dateOps() map[string]Operation {
	return map[string]Operation{
		"formatDate": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("formatDate", args, 1, 2); err != nil {
				return nil, err
			}
			t, ok := ToTime(args[0])
			if !ok {
				return "", nil
			}
			layout := "2006-01-02"
			if len(args) == 2 {
				layout = ToString(args[1])
			}
			return t.Format(layout), nil
		},
		"timeAgo": func(args []any, ctx *EvalContext) (any, error) {
			if err := rangeArgs("timeAgo", args, 1, 2); err != nil {
				return nil, err
			}
			t, ok := ToTime(args[0])
			if !ok {
				return "", nil
			}
			return humanizeSince(t, fromArg(args, 1, ctx)), nil
		},
		"yearsAgo": func(args []any, ctx *EvalContext) (any, error) {
			if err := rangeArgs("yearsAgo", args, 1, 2); err != nil {
				return nil, err
			}
			t, ok := ToTime(args[0])
			if !ok {
				return nil, fmt.Errorf("%w: yearsAgo needs a date", ErrInvalidArgument)
			}
			return float64(wholeYearsBetween(t, fromArg(args, 1, ctx))), nil
		},
		"monthsAgo": func(args []any, ctx *EvalContext) (any, error) {
			if err := rangeArgs("monthsAgo", args, 1, 2); err != nil {
				return nil, err
			}
			t, ok := ToTime(args[0])
			if !ok {
				return nil, fmt.Errorf("%w: monthsAgo needs a date", ErrInvalidArgument)
			}
			return float64(wholeMonthsBetween(t, fromArg(args, 1, ctx))), nil
		},
		"daysAgo": func(args []any, ctx *EvalContext) (any, error) {
			if err := rangeArgs("daysAgo", args, 1, 2); err != nil {
				return nil, err
			}
			t, ok := ToTime(args[0])
			if !ok {
				return nil, fmt.Errorf("%w: daysAgo needs a date", ErrInvalidArgument)
			}
			return float64(int(fromArg(args, 1, ctx).Sub(t).Hours() / 24)), nil
		},
		"now": func(args []any, ctx *EvalContext) (any, error) {
			if err := exactArgs("now", args, 0); err != nil {
				return nil, err
			}
			return ctx.now(), nil
		},
		"currentYear": func(args []any, ctx *EvalContext) (any, error) {
			if err := exactArgs("currentYear", args, 0); err != nil {
				return nil, err
			}
			return float64(ctx.now().Year()), nil
		},
		"parseDate": func(args []any, _ *EvalContext) (any, error) {
			if err := rangeArgs("parseDate", args, 1, 2); err != nil {
				return nil, err
			}
			if len(args) == 2 {
				t, err := time.Parse(ToString(args[1]), ToString(args[0]))
				if err != nil {
					return nil, fmt.Errorf("%w: parseDate: %v", ErrInvalidArgument, err)
				}
				return t, nil
			}
			t, ok := ToTime(args[0])
			if !ok {
				return nil, fmt.Errorf("%w: parseDate could not interpret %q", ErrInvalidArgument, ToString(args[0]))
			}
			return t, nil
		},
		"isPast": func(args []any, ctx *EvalContext) (any, error) {
			if err := exactArgs("isPast", args, 1); err != nil {
				return nil, err
			}
			t, ok := ToTime(args[0])
			if !ok {
				return false, nil
			}
			return t.Before(ctx.now()), nil
		},
		"isFuture": func(args []any, ctx *EvalContext) (any, error) {
			if err := exactArgs("isFuture", args, 1); err != nil {
				return nil, err
			}
			t, ok := ToTime(args[0])
			if !ok {
				return false, nil
			}
			return t.After(ctx.now()), nil
		},
	}
}

// fromArg returns the optional "from" reference at index i, defaulting to
// the context clock.
func fromArg(args []any, i int, ctx *EvalContext) time.Time {
	if len(args) > i {
		if t, ok := ToTime(args[i]); ok {
			return t
		}
	}
	return ctx.now()
}

// wholeYearsBetween counts full years elapsed from t to ref.
func wholeYearsBetween(t, ref time.Time) int {
	years := ref.Year() - t.Year()
	anniversary := t.AddDate(years, 0, 0)
	if anniversary.After(ref) {
		years--
	}
	return years
}

// wholeMonthsBetween counts full months elapsed from t to ref.
func wholeMonthsBetween(t, ref time.Time) int {
	months := (ref.Year()-t.Year())*12 + int(ref.Month()) - int(t.Month())
	if t.AddDate(0, months, 0).After(ref) {
		months--
	}
	return months
}

// humanizeSince renders the distance between t and ref as a coarse
// human-readable phrase.
func humanizeSince(t, ref time.Time) string {
	d := ref.Sub(t)
	future := d < 0
	if future {
		d = -d
	}

	var phrase string
	switch {
	case d < time.Minute:
		phrase = "moments"
	case d < time.Hour:
		phrase = plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		phrase = plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		phrase = plural(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		phrase = plural(int(d.Hours()/(24*30)), "month")
	default:
		phrase = plural(int(d.Hours()/(24*365)), "year")
	}

	if future {
		return "in " + phrase
	}
	return phrase + " ago"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
