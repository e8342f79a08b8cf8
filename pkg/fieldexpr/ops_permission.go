package fieldexpr

// permissionOps returns the permission group. Identity and roles are read
// from the evaluation context only; nothing identity-shaped ever appears
// in the tree itself. A nil or anonymous user fails every positive check.
func permissionOps() map[string]Operation {
	return map[string]Operation{
		"hasRole": func(args []any, ctx *EvalContext) (any, error) {
			if err := exactArgs("hasRole", args, 1); err != nil {
				return nil, err
			}
			return ctx.HasRole(ToString(args[0])), nil
		},
		"hasAnyRole": func(args []any, ctx *EvalContext) (any, error) {
			if err := minArgs("hasAnyRole", args, 1); err != nil {
				return nil, err
			}
			for _, role := range roleArgs(args) {
				if ctx.HasRole(role) {
					return true, nil
				}
			}
			return false, nil
		},
		"hasAllRoles": func(args []any, ctx *EvalContext) (any, error) {
			if err := minArgs("hasAllRoles", args, 1); err != nil {
				return nil, err
			}
			for _, role := range roleArgs(args) {
				if !ctx.HasRole(role) {
					return false, nil
				}
			}
			return true, nil
		},
		"hasPermission": func(args []any, ctx *EvalContext) (any, error) {
			if err := exactArgs("hasPermission", args, 1); err != nil {
				return nil, err
			}
			return ctx.HasPermission(ToString(args[0])), nil
		},
		"isOwner": func(args []any, ctx *EvalContext) (any, error) {
			if err := exactArgs("isOwner", args, 1); err != nil {
				return nil, err
			}
			if ctx == nil || ctx.User == nil || ctx.User.ID == "" {
				return false, nil
			}
			owner := ResolveField(ctx.Data, ToString(args[0]))
			ownerID, ok := owner.(string)
			if !ok {
				return false, nil
			}
			return ownerID == ctx.User.ID, nil
		},
		"isAuthenticated": func(args []any, ctx *EvalContext) (any, error) {
			if err := exactArgs("isAuthenticated", args, 0); err != nil {
				return nil, err
			}
			return ctx.Authenticated(), nil
		},
		"isAnonymous": func(args []any, ctx *EvalContext) (any, error) {
			if err := exactArgs("isAnonymous", args, 0); err != nil {
				return nil, err
			}
			return !ctx.Authenticated(), nil
		},
	}
}

// roleArgs flattens role arguments: either a single list value or
// variadic strings.
func roleArgs(args []any) []string {
	var roles []string
	for _, a := range args {
		if list, ok := a.([]any); ok {
			for _, item := range list {
				roles = append(roles, ToString(item))
			}
			continue
		}
		roles = append(roles, ToString(a))
	}
	return roles
}
