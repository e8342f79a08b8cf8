/*
Package fieldexpr is a deterministic, side-effect-free interpreter for a
small JSON-encoded expression language. Hosts use it to compute derived
field values, decide visibility and enablement of UI elements, and
authorize field- or row-level access without generating or executing
arbitrary code.

# Expression Grammar

Expressions arrive as structured data (there is no text syntax):

	<expr> := {"type":"literal", "value": <json>}
	        | {"type":"field", "path": "a.b.c"}
	        | {"type":"operation", "op": <name>, "args": [<expr>...]}
	        | {"type":"condition", "op": eq|ne|gt|gte|lt|lte|in,
	           "left": <expr>, "right": <expr>}
	        | {"type":"permission", "check": <name>, "args": [<json>...]}

Values are null, booleans, numbers (float64), strings, dates, lists, and
string-keyed maps. There are no function values, which keeps trees
serializable and safe to store as configuration.

# Evaluation

An external caller builds an EvalContext (record data, user identity,
route params, globals) and calls Evaluate:

	result, err := fieldexpr.Evaluate(
	    fieldexpr.Op("add", fieldexpr.Literal(5.0), fieldexpr.Field("score")),
	    &fieldexpr.EvalContext{Data: map[string]any{"score": 3.0}},
	)

Evaluation is a bounded depth-first walk: field nodes go through the
dot-path resolver, operation and permission nodes through the operation
registry. and, or, and if short-circuit; all other operations evaluate
their arguments eagerly, left to right.

Missing data degrades instead of erroring: an absent key resolves to
Undefined, an explicit null stays null, and string/math operations coerce
their operands. Only unknown names and division by zero fail a call.

# Extension

Hosts add domain operations per evaluator:

	ev := fieldexpr.New(
	    fieldexpr.WithOperation("slugify", mySlugify),
	)

Validate checks a whole tree against the registry at load time so unknown
names surface before the first evaluation.

# Concurrency

Evaluation is synchronous and CPU-bound. The operation table is read-only
after construction, so one Evaluator may serve any number of concurrent
calls; each call's EvalContext must simply not be mutated by its owner
while the call is in flight.
*/
package fieldexpr
