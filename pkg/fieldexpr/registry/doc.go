// Package registry provides the thread-safe name-indexed table behind the
// evaluator's operation dispatch.
//
// The table is generic over key and value so the evaluator can instantiate
// it for its operation functions without this package importing the value
// model:
//
//	ops := registry.New[string, fieldexpr.Operation]()
//	ops.RegisterMany(builtins)
//
//	fn, ok := ops.Get("add")
//	if !ok {
//	    // unknown operation
//	}
//
// Registration is strictly explicit: an existing name is only replaced by
// another Register call for the same key. Evaluation never writes to the
// table, so concurrent Evaluate calls need no coordination beyond the
// internal RWMutex.
package registry
