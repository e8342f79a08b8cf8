package fieldexpr

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParse_OperationTree(t *testing.T) {
	doc := `{
		"type": "operation",
		"op": "multiply",
		"args": [
			{"type": "operation", "op": "add", "args": [
				{"type": "literal", "value": 5},
				{"type": "literal", "value": 3}
			]},
			{"type": "literal", "value": 2}
		]
	}`

	expr, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got, err := Evaluate(expr, &EvalContext{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != 16.0 {
		t.Errorf("parsed tree evaluated to %v, want 16", got)
	}
}

func TestParse_ConditionAndPermission(t *testing.T) {
	doc := `{
		"type": "condition",
		"op": "eq",
		"left": {"type": "field", "path": "status"},
		"right": {"type": "literal", "value": "published"}
	}`
	expr, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse condition: %v", err)
	}
	got, err := Evaluate(expr, &EvalContext{Data: map[string]any{"status": "published"}})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != true {
		t.Errorf("condition = %v, want true", got)
	}

	doc = `{"type": "permission", "check": "hasRole", "args": ["admin"]}`
	expr, err = Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse permission: %v", err)
	}
	got, err = Evaluate(expr, &EvalContext{User: &User{ID: "u1", Roles: []string{"admin"}}})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != true {
		t.Errorf("permission = %v, want true", got)
	}
}

func TestExpression_JSONRoundTrip(t *testing.T) {
	trees := []*Expression{
		Literal(false),
		Literal(0.0),
		Literal(nil),
		Literal("text"),
		Field("a.b.c"),
		Op("add", Literal(1.0), Field("n")),
		Cond(CondIn, Literal(3.0), Literal([]any{1.0, 2.0, 3.0})),
		Permission("hasAllRoles", []any{"admin", "user"}),
		Op("if",
			Cond(CondGte, Field("age"), Literal(18.0)),
			Literal("adult"),
			Literal("minor"),
		),
	}

	for _, tree := range trees {
		data, err := json.Marshal(tree)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		back, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse(%s): %v", data, err)
		}
		again, err := json.Marshal(back)
		if err != nil {
			t.Fatalf("re-Marshal: %v", err)
		}
		if string(data) != string(again) {
			t.Errorf("round trip changed encoding:\n first: %s\nsecond: %s", data, again)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing type", `{"op": "add"}`},
		{"unknown type", `{"type": "lambda"}`},
		{"field without path", `{"type": "field"}`},
		{"operation without op", `{"type": "operation", "args": []}`},
		{"condition with bad op", `{"type": "condition", "op": "like", "left": {"type":"literal","value":1}, "right": {"type":"literal","value":1}}`},
		{"condition missing right", `{"type": "condition", "op": "eq", "left": {"type":"literal","value":1}}`},
		{"permission without check", `{"type": "permission", "args": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidExpression) {
				t.Errorf("Parse(%s) error = %v, want ErrInvalidExpression", tt.doc, err)
			}
		})
	}
}
