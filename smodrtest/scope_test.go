package smodrtest

import "testing"

func TestScope(t *testing.T) {
	tests := TestSuite{
		{"assignment is local", TestSequence{
			{"x = 1", "1", ""},
			{"DEFINE set() { x = 2 RETURN x }", "nil", ""},
			{"set()", "2", ""},
			{"x", "1", ""},
		}},
		{"globals are visible", TestSequence{
			{"x = 1", "1", ""},
			{"DEFINE get() { RETURN x }", "nil", ""},
			{"get()", "1", ""},
			{"x = 10", "10", ""},
			{"get()", "10", ""},
		}},
		{"parameters shadow globals", TestSequence{
			{"n = 'global'", `"global"`, ""},
			{"DEFINE f(n) { RETURN n }", "nil", ""},
			{"f(3)", "3", ""},
			{"n", `"global"`, ""},
		}},
		{"locals do not leak", TestSequence{
			{"DEFINE f(a) { b = a * 2 RETURN b }", "nil", ""},
			{"f(2)", "4", ""},
			{"b", "undefined-variable: undefined variable: b", ""},
			{"a", "undefined-variable: undefined variable: a", ""},
		}},
		{"blocks share the enclosing scope", TestSequence{
			{"IF 1 { y = 3 }", "nil", ""},
			{"y", "3", ""},
			{"i = 0\nWHILE i < 2 DO i = i + 1 z = i END", "nil", ""},
			{"z", "2", ""},
		}},
		{"closures", TestSequence{
			{`
DEFINE make_adder(n) {
	DEFINE add(x) { RETURN x + n }
	RETURN add
}`, "nil", ""},
			{"add5 = make_adder(5)", "<function add>", ""},
			{"add7 = make_adder(7)", "<function add>", ""},
			{"add5(3)", "8", ""},
			{"add7(3)", "10", ""},
			{"add5 == add7", "0", ""},
			{"add", "undefined-variable: undefined variable: add", ""},
		}},
		{"nested function sees its own locals", TestSequence{
			{`
DEFINE outer() {
	v = 'outer'
	DEFINE inner() { RETURN v }
	v = 'changed'
	RETURN inner()
}`, "nil", ""},
			{"outer()", `"changed"`, ""},
		}},
		{"recursive activations are independent", TestSequence{
			{`
DEFINE depth(n) {
	IF n == 0 { RETURN 0 }
	inner = depth(n - 1)
	RETURN n + inner
}`, "nil", ""},
			{"depth(4)", "10", ""},
		}},
	}
	RunTestSuite(t, tests)
}
