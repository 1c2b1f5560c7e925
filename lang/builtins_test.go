package lang

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins_registry(t *testing.T) {
	r := NewBuiltins()
	assert.Equal(t, []string{"float", "input", "int", "print", "str"}, r.Names())
	assert.NotNil(t, r.Get("print"))
	assert.Nil(t, r.Get("len"))

	err := r.Register(&Builtin{Name: "len", MinArgs: 1, MaxArgs: 1, Fun: builtinStr})
	require.NoError(t, err)
	assert.NotNil(t, r.Get("len"))

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&Builtin{Name: "x"}))
	assert.Error(t, r.Register(&Builtin{Name: "x", MinArgs: 2, MaxArgs: 1, Fun: builtinStr}))

	// registering into one registry does not change the defaults
	assert.Nil(t, NewBuiltins().Get("len"))

	only := NewBuiltins(&Builtin{Name: "one", MaxArgs: VarArgs, Fun: builtinPrint})
	assert.Equal(t, []string{"one"}, only.Names())
}

func TestBuiltin_checkArity(t *testing.T) {
	b := &Builtin{Name: "b", MinArgs: 1, MaxArgs: 2}
	_, ok := b.checkArity(1)
	assert.True(t, ok)
	_, ok = b.checkArity(2)
	assert.True(t, ok)
	expected, ok := b.checkArity(0)
	assert.False(t, ok)
	assert.Equal(t, 1, expected)
	expected, ok = b.checkArity(3)
	assert.False(t, ok)
	assert.Equal(t, 2, expected)

	v := &Builtin{Name: "v", MaxArgs: VarArgs}
	_, ok = v.checkArity(100)
	assert.True(t, ok)
}

func TestBuiltins_direct(t *testing.T) {
	var out bytes.Buffer
	in, err := New(WithStdout(&out), WithStdin(NewLineReader(strings.NewReader("line one\r\n"))))
	require.NoError(t, err)

	v, err := builtinPrint(in, []Value{Number(1), String("two"), Nil()})
	require.NoError(t, err)
	assert.True(t, v.IsNil())
	assert.Equal(t, "1 two nil\n", out.String())

	out.Reset()
	v, err = builtinInput(in, []Value{String("> ")})
	require.NoError(t, err)
	assert.Equal(t, String("line one"), v)
	assert.Equal(t, "> ", out.String())

	v, err = builtinInput(in, nil)
	require.NoError(t, err)
	assert.True(t, v.IsNil())

	v, err = builtinInt(in, []Value{String("12")})
	require.NoError(t, err)
	assert.Equal(t, Number(12), v)

	_, err = builtinInt(in, []Value{String("1.5")})
	if assert.Error(t, err) {
		assert.True(t, IsKind(err, TypeConversionError))
	}

	v, err = builtinFloat(in, []Value{String("1.5")})
	require.NoError(t, err)
	assert.Equal(t, Number(1.5), v)

	v, err = builtinStr(in, []Value{Number(0.5)})
	require.NoError(t, err)
	assert.Equal(t, String("0.5"), v)
}

func TestNewLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("a\nb\r\n\nc"))
	for _, expect := range []string{"a", "b", "", "c"} {
		line, err := r.Readline()
		require.NoError(t, err)
		assert.Equal(t, expect, line)
	}
	_, err := r.Readline()
	assert.Error(t, err)
}

type promptReader struct {
	prompts []string
}

func (r *promptReader) Readline() (string, error) {
	return "plain", nil
}

func (r *promptReader) ReadlinePrompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return "prompted", nil
}

func TestBuiltinInput_promptReader(t *testing.T) {
	var out bytes.Buffer
	r := &promptReader{}
	in, err := New(WithStdout(&out), WithStdin(r))
	require.NoError(t, err)
	v, err := in.EvalString("test", "input('name? ')")
	require.NoError(t, err)
	assert.Equal(t, String("prompted"), v)
	v, err = in.EvalString("test", "input()")
	require.NoError(t, err)
	assert.Equal(t, String("plain"), v)
	assert.Equal(t, []string{"name? "}, r.prompts)
	assert.Equal(t, "", out.String())
}
