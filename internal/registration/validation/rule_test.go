package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValidator_Evaluate(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	always := func(msg string, ok bool) Rule {
		return Rule{Message: msg, Check: func(string) bool { return ok }}
	}

	fv := FieldValidator{Rules: []Rule{
		always("a", false),
		always("b", true),
		always("c", false),
		{Message: "d", OmitEmpty: true, Check: func(string) bool { return false }},
	}}

	assert.Equal(t, []string{"a", "c"}, fv.Evaluate(""))
	assert.Equal(t, []string{"a", "c", "d"}, fv.Evaluate("x"))
	assert.Nil(t, FieldValidator{Rules: []Rule{Required(c)}}.Evaluate("x"))
}

func TestRules(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		rule  Rule
		value string
		fails bool
		msg   string
	}{
		{name: "min ok", rule: MinLength(c, 3), value: "abc"},
		{name: "min fail", rule: MinLength(c, 3), value: "ab", fails: true, msg: "Deve ter no minimo 3 caracteres"},
		{name: "min runes", rule: MinLength(c, 3), value: "ção"},
		{name: "max fail", rule: MaxLength(c, 2), value: "abc", fails: true, msg: "Deve ter no maximo 2 caracteres"},
		{name: "required whitespace", rule: Required(c), value: " "},
		{name: "required empty", rule: Required(c), value: "", fails: true, msg: "Campo deve ser preenchido"},
		{name: "format bare", rule: CPFFormat(c), value: validCPF},
		{name: "format short", rule: CPFFormat(c), value: "3128657807", fails: true, msg: "Está no formato inválido"},
		{name: "checksum stripped", rule: CPFChecksum(c, ".-"), value: "312.865.780-78"},
		{name: "checksum letters", rule: CPFChecksum(c, ".-"), value: "3128657807a", fails: true, msg: "CPF inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, failed := tt.rule.Evaluate(tt.value)
			assert.Equal(t, tt.fails, failed)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestCatalog_UnknownKey(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	assert.Equal(t, "nope", c.Text(MessageKey("nope")))
	assert.Equal(t, "CPF já existe", c.Text(MsgCPFExists))
}

func TestErrorMap(t *testing.T) {
	m := NewErrorMap()
	m.Add("cpf", "x")
	m.Add("nome")
	m.Add("nome", "a", "b")
	m.Add("cpf", "y")

	assert.Equal(t, 2, m.Len())
	assert.False(t, m.Has("email"))
	assert.Equal(t, []string{"x", "y"}, m.Get("cpf"))

	body, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"nome":["a","b"],"cpf":["x","y"]}`, string(body))

	got := m.Get("nome")
	got[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, m.Get("nome"))
}
