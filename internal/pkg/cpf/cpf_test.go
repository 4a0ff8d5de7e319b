package cpf

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid bare", input: "31286578078", want: true},
		{name: "valid with dots and dash", input: "312.865.780-78", want: true},
		{name: "valid with dots only", input: "312.865.780.78", want: true},
		{name: "valid with slash", input: "312/865-780-78", want: true},
		{name: "wrong check digits", input: "31286555078", want: false},
		{name: "empty", input: "", want: false},
		{name: "too short", input: "3128657807", want: false},
		{name: "too long", input: "312865780781", want: false},
		{name: "letters", input: "3128657807a", want: false},
		{name: "another valid bare", input: "52998224725", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.input, DefaultSeparators))
		})
	}
}

func TestIsValid_RepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		s := strings.Repeat(string(d), Length)
		assert.False(t, IsValid(s, DefaultSeparators), s)
	}
}

func TestIsValid_WithoutSeparatorsAllowed(t *testing.T) {
	assert.False(t, IsValid("312.865.780-78", ""))
	assert.True(t, IsValid("312 865 780 78", " "))
	assert.False(t, IsValid("312.865.780-78", " "))
}

func TestIsBare(t *testing.T) {
	assert.True(t, IsBare("31286578078"))
	assert.True(t, IsBare("31286555078"))
	assert.False(t, IsBare("312.865.780-78"))
	assert.False(t, IsBare("312-865-780-78"))
	assert.False(t, IsBare(""))
	assert.False(t, IsBare("３１２８６５７８０７８"))
}

func TestGenerate(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 500; i++ {
		s := Generate(r)
		assert.True(t, IsBare(s), s)
		assert.True(t, IsValid(s, ""), s)
	}
}

func TestCheckDigitMutation(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 100; i++ {
		s := []byte(Generate(r))
		s[10] = byte('0' + (int(s[10]-'0')+1)%10)
		assert.False(t, IsValid(string(s), ""), string(s))
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "312.865.780-78", Format("31286578078"))
	assert.Equal(t, "abc", Format("abc"))
}
