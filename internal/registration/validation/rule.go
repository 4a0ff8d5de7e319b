package validation

import (
	"strconv"
	"unicode/utf8"

	"github.com/shandysiswandi/gocadastro/internal/pkg/cpf"
	"github.com/shandysiswandi/gocadastro/internal/pkg/validator"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
)

// Rule is a pure predicate over one field value. Check reports whether value
// passes; Message is the failure text.
type Rule struct {
	Name    string
	Message string
	Check   func(value string) bool

	// OmitEmpty skips the rule for an empty value.
	OmitEmpty bool
}

// Evaluate returns the failure message and true when value fails the rule.
func (r Rule) Evaluate(value string) (string, bool) {
	if r.OmitEmpty && value == "" {
		return "", false
	}
	if r.Check(value) {
		return "", false
	}
	return r.Message, true
}

// FieldValidator runs the rules of one field in declaration order.
type FieldValidator struct {
	Field entity.Field
	Rules []Rule
}

// Evaluate runs every rule against value and returns all failure messages in
// rule order. It never stops at the first failure.
func (fv FieldValidator) Evaluate(value string) []string {
	var msgs []string
	for _, rule := range fv.Rules {
		if msg, failed := rule.Evaluate(value); failed {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// MinLength fails when value has fewer than n code points.
func MinLength(c *Catalog, n int) Rule {
	return Rule{
		Name:    "min_length",
		Message: c.Text(MsgMinLength, strconv.Itoa(n)),
		Check:   func(v string) bool { return utf8.RuneCountInString(v) >= n },
	}
}

// MaxLength fails when value has more than n code points.
func MaxLength(c *Catalog, n int) Rule {
	return Rule{
		Name:    "max_length",
		Message: c.Text(MsgMaxLength, strconv.Itoa(n)),
		Check:   func(v string) bool { return utf8.RuneCountInString(v) <= n },
	}
}

// Required fails on the empty string only. Whitespace counts as present.
func Required(c *Catalog) Rule {
	return Rule{
		Name:    "required",
		Message: c.Text(MsgRequired),
		Check:   func(v string) bool { return v != "" },
	}
}

// Email checks the address shape with the struct validator's "email" tag.
func Email(c *Catalog, v validator.Validator) Rule {
	return Rule{
		Name:      "email",
		Message:   c.Text(MsgEmail),
		OmitEmpty: true,
		Check:     func(s string) bool { return v.Var(s, "email") == nil },
	}
}

// CPFChecksum strips separators and verifies the check digits.
func CPFChecksum(c *Catalog, separators string) Rule {
	return Rule{
		Name:    "cpf_checksum",
		Message: c.Text(MsgCPFChecksum),
		Check:   func(v string) bool { return cpf.IsValid(v, separators) },
	}
}

// CPFFormat accepts only a bare numeral of 11 ASCII digits.
func CPFFormat(c *Catalog) Rule {
	return Rule{
		Name:    "cpf_format",
		Message: c.Text(MsgCPFFormat),
		Check:   cpf.IsBare,
	}
}

// RegistrationRules declares the rules of every payload field, in field order.
func RegistrationRules(c *Catalog, v validator.Validator, cpfSeparators string) []FieldValidator {
	return []FieldValidator{
		{Field: entity.FieldNome, Rules: []Rule{MinLength(c, 3), MaxLength(c, 60), Required(c)}},
		{Field: entity.FieldEmail, Rules: []Rule{Required(c), Email(c, v)}},
		{Field: entity.FieldSenha, Rules: []Rule{MinLength(c, 8), Required(c)}},
		{Field: entity.FieldCPF, Rules: []Rule{CPFChecksum(c, cpfSeparators), CPFFormat(c), Required(c)}},
	}
}
