package validation

import (
	"fmt"

	ptBR "github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
)

// MessageKey identifies a user-facing failure message.
type MessageKey string

const (
	MsgMinLength   MessageKey = "min_length"
	MsgMaxLength   MessageKey = "max_length"
	MsgRequired    MessageKey = "required"
	MsgEmail       MessageKey = "email"
	MsgCPFChecksum MessageKey = "cpf_checksum"
	MsgCPFFormat   MessageKey = "cpf_format"
	MsgEmailExists MessageKey = "email_exists"
	MsgCPFExists   MessageKey = "cpf_exists"
)

var defaultMessages = map[MessageKey]string{
	MsgMinLength:   "Deve ter no minimo {0} caracteres",
	MsgMaxLength:   "Deve ter no maximo {0} caracteres",
	MsgRequired:    "Campo deve ser preenchido",
	MsgEmail:       "Email inválido",
	MsgCPFChecksum: "CPF inválido",
	MsgCPFFormat:   "Está no formato inválido",
	MsgEmailExists: "Email já existe",
	MsgCPFExists:   "CPF já existe",
}

// Catalog renders failure messages from a pt_BR translation table.
type Catalog struct {
	trans ut.Translator
}

// NewCatalog loads the default messages. Entries in overrides replace them.
func NewCatalog(overrides map[MessageKey]string) (*Catalog, error) {
	lang := ptBR.New()
	uni := ut.New(lang, lang)

	trans, ok := uni.GetTranslator(lang.Locale())
	if !ok {
		return nil, fmt.Errorf("validation: translator %q not found", lang.Locale())
	}

	for key, text := range defaultMessages {
		if override, ok := overrides[key]; ok && override != "" {
			text = override
		}
		if err := trans.Add(key, text, true); err != nil {
			return nil, fmt.Errorf("validation: add message %q: %w", key, err)
		}
	}

	return &Catalog{trans: trans}, nil
}

// Text renders key with params. An unknown key renders as the key itself.
func (c *Catalog) Text(key MessageKey, params ...string) string {
	msg, err := c.trans.T(key, params...)
	if err != nil {
		return string(key)
	}
	return msg
}
