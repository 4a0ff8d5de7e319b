package entity

// Field names one input of the registration payload. The value doubles as the
// JSON key used in requests and error responses.
type Field string

const (
	FieldNome  Field = "nome"
	FieldEmail Field = "email"
	FieldSenha Field = "senha"
	FieldCPF   Field = "cpf"
)

// Fields lists every field in declaration order. Error responses follow it.
var Fields = []Field{FieldNome, FieldEmail, FieldSenha, FieldCPF}

// Index is the position of f in Fields, or len(Fields) for an unknown field.
func (f Field) Index() int {
	for i, v := range Fields {
		if v == f {
			return i
		}
	}
	return len(Fields)
}

func (f Field) String() string {
	return string(f)
}

// Payload is the raw registration input. A missing key is the empty string.
type Payload struct {
	Nome  string
	Email string
	Senha string
	CPF   string
}

// Get returns the value of field f.
func (p Payload) Get(f Field) string {
	switch f {
	case FieldNome:
		return p.Nome
	case FieldEmail:
		return p.Email
	case FieldSenha:
		return p.Senha
	case FieldCPF:
		return p.CPF
	default:
		return ""
	}
}
