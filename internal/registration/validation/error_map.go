package validation

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"

	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
)

// ErrorMap holds the failure messages of a run per field. A field is present
// only when at least one rule failed for it. Messages keep insertion order and
// fields are reported in declaration order.
type ErrorMap struct {
	msgs map[entity.Field][]string
}

func NewErrorMap() *ErrorMap {
	return &ErrorMap{msgs: make(map[entity.Field][]string)}
}

// Add appends msgs to field. Adding nothing leaves the field absent.
func (m *ErrorMap) Add(field entity.Field, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	m.msgs[field] = append(m.msgs[field], msgs...)
}

func (m *ErrorMap) Get(field entity.Field) []string {
	return slices.Clone(m.msgs[field])
}

func (m *ErrorMap) Has(field entity.Field) bool {
	_, ok := m.msgs[field]
	return ok
}

func (m *ErrorMap) Len() int {
	return len(m.msgs)
}

// Fields returns the failing fields in declaration order.
func (m *ErrorMap) Fields() []entity.Field {
	fields := make([]entity.Field, 0, len(m.msgs))
	for f := range m.msgs {
		fields = append(fields, f)
	}
	slices.SortFunc(fields, func(a, b entity.Field) int {
		return cmp.Or(cmp.Compare(a.Index(), b.Index()), cmp.Compare(a, b))
	})
	return fields
}

// Map returns a copy keyed by field name.
func (m *ErrorMap) Map() map[string][]string {
	out := make(map[string][]string, len(m.msgs))
	for f, msgs := range m.msgs {
		out[f.String()] = slices.Clone(msgs)
	}
	return out
}

// MarshalJSON writes the fields as an object in declaration order.
func (m *ErrorMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.String())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.msgs[f])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
