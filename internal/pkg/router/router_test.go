package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/gocadastro/internal/pkg/config"
	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFields map[string][]string

func (f fakeFields) Len() int                     { return len(f) }
func (f fakeFields) Map() map[string][]string     { return f }
func (f fakeFields) MarshalJSON() ([]byte, error) { return json.Marshal(map[string][]string(f)) }

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type created struct {
	ID int64 `json:"id"`
}

func (created) StatusCode() int  { return http.StatusCreated }
func (created) Message() string { return "Criado" }

func serve(t *testing.T, ro *Router, method, target, body string, header ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestRouter_Health(t *testing.T) {
	ro := NewRouter(Config{UUID: fixedID("gen-id")})

	rec, out := serve(t, ro, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["data"].(map[string]any)["status"])
	assert.Equal(t, "gen-id", rec.Header().Get(HeaderCorrelationID))
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	ro := NewRouter(Config{})
	ro.POST("/only-post", func(*Request) (any, error) { return nil, nil })

	rec, _ := serve(t, ro, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = serve(t, ro, http.MethodGet, "/only-post", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec, _ = serve(t, ro, http.MethodPost, "/only-post", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		check    func(t *testing.T, out map[string]any)
	}{
		{
			name:     "field errors",
			err:      goerror.NewInvalidInput(fakeFields{"email": {"Email inválido"}}),
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "Dados inválidos",
			check: func(t *testing.T, out map[string]any) {
				assert.Equal(t, []any{"Email inválido"}, out["errors"].(map[string]any)["email"])
			},
		},
		{
			name:     "struct validation",
			err:      validator.V10ValidationError{"page": "page deve ser 1 ou maior"},
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "Dados inválidos",
		},
		{
			name:     "server",
			err:      goerror.NewServer(errors.New("db down")),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Algo deu errado!",
			check: func(t *testing.T, out map[string]any) {
				assert.NotContains(t, out, "errors")
			},
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Algo deu errado!",
		},
		{
			name:     "business",
			err:      goerror.NewBusiness("Usuário não encontrado", goerror.CodeNotFound),
			wantCode: http.StatusNotFound,
			wantMsg:  "Usuário não encontrado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ro := NewRouter(Config{})
			ro.GET("/x", func(*Request) (any, error) { return nil, tt.err })

			rec, out := serve(t, ro, http.MethodGet, "/x", "")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, out["message"])
			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

func TestRouter_Success(t *testing.T) {
	ro := NewRouter(Config{})
	ro.POST("/items", func(*Request) (any, error) { return created{ID: 7}, nil })

	rec, out := serve(t, ro, http.MethodPost, "/items", "{}")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Criado", out["message"])
	assert.EqualValues(t, 7, out["data"].(map[string]any)["id"])
}

func TestRouter_Recover(t *testing.T) {
	ro := NewRouter(Config{})
	ro.GET("/panic", func(*Request) (any, error) { panic("kaboom") })

	rec, out := serve(t, ro, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Algo deu errado!", out["message"])
}

func TestRouter_CorrelationIDFromHeader(t *testing.T) {
	ro := NewRouter(Config{UUID: fixedID("gen-id")})

	rec, _ := serve(t, ro, http.MethodGet, "/health", "", HeaderRequestID, "  req-1  ")
	assert.Equal(t, "req-1", rec.Header().Get(HeaderCorrelationID))

	rec, _ = serve(t, ro, http.MethodGet, "/health", "", HeaderCorrelationID, "cid-1", HeaderRequestID, "req-1")
	assert.Equal(t, "cid-1", rec.Header().Get(HeaderCorrelationID))
}

func TestRouter_Maintenance(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  maintenance:
    endpoints: "/blocked"
`))
	require.NoError(t, err)

	ro := NewRouter(Config{Config: cfg})
	ro.GET("/blocked", func(*Request) (any, error) { return "x", nil })
	ro.GET("/open", func(*Request) (any, error) { return "x", nil })

	rec, _ := serve(t, ro, http.MethodGet, "/blocked", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = serve(t, ro, http.MethodGet, "/open", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	ro.Maintenance().Enable()
	assert.True(t, ro.Maintenance().Enabled())

	rec, _ = serve(t, ro, http.MethodGet, "/open", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = serve(t, ro, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	ro.Maintenance().Disable()
	rec, _ = serve(t, ro, http.MethodGet, "/open", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequest_DecodeBody(t *testing.T) {
	type payload struct {
		Nome string `json:"nome"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "ok", body: `{"nome":"Ana"}`},
		{name: "unknown field", body: `{"x":1}`, wantErr: true},
		{name: "trailing document", body: `{"nome":"a"}{}`, wantErr: true},
		{name: "not json", body: `nome=a`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Request: httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))}
			var dst payload
			err := req.DecodeBody(&dst)
			if tt.wantErr {
				var gerr *goerror.Error
				require.ErrorAs(t, err, &gerr)
				assert.Equal(t, goerror.CodeInvalidFormat, gerr.Code())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", dst.Nome)
		})
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "h") }), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "h"}, order)
}
