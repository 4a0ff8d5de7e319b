package registration

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/gocadastro/internal/pkg/clock"
	"github.com/shandysiswandi/gocadastro/internal/pkg/config"
	"github.com/shandysiswandi/gocadastro/internal/pkg/goroutine"
	"github.com/shandysiswandi/gocadastro/internal/pkg/hash"
	"github.com/shandysiswandi/gocadastro/internal/pkg/instrument"
	"github.com/shandysiswandi/gocadastro/internal/pkg/messaging"
	"github.com/shandysiswandi/gocadastro/internal/pkg/router"
	"github.com/shandysiswandi/gocadastro/internal/pkg/uid"
	"github.com/shandysiswandi/gocadastro/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDependency(t *testing.T, yaml string) Dependency {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	snow, err := uid.NewSnowflakeNode(1)
	require.NoError(t, err)

	return Dependency{
		Goroutine:  goroutine.NewManager(2),
		Router:     router.NewRouter(router.Config{Config: cfg}),
		Messaging:  messaging.NewMemory(),
		Config:     cfg,
		Instrument: instrument.NewNoop(),
		UID:        snow,
		Bcrypt:     hash.NewBcrypt(bcrypt.MinCost, ""),
		Clock:      clock.New(),
		Validator:  v,
	}
}

func TestNew_MemoryStore(t *testing.T) {
	dep := newDependency(t, `
modules:
  registration:
    store: memory
    publish_event: true
    messages:
      cpf_exists: "CPF já cadastrado"
`)
	require.NoError(t, New(dep))

	body := `{"nome":"Maria Silva","email":"maria@exemplo.com","senha":"segredo123","cpf":"31286578078"}`
	for _, want := range []int{http.StatusCreated, http.StatusUnprocessableEntity} {
		rec := httptest.NewRecorder()
		dep.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/usuarios", strings.NewReader(body)))
		require.Equal(t, want, rec.Code)
		if want == http.StatusUnprocessableEntity {
			assert.Contains(t, rec.Body.String(), "CPF já cadastrado")
		}
	}

	require.NoError(t, dep.Goroutine.Wait())
	published := dep.Messaging.(*messaging.Memory).Messages()
	require.Len(t, published, 1)
	assert.Equal(t, "user_registered", published[0].Destination)
}

func TestNew_PostgresNeedsConnection(t *testing.T) {
	dep := newDependency(t, "modules:\n  registration:\n    store: postgres\n")
	assert.ErrorIs(t, New(dep), ErrDatabaseRequired)
}

func TestNew_MissingDependency(t *testing.T) {
	dep := newDependency(t, "modules:\n  registration:\n    store: memory\n")
	dep.Bcrypt = nil

	err := New(dep)
	var verr validator.V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Values(), "bcrypt")
}
