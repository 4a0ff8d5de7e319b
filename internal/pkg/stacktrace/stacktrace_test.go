package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte("goroutine 1 [running]:\n" +
		"github.com/shandysiswandi/gocadastro/internal/registration/usecase.(*Usecase).Register(...)\n" +
		"\t/src/gocadastro/internal/registration/usecase/register.go:42 +0x1d\n" +
		"net/http.HandlerFunc.ServeHTTP(...)\n" +
		"\t/usr/local/go/src/net/http/server.go:2220 +0x29\n")

	paths := InternalPaths(stack)

	assert.Contains(t, paths, "internal/registration/usecase/register.go:42")
	for _, p := range paths {
		assert.NotContains(t, p, "net/http/server.go")
	}
}
