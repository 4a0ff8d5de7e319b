package router

import (
	"net/http"
	"slices"

	"github.com/shandysiswandi/gocadastro/internal/pkg/config"
	"go.uber.org/atomic"
)

// Maintenance blocks routes while the service is being worked on. The switch
// flips at runtime; the per-route list is read from config on every request so
// a hot-reloaded file takes effect immediately.
type Maintenance struct {
	cfg config.Config
	all atomic.Bool
}

// NewMaintenance reads "app.maintenance.enabled" for the initial switch state
// and "app.maintenance.endpoints" for the route list.
func NewMaintenance(cfg config.Config) *Maintenance {
	m := &Maintenance{cfg: cfg}
	if cfg != nil {
		m.all.Store(cfg.GetBool("app.maintenance.enabled"))
	}
	return m
}

// Enable blocks every route except the health check.
func (m *Maintenance) Enable() { m.all.Store(true) }

// Disable lifts the global block. Routes listed in config stay blocked.
func (m *Maintenance) Disable() { m.all.Store(false) }

// Enabled reports whether the global switch is on.
func (m *Maintenance) Enabled() bool { return m.all.Load() }

func (m *Maintenance) blocked(route string) bool {
	if route == healthPath {
		return false
	}
	if m.all.Load() {
		return true
	}
	if m.cfg == nil {
		return false
	}
	return slices.Contains(m.cfg.GetArray("app.maintenance.endpoints"), route)
}

func (m *Maintenance) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.blocked(matchedRoutePath(r)) {
			writeJSON(w, errorResponse{Message: "Serviço em manutenção"}, http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}
