package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gocadastro/internal/registration"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.registration.enabled") {
		if err := registration.New(registration.Dependency{
			DBConn:      a.dbConn,
			Idempotency: a.idemp,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Bcrypt:      a.bcrypt,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module registration", "error", err)
			os.Exit(1)
		}
	}
}
