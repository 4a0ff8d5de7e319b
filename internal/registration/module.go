package registration

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gocadastro/internal/pkg/clock"
	"github.com/shandysiswandi/gocadastro/internal/pkg/config"
	"github.com/shandysiswandi/gocadastro/internal/pkg/goroutine"
	"github.com/shandysiswandi/gocadastro/internal/pkg/hash"
	"github.com/shandysiswandi/gocadastro/internal/pkg/idempotency"
	"github.com/shandysiswandi/gocadastro/internal/pkg/instrument"
	"github.com/shandysiswandi/gocadastro/internal/pkg/messaging"
	"github.com/shandysiswandi/gocadastro/internal/pkg/router"
	"github.com/shandysiswandi/gocadastro/internal/pkg/uid"
	"github.com/shandysiswandi/gocadastro/internal/pkg/validator"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
	"github.com/shandysiswandi/gocadastro/internal/registration/inbound"
	"github.com/shandysiswandi/gocadastro/internal/registration/outbound/db"
	"github.com/shandysiswandi/gocadastro/internal/registration/outbound/memory"
	"github.com/shandysiswandi/gocadastro/internal/registration/outbound/mq"
	"github.com/shandysiswandi/gocadastro/internal/registration/usecase"
	"github.com/shandysiswandi/gocadastro/internal/registration/validation"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

var ErrDatabaseRequired = errors.New("registration: postgres store needs a database connection")

type Dependency struct {
	// DBConn is required when modules.registration.store is postgres.
	DBConn *pgxpool.Pool
	// Idempotency is optional; without it registrations are not locked per CPF.
	Idempotency idempotency.Idempotency
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

type store interface {
	validation.Store
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	ListUsers(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error)
	CreateUser(ctx context.Context, user entity.User) error
	UpdateUser(ctx context.Context, user entity.User) error
	DeleteUser(ctx context.Context, id int64) error
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB, err := newStore(dep)
	if err != nil {
		return err
	}

	orch, err := validation.NewOrchestrator(repoDB, dep.Validator, dep.Instrument, validation.Config{
		CPFSeparators: dep.Config.GetString("modules.registration.cpf_separators"),
		Messages:      messages(dep.Config),
	})
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Orchestrator:  orch,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

func newStore(dep Dependency) (store, error) {
	switch strings.ToLower(strings.TrimSpace(dep.Config.GetString("modules.registration.store"))) {
	case StoreMemory:
		return memory.New(), nil
	default:
		if dep.DBConn == nil {
			return nil, ErrDatabaseRequired
		}
		return db.NewDB(dep.DBConn, dep.Instrument), nil
	}
}

// messages reads catalog overrides from modules.registration.messages.<key>.
func messages(cfg config.Config) map[validation.MessageKey]string {
	keys := []validation.MessageKey{
		validation.MsgMinLength,
		validation.MsgMaxLength,
		validation.MsgRequired,
		validation.MsgEmail,
		validation.MsgCPFChecksum,
		validation.MsgCPFFormat,
		validation.MsgEmailExists,
		validation.MsgCPFExists,
	}

	out := make(map[validation.MessageKey]string, len(keys))
	for _, key := range keys {
		if text := cfg.GetString("modules.registration.messages." + string(key)); text != "" {
			out[key] = text
		}
	}
	return out
}
