package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/gocadastro/internal/pkg/clock"
	"github.com/shandysiswandi/gocadastro/internal/pkg/config"
	"github.com/shandysiswandi/gocadastro/internal/pkg/goroutine"
	"github.com/shandysiswandi/gocadastro/internal/pkg/hash"
	"github.com/shandysiswandi/gocadastro/internal/pkg/idempotency"
	"github.com/shandysiswandi/gocadastro/internal/pkg/instrument"
	"github.com/shandysiswandi/gocadastro/internal/pkg/uid"
	"github.com/shandysiswandi/gocadastro/internal/pkg/validator"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
	"github.com/shandysiswandi/gocadastro/internal/registration/validation"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserID       int64
	Nome         string
	Email        string
	RegisteredAt time.Time
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
}

type repoDB interface {
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)
	FindUserByCPF(ctx context.Context, cpf string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	ListUsers(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error)

	CreateUser(ctx context.Context, user entity.User) error
	UpdateUser(ctx context.Context, user entity.User) error

	DeleteUser(ctx context.Context, id int64) error
}

type orchestrator interface {
	Validate(ctx context.Context, p entity.Payload) (validation.Verdict, error)
	ValidateExcluding(ctx context.Context, p entity.Payload, id int64) (validation.Verdict, error)
	Taken(field entity.Field) validation.Verdict
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	orchestrator  orchestrator
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Orchestrator  orchestrator
	// Idempotency may be nil; registrations then run without the per-CPF lock.
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	Bcrypt      hash.Hash
	UID         uid.NumberID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
	Goroutine   *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		orchestrator:  dep.Orchestrator,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("registration.usecase").Start(ctx, name)
}
