package validation

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gocadastro/internal/pkg/cpf"
	"github.com/shandysiswandi/gocadastro/internal/pkg/goerror"
	"github.com/shandysiswandi/gocadastro/internal/pkg/goroutine"
	"github.com/shandysiswandi/gocadastro/internal/pkg/instrument"
	"github.com/shandysiswandi/gocadastro/internal/pkg/validator"
	"github.com/shandysiswandi/gocadastro/internal/registration/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Verdict is the outcome of one validation run.
type Verdict struct {
	errs *ErrorMap
}

// Accepted reports whether no rule failed.
func (v Verdict) Accepted() bool {
	return v.errs == nil || v.errs.Len() == 0
}

// Errors returns the failures of a rejected run, or nil when accepted.
func (v Verdict) Errors() *ErrorMap {
	if v.Accepted() {
		return nil
	}
	return v.errs
}

// Err returns nil when accepted and a 422 goerror carrying the field messages
// otherwise.
func (v Verdict) Err() error {
	if v.Accepted() {
		return nil
	}
	return goerror.NewInvalidInput(v.errs)
}

// Rejected builds a rejected verdict from errs. An empty map yields Accepted.
func Rejected(errs *ErrorMap) Verdict {
	return Verdict{errs: errs}
}

type Config struct {
	// CPFSeparators are stripped before the checksum. Defaults to cpf.DefaultSeparators.
	CPFSeparators string
	// Messages override catalog entries.
	Messages map[MessageKey]string
}

// Orchestrator validates payloads against the field rules and uniqueness checks.
type Orchestrator struct {
	validators []FieldValidator
	checkers   []UniquenessChecker
	ins        instrument.Instrumentation
	verdicts   metric.Int64Counter
}

// NewOrchestrator builds the registration rule set over store.
func NewOrchestrator(store Store, v validator.Validator, ins instrument.Instrumentation, cfg Config) (*Orchestrator, error) {
	catalog, err := NewCatalog(cfg.Messages)
	if err != nil {
		return nil, err
	}

	separators := cfg.CPFSeparators
	if separators == "" {
		separators = cpf.DefaultSeparators
	}

	return NewOrchestratorWith(
		RegistrationRules(catalog, v, separators),
		RegistrationUniqueness(catalog, store),
		ins,
	), nil
}

// NewOrchestratorWith builds an orchestrator over an explicit rule set.
// Every checker of a run is started before the field rules are evaluated.
func NewOrchestratorWith(validators []FieldValidator, checkers []UniquenessChecker, ins instrument.Instrumentation) *Orchestrator {
	if ins == nil {
		ins = instrument.NewNoop()
	}

	verdicts, err := ins.Meter("registration.validation").Int64Counter("registration.validation.verdicts",
		metric.WithDescription("Validation runs by outcome"),
	)
	if err != nil {
		slog.Error("failed to create validation verdict counter", "error", err)
	}

	return &Orchestrator{
		validators: validators,
		checkers:   checkers,
		ins:        ins,
		verdicts:   verdicts,
	}
}

type lookupSlot struct {
	msg   string
	taken bool
	err   *LookupError
}

// Validate runs every rule over p. It returns a Verdict, or a *LookupError
// when any uniqueness lookup failed; never both.
func (o *Orchestrator) Validate(ctx context.Context, p entity.Payload) (Verdict, error) {
	ctx, span := o.ins.Tracer("registration.validation").Start(ctx, "Validate")
	defer span.End()

	return o.run(ctx, span, p, o.checkers)
}

// ValidateExcluding validates p as the new state of user id: a value already
// held by that same user does not count as taken.
func (o *Orchestrator) ValidateExcluding(ctx context.Context, p entity.Payload, id int64) (Verdict, error) {
	ctx, span := o.ins.Tracer("registration.validation").Start(ctx, "ValidateExcluding")
	defer span.End()

	checkers := make([]UniquenessChecker, len(o.checkers))
	for i, c := range o.checkers {
		c.Lookup = excluding(c.Lookup, id)
		checkers[i] = c
	}
	return o.run(ctx, span, p, checkers)
}

func excluding(lookup Lookup, id int64) Lookup {
	return func(ctx context.Context, value string) (*entity.User, error) {
		user, err := lookup(ctx, value)
		if err == nil && user.ID == id {
			return nil, goerror.ErrNotFound
		}
		return user, err
	}
}

func (o *Orchestrator) run(ctx context.Context, span trace.Span, p entity.Payload, checkers []UniquenessChecker) (Verdict, error) {
	slots := make([]lookupSlot, len(checkers))
	group := goroutine.NewGroup()
	for i, checker := range checkers {
		value := p.Get(checker.Field)
		if value == "" {
			continue
		}

		group.Go(ctx, func(ctx context.Context) error {
			slot := &slots[i]
			// a panicking lookup leaves this default in place
			slot.err = &LookupError{Field: checker.Field, Err: goroutine.ErrPanic}

			msg, taken, lerr := checker.Check(ctx, value)
			slot.msg, slot.taken, slot.err = msg, taken, lerr
			if lerr != nil {
				return lerr
			}
			return nil
		})
	}

	errs := NewErrorMap()
	for _, fv := range o.validators {
		errs.Add(fv.Field, fv.Evaluate(p.Get(fv.Field))...)
	}

	// failures are read per slot, in field order
	_ = group.Wait()

	for _, slot := range slots {
		if slot.err == nil {
			continue
		}
		span.RecordError(slot.err)
		span.SetStatus(codes.Error, slot.err.Error())
		o.record(ctx, "error")
		return Verdict{}, slot.err
	}

	for i, slot := range slots {
		if slot.taken {
			errs.Add(checkers[i].Field, slot.msg)
		}
	}

	verdict := Rejected(errs)
	if verdict.Accepted() {
		o.record(ctx, "accepted")
	} else {
		span.SetAttributes(attribute.Int("validation.failed_fields", errs.Len()))
		o.record(ctx, "rejected")
	}

	return verdict, nil
}

func (o *Orchestrator) record(ctx context.Context, outcome string) {
	if o.verdicts == nil {
		return
	}
	o.verdicts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Taken returns a rejected verdict carrying the "already exists" message of
// field. It reports a collision found after validation, e.g. by the insert.
func (o *Orchestrator) Taken(field entity.Field) Verdict {
	errs := NewErrorMap()
	for _, c := range o.checkers {
		if c.Field == field {
			errs.Add(field, c.Message)
		}
	}
	return Rejected(errs)
}
