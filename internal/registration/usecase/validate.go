package usecase

import "context"

type ValidateInput = RegisterInput

// ValidateOnly runs the registration rules without storing anything.
func (s *Usecase) ValidateOnly(ctx context.Context, in ValidateInput) error {
	ctx, span := s.startSpan(ctx, "ValidateOnly")
	defer span.End()

	in.normalize()

	return s.validate(ctx, in.payload())
}
