// Package copywriter wires the prompt composer to a text generator. It is the
// single entry point UI collaborators call for a listing description.
package copywriter

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"listingcopy/internal/composer"
	"listingcopy/internal/domain"
	"listingcopy/internal/infra"
)

// Generator executes one composed request against a generation service.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// Input is everything a user action supplies for one generation.
type Input struct {
	Facts  domain.ListingFacts
	Tone   domain.Tone
	Length domain.LengthHint
	Images []domain.ImageAttachment
}

// Service is stateless; concurrent Generate calls are independent and are
// neither deduplicated nor cancelled against each other.
type Service struct {
	generator Generator
	logger    *infra.Logger
}

func NewService(generator Generator, logger *infra.Logger) *Service {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Service{generator: generator, logger: logger}
}

// Generate composes the prompt and performs exactly one generation call. A
// validation failure never reaches the generator.
func (s *Service) Generate(ctx context.Context, in Input) (string, error) {
	req, err := composer.Compose(in.Facts, in.Tone, in.Length, in.Images)
	if err != nil {
		return "", err
	}

	start := time.Now()
	description, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("kind", string(domain.KindOf(err))).
			Str("tone", string(in.Tone)).
			Dur("elapsed", time.Since(start)).
			Msg("copywriter: generation failed")
		return "", err
	}

	s.logger.Info().
		Str("tone", string(in.Tone)).
		Str("length", string(in.Length)).
		Int("images", len(in.Images)).
		Dur("elapsed", time.Since(start)).
		Msg("copywriter: description generated")
	return description, nil
}
