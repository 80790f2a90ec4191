package trivia

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/shuffle"
)

// Provider fetches raw multiple-choice records from a question backend
// (OpenTDB, a Postgres question bank, a static fixture).
type Provider interface {
	Fetch(ctx context.Context, count int) (domain.RawBatch, error)
}

// Loader turns provider batches into normalized questions.
type Loader struct {
	provider Provider
	src      shuffle.Source
	log      zerolog.Logger
}

func NewLoader(provider Provider, src shuffle.Source, log zerolog.Logger) *Loader {
	if src == nil {
		src = shuffle.NewSource(0)
	}
	return &Loader{provider: provider, src: src, log: log.With().Str("module", "trivia").Logger()}
}

// Load issues a single provider request for count questions. Every failure is
// a *domain.LoadError; there is no retry here.
func (l *Loader) Load(ctx context.Context, count int) ([]domain.Question, error) {
	batch, err := l.provider.Fetch(ctx, count)
	if err != nil {
		l.log.Error().Err(err).Int("count", count).Msg("load_failed")
		return nil, domain.NewLoadError("fetch", err)
	}
	if batch.ResponseCode != 0 {
		err := &StatusError{Code: batch.ResponseCode}
		l.log.Warn().Int("response_code", batch.ResponseCode).Msg("provider_status")
		return nil, domain.NewLoadError("status", err)
	}
	if len(batch.Results) == 0 {
		return nil, domain.NewLoadError("status", domain.ErrEmptyBatch)
	}

	questions := make([]domain.Question, 0, len(batch.Results))
	for i, raw := range batch.Results {
		q, err := l.normalize(raw)
		if err != nil {
			l.log.Warn().Err(err).Int("result", i).Msg("malformed_question")
			return nil, domain.NewLoadError("decode", err)
		}
		questions = append(questions, q)
	}
	l.log.Info().Int("requested", count).Int("received", len(questions)).Msg("questions_loaded")
	return questions, nil
}

// normalize decodes a record and builds its answer list. The decoded correct
// answer must not also appear among the decoded incorrect ones.
func (l *Loader) normalize(raw domain.RawQuestion) (domain.Question, error) {
	correct := html.UnescapeString(raw.CorrectAnswer)
	answers := make([]string, 0, len(raw.IncorrectAnswers)+1)
	answers = append(answers, correct)
	for _, a := range raw.IncorrectAnswers {
		decoded := html.UnescapeString(a)
		if decoded == correct {
			return domain.Question{}, fmt.Errorf("%w: correct answer %q repeated among incorrect answers", domain.ErrMalformedPayload, correct)
		}
		answers = append(answers, decoded)
	}
	return domain.Question{
		Text:          html.UnescapeString(raw.Question),
		CorrectAnswer: correct,
		Answers:       shuffle.Shuffle(l.src, answers),
	}, nil
}
