package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/trivia"
)

// QuestionBank serves raw questions from the trivia_questions table in the
// same shape OpenTDB uses, so the loader treats both the same way.
type QuestionBank struct {
	pool       *pgxpool.Pool
	category   string
	difficulty string
}

// BankFilter narrows the random selection.
type BankFilter struct {
	Category   string
	Difficulty string
}

func NewQuestionBank(pool *pgxpool.Pool, filter BankFilter) *QuestionBank {
	return &QuestionBank{pool: pool, category: filter.Category, difficulty: filter.Difficulty}
}

const selectQuestionsSQL = `
SELECT category, difficulty, question, correct_answer, incorrect_answers
FROM trivia_questions
WHERE ($1::text = '' OR category = $1) AND ($2::text = '' OR difficulty = $2)
ORDER BY random()
LIMIT $3`

// Fetch picks up to count random questions. An empty selection is reported
// with the provider's "no results" code rather than an error.
func (b *QuestionBank) Fetch(ctx context.Context, count int) (domain.RawBatch, error) {
	rows, err := b.pool.Query(ctx, selectQuestionsSQL, b.category, b.difficulty, count)
	if err != nil {
		return domain.RawBatch{}, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	results := make([]domain.RawQuestion, 0, count)
	for rows.Next() {
		var (
			q         domain.RawQuestion
			incorrect []byte
		)
		if err := rows.Scan(&q.Category, &q.Difficulty, &q.Question, &q.CorrectAnswer, &incorrect); err != nil {
			return domain.RawBatch{}, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(incorrect, &q.IncorrectAnswers); err != nil {
			return domain.RawBatch{}, fmt.Errorf("%w: incorrect_answers: %v", domain.ErrMalformedPayload, err)
		}
		q.Type = "multiple"
		results = append(results, q)
	}
	if err := rows.Err(); err != nil {
		return domain.RawBatch{}, fmt.Errorf("iterate questions: %w", err)
	}
	if len(results) == 0 {
		return domain.RawBatch{ResponseCode: trivia.CodeNoResults}, nil
	}
	return domain.RawBatch{ResponseCode: trivia.CodeSuccess, Results: results}, nil
}
