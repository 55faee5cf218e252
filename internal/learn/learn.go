// Package learn fetches generated educational content (quiz, quotes, blog
// picks), falling back to fixed datasets whenever the generated content is
// unavailable or malformed.
package learn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/llm"
)

// Required content set sizes.
const (
	QuizLength  = 10
	QuoteLength = 3
	BlogLength  = 3
)

// rate-limit retry policy: fixed delay, small attempt count, 429 only.
const (
	maxAttempts    = 3
	rateLimitDelay = 2 * time.Second
)

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Explanation   string   `json:"explanation"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Quote is an attributed quotation.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Blog is a recommended article.
type Blog struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// Result wraps a content set with its provenance: generated and validated,
// or the built-in fallback.
type Result[T any] struct {
	Items    []T  `json:"items"`
	Fallback bool `json:"fallback"`
}

// Loader fetches content sets from a text-generation client.
type Loader struct {
	client llm.Client
	logger *slog.Logger
}

// NewLoader creates a content loader.
func NewLoader(client llm.Client, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{client: client, logger: logger}
}

const quizPrompt = `Generate a financial literacy quiz with exactly 10 multiple-choice questions.
Format as a JSON array with objects containing:
- question: string
- options: array of 4 strings
- correctAnswer: number (0-3)
- explanation: string

Topics: investing, saving, budgeting, credit, taxes, retirement planning.
Make questions practical and relevant. Respond with ONLY the JSON array.`

const quotesPrompt = `Generate 3 inspiring finance quotes with authors.
Format as a JSON array with objects containing:
- text: string (the quote)
- author: string (full name)

Use verified, accurate quotes from well-known financial experts.
Respond with ONLY the JSON array.`

const blogsPrompt = `Generate 3 financial blog post titles with details.
Format as a JSON array with objects containing:
- title: string
- url: string (use major financial sites)
- source: string (publication name)
- date: string (current date)

Focus on current financial trends and advice. Respond with ONLY the JSON array.`

// Quiz returns the quiz content set.
func (l *Loader) Quiz(ctx context.Context) Result[QuizQuestion] {
	items, err := fetchSet(ctx, l, quizPrompt, QuizLength, validQuizQuestion)
	if err != nil {
		l.logger.Warn("quiz generation failed, serving fallback", "error", err)
		return Result[QuizQuestion]{Items: FallbackQuiz(), Fallback: true}
	}
	return Result[QuizQuestion]{Items: items}
}

// Quotes returns the quotes content set.
func (l *Loader) Quotes(ctx context.Context) Result[Quote] {
	items, err := fetchSet(ctx, l, quotesPrompt, QuoteLength, validQuote)
	if err != nil {
		l.logger.Warn("quote generation failed, serving fallback", "error", err)
		return Result[Quote]{Items: FallbackQuotes(), Fallback: true}
	}
	return Result[Quote]{Items: items}
}

// Blogs returns the blog content set.
func (l *Loader) Blogs(ctx context.Context) Result[Blog] {
	items, err := fetchSet(ctx, l, blogsPrompt, BlogLength, validBlog)
	if err != nil {
		l.logger.Warn("blog generation failed, serving fallback", "error", err)
		return Result[Blog]{Items: FallbackBlogs(), Fallback: true}
	}
	return Result[Blog]{Items: items}
}

// fetchSet generates, decodes, and validates one content set. Rate-limit
// responses are retried a fixed number of times with a fixed delay; every
// other failure goes straight to the fallback path.
func fetchSet[T any](ctx context.Context, l *Loader, prompt string, wantLen int, valid func(T) bool) ([]T, error) {
	var raw string
	err := common.WithRetry(ctx, func() error {
		var genErr error
		raw, genErr = l.client.Generate(ctx, prompt)
		if genErr == nil {
			return nil
		}
		if errors.Is(genErr, common.ErrRateLimit) {
			return genErr
		}
		return &common.RetryableError{Err: genErr, Retryable: false}
	}, common.RetryOptions{
		MaxAttempts:  maxAttempts,
		InitialDelay: rateLimitDelay,
		MaxDelay:     rateLimitDelay,
	})
	if err != nil {
		return nil, err
	}

	return decodeSet(raw, wantLen, valid)
}

// decodeSet strictly decodes a generated JSON array and validates its shape.
func decodeSet[T any](raw string, wantLen int, valid func(T) bool) ([]T, error) {
	cleaned := llm.CleanMarkdownWrapper(raw)

	var items []T
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBadResponse, err)
	}

	if len(items) != wantLen {
		return nil, fmt.Errorf("%w: got %d items, want %d", common.ErrBadResponse, len(items), wantLen)
	}

	for i, item := range items {
		if !valid(item) {
			return nil, fmt.Errorf("%w: item %d fails shape validation", common.ErrBadResponse, i)
		}
	}

	return items, nil
}

func validQuizQuestion(q QuizQuestion) bool {
	if q.Question == "" || q.Explanation == "" {
		return false
	}
	if len(q.Options) != 4 {
		return false
	}
	for _, opt := range q.Options {
		if opt == "" {
			return false
		}
	}
	return q.CorrectAnswer >= 0 && q.CorrectAnswer <= 3
}

func validQuote(q Quote) bool {
	return q.Text != "" && q.Author != ""
}

func validBlog(b Blog) bool {
	return b.Title != "" && b.URL != "" && b.Source != ""
}
