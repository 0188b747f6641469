package repository

import (
	"context"

	"github.com/snowva/business-hub/internal/domain/entity"
)

// QuoteRepository is the persistence port for Quote headers and lines.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	CreateLine(ctx context.Context, line *entity.LineItem) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	GetLines(ctx context.Context, quoteID string) ([]entity.LineItem, error)
	// List pages quotes, newest first; status and customerID filter when
	// non-empty.
	List(ctx context.Context, customerID, status string, limit, offset int) ([]*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	// ReplaceLines swaps the full line set of a draft quote.
	ReplaceLines(ctx context.Context, quoteID string, lines []entity.LineItem) error
	// NextNumber increments and returns the quote number sequence.
	NextNumber(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
