package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/ironvale/stockledger/internal/ledger/domain"
)

var tracer = otel.Tracer("ledger-repository")

// GormMovementRepositoryWithTracing wraps GormMovementRepository with tracing
type GormMovementRepositoryWithTracing struct {
	*GormMovementRepository
}

// NewGormMovementRepositoryWithTracing creates a new repository with tracing
func NewGormMovementRepositoryWithTracing(db *gorm.DB) *GormMovementRepositoryWithTracing {
	return &GormMovementRepositoryWithTracing{
		GormMovementRepository: NewGormMovementRepository(db),
	}
}

// AppendWithContext appends a movement under a span
func (r *GormMovementRepositoryWithTracing) AppendWithContext(ctx context.Context, movement *domain.Movement) error {
	_, span := tracer.Start(ctx, "repository.Append",
		trace.WithAttributes(
			attribute.Int("movement.product_id", int(movement.ProductID)),
			attribute.String("movement.direction", string(movement.Direction)),
			attribute.Int("movement.quantity", movement.Quantity),
			attribute.String("movement.reason", movement.Reason),
		),
	)
	defer span.End()

	err := r.GormMovementRepository.Append(movement)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("movement.id", int(movement.ID)))
	return nil
}

// FindByProductWithContext reads a product's ledger under a span
func (r *GormMovementRepositoryWithTracing) FindByProductWithContext(ctx context.Context, productID uint) ([]domain.Movement, error) {
	_, span := tracer.Start(ctx, "repository.FindByProduct",
		trace.WithAttributes(
			attribute.Int("movement.product_id", int(productID)),
		),
	)
	defer span.End()

	movements, err := r.GormMovementRepository.FindByProduct(productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(movements)))
	return movements, nil
}
