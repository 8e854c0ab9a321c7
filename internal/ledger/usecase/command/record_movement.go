package command

import (
	"context"
	"fmt"
	"time"

	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/decision"
	"github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/projector"
	"github.com/ironvale/stockledger/kafka"
	"github.com/ironvale/stockledger/pkg/logger"
)

// RecordMovementCommand represents the command to append a stock movement
type RecordMovementCommand struct {
	ProductID  uint
	Direction  domain.Direction
	Quantity   int
	Reason     string
	Reference  string
	OccurredAt time.Time
}

// RecordMovementResult carries the assigned ledger id and the snapshot the
// append produced
type RecordMovementResult struct {
	Movement *domain.Movement
	Snapshot domain.StockSnapshot
}

// EventPublisher emits movement recorded events. Satisfied by *kafka.Publisher.
type EventPublisher interface {
	PublishMovementRecorded(ctx context.Context, event kafka.StockMovementRecordedEvent) error
}

// RecordMovementHandler handles the record movement command.
//
// The sequence is validate, then check-and-append inside the product's
// critical section: an OUT movement that would drive projected stock below
// zero is refused before anything is written. Validation failures and
// insufficient stock leave the ledger untouched. Every successful append
// emits a movement recorded event, whichever entry point recorded it.
type RecordMovementHandler struct {
	catalog   catalogdomain.ProductRepository
	movements domain.MovementRepository
	projector *projector.Projector
	events    EventPublisher
}

// NewRecordMovementHandler creates a new record movement handler.
// events may be nil when no broker is configured.
func NewRecordMovementHandler(
	catalog catalogdomain.ProductRepository,
	movements domain.MovementRepository,
	proj *projector.Projector,
	events EventPublisher,
) *RecordMovementHandler {
	return &RecordMovementHandler{
		catalog:   catalog,
		movements: movements,
		projector: proj,
		events:    events,
	}
}

// Handle executes the record movement command
func (h *RecordMovementHandler) Handle(ctx context.Context, cmd RecordMovementCommand) (*RecordMovementResult, error) {
	movement := &domain.Movement{
		ProductID:  cmd.ProductID,
		Direction:  cmd.Direction,
		Quantity:   cmd.Quantity,
		Reason:     cmd.Reason,
		Reference:  cmd.Reference,
		OccurredAt: cmd.OccurredAt,
	}
	if movement.OccurredAt.IsZero() {
		movement.OccurredAt = time.Now()
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	product, err := h.catalog.FindByID(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrUnknownProduct, cmd.ProductID)
	}

	snapshot, err := h.projector.ApplyAppend(cmd.ProductID, func(currentStock int) (*domain.Movement, error) {
		if movement.Direction == domain.DirectionOut && currentStock-movement.Quantity < 0 {
			return nil, fmt.Errorf("%w: product %d has %d, requested %d",
				domain.ErrInsufficientStock, cmd.ProductID, currentStock, movement.Quantity)
		}
		if err := h.movements.Append(movement); err != nil {
			return nil, fmt.Errorf("failed to append movement: %w", err)
		}
		return movement, nil
	})
	if err != nil {
		return nil, err
	}

	h.publishRecorded(ctx, movement, snapshot, product)

	return &RecordMovementResult{Movement: movement, Snapshot: snapshot}, nil
}

// publishRecorded is best-effort: the movement is already durable, a broker
// failure only costs downstream a notification.
func (h *RecordMovementHandler) publishRecorded(ctx context.Context, movement *domain.Movement, snapshot domain.StockSnapshot, product *catalogdomain.Product) {
	if h.events == nil {
		return
	}

	event := kafka.StockMovementRecordedEvent{
		MovementID:   movement.ID,
		ProductID:    movement.ProductID,
		Direction:    string(movement.Direction),
		Quantity:     movement.Quantity,
		Reason:       movement.Reason,
		Reference:    movement.Reference,
		CurrentStock: snapshot.CurrentStock,
		Tier:         string(decision.Classify(snapshot.CurrentStock, product.ReorderLevel)),
	}
	if err := h.events.PublishMovementRecorded(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Uint("movement_id", movement.ID).
			Uint("product_id", movement.ProductID).
			Msg("Failed to publish movement recorded event")
	}
}
