package orderlifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backoffice-backend/pkg/db/models"
	"github.com/orderdesk/backoffice-backend/pkg/enums"
	"github.com/orderdesk/backoffice-backend/pkg/outbox"
	"github.com/orderdesk/backoffice-backend/pkg/outbox/payloads"
)

// Repository defines the order reads/writes needed for status recalculation.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrderByItem(ctx context.Context, orderItemID uuid.UUID) (*models.Order, error)
	ListAssignmentStatusesByOrder(ctx context.Context, orderID uuid.UUID) ([]enums.AssignmentStatus, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
}

type outboxPublisher interface {
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// StatusChange reports an order-level status move caused by a recalculation.
type StatusChange struct {
	OrderID     uuid.UUID
	OrderNumber string
	OldStatus   enums.OrderStatus
	NewStatus   enums.OrderStatus
}

// Recalculator rolls assignment decisions up into the parent order's status.
// The rule lives here, not in the status engine: an order becomes confirmed
// (or cancelled, when every vendor declined) once all of its assignments have
// left pending_confirmation.
type Recalculator struct {
	repo   Repository
	outbox outboxPublisher
}

// NewRecalculator builds an order-lifecycle recalculator.
func NewRecalculator(repo Repository, outbox outboxPublisher) (*Recalculator, error) {
	if repo == nil {
		return nil, fmt.Errorf("orderlifecycle repository required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &Recalculator{repo: repo, outbox: outbox}, nil
}

// Recalculate re-derives the status of the order owning the given order item.
// Returns nil when nothing changed. Must run inside the caller's transaction.
func (r *Recalculator) Recalculate(ctx context.Context, tx *gorm.DB, orderItemID uuid.UUID) (*StatusChange, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction required")
	}
	repo := r.repo.WithTx(tx)

	order, err := repo.FindOrderByItem(ctx, orderItemID)
	if err != nil {
		return nil, fmt.Errorf("load parent order: %w", err)
	}

	// Terminal order states are owned by downstream subsystems.
	if order.Status != enums.OrderStatusCreated && order.Status != enums.OrderStatusAssigned {
		return nil, nil
	}

	statuses, err := repo.ListAssignmentStatusesByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("list assignment statuses: %w", err)
	}
	if len(statuses) == 0 {
		return nil, nil
	}

	next, settled := rollup(statuses)
	if !settled || next == order.Status {
		return nil, nil
	}

	if err := repo.UpdateOrderStatus(ctx, order.ID, next); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	change := &StatusChange{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OldStatus:   order.Status,
		NewStatus:   next,
	}

	event := outbox.DomainEvent{
		EventType:     enums.EventOrderStatusRecalced,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Version:       1,
		Data: payloads.OrderStatusRecalculatedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			OldStatus:   change.OldStatus,
			NewStatus:   change.NewStatus,
		},
	}
	if err := r.outbox.EmitIfNotExists(ctx, tx, event); err != nil {
		return nil, err
	}
	return change, nil
}

// rollup decides the order status once every assignment left
// pending_confirmation. Declined-everywhere cancels the order; any
// confirmation (full or partial) confirms it.
func rollup(statuses []enums.AssignmentStatus) (enums.OrderStatus, bool) {
	declined := 0
	for _, status := range statuses {
		if status == enums.AssignmentStatusPendingConfirmation {
			return "", false
		}
		if status == enums.AssignmentStatusDeclined {
			declined++
		}
	}
	if declined == len(statuses) {
		return enums.OrderStatusCancelled, true
	}
	return enums.OrderStatusConfirmed, true
}
