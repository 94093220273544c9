package assignments

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backoffice-backend/internal/orderlifecycle"
	"github.com/orderdesk/backoffice-backend/pkg/enums"
	pkgerrors "github.com/orderdesk/backoffice-backend/pkg/errors"
	"github.com/orderdesk/backoffice-backend/pkg/logger"
	"github.com/orderdesk/backoffice-backend/pkg/metrics"
	"github.com/orderdesk/backoffice-backend/pkg/outbox"
	"github.com/orderdesk/backoffice-backend/pkg/outbox/payloads"
)

const (
	// maxConfirmedQuantity is a defensive input bound, not a business ceiling.
	maxConfirmedQuantity = 999999
	maxRemarksLength     = 1000
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// orderRecalculator signals the order-lifecycle collaborator that a recheck
// is due; the rollup rule itself lives there.
type orderRecalculator interface {
	Recalculate(ctx context.Context, tx *gorm.DB, orderItemID uuid.UUID) (*orderlifecycle.StatusChange, error)
}

// Service applies vendor confirm/decline decisions to assigned order items.
type Service interface {
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*StatusUpdateResult, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	outbox    outboxPublisher
	lifecycle orderRecalculator
	decisions *metrics.DecisionMetrics
	logg      *logger.Logger
}

// NewService builds the assignment status engine with its collaborators.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, lifecycle orderRecalculator, decisions *metrics.DecisionMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if lifecycle == nil {
		return nil, fmt.Errorf("order recalculator required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		outbox:    outbox,
		lifecycle: lifecycle,
		decisions: decisions,
		logg:      logg,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*StatusUpdateResult, error) {
	started := time.Now()
	target, err := s.validate(input)
	if err != nil {
		s.decisions.IncRejected(string(pkgerrors.As(err).Code()))
		return nil, err
	}

	var result StatusUpdateResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindAssignedItem(ctx, input.AssignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignment")
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":           target,
			"vendor_action_at": now,
		}
		confirmed := resolveConfirmedQuantity(target, item.AssignedQuantity, input.ConfirmedQuantity)
		if confirmed != nil {
			updates["confirmed_quantity"] = *confirmed
		}
		if input.VendorRemarks != nil {
			updates["vendor_remarks"] = *input.VendorRemarks
		}

		rows, err := repo.UpdateStatusIfPending(ctx, item.ID, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply vendor decision")
		}
		if rows == 0 {
			// Lost the optimistic check: either another writer decided first
			// or the row vanished underneath us.
			current, reloadErr := repo.FindAssignedItem(ctx, input.AssignmentID)
			if reloadErr != nil {
				if errors.Is(reloadErr, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, reloadErr, "reload assignment")
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, "assignment already processed").
				WithDetails(map[string]string{"currentStatus": current.Status.String()})
		}

		item.Status = target
		item.VendorActionAt = &now
		item.ConfirmedQuantity = confirmed
		if input.VendorRemarks != nil {
			item.VendorRemarks = input.VendorRemarks
		}
		result.Assignment = *item

		event := outbox.DomainEvent{
			EventType:     enums.EventAssignmentDecided,
			AggregateType: enums.AggregateAssignment,
			AggregateID:   item.ID,
			Version:       1,
			Actor:         &outbox.ActorRef{VendorID: &item.VendorID, Role: "vendor"},
			Data: payloads.AssignmentDecidedEvent{
				AssignmentID:      item.ID,
				OrderItemID:       item.OrderItemID,
				VendorID:          item.VendorID,
				Status:            target,
				AssignedQuantity:  item.AssignedQuantity,
				ConfirmedQuantity: confirmed,
				VendorActionAt:    now,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue decision event")
		}

		change, err := s.lifecycle.Recalculate(ctx, tx, item.OrderItemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recalculate order status")
		}
		if change != nil {
			result.OrderStatusUpdated = true
			newStatus := change.NewStatus
			result.NewOrderStatus = &newStatus
		}
		return nil
	})
	if err != nil {
		s.decisions.IncRejected(string(pkgerrors.As(err).Code()))
		return nil, err
	}

	s.decisions.IncApplied(target.String())
	s.decisions.ObserveDuration(target.String(), time.Since(started))
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"assignment_id":        input.AssignmentID.String(),
			"status":               target.String(),
			"order_status_updated": result.OrderStatusUpdated,
		})
		s.logg.Info(logCtx, "vendor decision applied")
	}
	return &result, nil
}

// validate enforces the boundary contract before any store access.
func (s *service) validate(input UpdateStatusInput) (enums.AssignmentStatus, error) {
	if input.AssignmentID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "assignment id required")
	}

	target, err := enums.ParseAssignmentStatus(input.Status)
	if err != nil || !target.IsVendorDecision() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid status value").
			WithDetails(map[string]string{"status": "must be one of vendor_confirmed_full, vendor_confirmed_partial, vendor_declined"})
	}

	if target == enums.AssignmentStatusConfirmedPartial && input.ConfirmedQuantity == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "confirmed quantity required for partial confirmation").
			WithDetails(map[string]string{"confirmedQuantity": "required when status is vendor_confirmed_partial"})
	}
	if input.ConfirmedQuantity != nil {
		if qty := *input.ConfirmedQuantity; qty < 0 || qty > maxConfirmedQuantity {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "confirmed quantity out of range").
				WithDetails(map[string]string{"confirmedQuantity": fmt.Sprintf("must be between 0 and %d", maxConfirmedQuantity)})
		}
	}
	if input.VendorRemarks != nil && utf8.RuneCountInString(*input.VendorRemarks) > maxRemarksLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "vendor remarks too long").
			WithDetails(map[string]string{"vendorRemarks": fmt.Sprintf("must be at most %d characters", maxRemarksLength)})
	}
	return target, nil
}

// resolveConfirmedQuantity applies the per-status defaulting rules: FULL falls
// back to the assigned quantity, DECLINED leaves the column untouched.
func resolveConfirmedQuantity(target enums.AssignmentStatus, assigned int, supplied *int) *int {
	switch target {
	case enums.AssignmentStatusConfirmedFull:
		if supplied != nil {
			return supplied
		}
		qty := assigned
		return &qty
	case enums.AssignmentStatusConfirmedPartial:
		return supplied
	default:
		return nil
	}
}
