package assignments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orderdesk/backoffice-backend/internal/orderlifecycle"
	"github.com/orderdesk/backoffice-backend/pkg/db/models"
	"github.com/orderdesk/backoffice-backend/pkg/enums"
	pkgerrors "github.com/orderdesk/backoffice-backend/pkg/errors"
	"github.com/orderdesk/backoffice-backend/pkg/outbox"
)

type stubAssignmentsRepo struct {
	item        *models.AssignedOrderItem
	findErr     error
	updates     map[string]any
	rowsUpdated int64
	updateErr   error
	updateCalls int
}

func (s *stubAssignmentsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubAssignmentsRepo) FindAssignedItem(ctx context.Context, id uuid.UUID) (*models.AssignedOrderItem, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.item == nil || s.item.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.item
	return &copied, nil
}

func (s *stubAssignmentsRepo) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	s.updateCalls++
	s.updates = updates
	return s.rowsUpdated, s.updateErr
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type stubOutbox struct {
	events []outbox.DomainEvent
}

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type stubRecalculator struct {
	change *orderlifecycle.StatusChange
	calls  int
}

func (s *stubRecalculator) Recalculate(ctx context.Context, tx *gorm.DB, orderItemID uuid.UUID) (*orderlifecycle.StatusChange, error) {
	s.calls++
	return s.change, nil
}

func pendingAssignment() *models.AssignedOrderItem {
	return &models.AssignedOrderItem{
		ID:               uuid.New(),
		OrderItemID:      uuid.New(),
		VendorID:         uuid.New(),
		AssignedQuantity: 100,
		Status:           enums.AssignmentStatusPendingConfirmation,
		AssignedAt:       time.Now().Add(-time.Hour),
	}
}

func newTestService(t *testing.T, repo *stubAssignmentsRepo, ob *stubOutbox, recalc *stubRecalculator) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, ob, recalc, nil, nil)
	require.NoError(t, err)
	return svc
}

func TestUpdateStatusFullDefaultsConfirmedQuantity(t *testing.T) {
	item := pendingAssignment()
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 1}
	ob := &stubOutbox{}
	recalc := &stubRecalculator{}
	svc := newTestService(t, repo, ob, recalc)

	result, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID: item.ID,
		Status:       "vendor_confirmed_full",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Assignment.ConfirmedQuantity)
	assert.Equal(t, item.AssignedQuantity, *result.Assignment.ConfirmedQuantity)
	assert.Equal(t, enums.AssignmentStatusConfirmedFull, result.Assignment.Status)
	assert.NotNil(t, result.Assignment.VendorActionAt)
	assert.Equal(t, item.AssignedQuantity, repo.updates["confirmed_quantity"])

	require.Len(t, ob.events, 1)
	assert.Equal(t, enums.EventAssignmentDecided, ob.events[0].EventType)
	assert.Equal(t, 1, recalc.calls)
}

func TestUpdateStatusPartialRequiresConfirmedQuantity(t *testing.T) {
	item := pendingAssignment()
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 1}
	svc := newTestService(t, repo, &stubOutbox{}, &stubRecalculator{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID: item.ID,
		Status:       "vendor_confirmed_partial",
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "confirmedQuantity")
	// no store access at all
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateStatusPartialPersistsSuppliedQuantityAndRemarks(t *testing.T) {
	item := pendingAssignment()
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 1}
	ob := &stubOutbox{}
	svc := newTestService(t, repo, ob, &stubRecalculator{})

	qty := 80
	remarks := "short on stock"
	result, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID:      item.ID,
		Status:            "vendor_confirmed_partial",
		ConfirmedQuantity: &qty,
		VendorRemarks:     &remarks,
	})
	require.NoError(t, err)

	assert.Equal(t, enums.AssignmentStatusConfirmedPartial, result.Assignment.Status)
	require.NotNil(t, result.Assignment.ConfirmedQuantity)
	assert.Equal(t, 80, *result.Assignment.ConfirmedQuantity)
	assert.Equal(t, 80, repo.updates["confirmed_quantity"])
	assert.Equal(t, remarks, repo.updates["vendor_remarks"])
}

func TestUpdateStatusDeclinedLeavesQuantityUnset(t *testing.T) {
	item := pendingAssignment()
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 1}
	svc := newTestService(t, repo, &stubOutbox{}, &stubRecalculator{})

	result, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID: item.ID,
		Status:       "vendor_declined",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Assignment.ConfirmedQuantity)
	_, present := repo.updates["confirmed_quantity"]
	assert.False(t, present)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	item := pendingAssignment()
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 1}
	svc := newTestService(t, repo, &stubOutbox{}, &stubRecalculator{})

	for _, status := range []string{"", "shipped", "invoiced", "pending_confirmation"} {
		_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			AssignmentID: item.ID,
			Status:       status,
		})
		require.Error(t, err, "status %q", status)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateStatusQuantityBounds(t *testing.T) {
	item := pendingAssignment()
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 1}
	svc := newTestService(t, repo, &stubOutbox{}, &stubRecalculator{})

	for _, qty := range []int{-1, 1000000} {
		q := qty
		_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			AssignmentID:      item.ID,
			Status:            "vendor_confirmed_partial",
			ConfirmedQuantity: &q,
		})
		require.Error(t, err, "qty %d", qty)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
}

func TestUpdateStatusRemarksTooLong(t *testing.T) {
	item := pendingAssignment()
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 1}
	svc := newTestService(t, repo, &stubOutbox{}, &stubRecalculator{})

	remarks := strings.Repeat("a", 1001)
	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID:  item.ID,
		Status:        "vendor_declined",
		VendorRemarks: &remarks,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateStatusRemarksLengthCountsRunes(t *testing.T) {
	item := pendingAssignment()
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 1}
	svc := newTestService(t, repo, &stubOutbox{}, &stubRecalculator{})

	// 1000 two-byte characters exceed the limit in bytes but not in runes.
	remarks := strings.Repeat("é", 1000)
	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID:  item.ID,
		Status:        "vendor_declined",
		VendorRemarks: &remarks,
	})
	require.NoError(t, err)
	assert.Equal(t, remarks, repo.updates["vendor_remarks"])

	tooLong := strings.Repeat("é", 1001)
	_, err = svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID:  item.ID,
		Status:        "vendor_declined",
		VendorRemarks: &tooLong,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := &stubAssignmentsRepo{rowsUpdated: 0}
	svc := newTestService(t, repo, &stubOutbox{}, &stubRecalculator{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID: uuid.New(),
		Status:       "vendor_confirmed_full",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateStatusConflictWhenAlreadyProcessed(t *testing.T) {
	item := pendingAssignment()
	item.Status = enums.AssignmentStatusConfirmedFull
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 0}
	ob := &stubOutbox{}
	svc := newTestService(t, repo, ob, &stubRecalculator{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID: item.ID,
		Status:       "vendor_declined",
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "vendor_confirmed_full", details["currentStatus"])
	assert.Empty(t, ob.events)
}

func TestUpdateStatusReportsOrderStatusChange(t *testing.T) {
	item := pendingAssignment()
	repo := &stubAssignmentsRepo{item: item, rowsUpdated: 1}
	recalc := &stubRecalculator{change: &orderlifecycle.StatusChange{
		OrderID:   uuid.New(),
		OldStatus: enums.OrderStatusAssigned,
		NewStatus: enums.OrderStatusConfirmed,
	}}
	svc := newTestService(t, repo, &stubOutbox{}, recalc)

	result, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AssignmentID: item.ID,
		Status:       "vendor_confirmed_full",
	})
	require.NoError(t, err)

	assert.True(t, result.OrderStatusUpdated)
	require.NotNil(t, result.NewOrderStatus)
	assert.Equal(t, enums.OrderStatusConfirmed, *result.NewOrderStatus)
}
