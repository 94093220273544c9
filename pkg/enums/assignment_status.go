package enums

import "fmt"

// AssignmentStatus tracks the lifecycle of one assigned order item. Only the
// vendor-decision transition out of pending_confirmation is owned by this
// service; the later stages are driven by dispatch and warehouse subsystems.
type AssignmentStatus string

const (
	AssignmentStatusPendingConfirmation AssignmentStatus = "pending_confirmation"
	AssignmentStatusConfirmedFull       AssignmentStatus = "vendor_confirmed_full"
	AssignmentStatusConfirmedPartial    AssignmentStatus = "vendor_confirmed_partial"
	AssignmentStatusDeclined            AssignmentStatus = "vendor_declined"
	AssignmentStatusInvoiced            AssignmentStatus = "invoiced"
	AssignmentStatusDispatched          AssignmentStatus = "dispatched"
	AssignmentStatusStoreReceived       AssignmentStatus = "store_received"
	AssignmentStatusVerifiedOK          AssignmentStatus = "verified_ok"
	AssignmentStatusVerifiedMismatch    AssignmentStatus = "verified_mismatch"
	AssignmentStatusCompleted           AssignmentStatus = "completed"
)

var validAssignmentStatuses = []AssignmentStatus{
	AssignmentStatusPendingConfirmation,
	AssignmentStatusConfirmedFull,
	AssignmentStatusConfirmedPartial,
	AssignmentStatusDeclined,
	AssignmentStatusInvoiced,
	AssignmentStatusDispatched,
	AssignmentStatusStoreReceived,
	AssignmentStatusVerifiedOK,
	AssignmentStatusVerifiedMismatch,
	AssignmentStatusCompleted,
}

// VendorDecisionStatuses are the targets a vendor may move a pending
// assignment to.
var VendorDecisionStatuses = []AssignmentStatus{
	AssignmentStatusConfirmedFull,
	AssignmentStatusConfirmedPartial,
	AssignmentStatusDeclined,
}

// ConfirmedStatuses are the statuses the accounts view treats as confirmed.
var ConfirmedStatuses = []AssignmentStatus{
	AssignmentStatusConfirmedFull,
	AssignmentStatusConfirmedPartial,
}

// String implements fmt.Stringer.
func (a AssignmentStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AssignmentStatus.
func (a AssignmentStatus) IsValid() bool {
	for _, candidate := range validAssignmentStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// IsVendorDecision reports whether the status is one of the three terminal
// vendor decisions.
func (a AssignmentStatus) IsVendorDecision() bool {
	for _, candidate := range VendorDecisionStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// IsConfirmed reports whether the status counts as confirmed for billing.
func (a AssignmentStatus) IsConfirmed() bool {
	return a == AssignmentStatusConfirmedFull || a == AssignmentStatusConfirmedPartial
}

// ParseAssignmentStatus converts raw input into an AssignmentStatus.
func ParseAssignmentStatus(value string) (AssignmentStatus, error) {
	for _, candidate := range validAssignmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid assignment status %q", value)
}
