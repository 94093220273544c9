package vendororders

import (
	"fmt"

	"github.com/google/uuid"
)

// uuidTextLen is the canonical hyphenated UUID length the parser anchors on.
const uuidTextLen = 36

// Key identifies a derived vendor order. Vendor orders are never persisted;
// the key is reconstructed from assignment rows on every query. Inside the
// service boundary the key stays structured — the delimited string form
// exists only at the API edge.
type Key struct {
	OrderNumber string
	VendorID    uuid.UUID
}

// String serializes the key for clients as "<orderNumber>-<vendorId>".
func (k Key) String() string {
	return fmt.Sprintf("%s-%s", k.OrderNumber, k.VendorID)
}

// ParseKey parses the API-edge form back into a structured key. Order numbers
// routinely contain hyphens ("ORD-2024-001"), so splitting on a delimiter is
// ambiguous; instead the parser anchors on the fixed-length UUID suffix.
func ParseKey(raw string) (Key, error) {
	if len(raw) < uuidTextLen+2 {
		return Key{}, fmt.Errorf("vendor order id %q too short", raw)
	}

	split := len(raw) - uuidTextLen
	if raw[split-1] != '-' {
		return Key{}, fmt.Errorf("vendor order id %q missing separator", raw)
	}

	vendorID, err := uuid.Parse(raw[split:])
	if err != nil {
		return Key{}, fmt.Errorf("vendor order id %q has invalid vendor part: %w", raw, err)
	}

	orderNumber := raw[:split-1]
	if orderNumber == "" {
		return Key{}, fmt.Errorf("vendor order id %q has empty order number", raw)
	}

	return Key{OrderNumber: orderNumber, VendorID: vendorID}, nil
}
