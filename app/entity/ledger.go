package entity

import "time"

type BillingStatus string

const (
	BillingUnbilled           BillingStatus = "Unbilled"
	BillingPartOfSubscription BillingStatus = "Part of Subscription"
	BillingWaived             BillingStatus = "Waived"
)

func (b BillingStatus) Valid() bool {
	switch b {
	case BillingUnbilled, BillingPartOfSubscription, BillingWaived:
		return true
	default:
		return false
	}
}

// Zeroed reports whether the billing status forces the charged amount to zero
// regardless of any quoted or overridden amount.
func (b BillingStatus) Zeroed() bool {
	return b == BillingPartOfSubscription || b == BillingWaived
}

// ServiceRenderedEntry is written to the billing ledger exactly once per
// completed subscription and never mutated afterwards. Client, service and
// processor names are denormalized so the entry survives deletion of the
// subscription record it came from.
type ServiceRenderedEntry struct {
	SubscriptionID string
	SubjectType    SubjectType
	ClientName     string
	ServiceType    string
	Processor      string
	ServiceDate    time.Time
	AmountCharged  *float64
	BillingStatus  BillingStatus
	Notes          string
}
