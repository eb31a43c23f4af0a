package entity

import "time"

// DefaultFreeUses is the quota granted to an account created on first access.
const DefaultFreeUses = 10

// SubscriptionGrant is the number of uses added by one subscription event.
const SubscriptionGrant = 50

// Account represents a tenant holding a summarization-use quota.
// PasswordHash is stored but never verified: authentication is mocked and the
// field only reserves the schema seam for a real credential flow.
type Account struct {
	ID            int64
	Email         string
	PasswordHash  string
	RemainingUses int
	CreatedAt     time.Time
}
