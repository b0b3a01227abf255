package list

import (
	"time"

	"github.com/easyshopbd/easyshop/internal/model"
)

// Status is the lifecycle state of a market list.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDelivered Status = "delivered"
	StatusDeclined  Status = "declined"
)

// ParseStatus returns the Status for s, or false if s names no known state.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusDelivered, StatusDeclined:
		return Status(s), true
	}
	return "", false
}

// Mutable reports whether a family member may still edit list content.
func (s Status) Mutable() bool {
	return s == StatusPending || s == StatusApproved
}

// Effect describes the timestamp changes a legal transition applies.
type Effect struct {
	SetApproved    bool
	ClearApproved  bool
	SetDelivered   bool
	ClearDelivered bool
	SetDeclined    bool
	ClearDeclined  bool
}

type transitionKey struct {
	from Status
	to   Status
}

// transitions is the closed table of legal status moves. Anything absent
// here is a no-op, never an error, so double-clicked admin buttons stay
// idempotent.
var transitions = map[transitionKey]Effect{
	{StatusPending, StatusApproved}:   {SetApproved: true},
	{StatusPending, StatusDeclined}:   {SetDeclined: true},
	{StatusApproved, StatusDeclined}:  {SetDeclined: true},
	{StatusApproved, StatusDelivered}: {SetDelivered: true},
	{StatusApproved, StatusPending}:   {ClearApproved: true},
	{StatusDelivered, StatusApproved}: {SetApproved: true, ClearDelivered: true, ClearDeclined: true},
	{StatusDeclined, StatusApproved}:  {SetApproved: true, ClearDelivered: true, ClearDeclined: true},
}

// Allowed reports whether from -> to is a legal transition and, if so,
// which timestamp effects it carries.
func Allowed(from, to Status) (Effect, bool) {
	eff, ok := transitions[transitionKey{from, to}]
	return eff, ok
}

// Apply mutates ml in place for the from -> to transition, stamping and
// clearing timestamps at now. Returns false, leaving ml untouched, when
// the move is not in the table.
func Apply(ml *model.MarketList, to Status, now time.Time) bool {
	eff, ok := Allowed(Status(ml.Status), to)
	if !ok {
		return false
	}
	ml.Status = string(to)
	if eff.SetApproved {
		ml.ApprovedAt = &now
	}
	if eff.ClearApproved {
		ml.ApprovedAt = nil
	}
	if eff.SetDelivered {
		ml.DeliveredAt = &now
	}
	if eff.ClearDelivered {
		ml.DeliveredAt = nil
	}
	if eff.SetDeclined {
		ml.DeclinedAt = &now
	}
	if eff.ClearDeclined {
		ml.DeclinedAt = nil
	}
	return true
}
