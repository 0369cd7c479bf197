package models

import "testing"

func TestClaimStatusValid(t *testing.T) {
	valid := []ClaimStatus{StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusPaid}
	for _, status := range valid {
		if !status.Valid() {
			t.Errorf("expected %s to be valid", status)
		}
	}

	for _, status := range []ClaimStatus{"", "ALL", "draft", "DELETED"} {
		if status.Valid() {
			t.Errorf("expected %q to be invalid", status)
		}
	}
}

func TestClaimStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ClaimStatus
		to      ClaimStatus
		allowed bool
	}{
		{StatusDraft, StatusPending, true},
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusPaid, true},

		{StatusDraft, StatusApproved, false},
		{StatusDraft, StatusRejected, false},
		{StatusDraft, StatusPaid, false},
		{StatusPending, StatusDraft, false},
		{StatusPending, StatusPaid, false},
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusPaid, StatusApproved, false},
		{StatusPending, StatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestClaimStatusTerminal(t *testing.T) {
	if !StatusRejected.Terminal() {
		t.Error("REJECTED must be terminal")
	}
	if !StatusPaid.Terminal() {
		t.Error("PAID must be terminal")
	}
	for _, status := range []ClaimStatus{StatusDraft, StatusPending, StatusApproved} {
		if status.Terminal() {
			t.Errorf("%s must not be terminal", status)
		}
	}
}

func TestClaimStatusLabel(t *testing.T) {
	if StatusPending.Label() != "Pending review" {
		t.Errorf("unexpected label for PENDING: %s", StatusPending.Label())
	}
	// Unknown statuses fall back to their raw value.
	if ClaimStatus("MYSTERY").Label() != "MYSTERY" {
		t.Error("unknown status should label as itself")
	}
}
