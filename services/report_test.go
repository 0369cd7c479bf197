package services

import (
	"bytes"
	"database/sql/driver"
	"regexp"
	"strings"
	"testing"
	"time"

	"smartclaim-api/models"
)

func fixtureClaims() []models.Claim {
	claimant := &models.User{UserID: "emp-1", Name: "Employee One"}
	approver := &models.User{UserID: "mgr-1", Name: "Manager One"}
	comment := "ok"

	return []models.Claim{
		{
			ClaimID:   "claim-1",
			UserID:    "emp-1",
			Amount:    1000,
			Purpose:   "taxi",
			Status:    models.StatusApproved,
			ClaimDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			User:      claimant,
			Approvals: []models.Approval{
				{ClaimID: "claim-1", ApproverID: "mgr-1", Status: models.StatusApproved, Comment: &comment, Approver: approver},
			},
		},
		{
			ClaimID:   "claim-2",
			UserID:    "emp-1",
			Amount:    250.5,
			Purpose:   "team lunch",
			Status:    models.StatusPending,
			ClaimDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			User:      claimant,
		},
		{
			ClaimID:   "claim-3",
			UserID:    "emp-1",
			Amount:    80,
			Purpose:   "parking",
			Status:    models.StatusRejected,
			ClaimDate: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			User:      claimant,
			Approvals: []models.Approval{
				{ClaimID: "claim-3", ApproverID: "mgr-1", Status: models.StatusRejected, Approver: approver},
			},
		},
	}
}

func TestBuildStatsCountsByStatus(t *testing.T) {
	stats := BuildStats(fixtureClaims())

	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.TotalAmount != 1330.5 {
		t.Fatalf("expected total amount 1330.5, got %v", stats.TotalAmount)
	}
	if stats.Pending != 1 || stats.Approved != 1 || stats.Rejected != 1 || stats.Paid != 0 {
		t.Fatalf("unexpected status counts: %+v", stats)
	}
}

func TestBuildStatsEmptySet(t *testing.T) {
	stats := BuildStats(nil)
	if stats.Total != 0 || stats.TotalAmount != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, fixtureClaims()); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "date,claimant,amount,purpose,status,approvers" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != "2026-03-14,Employee One,1000,taxi,Approved,Manager One" {
		t.Fatalf("unexpected first row: %s", lines[1])
	}
	if lines[2] != "2026-03-10,Employee One,250.5,team lunch,Pending review," {
		t.Fatalf("unexpected second row: %s", lines[2])
	}
}

func TestReportAppliesStatusFilter(t *testing.T) {
	steps := []*queryStep{
		userStep(manager.Email, userRow("mgr-1", manager.Email, "Manager One", models.RoleManager)),
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .claims. WHERE status = \? ORDER BY claim_date DESC`),
			args:    []driver.Value{"APPROVED"},
			columns: claimColumns(),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReportService(db)
	claims, stats, err := svc.Report(manager, ReportFilter{Status: "approved"})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(claims) != 0 || stats.Total != 0 {
		t.Fatalf("expected empty filtered set, got %d claims", len(claims))
	}
	verify(t, state)
}

func TestReportAppliesDateRange(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	steps := []*queryStep{
		userStep(manager.Email, userRow("mgr-1", manager.Email, "Manager One", models.RoleManager)),
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .claims. WHERE claim_date >= \? AND claim_date <= \? ORDER BY claim_date DESC`),
			columns: claimColumns(),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReportService(db)
	if _, _, err := svc.Report(manager, ReportFilter{Status: "ALL", From: &from, To: &to}); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	verify(t, state)
}

func TestReportRejectsUnknownStatusFilter(t *testing.T) {
	steps := []*queryStep{
		userStep(manager.Email, userRow("mgr-1", manager.Email, "Manager One", models.RoleManager)),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReportService(db)
	_, _, err := svc.Report(manager, ReportFilter{Status: "BOGUS"})
	requireKind(t, err, KindValidation)
	verify(t, state)
}

func TestReportRequiresApproverRole(t *testing.T) {
	steps := []*queryStep{
		userStep(employee.Email, userRow("emp-1", employee.Email, "Employee One", models.RoleEmployee)),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReportService(db)
	_, _, err := svc.Report(employee, ReportFilter{})
	requireKind(t, err, KindAuthorization)
	verify(t, state)
}
