package services

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"smartclaim-api/models"

	"gorm.io/gorm"
)

// ReportFilter narrows the claims included in a report. Status is a claim
// status or "ALL"; From/To bound the claim date inclusively.
type ReportFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}

// ReportStats are the aggregate counts over a filtered claim set.
type ReportStats struct {
	Total       int     `json:"total"`
	TotalAmount float64 `json:"total_amount"`
	Pending     int     `json:"pending"`
	Approved    int     `json:"approved"`
	Rejected    int     `json:"rejected"`
	Paid        int     `json:"paid"`
}

// ReportService computes filtered, read-only views over claims for managers
// and admins.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Report returns the filtered claims (newest claim date first, with claimant,
// attachments and decisions) and the aggregate stats over that same set.
func (s *ReportService) Report(identity Identity, filter ReportFilter) ([]models.Claim, ReportStats, error) {
	var requester models.User
	if err := s.db.Where("email = ?", identity.Email).First(&requester).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ReportStats{}, notFoundError("User not found")
		}
		return nil, ReportStats{}, persistenceError(err)
	}
	if !models.RoleCanApprove(requester.Role) {
		return nil, ReportStats{}, authorizationError("Insufficient permissions")
	}

	query := s.db.
		Preload("User").
		Preload("Attachments").
		Preload("Approvals").
		Preload("Approvals.Approver")

	status := strings.ToUpper(strings.TrimSpace(filter.Status))
	if status != "" && status != models.StatusFilterAll {
		if !models.ClaimStatus(status).Valid() {
			return nil, ReportStats{}, validationError("Invalid status filter")
		}
		query = query.Where("status = ?", status)
	}
	if filter.From != nil {
		query = query.Where("claim_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("claim_date <= ?", *filter.To)
	}

	var claims []models.Claim
	if err := query.Order("claim_date DESC").Find(&claims).Error; err != nil {
		return nil, ReportStats{}, persistenceError(err)
	}

	return claims, BuildStats(claims), nil
}

// BuildStats computes the aggregate counts for a claim set. Pure projection,
// no side effects.
func BuildStats(claims []models.Claim) ReportStats {
	stats := ReportStats{Total: len(claims)}
	for _, claim := range claims {
		stats.TotalAmount += claim.Amount
		switch claim.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		case models.StatusPaid:
			stats.Paid++
		}
	}
	return stats
}

// WriteCSV serializes a claim set as CSV: one row per claim with the claim
// date, claimant name, amount, purpose, status label and the approver names
// joined with "; ".
func WriteCSV(w io.Writer, claims []models.Claim) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"date", "claimant", "amount", "purpose", "status", "approvers"}); err != nil {
		return err
	}

	for _, claim := range claims {
		claimant := ""
		if claim.User != nil {
			claimant = claim.User.Name
		}

		approvers := make([]string, 0, len(claim.Approvals))
		for _, approval := range claim.Approvals {
			if approval.Approver != nil {
				approvers = append(approvers, approval.Approver.Name)
			}
		}

		record := []string{
			claim.ClaimDate.Format("2006-01-02"),
			claimant,
			strconv.FormatFloat(claim.Amount, 'f', -1, 64),
			claim.Purpose,
			claim.Status.Label(),
			strings.Join(approvers, "; "),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
