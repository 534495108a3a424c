package domain

import "time"

// CreditStatus represents the review state of a credit request.
type CreditStatus string

const (
	CreditPending  CreditStatus = "Pending"
	CreditApproved CreditStatus = "Approved"
	CreditRejected CreditStatus = "Rejected"
)

// ParseCreditStatus returns the status named by s. Matching is exact.
func ParseCreditStatus(s string) (CreditStatus, bool) {
	switch CreditStatus(s) {
	case CreditPending, CreditApproved, CreditRejected:
		return CreditStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether a reviewer may move a request from s to next.
// Reviewers may set any known status from any status, including the current one.
func (s CreditStatus) CanTransitionTo(next CreditStatus) bool {
	_, ok := ParseCreditStatus(string(next))
	return ok
}

// CreditRequest is a financing ask tied to one client and submitted by one RM.
type CreditRequest struct {
	ID            string       `json:"id"`
	ClientID      string       `json:"client_id"`
	SubmittedBy   string       `json:"submitted_by"`
	RequestAmount float64      `json:"request_amount"`
	TenureMonths  int          `json:"tenure_months"`
	Purpose       string       `json:"purpose"`
	Status        CreditStatus `json:"status"`
	Remarks       string       `json:"remarks"`
	CreatedAt     time.Time    `json:"created_at"`
}

// StatusChange records a single reviewer decision on a credit request.
type StatusChange struct {
	RequestID  string
	From       CreditStatus
	To         CreditStatus
	Remarks    string
	ReviewerID string
	ChangedAt  time.Time
}
