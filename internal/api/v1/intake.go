package v1

import "github.com/shopspring/decimal"

// IntakeStatusSubmitted is the dashboard status of a freshly filed claim.
const IntakeStatusSubmitted = "Submitted"

// DocumentAnnotation is what the field extractor and fraud model said about
// one uploaded document. Fraud is null when scoring failed.
type DocumentAnnotation struct {
	Parsed map[string]int `json:"parsed"`
	Fraud  *int           `json:"fraud"`
}

// IntakeDocument is an uploaded file as returned by POST /api/claims.
type IntakeDocument struct {
	Name string             `json:"name"`
	URL  string             `json:"url"`
	Type string             `json:"type"`
	AI   DocumentAnnotation `json:"ai"`
}

// StatusChange is one entry of the dashboard status history.
type StatusChange struct {
	Status string `json:"status"`
	At     string `json:"at"`
}

// IntakeClaim is the dashboard view of a filed claim.
type IntakeClaim struct {
	ID             string           `json:"id"`
	PolicyNumber   string           `json:"policyNumber"`
	ClaimType      string           `json:"claimType"`
	DateOfIncident string           `json:"dateOfIncident"`
	ClaimedAmount  decimal.Decimal  `json:"claimedAmount"`
	Description    string           `json:"description"`
	Documents      []IntakeDocument `json:"documents"`
	Fraud          int              `json:"fraud"`
	Status         string           `json:"status"`
	StatusHistory  []StatusChange   `json:"statusHistory"`
}

// LedgerReceipt identifies the ledger record written for a filed claim.
type LedgerReceipt struct {
	CustomerID    string   `json:"customer_id"`
	TopicID       string   `json:"topic_id"`
	TransactionID string   `json:"transaction_id"`
	Timestamp     string   `json:"timestamp"`
	IPFSCIDs      []string `json:"ipfs_cids"`
}

// IntakeResponse is returned by POST /api/claims.
type IntakeResponse struct {
	OK     bool          `json:"ok"`
	Claim  IntakeClaim   `json:"claim"`
	Ledger LedgerReceipt `json:"ledger"`
}
