package v1

import "github.com/shopspring/decimal"

// DocumentUpload is a document inside a JSON submit request. Content is
// base64; anything that does not decode is taken as raw text.
type DocumentUpload struct {
	Filename string `json:"filename"`
	Content  string `json:"content,omitempty"`
}

// SubmitRequest is the body of POST /api/claims/submit.
type SubmitRequest struct {
	CustomerID string                 `json:"customer_id"`
	ClaimID    string                 `json:"claim_id"`
	TopicID    string                 `json:"topic_id"`
	Documents  []DocumentUpload       `json:"documents"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// ExtractRequest is the body of POST /api/claims/extract.
type ExtractRequest struct {
	ClaimID    string                 `json:"claim_id"`
	CustomerID string                 `json:"customer_id"`
	TopicID    string                 `json:"topic_id"`
	Extracted  map[string]interface{} `json:"extracted"`
}

// DecisionRequest is the body of POST /api/claims/decision.
type DecisionRequest struct {
	ClaimID        string           `json:"claim_id"`
	CustomerID     string           `json:"customer_id"`
	TopicID        string           `json:"topic_id"`
	Decision       string           `json:"decision"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount"`
	Reason         string           `json:"reason"`
}

// SubmitResponse is returned by POST /api/claims/submit.
type SubmitResponse struct {
	ClaimID       string   `json:"claim_id"`
	CustomerID    string   `json:"customer_id"`
	Status        Status   `json:"status"`
	IPFSCIDs      []string `json:"ipfs_cids"`
	TransactionID string   `json:"transaction_id"`
	Timestamp     string   `json:"timestamp"`
}

// ExtractResponse is returned by POST /api/claims/extract.
type ExtractResponse struct {
	ClaimID       string `json:"claim_id"`
	CustomerID    string `json:"customer_id"`
	Status        Status `json:"status"`
	TransactionID string `json:"transaction_id"`
	Timestamp     string `json:"timestamp"`
}

// DecisionResponse is returned by POST /api/claims/decision.
type DecisionResponse struct {
	ClaimID        string          `json:"claim_id"`
	CustomerID     string          `json:"customer_id"`
	Status         Status          `json:"status"`
	Decision       Decision        `json:"decision"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	TransactionID  string          `json:"transaction_id"`
	Timestamp      string          `json:"timestamp"`
}

// HistoryResponse is returned by GET /api/claims/history/:claim_id.
type HistoryResponse struct {
	ClaimID    string   `json:"claim_id"`
	CustomerID string   `json:"customer_id"`
	Status     Status   `json:"status"`
	Events     []*Event `json:"events"`
}

// CustomerClaimsResponse is returned by GET /api/customers/:customer_id/claims.
type CustomerClaimsResponse struct {
	CustomerID string         `json:"customer_id"`
	Claims     []ClaimSummary `json:"claims"`
}

// TopicResponse is returned by POST /api/create-topic.
type TopicResponse struct {
	TopicID string `json:"topic_id"`
}
