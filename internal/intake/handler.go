package intake

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	httperr "github.com/claimledger-lab/claimledger/internal/core/errors"
	"github.com/claimledger-lab/claimledger/internal/ledger"
)

// claimForm is the dashboard upload form.
type claimForm struct {
	PolicyNumber   string `form:"policyNumber"`
	ClaimType      string `form:"claimType"`
	DateOfIncident string `form:"dateOfIncident"`
	ClaimedAmount  string `form:"claimedAmount"`
	Description    string `form:"description"`
	CustomerID     string `form:"customerId"`
}

// intakeError carries the HTTP error shape from a helper back to the handler.
type intakeError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *intakeError) Error() string {
	return e.message
}

// CreateClaimHandler handles POST /api/claims.
func (s *Service) CreateClaimHandler(c *gin.Context) {
	form, files, amount, ierr := s.parseForm(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	ctx := c.Request.Context()
	claimID := s.ledger.NewClaimID()

	docs, err := s.annotateAll(ctx, claimID, files)
	if err != nil {
		slog.Error("Failed to store claim documents", "claim_id", claimID, "error", err)
		writeError(c, &intakeError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    "Failed to store claim documents",
			details:    err.Error(),
		})
		return
	}

	fraudFlag := claimFraud(docs)
	ledgerDocs := make([]v1.Document, 0, len(docs))
	intakeDocs := make([]v1.IntakeDocument, 0, len(docs))
	for _, d := range docs {
		ledgerDocs = append(ledgerDocs, v1.Document{Filename: d.doc.Name, Content: d.content})
		intakeDocs = append(intakeDocs, d.doc)
	}

	rec, err := s.ledger.Submit(ctx, ledger.SubmitInput{
		ClaimID:    claimID,
		CustomerID: form.CustomerID,
		Documents:  ledgerDocs,
		Metadata: map[string]interface{}{
			"policyNumber":   form.PolicyNumber,
			"claimType":      form.ClaimType,
			"dateOfIncident": form.DateOfIncident,
			"claimedAmount":  amount,
			"description":    form.Description,
			"fraud":          fraudFlag,
		},
	})
	if err != nil {
		slog.Error("Failed to record claim submission", "claim_id", claimID, "error", err)
		writeError(c, &intakeError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    "Failed to record claim submission",
			details:    err.Error(),
		})
		return
	}

	slog.Info("Claim filed",
		"claim_id", claimID,
		"policy_number", form.PolicyNumber,
		"documents", len(intakeDocs),
		"fraud", fraudFlag)

	payload := rec.Event.Payload.(*v1.SubmittedPayload)
	c.JSON(http.StatusOK, v1.IntakeResponse{
		OK: true,
		Claim: v1.IntakeClaim{
			ID:             claimID,
			PolicyNumber:   form.PolicyNumber,
			ClaimType:      form.ClaimType,
			DateOfIncident: form.DateOfIncident,
			ClaimedAmount:  amount,
			Description:    form.Description,
			Documents:      intakeDocs,
			Fraud:          fraudFlag,
			Status:         v1.IntakeStatusSubmitted,
			StatusHistory:  []v1.StatusChange{},
		},
		Ledger: v1.LedgerReceipt{
			CustomerID:    rec.Claim.CustomerID,
			TopicID:       rec.Claim.TopicID,
			TransactionID: rec.Event.TransactionID,
			Timestamp:     rec.Event.Timestamp,
			IPFSCIDs:      payload.IPFSCIDs,
		},
	})
}

// parseForm binds the multipart form and checks the required fields.
func (s *Service) parseForm(c *gin.Context) (*claimForm, []*multipart.FileHeader, decimal.Decimal, *intakeError) {
	maxBytes := int64(s.opts.MaxBodySizeMB) * 1024 * 1024
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	var form claimForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, decimal.Zero, &intakeError{
				statusCode: http.StatusRequestEntityTooLarge,
				errorType:  httperr.HttpInvalidJsonError,
				message:    "Request body exceeds maximum allowed size",
				details:    map[string]interface{}{"max_size_mb": s.opts.MaxBodySizeMB},
			}
		}
		slog.Warn("Invalid claim form received", "error", err)
		return nil, nil, decimal.Zero, &intakeError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Invalid form body",
			details:    err.Error(),
		}
	}

	var missing []string
	for name, v := range map[string]string{
		"policyNumber":   form.PolicyNumber,
		"claimType":      form.ClaimType,
		"dateOfIncident": form.DateOfIncident,
		"claimedAmount":  form.ClaimedAmount,
		"description":    form.Description,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, nil, decimal.Zero, &intakeError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidArgumentError,
			message:    "Missing required form fields",
			details:    map[string]interface{}{"fields": missing},
		}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(form.ClaimedAmount))
	if err != nil {
		return nil, nil, decimal.Zero, &intakeError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidArgumentError,
			message:    "claimedAmount must be a number",
			details:    err.Error(),
		}
	}

	var files []*multipart.FileHeader
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for _, fh := range mf.File["files"] {
			if fh.Filename == "" {
				continue
			}
			files = append(files, fh)
		}
	}
	return &form, files, amount, nil
}

// writeError serializes an intakeError as the JSON HTTP response.
func writeError(c *gin.Context, err *intakeError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
