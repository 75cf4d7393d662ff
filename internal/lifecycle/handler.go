package lifecycle

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	httperr "github.com/claimledger-lab/claimledger/internal/core/errors"
	"github.com/claimledger-lab/claimledger/internal/ledger"
)

const (
	msgInvalidJSON      = "Invalid JSON body"
	msgTopicFailed      = "Failed to create topic"
	msgTransitionFailed = "Failed to record claim event"
)

// lifecycleError carries the HTTP error shape from a helper back to the handler.
type lifecycleError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *lifecycleError) Error() string {
	return e.message
}

// CreateTopicHandler handles POST /api/create-topic.
func (s *Service) CreateTopicHandler(c *gin.Context) {
	topicID, err := s.ledger.CreateTopic(c.Request.Context())
	if err != nil {
		slog.Error("Failed to create topic", "error", err)
		writeError(c, &lifecycleError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgTopicFailed,
			details:    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, v1.TopicResponse{TopicID: topicID})
}

// SubmitHandler handles POST /api/claims/submit.
func (s *Service) SubmitHandler(c *gin.Context) {
	var req v1.SubmitRequest
	if lerr := s.bindJSON(c, &req); lerr != nil {
		writeError(c, lerr)
		return
	}

	docs := make([]v1.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, v1.Document{Filename: d.Filename, Content: decodeContent(d.Content)})
	}

	rec, err := s.ledger.Submit(c.Request.Context(), ledger.SubmitInput{
		ClaimID:    req.ClaimID,
		CustomerID: req.CustomerID,
		TopicID:    req.TopicID,
		Documents:  docs,
		Metadata:   req.Metadata,
	})
	if err != nil {
		writeError(c, transitionError(err))
		return
	}

	payload := rec.Event.Payload.(*v1.SubmittedPayload)
	c.JSON(http.StatusOK, v1.SubmitResponse{
		ClaimID:       rec.Claim.ClaimID,
		CustomerID:    rec.Claim.CustomerID,
		Status:        rec.Claim.Status,
		IPFSCIDs:      payload.IPFSCIDs,
		TransactionID: rec.Event.TransactionID,
		Timestamp:     rec.Event.Timestamp,
	})
}

// ExtractHandler handles POST /api/claims/extract.
func (s *Service) ExtractHandler(c *gin.Context) {
	var req v1.ExtractRequest
	if lerr := s.bindJSON(c, &req); lerr != nil {
		writeError(c, lerr)
		return
	}

	rec, err := s.ledger.Extract(c.Request.Context(), ledger.ExtractInput{
		ClaimID:    req.ClaimID,
		CustomerID: req.CustomerID,
		TopicID:    req.TopicID,
		Extracted:  req.Extracted,
	})
	if err != nil {
		writeError(c, transitionError(err))
		return
	}

	c.JSON(http.StatusOK, v1.ExtractResponse{
		ClaimID:       rec.Claim.ClaimID,
		CustomerID:    rec.Claim.CustomerID,
		Status:        rec.Claim.Status,
		TransactionID: rec.Event.TransactionID,
		Timestamp:     rec.Event.Timestamp,
	})
}

// DecisionHandler handles POST /api/claims/decision.
func (s *Service) DecisionHandler(c *gin.Context) {
	var req v1.DecisionRequest
	if lerr := s.bindJSON(c, &req); lerr != nil {
		writeError(c, lerr)
		return
	}

	rec, err := s.ledger.Decide(c.Request.Context(), ledger.DecideInput{
		ClaimID:        req.ClaimID,
		CustomerID:     req.CustomerID,
		TopicID:        req.TopicID,
		Decision:       req.Decision,
		ApprovedAmount: req.ApprovedAmount,
		Reason:         req.Reason,
	})
	if err != nil {
		writeError(c, transitionError(err))
		return
	}

	payload := rec.Event.Payload.(*v1.DecisionPayload)
	c.JSON(http.StatusOK, v1.DecisionResponse{
		ClaimID:        rec.Claim.ClaimID,
		CustomerID:     rec.Claim.CustomerID,
		Status:         rec.Claim.Status,
		Decision:       payload.Decision,
		ApprovedAmount: payload.ApprovedAmount,
		TransactionID:  rec.Event.TransactionID,
		Timestamp:      rec.Event.Timestamp,
	})
}

// bindJSON decodes a size-capped JSON body. An empty body binds as {}.
func (s *Service) bindJSON(c *gin.Context, dst interface{}) *lifecycleError {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodySizeBytes)
	if c.Request.ContentLength == 0 {
		return nil
	}

	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			slog.Warn("Request body exceeds maximum size", "max", s.maxBodySizeBytes)
			return &lifecycleError{
				statusCode: http.StatusRequestEntityTooLarge,
				errorType:  httperr.HttpInvalidJsonError,
				message:    "Request body exceeds maximum allowed size",
				details: map[string]interface{}{
					"max_size_mb": s.maxBodySizeBytes / (1024 * 1024),
				},
			}
		}

		slog.Warn("Invalid JSON body received", "path", c.FullPath(), "error", err)
		return &lifecycleError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
			details:    err.Error(),
		}
	}
	return nil
}

// transitionError maps a ledger failure to its HTTP shape.
func transitionError(err error) *lifecycleError {
	switch {
	case errors.Is(err, ledger.ErrInvalidArgument):
		slog.Warn("Rejected claim transition", "error", err)
		return &lifecycleError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidArgumentError,
			message:    err.Error(),
		}
	case errors.Is(err, ledger.ErrNotFound):
		return &lifecycleError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpClaimNotFoundError,
			message:    err.Error(),
		}
	}

	slog.Error("Claim transition failed", "error", err)
	return &lifecycleError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgTransitionFailed,
		details:    err.Error(),
	}
}

// decodeContent reads base64 document content, falling back to the raw text.
func decodeContent(content string) []byte {
	if content == "" {
		return nil
	}
	if b, err := base64.StdEncoding.DecodeString(content); err == nil {
		return b
	}
	return []byte(content)
}

// writeError serializes a lifecycleError as the JSON HTTP response.
func writeError(c *gin.Context, err *lifecycleError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
