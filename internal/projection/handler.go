package projection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/claimledger-lab/claimledger/internal/core/errors"
	"github.com/claimledger-lab/claimledger/internal/ledger"
)

// HandleHistory handles GET /api/claims/history/:claim_id
func (s *Service) HandleHistory(c *gin.Context) {
	claimID := c.Param("claim_id")

	resp, err := s.History(c.Request.Context(), claimID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpClaimNotFoundError,
				Message:   "Claim not found",
				Details:   map[string]string{"claim_id": claimID},
			})
			return
		}
		writeQueryError(c, err, "Failed to load claim history")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleCustomerClaims handles GET /api/customers/:customer_id/claims
func (s *Service) HandleCustomerClaims(c *gin.Context) {
	resp, err := s.CustomerClaims(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		writeQueryError(c, err, "Failed to list customer claims")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func writeQueryError(c *gin.Context, err error, msg string) {
	if errors.Is(err, ledger.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidArgumentError,
			Message:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   msg,
		Details:   err.Error(),
	})
}
