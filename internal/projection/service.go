package projection

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	"github.com/claimledger-lab/claimledger/internal/ledger"
)

// Service implements the read side of the ledger: claim history and the
// per-customer claim list.
type Service struct {
	ledger *ledger.Service
}

// NewService creates a new projection service.
func NewService(l *ledger.Service) *Service {
	if l == nil {
		panic("projection: ledger must not be nil")
	}
	return &Service{ledger: l}
}

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/claims/history/:claim_id", s.HandleHistory)
	r.GET("/api/customers/:customer_id/claims", s.HandleCustomerClaims)
}

// History returns the claim with its ordered events.
func (s *Service) History(ctx context.Context, claimID string) (*v1.HistoryResponse, error) {
	claim, err := s.ledger.History(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if err := claim.Validate(); err != nil {
		// Stored histories are written by the registry only; drift means a bad write.
		slog.Error("Claim history is inconsistent", "claim_id", claimID, "error", err)
	}

	return &v1.HistoryResponse{
		ClaimID:    claim.ClaimID,
		CustomerID: claim.CustomerID,
		Status:     claim.Status,
		Events:     claim.Events,
	}, nil
}

// CustomerClaims lists a customer's claims in creation order.
func (s *Service) CustomerClaims(ctx context.Context, customerID string) (*v1.CustomerClaimsResponse, error) {
	claims, err := s.ledger.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []v1.ClaimSummary{}
	}
	return &v1.CustomerClaimsResponse{CustomerID: customerID, Claims: claims}, nil
}
