package lifecycle

import (
	"github.com/gin-gonic/gin"

	"github.com/claimledger-lab/claimledger/internal/ledger"
)

// Service exposes the claim lifecycle transitions over HTTP.
type Service struct {
	ledger           *ledger.Service
	maxBodySizeBytes int64
}

func NewService(l *ledger.Service, maxBodySizeMB int) *Service {
	if l == nil {
		panic("lifecycle: ledger must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 10
	}
	return &Service{
		ledger:           l,
		maxBodySizeBytes: int64(maxBodySizeMB) * 1024 * 1024,
	}
}

// RegisterRoutes registers the lifecycle routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/create-topic", s.CreateTopicHandler)
	r.POST("/api/claims/submit", s.SubmitHandler)
	r.POST("/api/claims/extract", s.ExtractHandler)
	r.POST("/api/claims/decision", s.DecisionHandler)
}
