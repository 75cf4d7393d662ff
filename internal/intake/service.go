package intake

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/claimledger-lab/claimledger/internal/blob"
	"github.com/claimledger-lab/claimledger/internal/extraction"
	"github.com/claimledger-lab/claimledger/internal/fraud"
	"github.com/claimledger-lab/claimledger/internal/ledger"
)

const (
	defaultWorkers        = 4
	defaultAdapterTimeout = 30 * time.Second
)

// Options tunes document annotation.
type Options struct {
	// Workers bounds how many documents are annotated at once.
	Workers        int
	ExtractTimeout time.Duration
	ScoreTimeout   time.Duration
	MaxBodySizeMB  int
}

// Service files claims from the dashboard upload form. Extractor, describer
// and scorer are optional; without them documents get the baseline record
// and a null fraud score.
type Service struct {
	ledger    *ledger.Service
	blobs     blob.Store
	extractor extraction.Extractor
	describer extraction.Describer
	scorer    fraud.Scorer
	opts      Options
}

func NewService(
	l *ledger.Service,
	blobs blob.Store,
	extractor extraction.Extractor,
	describer extraction.Describer,
	scorer fraud.Scorer,
	opts Options,
) *Service {
	if l == nil {
		panic("intake: ledger must not be nil")
	}
	if blobs == nil {
		panic("intake: blob store must not be nil")
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.ExtractTimeout <= 0 {
		opts.ExtractTimeout = defaultAdapterTimeout
	}
	if opts.ScoreTimeout <= 0 {
		opts.ScoreTimeout = defaultAdapterTimeout
	}
	if opts.MaxBodySizeMB <= 0 {
		opts.MaxBodySizeMB = 50
	}
	return &Service{
		ledger:    l,
		blobs:     blobs,
		extractor: extractor,
		describer: describer,
		scorer:    scorer,
		opts:      opts,
	}
}

// RegisterRoutes registers the intake routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/claims", s.CreateClaimHandler)
}
