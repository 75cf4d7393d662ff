package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	"github.com/claimledger-lab/claimledger/internal/core/adapters"
	"github.com/claimledger-lab/claimledger/internal/core/storage"
	"github.com/claimledger-lab/claimledger/internal/notify"
)

const (
	defaultCustomerID     = "anonymous"
	defaultMaxInlineBytes = 5 * 1024 * 1024
	defaultNotifyTimeout  = 10 * time.Second
)

// Options tunes the lifecycle service. Zero values fall back to defaults.
type Options struct {
	DefaultCustomerID string
	NotifyRecipient   string
	NotifyTimeout     time.Duration
	// MaxInlineBytes caps how much of each document is considered.
	MaxInlineBytes int
	// Publisher receives every committed event. Nil disables publishing.
	Publisher Publisher
}

// Publisher fans committed events out to live subscribers. Publish must not
// block.
type Publisher interface {
	Publish(claim *v1.Claim, evt *v1.Event)
}

// Service runs the claim lifecycle: submit, extract and decide, plus the
// history and per-customer queries.
type Service struct {
	registry *Registry
	topics   *TopicAllocator
	logger   *EventLogger
	ids      IDGenerator
	store    storage.ClaimStore
	notifier notify.Notifier
	opts     Options
}

func NewService(store storage.ClaimStore, ids IDGenerator, notifier notify.Notifier, opts Options) *Service {
	if store == nil {
		panic("ledger: store must not be nil")
	}
	if ids == nil {
		ids = RandomIDs{}
	}
	if opts.DefaultCustomerID == "" {
		opts.DefaultCustomerID = defaultCustomerID
	}
	if opts.MaxInlineBytes <= 0 {
		opts.MaxInlineBytes = defaultMaxInlineBytes
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = defaultNotifyTimeout
	}
	return &Service{
		registry: NewRegistry(store),
		topics:   NewTopicAllocator(ids, store),
		logger:   NewEventLogger(ids),
		ids:      ids,
		store:    store,
		notifier: notifier,
		opts:     opts,
	}
}

// Receipt is the outcome of a lifecycle transition.
type Receipt struct {
	Claim *v1.Claim
	Event *v1.Event
}

type SubmitInput struct {
	ClaimID    string
	CustomerID string
	TopicID    string
	Documents  []v1.Document
	Metadata   map[string]interface{}
}

type ExtractInput struct {
	ClaimID    string
	CustomerID string
	TopicID    string
	Extracted  map[string]interface{}
}

type DecideInput struct {
	ClaimID        string
	CustomerID     string
	TopicID        string
	Decision       string
	ApprovedAmount *decimal.Decimal
	Reason         string
}

// NewClaimID returns a fresh claim id for callers that need it before Submit.
func (s *Service) NewClaimID() string {
	return s.ids.ClaimID()
}

// CreateTopic allocates and registers a new topic.
func (s *Service) CreateTopic(ctx context.Context) (string, error) {
	return s.topics.Allocate(ctx)
}

// Submit creates the claim or replaces an existing one. The history is reset
// to the single claim_submitted event.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Receipt, error) {
	claimID := in.ClaimID
	if claimID == "" {
		claimID = s.ids.ClaimID()
	}
	customerID := in.CustomerID
	if customerID == "" {
		customerID = s.opts.DefaultCustomerID
	}
	refs, cids := s.documentRefs(in.Documents)

	var evt *v1.Event
	claim, err := s.registry.Apply(ctx, claimID, func(current *v1.Claim) (*Transition, error) {
		topicID := in.TopicID
		if topicID == "" && current != nil {
			topicID = current.TopicID
		}
		topicID, err := s.resolveTopic(ctx, topicID)
		if err != nil {
			return nil, err
		}

		evt, err = s.logger.Log(topicID, &v1.SubmittedPayload{
			ClaimID:    claimID,
			CustomerID: customerID,
			Documents:  refs,
			IPFSCIDs:   cids,
			Metadata:   in.Metadata,
		})
		if err != nil {
			return nil, err
		}
		return &Transition{Replace: true, CustomerID: customerID, TopicID: topicID, Event: evt}, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Claim submitted",
		"claim_id", claimID,
		"customer_id", customerID,
		"topic_id", claim.TopicID,
		"documents", len(refs),
		"transaction_id", evt.TransactionID)
	s.publish(claim, evt)
	return &Receipt{Claim: claim, Event: evt}, nil
}

// Extract appends a claim_extracted event. An unseen claim is created with
// this event as its only entry.
func (s *Service) Extract(ctx context.Context, in ExtractInput) (*Receipt, error) {
	if in.ClaimID == "" {
		return nil, invalidArgumentf("claim_id is required")
	}
	extracted := in.Extracted
	if extracted == nil {
		extracted = placeholderExtraction()
	}

	var evt *v1.Event
	claim, err := s.registry.Apply(ctx, in.ClaimID, func(current *v1.Claim) (*Transition, error) {
		customerID, topicID, err := s.claimHeader(ctx, current, in.CustomerID, in.TopicID)
		if err != nil {
			return nil, err
		}

		evt, err = s.logger.Log(topicID, &v1.ExtractedPayload{
			ClaimID:    in.ClaimID,
			CustomerID: customerID,
			Extracted:  extracted,
		})
		if err != nil {
			return nil, err
		}
		return &Transition{CustomerID: customerID, TopicID: topicID, Event: evt}, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Claim extracted", "claim_id", in.ClaimID, "events", len(claim.Events), "transaction_id", evt.TransactionID)
	s.publish(claim, evt)
	return &Receipt{Claim: claim, Event: evt}, nil
}

// Decide appends a claim_decision event and then sends a best-effort
// notification. Notification failures never affect the result.
func (s *Service) Decide(ctx context.Context, in DecideInput) (*Receipt, error) {
	if in.ClaimID == "" {
		return nil, invalidArgumentf("claim_id is required")
	}
	decision := v1.Decision(in.Decision)
	if decision == "" {
		decision = v1.DecisionRejected
	}
	if !decision.Valid() {
		return nil, invalidArgumentf("decision must be %q or %q, got %q", v1.DecisionApproved, v1.DecisionRejected, in.Decision)
	}
	amount := decimal.Zero
	if in.ApprovedAmount != nil {
		amount = *in.ApprovedAmount
	}
	reason := in.Reason
	if reason == "" {
		reason = decision.DefaultReason()
	}

	var (
		evt     *v1.Event
		payload *v1.DecisionPayload
	)
	claim, err := s.registry.Apply(ctx, in.ClaimID, func(current *v1.Claim) (*Transition, error) {
		customerID, topicID, err := s.claimHeader(ctx, current, in.CustomerID, in.TopicID)
		if err != nil {
			return nil, err
		}

		payload = &v1.DecisionPayload{
			ClaimID:        in.ClaimID,
			CustomerID:     customerID,
			Decision:       decision,
			ApprovedAmount: amount,
			Reason:         reason,
		}
		evt, err = s.logger.Log(topicID, payload)
		if err != nil {
			return nil, err
		}
		return &Transition{CustomerID: customerID, TopicID: topicID, Event: evt}, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Claim decided",
		"claim_id", in.ClaimID,
		"decision", decision,
		"approved_amount", amount.String(),
		"transaction_id", evt.TransactionID)

	s.publish(claim, evt)
	s.notifyDecision(ctx, payload)
	return &Receipt{Claim: claim, Event: evt}, nil
}

// History returns the claim with its full event list.
func (s *Service) History(ctx context.Context, claimID string) (*v1.Claim, error) {
	if claimID == "" {
		return nil, invalidArgumentf("claim_id is required")
	}
	return s.registry.Get(ctx, claimID)
}

// ListByCustomer returns summaries of the customer's claims.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]v1.ClaimSummary, error) {
	if customerID == "" {
		return nil, invalidArgumentf("customer_id is required")
	}
	return s.store.ListClaimsByCustomer(ctx, customerID)
}

// claimHeader decides customer and topic for an appended event. An existing
// claim keeps both; an unseen claim takes the supplied values or defaults.
func (s *Service) claimHeader(ctx context.Context, current *v1.Claim, customerID, topicID string) (string, string, error) {
	if current != nil {
		if topicID != "" && topicID != current.TopicID {
			slog.Warn("Ignoring topic_id for existing claim",
				"claim_id", current.ClaimID,
				"topic_id", current.TopicID,
				"requested_topic_id", topicID)
		}
		return current.CustomerID, current.TopicID, nil
	}

	if customerID == "" {
		customerID = s.opts.DefaultCustomerID
	}
	topicID, err := s.resolveTopic(ctx, topicID)
	if err != nil {
		return "", "", err
	}
	return customerID, topicID, nil
}

// resolveTopic registers a supplied topic or allocates a new one.
func (s *Service) resolveTopic(ctx context.Context, topicID string) (string, error) {
	if topicID == "" {
		return s.topics.Allocate(ctx)
	}
	if _, err := s.store.RegisterTopic(ctx, topicID); err != nil {
		return "", fmt.Errorf("failed to register topic %s: %w", topicID, err)
	}
	return topicID, nil
}

// documentRefs reduces documents to their ledger view. Content beyond the
// inline cap is ignored; each document with content gets a content id.
func (s *Service) documentRefs(docs []v1.Document) ([]v1.DocumentRef, []string) {
	refs := make([]v1.DocumentRef, 0, len(docs))
	cids := []string{}
	for _, d := range docs {
		content := d.Content
		if len(content) > s.opts.MaxInlineBytes {
			content = content[:s.opts.MaxInlineBytes]
		}
		refs = append(refs, v1.DocumentRef{Filename: d.Filename, HasContent: len(content) > 0})
		if len(content) > 0 {
			sum := sha256.Sum256(content)
			cids = append(cids, "sha256-"+hex.EncodeToString(sum[:]))
		}
	}
	return refs, cids
}

func (s *Service) notifyDecision(ctx context.Context, p *v1.DecisionPayload) {
	if s.notifier == nil || s.opts.NotifyRecipient == "" {
		slog.Debug("Decision notification skipped, no recipient configured", "claim_id", p.ClaimID)
		return
	}

	subject := fmt.Sprintf("Claim %s %s", p.ClaimID, p.Decision)
	body := fmt.Sprintf("Claim: %s\nCustomer: %s\nDecision: %s\nApproved amount: %s\nReason: %s\n",
		p.ClaimID, p.CustomerID, p.Decision, p.ApprovedAmount.String(), p.Reason)

	_, err := adapters.Call(ctx, "notify", "send", s.opts.NotifyTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.notifier.Send(ctx, subject, body, s.opts.NotifyRecipient)
	})
	if err != nil {
		slog.Warn("Decision notification failed", "claim_id", p.ClaimID, "error", err)
	}
}

// placeholderExtraction is recorded when Extract is called without fields.
func (s *Service) publish(claim *v1.Claim, evt *v1.Event) {
	if s.opts.Publisher != nil {
		s.opts.Publisher.Publish(claim, evt)
	}
}

func placeholderExtraction() map[string]interface{} {
	return map[string]interface{}{
		"vehicle": map[string]interface{}{
			"make":  "Toyota",
			"model": "Corolla",
			"year":  2018,
		},
		"damage": map[string]interface{}{
			"area":     "front bumper",
			"severity": "moderate",
		},
		"estimated_repair_cost": 1800,
	}
}
