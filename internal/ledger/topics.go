package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claimledger-lab/claimledger/internal/core/storage"
)

// TopicAllocator creates the channel ids that group a claim's events.
type TopicAllocator struct {
	ids    IDGenerator
	topics storage.TopicStore
}

func NewTopicAllocator(ids IDGenerator, topics storage.TopicStore) *TopicAllocator {
	return &TopicAllocator{ids: ids, topics: topics}
}

// Allocate generates a topic id and registers it. A collision with an
// existing topic is accepted and logged.
func (a *TopicAllocator) Allocate(ctx context.Context) (string, error) {
	topicID := a.ids.TopicID()

	created, err := a.topics.RegisterTopic(ctx, topicID)
	if err != nil {
		return "", fmt.Errorf("failed to register topic %s: %w", topicID, err)
	}
	if !created {
		slog.Warn("Topic id collision, reusing existing topic", "topic_id", topicID)
	}
	return topicID, nil
}
