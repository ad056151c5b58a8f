// Package topics keeps per-topic publish statistics for diagnostics.
package topics

import (
	"sort"
	"sync"
	"time"

	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
)

// TopicInfo holds metadata and statistics for a topic
type TopicInfo struct {
	Topic         string    `json:"topic"`
	MessageType   string    `json:"message_type"`
	Direction     string    `json:"direction"`
	PublishCount  int64     `json:"publish_count"`
	FailureCount  int64     `json:"failure_count"`
	LastPublished time.Time `json:"last_published,omitempty"`
	LastError     string    `json:"last_error,omitempty"`

	lastPayload []byte
}

// Directions
const (
	DirectionOutbound = "OUTBOUND"
)

// TopicRegistry maintains information about topics
type TopicRegistry struct {
	logger customlog.Logger
	topics map[string]*TopicInfo
	mu     sync.RWMutex
}

// NewTopicRegistry creates a new topic registry
func NewTopicRegistry(logger customlog.Logger) *TopicRegistry {
	return &TopicRegistry{
		logger: logger,
		topics: make(map[string]*TopicInfo),
	}
}

// Register declares a topic. Registering an existing topic updates its type
// and keeps its statistics.
func (r *TopicRegistry) Register(topic, messageType, direction string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, exists := r.topics[topic]; exists {
		info.MessageType = messageType
		info.Direction = direction
		return
	}

	r.topics[topic] = &TopicInfo{
		Topic:       topic,
		MessageType: messageType,
		Direction:   direction,
	}
	r.logger.Debugf("Registered topic %s (%s, %s)", topic, messageType, direction)
}

// RecordPublish counts a successful publish and keeps its serialized payload.
func (r *TopicRegistry) RecordPublish(topic string, payload []byte, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info := r.getOrCreate(topic)
	info.PublishCount++
	info.LastPublished = at
	info.lastPayload = append(info.lastPayload[:0], payload...)
}

// RecordFailure counts a failed publish.
func (r *TopicRegistry) RecordFailure(topic string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info := r.getOrCreate(topic)
	info.FailureCount++
	if err != nil {
		info.LastError = err.Error()
	}
}

// GetTopicInfo gets information for a topic
func (r *TopicRegistry) GetTopicInfo(topic string) (TopicInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, exists := r.topics[topic]
	if !exists {
		return TopicInfo{}, false
	}

	// Return a copy to avoid race conditions
	infoCopy := *info
	infoCopy.lastPayload = nil
	return infoCopy, true
}

// LastPayload returns a copy of the most recent payload published on topic.
func (r *TopicRegistry) LastPayload(topic string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, exists := r.topics[topic]
	if !exists || len(info.lastPayload) == 0 {
		return nil, false
	}
	return append([]byte(nil), info.lastPayload...), true
}

// GetTopicStats returns a snapshot of every topic
func (r *TopicRegistry) GetTopicStats() []TopicInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make([]TopicInfo, 0, len(r.topics))
	for _, info := range r.topics {
		infoCopy := *info
		infoCopy.lastPayload = nil
		stats = append(stats, infoCopy)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Topic < stats[j].Topic })
	return stats
}

// getOrCreate must be called with the lock held
func (r *TopicRegistry) getOrCreate(topic string) *TopicInfo {
	info, exists := r.topics[topic]
	if !exists {
		info = &TopicInfo{Topic: topic, Direction: DirectionOutbound}
		r.topics[topic] = info
	}
	return info
}
