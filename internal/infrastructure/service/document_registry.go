package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/pkg/logger"
)

// DocumentRegistry tracks which opaque document references (CV, transcript)
// belong to which candidate, so storage can be reclaimed when a candidate is
// removed. Release is advisory: a missing ref is not an error.
type DocumentRegistry struct {
	mu   sync.RWMutex
	refs map[string][]string
	log  *logger.Logger
}

// NewDocumentRegistry creates the registry.
func NewDocumentRegistry(log *logger.Logger) *DocumentRegistry {
	return &DocumentRegistry{
		refs: make(map[string][]string),
		log:  log,
	}
}

// Register replaces the document refs associated with a candidate. Empty refs
// are skipped; a candidate whose refs were all cleared keeps no entry.
func (r *DocumentRegistry) Register(candidateID string, refs ...string) {
	if candidateID == "" {
		return
	}

	var kept []string
	for _, ref := range refs {
		if ref != "" {
			kept = append(kept, ref)
		}
	}

	r.mu.Lock()
	if len(kept) == 0 {
		delete(r.refs, candidateID)
	} else {
		r.refs[candidateID] = kept
	}
	r.mu.Unlock()
}

// Release drops every ref registered for the candidate and returns them.
func (r *DocumentRegistry) Release(candidateID string) []string {
	r.mu.Lock()
	refs := r.refs[candidateID]
	delete(r.refs, candidateID)
	r.mu.Unlock()
	return refs
}

// Refs returns the refs currently registered for a candidate.
func (r *DocumentRegistry) Refs(candidateID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.refs[candidateID]))
	copy(out, r.refs[candidateID])
	return out
}

// TrackingHandler returns an event handler that follows the candidate
// lifecycle on the event bus: added and updated candidates have their document
// refs recorded, removed candidates have them released.
func (r *DocumentRegistry) TrackingHandler(ctx context.Context) shared.EventHandler {
	return shared.EventHandlerFunc(func(event shared.Event) error {
		switch event.Type() {
		case shared.EventCandidateAdded, shared.EventCandidateUpdated:
			payload := event.Payload()
			r.Register(event.AggregateID(),
				payloadRef(payload, "cv_ref"),
				payloadRef(payload, "transcript_ref"),
			)
		case shared.EventCandidateRemoved:
			released := r.Release(event.AggregateID())
			if len(released) > 0 {
				r.log.Info("released documents for removed candidate",
					zap.String("candidate_id", event.AggregateID()),
					zap.Int("count", len(released)),
				)
			}
		}
		return nil
	})
}

func payloadRef(payload map[string]any, key string) string {
	ref, _ := payload[key].(string)
	return ref
}
