package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/pkg/logger"
)

func TestDocumentRegistry_TracksCandidateLifecycle(t *testing.T) {
	r := NewDocumentRegistry(logger.NewNop())
	h := r.TrackingHandler(context.Background())

	require.NoError(t, h.Handle(shared.NewBaseEvent(shared.EventCandidateAdded, "cand-1", map[string]any{
		"cv_ref":         "docs/cv.pdf",
		"transcript_ref": "docs/tr.pdf",
	})))
	assert.Equal(t, []string{"docs/cv.pdf", "docs/tr.pdf"}, r.Refs("cand-1"))

	// An update replaces the tracked set instead of accumulating stale refs.
	require.NoError(t, h.Handle(shared.NewBaseEvent(shared.EventCandidateUpdated, "cand-1", map[string]any{
		"cv_ref":         "docs/cv-v2.pdf",
		"transcript_ref": "",
	})))
	assert.Equal(t, []string{"docs/cv-v2.pdf"}, r.Refs("cand-1"))

	require.NoError(t, h.Handle(shared.NewBaseEvent(shared.EventCandidateRemoved, "cand-1", nil)))
	assert.Empty(t, r.Refs("cand-1"))

	// Unrelated events are ignored.
	require.NoError(t, h.Handle(shared.NewBaseEvent(shared.EventInternSuspended, "cand-1", nil)))
	assert.Empty(t, r.Refs("cand-1"))
}

func TestDocumentRegistry_Register(t *testing.T) {
	r := NewDocumentRegistry(logger.NewNop())

	r.Register("cand-1", "", "docs/tr.pdf")
	assert.Equal(t, []string{"docs/tr.pdf"}, r.Refs("cand-1"))

	// All refs cleared drops the entry entirely.
	r.Register("cand-1", "", "")
	assert.Empty(t, r.Refs("cand-1"))

	r.Register("", "docs/orphan.pdf")
	assert.Empty(t, r.Release(""))
}
