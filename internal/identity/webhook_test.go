// AngelaMos | 2026
// webhook_test.go

package identity

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursekit/internal/core"
)

type fakeSink struct {
	upserts []string
	deletes []string
}

func (f *fakeSink) UpsertMirror(ctx context.Context, externalID, name, email, imageURL string) error {
	f.upserts = append(f.upserts, externalID)
	return nil
}

func (f *fakeSink) DeleteMirror(ctx context.Context, externalID string) error {
	for _, id := range f.deletes {
		if id == externalID {
			return core.NotFoundError("user")
		}
	}
	f.deletes = append(f.deletes, externalID)
	return nil
}

const webhookSecret = "whsec_test"

func deliver(h *WebhookHandler, body string, sign bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(
		http.MethodPost,
		"/identity/webhook",
		bytes.NewBufferString(body),
	)
	if sign {
		r.Header.Set(
			"X-Webhook-Signature",
			core.SignPayload(webhookSecret, []byte(body)),
		)
	}

	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	sink := &fakeSink{}
	h := NewWebhookHandler(sink, webhookSecret)

	rec := deliver(h, `{"type": "user.created", "data": {"id": "usr_1"}}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, sink.upserts)
}

func TestWebhookUserCreatedUpsertsMirror(t *testing.T) {
	sink := &fakeSink{}
	h := NewWebhookHandler(sink, webhookSecret)

	body := `{"type": "user.created", "data": {"id": "usr_1", "name": "A", "email": "a@b.c"}}`
	rec := deliver(h, body, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"usr_1"}, sink.upserts)
}

func TestWebhookUserDeletedTwiceStillSucceeds(t *testing.T) {
	sink := &fakeSink{}
	h := NewWebhookHandler(sink, webhookSecret)

	body := `{"type": "user.deleted", "data": {"id": "usr_1"}}`

	rec := deliver(h, body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	// replayed delete hits a missing mirror row and is still accepted
	rec = deliver(h, body, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookUnknownEventAccepted(t *testing.T) {
	sink := &fakeSink{}
	h := NewWebhookHandler(sink, webhookSecret)

	rec := deliver(h, `{"type": "session.created", "data": {"id": "usr_1"}}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, sink.upserts)
	assert.Empty(t, sink.deletes)
}

func TestWebhookMissingUserID(t *testing.T) {
	h := NewWebhookHandler(&fakeSink{}, webhookSecret)

	rec := deliver(h, `{"type": "user.created", "data": {}}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
