// AngelaMos | 2026
// webhook.go

package identity

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/coursekit/internal/core"
)

// WebhookUserSink is the mirror-maintenance surface the webhook needs:
// upserting and removing local user records as the provider reports account
// changes.
type WebhookUserSink interface {
	UpsertMirror(
		ctx context.Context,
		externalID, name, email, imageURL string,
	) error
	DeleteMirror(ctx context.Context, externalID string) error
}

type WebhookEvent struct {
	Type string          `json:"type"`
	Data WebhookUserData `json:"data"`
}

type WebhookUserData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

type WebhookHandler struct {
	users  WebhookUserSink
	secret string
}

func NewWebhookHandler(users WebhookUserSink, secret string) *WebhookHandler {
	return &WebhookHandler{users: users, secret: secret}
}

func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/identity/webhook", h.Handle)
}

const maxWebhookBody = 1 << 20

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		core.BadRequest(w, "unreadable request body")
		return
	}

	if h.secret != "" {
		signature := r.Header.Get("X-Webhook-Signature")
		if !core.VerifySignature(h.secret, body, signature) {
			core.Unauthorized(w, "invalid webhook signature")
			return
		}
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		core.BadRequest(w, "invalid webhook payload")
		return
	}

	if event.Data.ID == "" {
		core.BadRequest(w, "webhook payload missing user id")
		return
	}

	ctx := r.Context()

	switch event.Type {
	case "user.created", "user.updated":
		err = h.users.UpsertMirror(
			ctx,
			event.Data.ID,
			event.Data.Name,
			event.Data.Email,
			event.Data.ImageURL,
		)
	case "user.deleted":
		err = h.users.DeleteMirror(ctx, event.Data.ID)
		if errors.Is(err, core.ErrNotFound) {
			err = nil
		}
	default:
		slog.Debug("ignoring webhook event", "type", event.Type)
		core.NoContent(w)
		return
	}

	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
