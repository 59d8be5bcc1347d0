package resources

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-cuenca/core"
	"github.com/goliatone/go-cuenca/transport"
)

var apiKeyDescriptor = NewDescriptor("/api_keys", "active", "user_id")

// APIKey is a credential pair issued by the API. Secret is only populated in
// the response that created the key.
type APIKey struct {
	ID            string     `json:"id"`
	Secret        string     `json:"secret"`
	CreatedAt     time.Time  `json:"created_at"`
	DeactivatedAt *time.Time `json:"deactivated_at"`
	UserID        string     `json:"user_id"`
}

func (*APIKey) ResourceDescriptor() Descriptor { return apiKeyDescriptor }

func (k *APIKey) ResourceID() string {
	if k == nil {
		return ""
	}
	return k.ID
}

func (k *APIKey) Apply(fresh *APIKey) {
	if k == nil || fresh == nil {
		return
	}
	k.ID = fresh.ID
	k.Secret = fresh.Secret
	k.CreatedAt = fresh.CreatedAt
	k.DeactivatedAt = fresh.DeactivatedAt
	k.UserID = fresh.UserID
}

// Active reports whether the key is usable at now.
func (k *APIKey) Active(now time.Time) bool {
	if k == nil {
		return false
	}
	return k.DeactivatedAt == nil || k.DeactivatedAt.After(now)
}

func CreateAPIKey(ctx context.Context, tr Transport, opts ...transport.RequestOption) (*APIKey, error) {
	if tr == nil {
		return nil, core.NewInternalError("resources: transport is required")
	}
	resp, err := tr.Post(ctx, apiKeyDescriptor.Endpoint, map[string]any{}, opts...)
	if err != nil {
		return nil, err
	}
	return decodeRecord[APIKey, *APIKey](apiKeyDescriptor, resp)
}

// DeactivateAPIKey deactivates a key, optionally after minutes have elapsed.
func DeactivateAPIKey(ctx context.Context, tr Transport, id string, minutes int, opts ...transport.RequestOption) (*APIKey, error) {
	if tr == nil {
		return nil, core.NewInternalError("resources: transport is required")
	}
	if strings.TrimSpace(id) == "" {
		return nil, core.NewBadInputError("resources: id is required", map[string]any{"endpoint": apiKeyDescriptor.Endpoint})
	}
	if minutes < 0 {
		return nil, core.NewBadInputError("resources: minutes must be >= 0", map[string]any{"minutes": minutes})
	}
	var data map[string]any
	if minutes > 0 {
		data = map[string]any{"minutes": minutes}
	}
	resp, err := tr.Delete(ctx, apiKeyDescriptor.Path(id), data, opts...)
	if err != nil {
		return nil, err
	}
	return decodeRecord[APIKey, *APIKey](apiKeyDescriptor, resp)
}
