package resources

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-cuenca/core"
	"github.com/goliatone/go-cuenca/transport"
	"github.com/google/uuid"
)

var transferDescriptor = NewDescriptor("/transfers", "account_number", "idempotency_key", "status", "user_id")

// Transfer is an outgoing SPEI transfer. Amount is in cents.
type Transfer struct {
	ID             string            `json:"id"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	UserID         string            `json:"user_id"`
	Amount         int               `json:"amount"`
	Status         TransactionStatus `json:"status"`
	Descriptor     string            `json:"descriptor"`
	AccountNumber  string            `json:"account_number"`
	RecipientName  string            `json:"recipient_name"`
	IdempotencyKey string            `json:"idempotency_key"`
	TrackingKey    string            `json:"tracking_key"`
}

func (*Transfer) ResourceDescriptor() Descriptor { return transferDescriptor }

func (t *Transfer) ResourceID() string {
	if t == nil {
		return ""
	}
	return t.ID
}

func (t *Transfer) Apply(fresh *Transfer) {
	if t == nil || fresh == nil {
		return
	}
	t.ID = fresh.ID
	t.CreatedAt = fresh.CreatedAt
	t.UpdatedAt = fresh.UpdatedAt
	t.UserID = fresh.UserID
	t.Amount = fresh.Amount
	t.Status = fresh.Status
	t.Descriptor = fresh.Descriptor
	t.AccountNumber = fresh.AccountNumber
	t.RecipientName = fresh.RecipientName
	t.IdempotencyKey = fresh.IdempotencyKey
	t.TrackingKey = fresh.TrackingKey
}

type TransferRequest struct {
	AccountNumber  string `json:"account_number"`
	Amount         int    `json:"amount"`
	Descriptor     string `json:"descriptor"`
	RecipientName  string `json:"recipient_name"`
	IdempotencyKey string `json:"idempotency_key"`
	UserID         string `json:"user_id,omitempty"`
}

func (r TransferRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.AccountNumber) == "":
		return core.NewBadInputError("resources: transfer account_number is required", nil)
	case r.Amount <= 0:
		return core.NewBadInputError("resources: transfer amount must be > 0", map[string]any{"amount": r.Amount})
	case strings.TrimSpace(r.Descriptor) == "":
		return core.NewBadInputError("resources: transfer descriptor is required", nil)
	case strings.TrimSpace(r.RecipientName) == "":
		return core.NewBadInputError("resources: transfer recipient_name is required", nil)
	}
	return nil
}

// CreateTransfer posts a new transfer. An idempotency key is generated when
// the request does not carry one.
func CreateTransfer(ctx context.Context, tr Transport, req TransferRequest, opts ...transport.RequestOption) (*Transfer, error) {
	if tr == nil {
		return nil, core.NewInternalError("resources: transport is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}
	resp, err := tr.Post(ctx, transferDescriptor.Endpoint, req, opts...)
	if err != nil {
		return nil, err
	}
	return decodeRecord[Transfer, *Transfer](transferDescriptor, resp)
}
