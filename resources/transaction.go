package resources

import "time"

type TransactionStatus string

const (
	TransactionStatusCreated   TransactionStatus = "created"
	TransactionStatusSubmitted TransactionStatus = "submitted"
	TransactionStatusSucceeded TransactionStatus = "succeeded"
	TransactionStatusFailed    TransactionStatus = "failed"
)

var transactionDescriptor = NewDescriptor("/transactions", "status", "user_id", "type")

// Transaction is a ledger movement. Amount is in cents.
type Transaction struct {
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	UserID     string            `json:"user_id"`
	Amount     int               `json:"amount"`
	Status     TransactionStatus `json:"status"`
	Descriptor string            `json:"descriptor"`
	Type       string            `json:"type"`
}

func (*Transaction) ResourceDescriptor() Descriptor { return transactionDescriptor }

func (t *Transaction) ResourceID() string {
	if t == nil {
		return ""
	}
	return t.ID
}

func (t *Transaction) Apply(fresh *Transaction) {
	if t == nil || fresh == nil {
		return
	}
	t.ID = fresh.ID
	t.CreatedAt = fresh.CreatedAt
	t.UserID = fresh.UserID
	t.Amount = fresh.Amount
	t.Status = fresh.Status
	t.Descriptor = fresh.Descriptor
	t.Type = fresh.Type
}
