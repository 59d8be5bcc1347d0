package resources

import "time"

var accountDescriptor = NewDescriptor("/accounts", "account_number", "user_id")

type Account struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UserID        string    `json:"user_id"`
	AccountNumber string    `json:"account_number"`
	Name          string    `json:"name"`
	Institution   string    `json:"institution"`
}

func (*Account) ResourceDescriptor() Descriptor { return accountDescriptor }

func (a *Account) ResourceID() string {
	if a == nil {
		return ""
	}
	return a.ID
}

func (a *Account) Apply(fresh *Account) {
	if a == nil || fresh == nil {
		return
	}
	a.ID = fresh.ID
	a.CreatedAt = fresh.CreatedAt
	a.UserID = fresh.UserID
	a.AccountNumber = fresh.AccountNumber
	a.Name = fresh.Name
	a.Institution = fresh.Institution
}
