package query

import (
	"strings"

	"github.com/goliatone/go-cuenca/resources"
)

const (
	TypeRetrieve = "cuenca.query.resource.retrieve"
	TypeFirst    = "cuenca.query.resource.first"
	TypeList     = "cuenca.query.resource.list"
	TypeCount    = "cuenca.query.resource.count"
)

type RetrieveMessage struct {
	ID string
}

func (RetrieveMessage) Type() string { return TypeRetrieve }

func (m RetrieveMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return queryValidationError("id", "id is required")
	}
	return nil
}

// FilterMessage carries resource filters; names are checked against the
// resource descriptor when the query runs.
type FilterMessage struct {
	Filters resources.Filters
}

func (m FilterMessage) Validate() error {
	for name := range m.Filters {
		if strings.TrimSpace(name) == "" {
			return queryValidationError("filters", "filter name is required")
		}
	}
	return nil
}

type FirstMessage struct {
	FilterMessage
}

func (FirstMessage) Type() string { return TypeFirst }

type ListMessage struct {
	FilterMessage
}

func (ListMessage) Type() string { return TypeList }

type CountMessage struct {
	FilterMessage
}

func (CountMessage) Type() string { return TypeCount }
