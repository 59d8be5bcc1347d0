package query

import (
	"context"

	"github.com/goliatone/go-cuenca/resources"
)

// RetrieveQuery fetches one record of type T by id.
type RetrieveQuery[T any, P resources.Record[T]] struct {
	transport resources.Transport
}

func NewRetrieveQuery[T any, P resources.Record[T]](tr resources.Transport) *RetrieveQuery[T, P] {
	return &RetrieveQuery[T, P]{transport: tr}
}

func (q *RetrieveQuery[T, P]) Query(ctx context.Context, msg RetrieveMessage) (P, error) {
	if q == nil || q.transport == nil {
		return nil, queryDependencyError("query: transport is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return resources.Retrieve[T, P](ctx, q.transport, msg.ID)
}

type FirstQuery[T any, P resources.Record[T]] struct {
	transport resources.Transport
}

func NewFirstQuery[T any, P resources.Record[T]](tr resources.Transport) *FirstQuery[T, P] {
	return &FirstQuery[T, P]{transport: tr}
}

// Query returns nil without error when nothing matches.
func (q *FirstQuery[T, P]) Query(ctx context.Context, msg FirstMessage) (P, error) {
	if q == nil || q.transport == nil {
		return nil, queryDependencyError("query: transport is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return resources.First[T, P](ctx, q.transport, msg.Filters)
}

type ListQuery[T any, P resources.Record[T]] struct {
	transport resources.Transport
}

func NewListQuery[T any, P resources.Record[T]](tr resources.Transport) *ListQuery[T, P] {
	return &ListQuery[T, P]{transport: tr}
}

func (q *ListQuery[T, P]) Query(ctx context.Context, msg ListMessage) ([]P, error) {
	if q == nil || q.transport == nil {
		return nil, queryDependencyError("query: transport is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return resources.All[T, P](ctx, q.transport, msg.Filters)
}

type CountQuery[T any, P resources.Record[T]] struct {
	transport resources.Transport
}

func NewCountQuery[T any, P resources.Record[T]](tr resources.Transport) *CountQuery[T, P] {
	return &CountQuery[T, P]{transport: tr}
}

func (q *CountQuery[T, P]) Query(ctx context.Context, msg CountMessage) (int64, error) {
	if q == nil || q.transport == nil {
		return 0, queryDependencyError("query: transport is required")
	}
	if err := msg.Validate(); err != nil {
		return 0, err
	}
	return resources.Count[T, P](ctx, q.transport, msg.Filters)
}
