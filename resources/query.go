package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-cuenca/core"
	"github.com/goliatone/go-cuenca/transport"
)

// Filters are query parameters; names must be in the resource's QueryParams.
type Filters map[string]string

func (d Descriptor) queryParams(filters Filters, extra map[string]string) (map[string]string, error) {
	params := make(map[string]string, len(filters)+len(extra))
	for name, value := range filters {
		name = strings.TrimSpace(name)
		if !d.AllowsFilter(name) {
			return nil, core.NewBadInputError(
				fmt.Sprintf("resources: %q is not a valid filter for %s", name, d.Endpoint),
				map[string]any{"endpoint": d.Endpoint, "filter": name, "allowed": d.FilterNames()},
			)
		}
		params[name] = value
	}
	for name, value := range extra {
		params[name] = value
	}
	return params, nil
}

// First returns the first matching record, or nil when nothing matches.
func First[T any, P Record[T]](ctx context.Context, tr Transport, filters Filters, opts ...transport.RequestOption) (P, error) {
	items, _, err := fetchPage[T, P](ctx, tr, filters, map[string]string{"limit": "1"}, opts)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

// One returns the single matching record. It fails when zero or more than one
// record matches.
func One[T any, P Record[T]](ctx context.Context, tr Transport, filters Filters, opts ...transport.RequestOption) (P, error) {
	desc := descriptorOf[T, P]()
	items, _, err := fetchPage[T, P](ctx, tr, filters, map[string]string{"limit": "2"}, opts)
	if err != nil {
		return nil, err
	}
	switch len(items) {
	case 0:
		return nil, core.NewNoResultError("resources: no "+strings.TrimPrefix(desc.Endpoint, "/")+" matched", map[string]any{"endpoint": desc.Endpoint})
	case 1:
		return items[0], nil
	default:
		return nil, core.NewMultipleResultsError("resources: more than one "+strings.TrimPrefix(desc.Endpoint, "/")+" matched", map[string]any{"endpoint": desc.Endpoint})
	}
}

// Count asks the API for the number of matching records.
func Count[T any, P Record[T]](ctx context.Context, tr Transport, filters Filters, opts ...transport.RequestOption) (int64, error) {
	desc := descriptorOf[T, P]()
	if tr == nil {
		return 0, core.NewInternalError("resources: transport is required")
	}
	params, err := desc.queryParams(filters, map[string]string{"count": "true"})
	if err != nil {
		return 0, err
	}
	resp, err := tr.Get(ctx, desc.Endpoint, params, opts...)
	if err != nil {
		return 0, err
	}
	raw, ok := resp["count"]
	if !ok {
		return 0, core.NewDecodeError(fmt.Errorf("missing count"), "resources: count response has no count", map[string]any{"endpoint": desc.Endpoint})
	}
	count, err := toInt64(raw)
	if err != nil {
		return 0, core.NewDecodeError(err, "resources: decode count", map[string]any{"endpoint": desc.Endpoint})
	}
	return count, nil
}

// All walks every page following next_page_uri and returns the records in
// the order the API returned them.
func All[T any, P Record[T]](ctx context.Context, tr Transport, filters Filters, opts ...transport.RequestOption) ([]P, error) {
	items, next, err := fetchPage[T, P](ctx, tr, filters, nil, opts)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for next != "" {
		if _, ok := seen[next]; ok {
			break
		}
		seen[next] = struct{}{}

		resp, err := tr.Get(ctx, next, nil, opts...)
		if err != nil {
			return nil, err
		}
		var page []P
		page, next, err = decodePage[T, P](descriptorOf[T, P](), resp)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)
	}
	return items, nil
}

func fetchPage[T any, P Record[T]](
	ctx context.Context,
	tr Transport,
	filters Filters,
	extra map[string]string,
	opts []transport.RequestOption,
) ([]P, string, error) {
	desc := descriptorOf[T, P]()
	if tr == nil {
		return nil, "", core.NewInternalError("resources: transport is required")
	}
	params, err := desc.queryParams(filters, extra)
	if err != nil {
		return nil, "", err
	}
	resp, err := tr.Get(ctx, desc.Endpoint, params, opts...)
	if err != nil {
		return nil, "", err
	}
	return decodePage[T, P](desc, resp)
}

func decodePage[T any, P Record[T]](desc Descriptor, resp map[string]any) ([]P, string, error) {
	fields := map[string]any{"endpoint": desc.Endpoint}
	rawItems, ok := resp["items"].([]any)
	if !ok {
		return nil, "", core.NewDecodeError(fmt.Errorf("items is %T", resp["items"]), "resources: page has no items list", fields)
	}
	items := make([]P, 0, len(rawItems))
	for index, raw := range rawItems {
		payload, ok := raw.(map[string]any)
		if !ok {
			return nil, "", core.NewDecodeError(fmt.Errorf("item %d is %T", index, raw), "resources: page item is not an object", fields)
		}
		item, err := decodeRecord[T, P](desc, payload)
		if err != nil {
			return nil, "", err
		}
		items = append(items, item)
	}
	next, _ := resp["next_page_uri"].(string)
	return items, strings.TrimSpace(next), nil
}

func toInt64(value any) (int64, error) {
	switch typed := value.(type) {
	case json.Number:
		return typed.Int64()
	case float64:
		return int64(typed), nil
	case int:
		return int64(typed), nil
	case int64:
		return typed, nil
	default:
		return 0, fmt.Errorf("unexpected count type %T", value)
	}
}
