package resources

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-cuenca/core"
	"github.com/goliatone/go-cuenca/transport"
)

// Transport is the subset of *transport.Client used by resources.
type Transport interface {
	Get(ctx context.Context, endpoint string, params map[string]string, opts ...transport.RequestOption) (map[string]any, error)
	Post(ctx context.Context, endpoint string, data any, opts ...transport.RequestOption) (map[string]any, error)
	Delete(ctx context.Context, endpoint string, data any, opts ...transport.RequestOption) (map[string]any, error)
}

// Filters accepted by every queryable resource.
var baseQueryParams = []string{"created_after", "created_before", "limit", "page_size"}

// Descriptor is the type-level metadata of a resource: its endpoint and the
// filter names accepted when querying it.
type Descriptor struct {
	Endpoint    string
	QueryParams map[string]struct{}
}

func NewDescriptor(endpoint string, queryParams ...string) Descriptor {
	endpoint = "/" + strings.Trim(strings.TrimSpace(endpoint), "/")
	params := make(map[string]struct{}, len(baseQueryParams)+len(queryParams))
	for _, name := range append(append([]string(nil), baseQueryParams...), queryParams...) {
		if name = strings.TrimSpace(name); name != "" {
			params[name] = struct{}{}
		}
	}
	return Descriptor{Endpoint: endpoint, QueryParams: params}
}

// Path returns the retrieval path {endpoint}/{id}.
func (d Descriptor) Path(id string) string {
	return d.Endpoint + "/" + url.PathEscape(strings.TrimSpace(id))
}

func (d Descriptor) AllowsFilter(name string) bool {
	_, ok := d.QueryParams[strings.TrimSpace(name)]
	return ok
}

func (d Descriptor) FilterNames() []string {
	names := make([]string, 0, len(d.QueryParams))
	for name := range d.QueryParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resource is implemented by the pointer type of every record.
// ResourceDescriptor must not depend on the receiver's fields.
type Resource interface {
	ResourceDescriptor() Descriptor
	ResourceID() string
}

type Record[T any] interface {
	*T
	Resource
}

// Refreshable records copy a fresh representation onto themselves.
type Refreshable[T any] interface {
	*T
	Resource
	Apply(fresh *T)
}

func descriptorOf[T any, P Record[T]]() Descriptor {
	var zero T
	return P(&zero).ResourceDescriptor()
}

// Retrieve fetches {endpoint}/{id} and builds a new record from the response.
func Retrieve[T any, P Record[T]](ctx context.Context, tr Transport, id string, opts ...transport.RequestOption) (P, error) {
	desc := descriptorOf[T, P]()
	if tr == nil {
		return nil, core.NewInternalError("resources: transport is required")
	}
	if strings.TrimSpace(id) == "" {
		return nil, core.NewBadInputError("resources: id is required", map[string]any{"endpoint": desc.Endpoint})
	}
	resp, err := tr.Get(ctx, desc.Path(id), nil, opts...)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T, P](desc, resp)
}

// Refresh re-fetches record by its own id and overwrites it in place, so every
// holder of the pointer observes the new state.
func Refresh[T any, P Refreshable[T]](ctx context.Context, tr Transport, record P, opts ...transport.RequestOption) error {
	desc := descriptorOf[T, P]()
	if record == nil {
		return core.NewContractViolation("resources: refresh requires a record", map[string]any{"endpoint": desc.Endpoint})
	}
	id := strings.TrimSpace(record.ResourceID())
	if id == "" {
		return core.NewContractViolation("resources: refresh requires a record with an id", map[string]any{"endpoint": desc.Endpoint})
	}
	fresh, err := Retrieve[T, P](ctx, tr, id, opts...)
	if err != nil {
		return err
	}
	record.Apply((*T)(fresh))
	return nil
}

func decodeRecord[T any, P Record[T]](desc Descriptor, payload map[string]any) (P, error) {
	out := P(new(T))
	if err := decodeInto(payload, out); err != nil {
		return nil, core.NewDecodeError(err, "resources: decode "+strings.TrimPrefix(desc.Endpoint, "/"), map[string]any{
			"endpoint": desc.Endpoint,
		})
	}
	return out, nil
}
