package devkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// query parameters that never act as equality filters
var reservedParams = map[string]struct{}{
	"count":          {},
	"limit":          {},
	"page":           {},
	"page_size":      {},
	"created_after":  {},
	"created_before": {},
}

var idPrefixes = map[string]string{
	"accounts":     "AC",
	"api_keys":     "AK",
	"transactions": "TX",
	"transfers":    "TR",
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	query := r.URL.Query()

	b.mu.Lock()
	matches := b.matchLocked(collection, query)
	b.mu.Unlock()

	if query.Has("count") {
		writeJSON(w, http.StatusOK, map[string]any{"count": len(matches)})
		return
	}

	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		if limit < len(matches) {
			matches = matches[:limit]
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": matches, "next_page_uri": nil})
		return
	}

	size := b.pageSize
	if requested, err := strconv.Atoi(query.Get("page_size")); err == nil && requested > 0 {
		size = requested
	}
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 0 {
		page = 0
	}
	start := page * size
	if start > len(matches) {
		start = len(matches)
	}
	end := start + size
	if end > len(matches) {
		end = len(matches)
	}

	var next any
	if end < len(matches) {
		nextQuery := url.Values{}
		for key, values := range query {
			nextQuery[key] = append([]string(nil), values...)
		}
		nextQuery.Set("page", strconv.Itoa(page+1))
		next = "/" + collection + "?" + nextQuery.Encode()
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": matches[start:end], "next_page_uri": next})
}

func (b *Backend) retrieve(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	object, ok := b.records[collection][id]
	if ok {
		object = present(object)
	}
	b.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, object)
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if key, _ := payload["idempotency_key"].(string); key != "" {
		if existing := b.findByLocked(collection, "idempotency_key", key); existing != nil {
			writeJSON(w, http.StatusOK, present(existing))
			return
		}
	}

	now := b.now().UTC()
	object := cloneObject(payload)
	object["id"] = newID(collection)
	object["created_at"] = now.Format(time.RFC3339Nano)
	switch collection {
	case "transfers":
		object["status"] = "submitted"
		object["updated_at"] = now.Format(time.RFC3339Nano)
	case "api_keys":
		object["secret"] = uuid.NewString()
		object["deactivated_at"] = nil
	}
	b.putLocked(collection, object["id"].(string), object)
	writeJSON(w, http.StatusCreated, object)
}

func (b *Backend) deactivate(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")
	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	object, ok := b.records[collection][id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	minutes := 0
	if raw, ok := payload["minutes"].(json.Number); ok {
		if parsed, err := raw.Int64(); err == nil {
			minutes = int(parsed)
		}
	}
	updated := cloneObject(object)
	updated["deactivated_at"] = b.now().UTC().Add(time.Duration(minutes) * time.Minute).Format(time.RFC3339Nano)
	b.records[collection][id] = updated
	writeJSON(w, http.StatusOK, present(updated))
}

func (b *Backend) matchLocked(collection string, query url.Values) []map[string]any {
	matches := []map[string]any{}
	for _, id := range b.order[collection] {
		object := b.records[collection][id]
		if matchesFilters(object, query) {
			matches = append(matches, present(object))
		}
	}
	return matches
}

func (b *Backend) findByLocked(collection, field, value string) map[string]any {
	for _, id := range b.order[collection] {
		object := b.records[collection][id]
		if fmt.Sprint(object[field]) == value {
			return object
		}
	}
	return nil
}

func matchesFilters(object map[string]any, query url.Values) bool {
	for key := range query {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}
		if fmt.Sprint(object[key]) != query.Get(key) {
			return false
		}
	}
	return true
}

// present hides secrets, which the API only returns on creation.
func present(object map[string]any) map[string]any {
	out := cloneObject(object)
	delete(out, "secret")
	return out
}

func decodeBody(r *http.Request) (map[string]any, error) {
	payload := map[string]any{}
	if r.Body == nil {
		return payload, nil
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		return nil, err
	}
	if strings.TrimSpace(buf.String()) == "" {
		return payload, nil
	}
	decoder := json.NewDecoder(&buf)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

func newID(collection string) string {
	prefix, ok := idPrefixes[collection]
	if !ok {
		prefix = strings.ToUpper(collection)
		if len(prefix) > 2 {
			prefix = prefix[:2]
		}
	}
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
