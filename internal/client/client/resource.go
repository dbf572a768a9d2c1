package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Paths names a kind's collection (plural) and item (singular) routes.
type Paths struct {
	Collection string
	Item       string
}

func (p Paths) item(id int64) string {
	return p.Item + "/" + strconv.FormatInt(id, 10)
}

// Resource is the CRUD contract for one entity kind: T is the record as
// returned by the backend, I the create/update input.
type Resource[T any, I any] struct {
	t     Transport
	paths Paths
}

func NewResource[T any, I any](t Transport, paths Paths) *Resource[T, I] {
	return &Resource[T, I]{t: t, paths: paths}
}

func (r *Resource[T, I]) Paths() Paths { return r.paths }

func (r *Resource[T, I]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.t.Do(ctx, Request{Method: http.MethodGet, Path: r.paths.Collection}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Resource[T, I]) GetByID(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.t.Do(ctx, Request{Method: http.MethodGet, Path: r.paths.item(id)}, &out)
	return out, err
}

func (r *Resource[T, I]) Create(ctx context.Context, in I) (T, error) {
	var out T
	err := r.t.Do(ctx, Request{Method: http.MethodPost, Path: r.paths.Item, Body: in}, &out)
	return out, err
}

// Update replaces the record with in. When fields are given, only those
// wire fields of in are sent.
func (r *Resource[T, I]) Update(ctx context.Context, id int64, in I, fields ...string) (T, error) {
	var body any = in
	if len(fields) > 0 {
		partial, err := pick(in, fields)
		if err != nil {
			var zero T
			return zero, err
		}
		body = partial
	}

	var out T
	err := r.t.Do(ctx, Request{Method: http.MethodPut, Path: r.paths.item(id), Body: body}, &out)
	return out, err
}

// Patch sends an arbitrary partial body, e.g. {"status": "成約済"}.
func (r *Resource[T, I]) Patch(ctx context.Context, id int64, fields map[string]any) (T, error) {
	var out T
	err := r.t.Do(ctx, Request{Method: http.MethodPut, Path: r.paths.item(id), Body: fields}, &out)
	return out, err
}

func (r *Resource[T, I]) Delete(ctx context.Context, id int64) error {
	return r.t.Do(ctx, Request{Method: http.MethodDelete, Path: r.paths.item(id)}, nil)
}

// pick projects v's JSON encoding onto the named keys. Unknown names are
// an error so a typo never turns into an empty update.
func pick(v any, fields []string) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("failed to project input: %w", err)
	}

	out := make(map[string]json.RawMessage, len(fields))
	for _, f := range fields {
		val, ok := all[f]
		if !ok {
			val = json.RawMessage("null")
			if !hasJSONField(v, f) {
				return nil, fmt.Errorf("unknown field %q", f)
			}
		}
		out[f] = val
	}
	return out, nil
}

func hasJSONField(v any, name string) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if tag == name {
			return true
		}
	}
	return false
}
