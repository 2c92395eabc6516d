// Package databasetest provides an in-memory stand-in for database.Documents
// so content handlers can be exercised without a MongoDB deployment. Filters
// support plain equality only.
package databasetest

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/princinho/schoolpanel/database"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MemoryDocuments struct {
	mu   sync.Mutex
	cols map[string][]bson.M

	// Err, when set, is returned by every call.
	Err error
}

func NewMemoryDocuments() *MemoryDocuments {
	return &MemoryDocuments{cols: make(map[string][]bson.M)}
}

func (m *MemoryDocuments) Insert(_ context.Context, collection string, doc any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	stored, err := toDocument(doc)
	if err != nil {
		return err
	}
	if m.indexOf(collection, stored["_id"]) >= 0 {
		return fmt.Errorf("duplicate _id %v in %s", stored["_id"], collection)
	}
	m.cols[collection] = append(m.cols[collection], stored)
	return nil
}

func (m *MemoryDocuments) Get(_ context.Context, collection, id string, dst any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	i := m.indexOf(collection, id)
	if i < 0 {
		return database.ErrNotFound
	}
	return decode(m.cols[collection][i], dst)
}

func (m *MemoryDocuments) Find(_ context.Context, collection string, filter bson.M, q database.Query, dst any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	matches := m.matching(collection, filter)
	if q.Sort != "" {
		sort.SliceStable(matches, func(i, j int) bool {
			c := compare(matches[i][q.Sort], matches[j][q.Sort])
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Skip > 0 {
		matches = matches[min(int(q.Skip), len(matches)):]
	}
	if q.Limit > 0 && int(q.Limit) < len(matches) {
		matches = matches[:q.Limit]
	}

	out := reflect.ValueOf(dst).Elem()
	out.Set(reflect.MakeSlice(out.Type(), 0, len(matches)))
	for _, doc := range matches {
		elem := reflect.New(out.Type().Elem())
		if err := decode(doc, elem.Interface()); err != nil {
			return err
		}
		out.Set(reflect.Append(out, elem.Elem()))
	}
	return nil
}

func (m *MemoryDocuments) Update(_ context.Context, collection, id string, set bson.M, dst any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	i := m.indexOf(collection, id)
	if i < 0 {
		return database.ErrNotFound
	}
	fields, err := toDocument(set)
	if err != nil {
		return err
	}
	doc := m.cols[collection][i]
	for k, v := range fields {
		doc[k] = v
	}
	return decode(doc, dst)
}

func (m *MemoryDocuments) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	i := m.indexOf(collection, id)
	if i < 0 {
		return database.ErrNotFound
	}
	docs := m.cols[collection]
	m.cols[collection] = append(docs[:i], docs[i+1:]...)
	return nil
}

func (m *MemoryDocuments) Count(_ context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.matching(collection, filter))), nil
}

func (m *MemoryDocuments) indexOf(collection string, id any) int {
	for i, doc := range m.cols[collection] {
		if doc["_id"] == id {
			return i
		}
	}
	return -1
}

func (m *MemoryDocuments) matching(collection string, filter bson.M) []bson.M {
	var out []bson.M
	for _, doc := range m.cols[collection] {
		if matches(doc, filter) {
			out = append(out, doc)
		}
	}
	return out
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !sameValue(got, want) {
			return false
		}
	}
	return true
}

// sameValue compares the BSON encodings, so a named string type in a filter
// matches the plain string stored in the document.
func sameValue(a, b any) bool {
	ra, errA := bson.Marshal(bson.D{{Key: "v", Value: a}})
	rb, errB := bson.Marshal(bson.D{{Key: "v", Value: b}})
	return errA == nil && errB == nil && bytes.Equal(ra, rb)
}

func compare(a, b any) int {
	switch x := a.(type) {
	case bson.DateTime:
		if y, ok := b.(bson.DateTime); ok {
			return cmp.Compare(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	}
	x, okA := toInt64(a)
	y, okB := toInt64(b)
	if okA && okB {
		return cmp.Compare(x, y)
	}
	return 0
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

func toDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decode(doc bson.M, dst any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, dst)
}
