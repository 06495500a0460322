package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documents are kept bson encoded so callers never share memory with the store
type table struct {
	mutex sync.RWMutex
	rows  map[primitive.ObjectID]bson.D
	order []primitive.ObjectID
}

func newTable() *table {
	return &table{rows: make(map[primitive.ObjectID]bson.D)}
}

func toD(v interface{}) (bson.D, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromD[T any](doc bson.D) (*T, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out T
	if err := bson.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func lookup(doc bson.D, key string) (interface{}, bool) {
	for _, e := range doc {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func set(doc bson.D, key string, value interface{}) bson.D {
	for i, e := range doc {
		if e.Key == key {
			doc[i].Value = value
			return doc
		}
	}
	return append(doc, bson.E{Key: key, Value: value})
}

func matches(doc bson.D, key string, value primitive.ObjectID) bool {
	v, ok := lookup(doc, key)
	if !ok {
		return false
	}
	id, ok := v.(primitive.ObjectID)
	return ok && id == value
}

func (t *table) owned(idUser, id primitive.ObjectID) (bson.D, bool) {
	doc, ok := t.rows[id]
	if !ok || !matches(doc, "user", idUser) {
		return nil, false
	}
	return doc, true
}

func (t *table) remove(id primitive.ObjectID) {
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

type documents[T any] struct {
	table *table
}

func (d *documents[T]) Insert(_ context.Context, doc *T) (primitive.ObjectID, error) {
	encoded, err := toD(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	d.table.mutex.Lock()
	defer d.table.mutex.Unlock()

	id, ok := lookup(encoded, "_id")
	if !ok {
		id = primitive.NewObjectID()
		encoded = append(bson.D{{Key: "_id", Value: id}}, encoded...)
	}
	objID, ok := id.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected _id %v", id)
	}
	if _, exists := d.table.rows[objID]; exists {
		return primitive.NilObjectID, repositories.ErrDuplicate
	}
	d.table.rows[objID] = encoded
	d.table.order = append(d.table.order, objID)
	return objID, nil
}

func (d *documents[T]) FindOwned(_ context.Context, idUser, id primitive.ObjectID) (*T, error) {
	d.table.mutex.RLock()
	defer d.table.mutex.RUnlock()

	doc, ok := d.table.owned(idUser, id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return fromD[T](doc)
}

func (d *documents[T]) FindBy(
	_ context.Context,
	idUser primitive.ObjectID,
	field string,
	idParent primitive.ObjectID,
) ([]T, error) {
	d.table.mutex.RLock()
	defer d.table.mutex.RUnlock()

	docs := []T{}
	for _, id := range d.table.order {
		doc := d.table.rows[id]
		if matches(doc, "user", idUser) && matches(doc, field, idParent) {
			decoded, err := fromD[T](doc)
			if err != nil {
				return nil, err
			}
			docs = append(docs, *decoded)
		}
	}
	return docs, nil
}

func (d *documents[T]) Set(_ context.Context, idUser, id primitive.ObjectID, fields bson.M) error {
	encodedFields, err := toD(fields)
	if err != nil {
		return err
	}
	d.table.mutex.Lock()
	defer d.table.mutex.Unlock()

	doc, ok := d.table.owned(idUser, id)
	if !ok {
		return repositories.ErrNotFound
	}
	for _, e := range encodedFields {
		doc = set(doc, e.Key, e.Value)
	}
	d.table.rows[id] = doc
	return nil
}

func (d *documents[T]) Delete(_ context.Context, idUser, id primitive.ObjectID) error {
	d.table.mutex.Lock()
	defer d.table.mutex.Unlock()

	if _, ok := d.table.owned(idUser, id); !ok {
		return repositories.ErrNotFound
	}
	d.table.remove(id)
	return nil
}

func (d *documents[T]) DeleteBy(
	_ context.Context,
	idUser primitive.ObjectID,
	field string,
	idParent primitive.ObjectID,
) (int64, error) {
	d.table.mutex.Lock()
	defer d.table.mutex.Unlock()

	var toDelete []primitive.ObjectID
	for id, doc := range d.table.rows {
		if matches(doc, "user", idUser) && matches(doc, field, idParent) {
			toDelete = append(toDelete, id)
		}
	}
	for _, id := range toDelete {
		d.table.remove(id)
	}
	return int64(len(toDelete)), nil
}

// Sorted by the time the documents were inserted
func (d *documents[T]) all(filter func(doc bson.D) bool) ([]T, error) {
	d.table.mutex.RLock()
	defer d.table.mutex.RUnlock()

	docs := []T{}
	for _, id := range d.table.order {
		doc := d.table.rows[id]
		if filter(doc) {
			decoded, err := fromD[T](doc)
			if err != nil {
				return nil, err
			}
			docs = append(docs, *decoded)
		}
	}
	return docs, nil
}
