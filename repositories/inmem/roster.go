package inmem

import (
	"context"

	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type roster[S any] struct {
	table  *table
	field  string
	rollno func(S) string
}

func rollnoOf(element interface{}) string {
	var value interface{}
	switch doc := element.(type) {
	case bson.D:
		value, _ = lookup(doc, "rollno")
	case bson.M:
		value = doc["rollno"]
	case map[string]interface{}:
		value = doc["rollno"]
	}
	rollno, _ := value.(string)
	return rollno
}

func (r *roster[S]) students(doc bson.D) bson.A {
	value, _ := lookup(doc, r.field)
	students, _ := value.(bson.A)
	return students
}

func indexOf(students bson.A, rollno string) int {
	for i, student := range students {
		if rollnoOf(student) == rollno {
			return i
		}
	}
	return -1
}

func (r *roster[S]) PushStudents(_ context.Context, idUser, id primitive.ObjectID, students ...S) error {
	if len(students) == 0 {
		return nil
	}
	r.table.mutex.Lock()
	defer r.table.mutex.Unlock()

	doc, ok := r.table.owned(idUser, id)
	if !ok {
		return repositories.ErrNotFound
	}
	current := r.students(doc)
	updated := make(bson.A, len(current), len(current)+len(students))
	copy(updated, current)
	for _, student := range students {
		if indexOf(updated, r.rollno(student)) != -1 {
			return repositories.ErrDuplicate
		}
		encoded, err := toD(student)
		if err != nil {
			return err
		}
		updated = append(updated, encoded)
	}
	r.table.rows[id] = set(doc, r.field, updated)
	return nil
}

func (r *roster[S]) SetStudent(_ context.Context, idUser, id primitive.ObjectID, rollno string, student S) error {
	encoded, err := toD(student)
	if err != nil {
		return err
	}
	r.table.mutex.Lock()
	defer r.table.mutex.Unlock()

	doc, ok := r.table.owned(idUser, id)
	if !ok {
		return repositories.ErrNotFound
	}
	students := r.students(doc)
	i := indexOf(students, rollno)
	if i == -1 {
		return repositories.ErrNotFound
	}
	students[i] = encoded
	return nil
}

func (r *roster[S]) PullStudent(_ context.Context, idUser, id primitive.ObjectID, rollno string) error {
	r.table.mutex.Lock()
	defer r.table.mutex.Unlock()

	doc, ok := r.table.owned(idUser, id)
	if !ok {
		return repositories.ErrNotFound
	}
	students := r.students(doc)
	i := indexOf(students, rollno)
	if i == -1 {
		return repositories.ErrNotFound
	}
	updated := make(bson.A, 0, len(students)-1)
	updated = append(updated, students[:i]...)
	updated = append(updated, students[i+1:]...)
	r.table.rows[id] = set(doc, r.field, updated)
	return nil
}

type sheets[T any, S interface{ GetRollno() string }] struct {
	*documents[T]
	*roster[S]
}

func newSheets[T any, S interface{ GetRollno() string }](field string) *sheets[T, S] {
	t := newTable()
	return &sheets[T, S]{
		documents: &documents[T]{table: t},
		roster: &roster[S]{
			table:  t,
			field:  field,
			rollno: func(s S) string { return s.GetRollno() },
		},
	}
}
