package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/CPU-commits/Intranet_BAttainment/db"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ownedFilter(idUser, id primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "user", Value: idUser},
	}
}

type mongoDocuments[T any] struct {
	collection *mongo.Collection
}

func (m *mongoDocuments[T]) Insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	result, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id %v", result.InsertedID)
	}
	return id, nil
}

func (m *mongoDocuments[T]) FindOwned(ctx context.Context, idUser, id primitive.ObjectID) (*T, error) {
	var doc T
	cursor := m.collection.FindOne(ctx, ownedFilter(idUser, id))
	if err := cursor.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (m *mongoDocuments[T]) FindBy(
	ctx context.Context,
	idUser primitive.ObjectID,
	field string,
	idParent primitive.ObjectID,
) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := m.collection.Find(ctx, bson.D{
		{Key: "user", Value: idUser},
		{Key: field, Value: idParent},
	}, opts)
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (m *mongoDocuments[T]) Set(ctx context.Context, idUser, id primitive.ObjectID, fields bson.M) error {
	result, err := m.collection.UpdateOne(ctx, ownedFilter(idUser, id), bson.D{{
		Key:   "$set",
		Value: fields,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoDocuments[T]) Delete(ctx context.Context, idUser, id primitive.ObjectID) error {
	result, err := m.collection.DeleteOne(ctx, ownedFilter(idUser, id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoDocuments[T]) DeleteBy(
	ctx context.Context,
	idUser primitive.ObjectID,
	field string,
	idParent primitive.ObjectID,
) (int64, error) {
	result, err := m.collection.DeleteMany(ctx, bson.D{
		{Key: "user", Value: idUser},
		{Key: field, Value: idParent},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

type mongoRoster[S any] struct {
	collection *mongo.Collection
	field      string
	rollno     func(S) string
}

func (m *mongoRoster[S]) PushStudents(
	ctx context.Context,
	idUser,
	id primitive.ObjectID,
	students ...S,
) error {
	if len(students) == 0 {
		return nil
	}
	rollnos := make([]string, len(students))
	for i, student := range students {
		rollnos[i] = m.rollno(student)
	}
	filter := append(ownedFilter(idUser, id), bson.E{
		Key:   m.field + ".rollno",
		Value: bson.M{"$nin": rollnos},
	})
	result, err := m.collection.UpdateOne(ctx, filter, bson.D{{
		Key: "$push",
		Value: bson.M{
			m.field: bson.M{"$each": students},
		},
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		exists, err := m.collection.CountDocuments(ctx, ownedFilter(idUser, id))
		if err != nil {
			return err
		}
		if exists == 0 {
			return ErrNotFound
		}
		return ErrDuplicate
	}
	return nil
}

func (m *mongoRoster[S]) SetStudent(
	ctx context.Context,
	idUser,
	id primitive.ObjectID,
	rollno string,
	student S,
) error {
	filter := append(ownedFilter(idUser, id), bson.E{
		Key:   m.field + ".rollno",
		Value: rollno,
	})
	result, err := m.collection.UpdateOne(ctx, filter, bson.D{{
		Key: "$set",
		Value: bson.M{
			m.field + ".$": student,
		},
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoRoster[S]) PullStudent(
	ctx context.Context,
	idUser,
	id primitive.ObjectID,
	rollno string,
) error {
	filter := append(ownedFilter(idUser, id), bson.E{
		Key:   m.field + ".rollno",
		Value: rollno,
	})
	result, err := m.collection.UpdateOne(ctx, filter, bson.D{{
		Key: "$pull",
		Value: bson.M{
			m.field: bson.M{"rollno": rollno},
		},
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoSheets[T any, S interface{ GetRollno() string }] struct {
	*mongoDocuments[T]
	*mongoRoster[S]
}

func NewMongoSheets[T any, S interface{ GetRollno() string }](
	conn *db.MongoConnection,
	collection,
	rosterField string,
) Sheets[T, S] {
	c := conn.GetCollection(collection)
	return &mongoSheets[T, S]{
		mongoDocuments: &mongoDocuments[T]{collection: c},
		mongoRoster: &mongoRoster[S]{
			collection: c,
			field:      rosterField,
			rollno:     func(s S) string { return s.GetRollno() },
		},
	}
}

type mongoBatches struct {
	*mongoDocuments[models.Batch]
}

func (m *mongoBatches) FindByUser(ctx context.Context, idUser primitive.ObjectID) ([]models.Batch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.collection.Find(ctx, bson.D{{Key: "user", Value: idUser}}, opts)
	if err != nil {
		return nil, err
	}
	batches := []models.Batch{}
	if err := cursor.All(ctx, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

func lookupTitles(from, as string) bson.D {
	return bson.D{{
		Key: "$lookup",
		Value: bson.M{
			"from":         from,
			"localField":   "_id",
			"foreignField": "batch",
			"as":           as,
			"pipeline": bson.A{bson.M{
				"$project": bson.M{
					"_id":   1,
					"title": 1,
				},
			}},
		},
	}}
}

func (m *mongoBatches) Detail(ctx context.Context, idUser, id primitive.ObjectID) (*BatchDetail, error) {
	match := bson.D{{
		Key:   "$match",
		Value: ownedFilter(idUser, id),
	}}
	cursor, err := m.collection.Aggregate(ctx, mongo.Pipeline{
		match,
		lookupTitles(models.NAMELISTS_COLLECTION, "namelists"),
		lookupTitles(models.SEMESTERS_COLLECTION, "semesters"),
	})
	if err != nil {
		return nil, err
	}
	var details []BatchDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}
	return &details[0], nil
}

type mongoUsers struct {
	collection *mongo.Collection
}

func (m *mongoUsers) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	result, err := m.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (m *mongoUsers) getOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var user models.User
	if err := m.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (m *mongoUsers) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.getOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (m *mongoUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getOne(ctx, bson.D{{Key: "email", Value: models.NormalizeEmail(email)}})
}

func (m *mongoUsers) AddCotype(ctx context.Context, id primitive.ObjectID, cotype string) error {
	result, err := m.collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{
		Key:   "$addToSet",
		Value: bson.M{"cotypes": cotype},
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoUsers) RemoveCotype(ctx context.Context, id primitive.ObjectID, cotype string) error {
	result, err := m.collection.UpdateOne(ctx, bson.D{
		{Key: "_id", Value: id},
		{Key: "cotypes", Value: cotype},
	}, bson.D{{
		Key:   "$pull",
		Value: bson.M{"cotypes": cotype},
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func NewMongoRepositories(conn *db.MongoConnection, index StudentIndex) *Repositories {
	return &Repositories{
		Users: &mongoUsers{collection: conn.GetCollection(models.USERS_COLLECTION)},
		Batches: &mongoBatches{
			mongoDocuments: &mongoDocuments[models.Batch]{
				collection: conn.GetCollection(models.BATCHES_COLLECTION),
			},
		},
		Namelists: NewMongoSheets[models.Namelist, models.NameStudent](conn, models.NAMELISTS_COLLECTION, "students"),
		Semesters: NewMongoSheets[models.Semester, models.NameStudent](conn, models.SEMESTERS_COLLECTION, "namelist"),
		CoLists:   NewMongoSheets[models.CoList, models.CoStudent](conn, models.COLISTS_COLLECTION, "students"),
		PtLists:   NewMongoSheets[models.PtList, models.PtStudent](conn, models.PTLISTS_COLLECTION, "students"),
		SeeLists:  NewMongoSheets[models.SeeList, models.SeeStudent](conn, models.SEELISTS_COLLECTION, "students"),
		Students:  index,
	}
}
