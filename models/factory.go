package models

import (
	"context"

	"github.com/CPU-commits/Intranet_BAttainment/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func owned(required []string, properties bson.M) bson.M {
	properties["user"] = bson.M{"bsonType": "objectId"}
	return bson.M{
		"bsonType":   "object",
		"required":   append([]string{"user"}, required...),
		"properties": properties,
	}
}

var rosterSchema = bson.M{
	"bsonType": "array",
	"items": bson.M{
		"bsonType": "object",
		"required": []string{"rollno", "name"},
		"properties": bson.M{
			"rollno": bson.M{"bsonType": "string"},
			"name":   bson.M{"bsonType": "string"},
		},
	},
}

var schemas = map[string]bson.M{
	USERS_COLLECTION: {
		"bsonType": "object",
		"required": []string{"email", "password"},
		"properties": bson.M{
			"email":    bson.M{"bsonType": "string"},
			"password": bson.M{"bsonType": "string"},
			"cotypes":  bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
		},
	},
	BATCHES_COLLECTION: owned([]string{"title"}, bson.M{
		"title": bson.M{"bsonType": "string"},
	}),
	NAMELISTS_COLLECTION: owned([]string{"batch", "title", "students"}, bson.M{
		"batch":    bson.M{"bsonType": "objectId"},
		"title":    bson.M{"bsonType": "string"},
		"students": rosterSchema,
	}),
	SEMESTERS_COLLECTION: owned([]string{"batch", "title"}, bson.M{
		"batch":    bson.M{"bsonType": "objectId"},
		"title":    bson.M{"bsonType": "string"},
		"namelist": rosterSchema,
	}),
	COLISTS_COLLECTION: owned([]string{"batch", "semester", "title", "students"}, bson.M{
		"batch":    bson.M{"bsonType": "objectId"},
		"semester": bson.M{"bsonType": "objectId"},
		"title":    bson.M{"bsonType": "string"},
		"rows":     bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
		"students": rosterSchema,
	}),
	PTLISTS_COLLECTION: owned([]string{"batch", "semester", "title", "structure", "students"}, bson.M{
		"batch":     bson.M{"bsonType": "objectId"},
		"semester":  bson.M{"bsonType": "objectId"},
		"title":     bson.M{"bsonType": "string"},
		"maxMark":   bson.M{"bsonType": "double"},
		"structure": bson.M{"bsonType": "array"},
		"students":  rosterSchema,
	}),
	SEELISTS_COLLECTION: owned([]string{"batch", "semester", "title", "courses", "students"}, bson.M{
		"batch":    bson.M{"bsonType": "objectId"},
		"semester": bson.M{"bsonType": "objectId"},
		"title":    bson.M{"bsonType": "string"},
		"courses":  bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
		"students": rosterSchema,
	}),
}

// Foreign keys looked up on every request
var indexes = map[string][]mongo.IndexModel{
	USERS_COLLECTION: {{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}},
	BATCHES_COLLECTION:   {{Keys: bson.D{{Key: "user", Value: 1}}}},
	NAMELISTS_COLLECTION: {{Keys: bson.D{{Key: "user", Value: 1}, {Key: "batch", Value: 1}}}},
	SEMESTERS_COLLECTION: {{Keys: bson.D{{Key: "user", Value: 1}, {Key: "batch", Value: 1}}}},
	COLISTS_COLLECTION:   {{Keys: bson.D{{Key: "user", Value: 1}, {Key: "semester", Value: 1}}}},
	PTLISTS_COLLECTION:   {{Keys: bson.D{{Key: "user", Value: 1}, {Key: "semester", Value: 1}}}},
	SEELISTS_COLLECTION:  {{Keys: bson.D{{Key: "user", Value: 1}, {Key: "semester", Value: 1}}}},
}

// Creates the missing collections with their validators and indexes
func EnsureCollections(ctx context.Context, conn *db.MongoConnection) error {
	collections, err := conn.GetCollections(ctx)
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(collections))
	for _, collection := range collections {
		existing[collection] = true
	}

	for name, jsonSchema := range schemas {
		if existing[name] {
			continue
		}
		opts := options.CreateCollection().SetValidator(bson.M{
			"$jsonSchema": jsonSchema,
		})
		if err := conn.CreateCollection(ctx, name, opts); err != nil {
			return err
		}
	}
	for name, models := range indexes {
		if _, err := conn.GetCollection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
