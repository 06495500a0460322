package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const BATCHES_COLLECTION = "batches"

type Batch struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Title     string             `json:"title" bson:"title"`
	CreatedAt primitive.DateTime `json:"created_at" bson:"created_at"`
}

func NewModelBatch(title string, idUser primitive.ObjectID) Batch {
	return Batch{
		ID:        primitive.NewObjectID(),
		User:      idUser,
		Title:     title,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}
}
