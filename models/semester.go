package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const SEMESTERS_COLLECTION = "semesters"

type Semester struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User     primitive.ObjectID `json:"user" bson:"user"`
	Batch    primitive.ObjectID `json:"batch" bson:"batch"`
	Title    string             `json:"title" bson:"title"`
	Namelist []NameStudent      `json:"namelist" bson:"namelist"`
}

func NewModelSemester(title string, namelist []NameStudent, idUser, idBatch primitive.ObjectID) Semester {
	copied := make([]NameStudent, len(namelist))
	copy(copied, namelist)
	return Semester{
		ID:       primitive.NewObjectID(),
		User:     idUser,
		Batch:    idBatch,
		Title:    title,
		Namelist: copied,
	}
}
