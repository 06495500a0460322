package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const NAMELISTS_COLLECTION = "namelists"

type NameStudent struct {
	RegistrationNo string `json:"registration_no" bson:"registration_no"`
	Rollno         string `json:"rollno" bson:"rollno"`
	Name           string `json:"name" bson:"name"`
}

func (s NameStudent) GetRollno() string {
	return s.Rollno
}

type Namelist struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User     primitive.ObjectID `json:"user" bson:"user"`
	Batch    primitive.ObjectID `json:"batch" bson:"batch"`
	Title    string             `json:"title" bson:"title"`
	Students []NameStudent      `json:"students" bson:"students"`
}

func NewModelNamelist(
	title string,
	students []NameStudent,
	idUser,
	idBatch primitive.ObjectID,
) Namelist {
	if students == nil {
		students = []NameStudent{}
	}
	return Namelist{
		ID:       primitive.NewObjectID(),
		User:     idUser,
		Batch:    idBatch,
		Title:    title,
		Students: students,
	}
}

// Returns the first roll number repeated in students, if any
func DuplicatedRollno(students []NameStudent) (string, bool) {
	seen := make(map[string]bool, len(students))
	for _, student := range students {
		if seen[student.Rollno] {
			return student.Rollno, true
		}
		seen[student.Rollno] = true
	}
	return "", false
}
