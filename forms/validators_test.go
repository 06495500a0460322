package forms

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidators(t *testing.T) {
	v := validator.New()
	v.RegisterValidation("objectid", ObjectID)
	v.RegisterValidation("mongokey", MongoKey)

	assert.NoError(t, v.Var(primitive.NewObjectID().Hex(), "objectid"))
	assert.Error(t, v.Var("not-an-id", "objectid"))

	assert.NoError(t, v.Var("understand", "mongokey"))
	for _, key := range []string{"", "a.b", "$set", " padded"} {
		assert.Error(t, v.Var(key, "mongokey"), key)
	}
}

func TestFormTags(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterValidation("objectid", ObjectID)
	v.RegisterValidation("mongokey", MongoKey)

	courses := SeeListForm{
		Semester: primitive.NewObjectID().Hex(),
		Title:    "SEE",
		Courses:  []string{"apply", "apply"},
	}
	assert.Error(t, v.Struct(courses))
	courses.Courses = []string{"apply", "understand"}
	assert.NoError(t, v.Struct(courses))

	score := CoScoreForm{Assignment: "Q1", Rollno: "R1"}
	assert.Error(t, v.Struct(score))
	zero := 0.0
	score.Score = &zero
	assert.NoError(t, v.Struct(score))
}
