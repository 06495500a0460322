package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testSemester() *Semester {
	return &Semester{
		ID:    primitive.NewObjectID(),
		User:  primitive.NewObjectID(),
		Batch: primitive.NewObjectID(),
		Title: "Sem1",
	}
}

func TestScores(t *testing.T) {
	var empty Scores
	assert.Zero(t, empty.Get("missing"))
	assert.Zero(t, empty.Mean())

	scores := Scores{"b": 4, "a": 6}
	assert.Equal(t, 10.0, scores.Sum())
	assert.Equal(t, 5.0, scores.Mean())
	assert.Equal(t, []string{"a", "b"}, scores.Labels())

	clone := scores.Clone()
	clone["a"] = 0
	assert.Equal(t, 6.0, scores["a"])
}

func TestCoStudentRecompute(t *testing.T) {
	student := NewCoStudent("R1", "Alice", []string{"Q1", "Q2"})
	student.Scores["Q1"] = 8

	require.NoError(t, student.Recompute([]string{"Q1", "Q2"}))
	assert.Equal(t, 4.0, student.AverageScore)
	require.NoError(t, student.Recompute([]string{"Q1", "Q2"}))
	assert.Equal(t, 4.0, student.AverageScore)

	require.NoError(t, student.Recompute(nil))
	assert.Zero(t, student.AverageScore)
}

func TestCoStudentRecomputeOutOfRange(t *testing.T) {
	student := NewCoStudent("R1", "Alice", []string{"Q1", "Q2"})
	student.Scores["Q1"] = 8
	require.NoError(t, student.Recompute([]string{"Q1", "Q2"}))

	student.Scores["Q1"] = 1e308
	student.Scores["Q2"] = 1e308
	assert.ErrorIs(t, student.Recompute([]string{"Q1", "Q2"}), ErrNotFinite)
	assert.Equal(t, 4.0, student.AverageScore)
}

func TestNewModelCoList(t *testing.T) {
	semester := testSemester()
	roster := []NameStudent{{Rollno: "R1", Name: "Alice"}}

	list := NewModelCoList("Quiz1", nil, Scores{"Q2": 10, "Q1": 5}, roster, semester)
	assert.Equal(t, []string{"Q1", "Q2"}, list.Rows)
	assert.Equal(t, semester.ID, list.Semester)
	assert.Equal(t, semester.Batch, list.Batch)
	require.Len(t, list.Students, 1)
	assert.Equal(t, Scores{"Q1": 0, "Q2": 0}, list.Students[0].Scores)

	max, ok := list.MaxMark("Q2")
	assert.True(t, ok)
	assert.Equal(t, 10.0, max)
	assert.Equal(t, 0, list.StudentIndex("R1"))
	assert.Equal(t, -1, list.StudentIndex("R9"))

	bare := NewModelCoList("Quiz2", nil, nil, nil, semester)
	assert.NotNil(t, bare.Rows)
	_, ok = bare.MaxMark("Q1")
	assert.False(t, ok)
}

func testStructure() []PtPart {
	return []PtPart{
		{
			Title:   "A",
			MaxMark: 5,
			Questions: []PtQuestion{
				{Number: 1, Option: "understand"},
				{Number: 2, Option: "apply"},
			},
		},
		{
			Title:     "B",
			MaxMark:   10,
			Questions: []PtQuestion{{Number: 1, Option: "understand"}},
		},
	}
}

func TestNewModelPtList(t *testing.T) {
	roster := []NameStudent{{Rollno: "R1", Name: "Alice"}}
	list, err := NewModelPtList("PT1", testStructure(), roster, testSemester())
	require.NoError(t, err)

	assert.Equal(t, 20.0, list.MaxMark)
	assert.Equal(t, Scores{"understand": 15, "apply": 5}, list.Types)
	assert.Equal(t, []string{"apply", "understand"}, list.Options())
	assert.Equal(t, 5.0, list.Structure[0].Questions[0].Mark)

	require.Len(t, list.Students, 1)
	student := list.Students[0]
	assert.Zero(t, student.TotalMark)
	assert.Equal(t, Scores{"understand": 0, "apply": 0}, student.Typemark)
}

func TestNewModelPtListOutOfRange(t *testing.T) {
	structure := testStructure()
	structure[0].MaxMark = 1e308
	structure[1].MaxMark = 1e308

	_, err := NewModelPtList("PT1", structure, nil, testSemester())
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestPtStudentSetMark(t *testing.T) {
	student := NewPtStudent("R1", "Alice", testStructure())

	require.NoError(t, student.SetMark(0, 1, 4))
	require.NoError(t, student.SetMark(1, 1, 7))
	assert.Equal(t, 11.0, student.TotalMark)
	assert.Equal(t, 11.0, student.Typemark["understand"])
	assert.Zero(t, student.Typemark["apply"])

	assert.Error(t, student.SetMark(0, 2, 6))
	assert.Error(t, student.SetMark(0, 2, -1))
	assert.Error(t, student.SetMark(0, 9, 1))
	assert.Error(t, student.SetMark(2, 1, 1))
	assert.Equal(t, 11.0, student.TotalMark)
}

func TestNewModelSeeList(t *testing.T) {
	roster := []NameStudent{{Rollno: "R1", Name: "Alice"}, {Rollno: "R2", Name: "Bob"}}
	list := NewModelSeeList("SEE", []string{"understand"}, roster, testSemester())

	assert.True(t, list.HasCourse("understand"))
	assert.False(t, list.HasCourse("apply"))
	assert.Equal(t, 1, list.StudentIndex("R2"))
	assert.Equal(t, Scores{"understand": 0}, list.Students[1].Scores)
}

func TestDuplicatedRollno(t *testing.T) {
	_, repeated := DuplicatedRollno([]NameStudent{{Rollno: "R1"}, {Rollno: "R2"}})
	assert.False(t, repeated)

	rollno, repeated := DuplicatedRollno([]NameStudent{{Rollno: "R1"}, {Rollno: "R2"}, {Rollno: "R1"}})
	assert.True(t, repeated)
	assert.Equal(t, "R1", rollno)

	namelist := NewModelNamelist("CSE", nil, primitive.NewObjectID(), primitive.NewObjectID())
	assert.NotNil(t, namelist.Students)
}
