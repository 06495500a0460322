package models

import (
	"github.com/CPU-commits/Intranet_BAttainment/funct"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const COLISTS_COLLECTION = "colists"

type CoStudent struct {
	Rollno       string  `json:"rollno" bson:"rollno"`
	Name         string  `json:"name" bson:"name"`
	AverageScore float64 `json:"averageScore" bson:"averageScore"`
	Scores       Scores  `json:"scores" bson:"scores"`
}

func (s CoStudent) GetRollno() string {
	return s.Rollno
}

// Average over every column, unset columns count as zero.
// The student is left untouched when the average is not finite.
func (s *CoStudent) Recompute(rows []string) error {
	if len(rows) == 0 {
		s.AverageScore = 0
		return nil
	}
	var sum float64
	for _, row := range rows {
		sum += s.Scores.Get(row)
	}
	average := sum / float64(len(rows))
	if !finite(average) {
		return ErrNotFinite
	}
	s.AverageScore = average
	return nil
}

// Course mark sheet
type CoList struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Batch     primitive.ObjectID `json:"batch" bson:"batch"`
	Semester  primitive.ObjectID `json:"semester" bson:"semester"`
	Title     string             `json:"title" bson:"title"`
	Rows      []string           `json:"rows" bson:"rows"`
	Structure Scores             `json:"structure,omitempty" bson:"structure,omitempty"`
	Students  []CoStudent        `json:"students" bson:"students"`
}

func NewCoStudent(rollno, name string, rows []string) CoStudent {
	scores := make(Scores, len(rows))
	for _, row := range rows {
		scores[row] = 0
	}
	return CoStudent{
		Rollno: rollno,
		Name:   name,
		Scores: scores,
	}
}

func NewModelCoList(
	title string,
	rows []string,
	structure Scores,
	roster []NameStudent,
	semester *Semester,
) CoList {
	if len(rows) == 0 && len(structure) > 0 {
		rows = structure.Labels()
	}
	if rows == nil {
		rows = []string{}
	}
	students := make([]CoStudent, 0, len(roster))
	for _, student := range roster {
		students = append(students, NewCoStudent(student.Rollno, student.Name, rows))
	}
	return CoList{
		ID:        primitive.NewObjectID(),
		User:      semester.User,
		Batch:     semester.Batch,
		Semester:  semester.ID,
		Title:     title,
		Rows:      rows,
		Structure: structure,
		Students:  students,
	}
}

func (l *CoList) HasRow(row string) bool {
	for _, r := range l.Rows {
		if r == row {
			return true
		}
	}
	return false
}

// Max mark of a column, false when the sheet has no structure for it
func (l *CoList) MaxMark(row string) (float64, bool) {
	if l.Structure == nil {
		return 0, false
	}
	max, ok := l.Structure[row]
	return max, ok
}

func (l *CoList) StudentIndex(rollno string) int {
	return funct.Index(l.Students, func(student CoStudent) bool {
		return student.Rollno == rollno
	})
}
