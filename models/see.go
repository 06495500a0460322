package models

import (
	"github.com/CPU-commits/Intranet_BAttainment/funct"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const SEELISTS_COLLECTION = "seelists"

type SeeStudent struct {
	Rollno string `json:"rollno" bson:"rollno"`
	Name   string `json:"name" bson:"name"`
	Scores Scores `json:"scores" bson:"scores"`
}

func (s SeeStudent) GetRollno() string {
	return s.Rollno
}

// Semester-end exam sheet, courses are the skill types of the exam
type SeeList struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User     primitive.ObjectID `json:"user" bson:"user"`
	Batch    primitive.ObjectID `json:"batch" bson:"batch"`
	Semester primitive.ObjectID `json:"semester" bson:"semester"`
	Title    string             `json:"title" bson:"title"`
	Courses  []string           `json:"courses" bson:"courses"`
	Students []SeeStudent       `json:"students" bson:"students"`
}

func NewSeeStudent(rollno, name string, courses []string) SeeStudent {
	scores := make(Scores, len(courses))
	for _, course := range courses {
		scores[course] = 0
	}
	return SeeStudent{
		Rollno: rollno,
		Name:   name,
		Scores: scores,
	}
}

func NewModelSeeList(
	title string,
	courses []string,
	roster []NameStudent,
	semester *Semester,
) SeeList {
	students := make([]SeeStudent, 0, len(roster))
	for _, student := range roster {
		students = append(students, NewSeeStudent(student.Rollno, student.Name, courses))
	}
	return SeeList{
		ID:       primitive.NewObjectID(),
		User:     semester.User,
		Batch:    semester.Batch,
		Semester: semester.ID,
		Title:    title,
		Courses:  courses,
		Students: students,
	}
}

func (l *SeeList) HasCourse(course string) bool {
	for _, c := range l.Courses {
		if c == course {
			return true
		}
	}
	return false
}

func (l *SeeList) StudentIndex(rollno string) int {
	return funct.Index(l.Students, func(student SeeStudent) bool {
		return student.Rollno == rollno
	})
}
