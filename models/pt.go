package models

import (
	"fmt"

	"github.com/CPU-commits/Intranet_BAttainment/funct"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PTLISTS_COLLECTION = "ptlists"

type PtQuestion struct {
	Number int     `json:"number" bson:"number"`
	Option string  `json:"option" bson:"option"`
	Mark   float64 `json:"mark" bson:"mark"`
}

type PtPart struct {
	Title     string       `json:"title" bson:"title"`
	MaxMark   float64      `json:"maxMark" bson:"maxMark"`
	Questions []PtQuestion `json:"questions" bson:"questions"`
}

type PtStudent struct {
	Rollno    string   `json:"rollno" bson:"rollno"`
	Name      string   `json:"name" bson:"name"`
	TotalMark float64  `json:"totalMark" bson:"totalMark"`
	Typemark  Scores   `json:"typemark" bson:"typemark"`
	Parts     []PtPart `json:"parts" bson:"parts"`
}

func (s PtStudent) GetRollno() string {
	return s.Rollno
}

// Periodic test mark sheet
type PtList struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Batch     primitive.ObjectID `json:"batch" bson:"batch"`
	Semester  primitive.ObjectID `json:"semester" bson:"semester"`
	Title     string             `json:"title" bson:"title"`
	MaxMark   float64            `json:"maxMark" bson:"maxMark"`
	Types     Scores             `json:"types" bson:"types"`
	Structure []PtPart           `json:"structure" bson:"structure"`
	Students  []PtStudent        `json:"students" bson:"students"`
}

// Every question of a part is worth the part max mark
func ComputeMaxMark(structure []PtPart) (float64, error) {
	var max float64
	for _, part := range structure {
		max += part.MaxMark * float64(len(part.Questions))
	}
	if !finite(max) {
		return 0, ErrNotFinite
	}
	return max, nil
}

func ComputeTypes(structure []PtPart) Scores {
	types := make(Scores)
	for _, part := range structure {
		for _, question := range part.Questions {
			types[question.Option] += part.MaxMark
		}
	}
	return types
}

// Template questions carry their max mark
func normalizeStructure(structure []PtPart) []PtPart {
	normalized := make([]PtPart, len(structure))
	for i, part := range structure {
		questions := make([]PtQuestion, len(part.Questions))
		for j, question := range part.Questions {
			questions[j] = PtQuestion{
				Number: question.Number,
				Option: question.Option,
				Mark:   part.MaxMark,
			}
		}
		normalized[i] = PtPart{
			Title:     part.Title,
			MaxMark:   part.MaxMark,
			Questions: questions,
		}
	}
	return normalized
}

func NewPtStudent(rollno, name string, structure []PtPart) PtStudent {
	parts := make([]PtPart, len(structure))
	for i, part := range structure {
		questions := make([]PtQuestion, len(part.Questions))
		for j, question := range part.Questions {
			questions[j] = PtQuestion{
				Number: question.Number,
				Option: question.Option,
			}
		}
		parts[i] = PtPart{
			Title:     part.Title,
			MaxMark:   part.MaxMark,
			Questions: questions,
		}
	}
	student := PtStudent{
		Rollno: rollno,
		Name:   name,
		Parts:  parts,
	}
	student.Recompute()
	return student
}

func (s *PtStudent) Recompute() {
	var total float64
	typemark := make(Scores)
	for _, part := range s.Parts {
		for _, question := range part.Questions {
			total += question.Mark
			typemark[question.Option] += question.Mark
		}
	}
	s.TotalMark = total
	s.Typemark = typemark
}

// Sets the mark of question number in parts[part] and recomputes the totals
func (s *PtStudent) SetMark(part, number int, mark float64) error {
	if part < 0 || part >= len(s.Parts) {
		return fmt.Errorf("part %d does not exist", part)
	}
	if mark < 0 || mark > s.Parts[part].MaxMark {
		return fmt.Errorf(
			"invalid mark %v, part %q allows 0 to %v",
			mark,
			s.Parts[part].Title,
			s.Parts[part].MaxMark,
		)
	}
	for i, question := range s.Parts[part].Questions {
		if question.Number == number {
			s.Parts[part].Questions[i].Mark = mark
			s.Recompute()
			return nil
		}
	}
	return fmt.Errorf("question %d does not exist in part %q", number, s.Parts[part].Title)
}

func NewModelPtList(
	title string,
	structure []PtPart,
	roster []NameStudent,
	semester *Semester,
) (PtList, error) {
	normalized := normalizeStructure(structure)
	maxMark, err := ComputeMaxMark(normalized)
	if err != nil {
		return PtList{}, err
	}
	students := make([]PtStudent, 0, len(roster))
	for _, student := range roster {
		students = append(students, NewPtStudent(student.Rollno, student.Name, normalized))
	}
	return PtList{
		ID:        primitive.NewObjectID(),
		User:      semester.User,
		Batch:     semester.Batch,
		Semester:  semester.ID,
		Title:     title,
		MaxMark:   maxMark,
		Types:     ComputeTypes(normalized),
		Structure: normalized,
		Students:  students,
	}, nil
}

func (l *PtList) Options() []string {
	return l.Types.Labels()
}

func (l *PtList) StudentIndex(rollno string) int {
	return funct.Index(l.Students, func(student PtStudent) bool {
		return student.Rollno == rollno
	})
}
