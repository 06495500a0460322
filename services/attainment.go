package services

import (
	"context"
	"math"
	"net/http"
	"sort"

	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/stack"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SkillAttainment struct {
	See float64 `json:"see"`
	// Type mark per periodic test title
	Pt  models.Scores `json:"pt"`
	Cie float64       `json:"cie"`
}

type Attainment struct {
	Rollno  string                      `json:"rollno"`
	Name    string                      `json:"name"`
	Skills  map[string]*SkillAttainment `json:"skills"`
	Courses models.Scores               `json:"courses"`
}

func (a *Attainment) skill(label string) *SkillAttainment {
	skill, ok := a.Skills[label]
	if !ok {
		skill = &SkillAttainment{Pt: make(models.Scores)}
		a.Skills[label] = skill
	}
	return skill
}

// Merges the sheets of a semester by rollno.
// CIE is the mean of the periodic test marks of a skill, rounded half away from zero.
func ComputeAttainment(sees []models.SeeList, pts []models.PtList, courses []models.CoList) []Attainment {
	records := make(map[string]*Attainment)
	record := func(rollno, name string) *Attainment {
		attainment, ok := records[rollno]
		if !ok {
			attainment = &Attainment{
				Rollno:  rollno,
				Name:    name,
				Skills:  make(map[string]*SkillAttainment),
				Courses: make(models.Scores),
			}
			records[rollno] = attainment
		} else if attainment.Name == "" {
			attainment.Name = name
		}
		return attainment
	}

	for _, see := range sees {
		for _, student := range see.Students {
			attainment := record(student.Rollno, student.Name)
			for _, course := range see.Courses {
				attainment.skill(course).See = student.Scores.Get(course)
			}
		}
	}
	for _, pt := range pts {
		for _, student := range pt.Students {
			attainment := record(student.Rollno, student.Name)
			for option, mark := range student.Typemark {
				attainment.skill(option).Pt[pt.Title] = mark
			}
		}
	}
	for _, attainment := range records {
		for _, skill := range attainment.Skills {
			skill.Cie = math.Round(skill.Pt.Mean())
		}
	}
	for _, course := range courses {
		for _, student := range course.Students {
			record(student.Rollno, student.Name).Courses[course.Title] = student.AverageScore
		}
	}

	attainments := make([]Attainment, 0, len(records))
	for _, attainment := range records {
		attainments = append(attainments, *attainment)
	}
	sort.Slice(attainments, func(i, j int) bool {
		return attainments[i].Rollno < attainments[j].Rollno
	})
	return attainments
}

// Skill and course labels present in the report, sorted
func AttainmentLabels(attainments []Attainment) (skills []string, courses []string) {
	skillSet := make(models.Scores)
	courseSet := make(models.Scores)
	for _, attainment := range attainments {
		for skill := range attainment.Skills {
			skillSet[skill] = 0
		}
		for course := range attainment.Courses {
			courseSet[course] = 0
		}
	}
	return skillSet.Labels(), courseSet.Labels()
}

type AttainmentService struct {
	repos       *repositories.Repositories
	lookup      *lookup
	files       FileStore
	publisher   stack.Publisher
	collegeName string
}

func NewAttainmentService(
	repos *repositories.Repositories,
	lookup *lookup,
	files FileStore,
	publisher stack.Publisher,
	collegeName string,
) *AttainmentService {
	return &AttainmentService{
		repos:       repos,
		lookup:      lookup,
		files:       files,
		publisher:   publisher,
		collegeName: collegeName,
	}
}

func (a *AttainmentService) semester(
	ctx context.Context,
	idUser,
	idBatch,
	idSemester string,
) (*models.Semester, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	// Both ids are validated before touching storage
	if _, errRes := parseID(idBatch, "batch"); errRes != nil {
		return nil, errRes
	}
	if _, errRes := parseID(idSemester, "semester"); errRes != nil {
		return nil, errRes
	}
	if _, errRes := a.lookup.user(ctx, idUser); errRes != nil {
		return nil, errRes
	}
	batch, errRes := a.lookup.batch(ctx, idObjUser, idBatch)
	if errRes != nil {
		return nil, errRes
	}
	semester, errRes := a.lookup.semester(ctx, idObjUser, idSemester)
	if errRes != nil {
		return nil, errRes
	}
	if semester.Batch != batch.ID {
		return nil, res.NewErrorRes(http.StatusNotFound, "semester not found")
	}
	return semester, nil
}

func (a *AttainmentService) compute(ctx context.Context, idUser, idSemester primitive.ObjectID) ([]Attainment, *res.ErrorRes) {
	sees, err := a.repos.SeeLists.FindBy(ctx, idUser, "semester", idSemester)
	if err != nil {
		return nil, storageError(err, "see list")
	}
	pts, err := a.repos.PtLists.FindBy(ctx, idUser, "semester", idSemester)
	if err != nil {
		return nil, storageError(err, "periodic test")
	}
	courses, err := a.repos.CoLists.FindBy(ctx, idUser, "semester", idSemester)
	if err != nil {
		return nil, storageError(err, "course list")
	}
	return ComputeAttainment(sees, pts, courses), nil
}

func (a *AttainmentService) GetAttainment(
	ctx context.Context,
	idUser,
	idBatch,
	idSemester string,
) ([]Attainment, *res.ErrorRes) {
	_, attainments, errRes := a.report(ctx, idUser, idBatch, idSemester)
	return attainments, errRes
}

func (a *AttainmentService) report(
	ctx context.Context,
	idUser,
	idBatch,
	idSemester string,
) (*models.Semester, []Attainment, *res.ErrorRes) {
	semester, errRes := a.semester(ctx, idUser, idBatch, idSemester)
	if errRes != nil {
		return nil, nil, errRes
	}
	attainments, errRes := a.compute(ctx, semester.User, semester.ID)
	if errRes != nil {
		return nil, nil, errRes
	}
	return semester, attainments, nil
}
