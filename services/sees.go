package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seeListKey(list models.SeeList) (primitive.ObjectID, string) {
	return list.ID, list.Title
}

type SeeListService struct {
	repos    *repositories.Repositories
	lookup   *lookup
	notifier *notifier
}

func NewSeeListService(repos *repositories.Repositories, lookup *lookup, notifier *notifier) *SeeListService {
	return &SeeListService{
		repos:    repos,
		lookup:   lookup,
		notifier: notifier,
	}
}

func (s *SeeListService) GetSees(ctx context.Context, idUser, idSemester string) ([]models.SeeList, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	semester, errRes := s.lookup.semester(ctx, idObjUser, idSemester)
	if errRes != nil {
		return nil, errRes
	}
	sees, err := s.repos.SeeLists.FindBy(ctx, idObjUser, "semester", semester.ID)
	if err != nil {
		return nil, storageError(err, "see list")
	}
	return sees, nil
}

func (s *SeeListService) getSee(ctx context.Context, idUser primitive.ObjectID, idList string) (*models.SeeList, *res.ErrorRes) {
	idObjList, errRes := parseID(idList, "see list")
	if errRes != nil {
		return nil, errRes
	}
	see, err := s.repos.SeeLists.FindOwned(ctx, idUser, idObjList)
	if err != nil {
		return nil, storageError(err, "see list")
	}
	return see, nil
}

func (s *SeeListService) GetSee(ctx context.Context, idUser, idList string) (*models.SeeList, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	return s.getSee(ctx, idObjUser, idList)
}

// A semester holds a single SEE sheet
func (s *SeeListService) NewSee(ctx context.Context, form *forms.SeeListForm, idUser string) (primitive.ObjectID, *res.ErrorRes) {
	user, errRes := s.lookup.user(ctx, idUser)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	semester, errRes := s.lookup.semester(ctx, user.ID, form.Semester)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	if errRes := checkCotypes(user, form.Courses); errRes != nil {
		return primitive.NilObjectID, errRes
	}
	existing, err := s.repos.SeeLists.FindBy(ctx, user.ID, "semester", semester.ID)
	if err != nil {
		return primitive.NilObjectID, storageError(err, "see list")
	}
	if len(existing) > 0 {
		return primitive.NilObjectID, res.NewErrorRes(http.StatusConflict, "the semester already has a see list")
	}
	roster, errRes := s.lookup.roster(ctx, semester, form.Namelist)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}

	see := models.NewModelSeeList(form.Title, form.Courses, roster, semester)
	id, err := s.repos.SeeLists.Insert(ctx, &see)
	if err != nil {
		return primitive.NilObjectID, storageError(err, "see list")
	}
	s.notifier.notify(res.SEE_SHEET, res.CREATED, id, user.ID, semester.ID)
	return id, nil
}

func (s *SeeListService) UpdateSee(ctx context.Context, form *forms.TitleForm, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	see, errRes := s.getSee(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if err := s.repos.SeeLists.Set(ctx, idObjUser, see.ID, bson.M{"title": form.Title}); err != nil {
		return storageError(err, "see list")
	}
	s.notifier.notify(res.SEE_SHEET, res.UPDATED, see.ID, idObjUser, see.Semester)
	return nil
}

func (s *SeeListService) DeleteSee(ctx context.Context, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	see, errRes := s.getSee(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if err := s.repos.SeeLists.Delete(ctx, idObjUser, see.ID); err != nil {
		return storageError(err, "see list")
	}
	s.notifier.notify(res.SEE_SHEET, res.DELETED, see.ID, idObjUser, see.Semester)
	return nil
}

func (s *SeeListService) UpdateScore(ctx context.Context, form *forms.SeeScoreForm, idUser, idList string) (*models.SeeStudent, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	see, errRes := s.getSee(ctx, idObjUser, idList)
	if errRes != nil {
		return nil, errRes
	}
	if !see.HasCourse(form.Course) {
		return nil, res.NewErrorRes(
			http.StatusBadRequest,
			fmt.Sprintf("%s is not a course of the see list", form.Course),
		)
	}
	index := see.StudentIndex(form.Rollno)
	if index == -1 {
		return nil, res.NewErrorRes(http.StatusNotFound, "student not found")
	}
	student := see.Students[index]
	scores := student.Scores.Clone()
	scores[form.Course] = *form.Score
	student.Scores = scores
	if err := s.repos.SeeLists.SetStudent(ctx, idObjUser, see.ID, student.Rollno, student); err != nil {
		return nil, storageError(err, "student")
	}
	s.notifier.notify(res.SEE_SHEET, res.UPDATED, see.ID, idObjUser, see.Semester)
	return &student, nil
}

func (s *SeeListService) AddStudent(ctx context.Context, form *forms.StudentForm, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	see, errRes := s.getSee(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	student := models.NewSeeStudent(strings.TrimSpace(form.Rollno), strings.TrimSpace(form.Name), see.Courses)
	if err := s.repos.SeeLists.PushStudents(ctx, idObjUser, see.ID, student); err != nil {
		return storageError(err, "student")
	}
	s.notifier.notify(res.SEE_SHEET, res.UPDATED, see.ID, idObjUser, see.Semester)
	return nil
}

func (s *SeeListService) DeleteStudent(ctx context.Context, idUser, idList, rollno string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	see, errRes := s.getSee(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if err := s.repos.SeeLists.PullStudent(ctx, idObjUser, see.ID, rollno); err != nil {
		return storageError(err, "student")
	}
	s.notifier.notify(res.SEE_SHEET, res.UPDATED, see.ID, idObjUser, see.Semester)
	return nil
}
