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

func ptListKey(list models.PtList) (primitive.ObjectID, string) {
	return list.ID, list.Title
}

type PtListService struct {
	repos    *repositories.Repositories
	lookup   *lookup
	notifier *notifier
}

func NewPtListService(repos *repositories.Repositories, lookup *lookup, notifier *notifier) *PtListService {
	return &PtListService{
		repos:    repos,
		lookup:   lookup,
		notifier: notifier,
	}
}

func (p *PtListService) GetPts(ctx context.Context, idUser, idSemester string) ([]models.PtList, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	semester, errRes := p.lookup.semester(ctx, idObjUser, idSemester)
	if errRes != nil {
		return nil, errRes
	}
	pts, err := p.repos.PtLists.FindBy(ctx, idObjUser, "semester", semester.ID)
	if err != nil {
		return nil, storageError(err, "periodic test")
	}
	return pts, nil
}

func (p *PtListService) getPt(ctx context.Context, idUser primitive.ObjectID, idList string) (*models.PtList, *res.ErrorRes) {
	idObjList, errRes := parseID(idList, "periodic test")
	if errRes != nil {
		return nil, errRes
	}
	pt, err := p.repos.PtLists.FindOwned(ctx, idUser, idObjList)
	if err != nil {
		return nil, storageError(err, "periodic test")
	}
	return pt, nil
}

func (p *PtListService) GetPt(ctx context.Context, idUser, idList string) (*models.PtList, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	return p.getPt(ctx, idObjUser, idList)
}

func (p *PtListService) checkTitle(
	ctx context.Context,
	idUser,
	idSemester primitive.ObjectID,
	title string,
	exclude primitive.ObjectID,
) *res.ErrorRes {
	taken, errRes := titleTaken[models.PtList](ctx, p.repos.PtLists, idUser, idSemester, title, exclude, ptListKey)
	if errRes != nil {
		return errRes
	}
	if taken {
		return res.NewErrorRes(http.StatusConflict, fmt.Sprintf("a periodic test titled %q already exists", title))
	}
	return nil
}

func toStructure(parts []forms.PtPartForm) ([]models.PtPart, []string, *res.ErrorRes) {
	structure := make([]models.PtPart, 0, len(parts))
	options := []string{}
	for _, part := range parts {
		numbers := make(map[int]bool, len(part.Questions))
		questions := make([]models.PtQuestion, 0, len(part.Questions))
		for _, question := range part.Questions {
			if numbers[question.Number] {
				return nil, nil, res.NewErrorRes(
					http.StatusBadRequest,
					fmt.Sprintf("question %d is repeated in part %q", question.Number, part.Title),
				)
			}
			numbers[question.Number] = true
			questions = append(questions, models.PtQuestion{
				Number: question.Number,
				Option: question.Option,
			})
			options = append(options, question.Option)
		}
		structure = append(structure, models.PtPart{
			Title:     strings.TrimSpace(part.Title),
			MaxMark:   *part.MaxMark,
			Questions: questions,
		})
	}
	return structure, options, nil
}

func (p *PtListService) NewPt(ctx context.Context, form *forms.PtListForm, idUser string) (primitive.ObjectID, *res.ErrorRes) {
	user, errRes := p.lookup.user(ctx, idUser)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	semester, errRes := p.lookup.semester(ctx, user.ID, form.Semester)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	structure, options, errRes := toStructure(form.Structure)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	if errRes := checkCotypes(user, options); errRes != nil {
		return primitive.NilObjectID, errRes
	}
	if errRes := p.checkTitle(ctx, user.ID, semester.ID, form.Title, primitive.NilObjectID); errRes != nil {
		return primitive.NilObjectID, errRes
	}
	roster, errRes := p.lookup.roster(ctx, semester, form.Namelist)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}

	pt, err := models.NewModelPtList(form.Title, structure, roster, semester)
	if err != nil {
		return primitive.NilObjectID, res.BadRequest(err)
	}
	id, err := p.repos.PtLists.Insert(ctx, &pt)
	if err != nil {
		return primitive.NilObjectID, storageError(err, "periodic test")
	}
	p.notifier.notify(res.PT_SHEET, res.CREATED, id, user.ID, semester.ID)
	return id, nil
}

func (p *PtListService) UpdatePt(ctx context.Context, form *forms.TitleForm, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	pt, errRes := p.getPt(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if errRes := p.checkTitle(ctx, idObjUser, pt.Semester, form.Title, pt.ID); errRes != nil {
		return errRes
	}
	if err := p.repos.PtLists.Set(ctx, idObjUser, pt.ID, bson.M{"title": form.Title}); err != nil {
		return storageError(err, "periodic test")
	}
	p.notifier.notify(res.PT_SHEET, res.UPDATED, pt.ID, idObjUser, pt.Semester)
	return nil
}

func (p *PtListService) DeletePt(ctx context.Context, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	pt, errRes := p.getPt(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if err := p.repos.PtLists.Delete(ctx, idObjUser, pt.ID); err != nil {
		return storageError(err, "periodic test")
	}
	p.notifier.notify(res.PT_SHEET, res.DELETED, pt.ID, idObjUser, pt.Semester)
	return nil
}

// Sets the mark of one question and recomputes total and type marks
func (p *PtListService) UpdateScore(ctx context.Context, form *forms.PtScoreForm, idUser, idList string) (*models.PtStudent, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	pt, errRes := p.getPt(ctx, idObjUser, idList)
	if errRes != nil {
		return nil, errRes
	}
	index := pt.StudentIndex(form.Rollno)
	if index == -1 {
		return nil, res.NewErrorRes(http.StatusNotFound, "student not found")
	}
	student := pt.Students[index]
	if err := student.SetMark(*form.Part, form.Question, *form.Mark); err != nil {
		return nil, res.BadRequest(err)
	}
	if err := p.repos.PtLists.SetStudent(ctx, idObjUser, pt.ID, student.Rollno, student); err != nil {
		return nil, storageError(err, "student")
	}
	p.notifier.notify(res.PT_SHEET, res.UPDATED, pt.ID, idObjUser, pt.Semester)
	return &student, nil
}

func (p *PtListService) AddStudent(ctx context.Context, form *forms.StudentForm, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	pt, errRes := p.getPt(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	student := models.NewPtStudent(strings.TrimSpace(form.Rollno), strings.TrimSpace(form.Name), pt.Structure)
	if err := p.repos.PtLists.PushStudents(ctx, idObjUser, pt.ID, student); err != nil {
		return storageError(err, "student")
	}
	p.notifier.notify(res.PT_SHEET, res.UPDATED, pt.ID, idObjUser, pt.Semester)
	return nil
}

func (p *PtListService) DeleteStudent(ctx context.Context, idUser, idList, rollno string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	pt, errRes := p.getPt(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if err := p.repos.PtLists.PullStudent(ctx, idObjUser, pt.ID, rollno); err != nil {
		return storageError(err, "student")
	}
	p.notifier.notify(res.PT_SHEET, res.UPDATED, pt.ID, idObjUser, pt.Semester)
	return nil
}
