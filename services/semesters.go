package services

import (
	"context"

	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SemesterDetail struct {
	models.Semester
	Courses []repositories.Summary `json:"courses"`
	Pts     []repositories.Summary `json:"pts"`
	Sees    []repositories.Summary `json:"sees"`
}

type SemesterService struct {
	repos    *repositories.Repositories
	lookup   *lookup
	notifier *notifier
}

func NewSemesterService(repos *repositories.Repositories, lookup *lookup, notifier *notifier) *SemesterService {
	return &SemesterService{
		repos:    repos,
		lookup:   lookup,
		notifier: notifier,
	}
}

func (s *SemesterService) GetSemesters(ctx context.Context, idUser, idBatch string) ([]models.Semester, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	batch, errRes := s.lookup.batch(ctx, idObjUser, idBatch)
	if errRes != nil {
		return nil, errRes
	}
	semesters, err := s.repos.Semesters.FindBy(ctx, idObjUser, "batch", batch.ID)
	if err != nil {
		return nil, storageError(err, "semester")
	}
	return semesters, nil
}

func (s *SemesterService) GetSemester(ctx context.Context, idUser, idSemester string) (*SemesterDetail, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	semester, errRes := s.lookup.semester(ctx, idObjUser, idSemester)
	if errRes != nil {
		return nil, errRes
	}
	courses, err := s.repos.CoLists.FindBy(ctx, idObjUser, "semester", semester.ID)
	if err != nil {
		return nil, storageError(err, "course list")
	}
	pts, err := s.repos.PtLists.FindBy(ctx, idObjUser, "semester", semester.ID)
	if err != nil {
		return nil, storageError(err, "periodic test")
	}
	sees, err := s.repos.SeeLists.FindBy(ctx, idObjUser, "semester", semester.ID)
	if err != nil {
		return nil, storageError(err, "see list")
	}
	return &SemesterDetail{
		Semester: *semester,
		Courses:  summarize(courses, coListKey),
		Pts:      summarize(pts, ptListKey),
		Sees:     summarize(sees, seeListKey),
	}, nil
}

// Name list of the batch copied into the semester
func (s *SemesterService) namelistCopy(
	ctx context.Context,
	idUser,
	idBatch primitive.ObjectID,
	idNamelist string,
) ([]models.NameStudent, *res.ErrorRes) {
	if idNamelist == "" {
		return []models.NameStudent{}, nil
	}
	return s.lookup.roster(ctx, &models.Semester{User: idUser, Batch: idBatch}, idNamelist)
}

func (s *SemesterService) NewSemester(ctx context.Context, form *forms.SemesterForm, idUser string) (primitive.ObjectID, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	batch, errRes := s.lookup.batch(ctx, idObjUser, form.Batch)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	students, errRes := s.namelistCopy(ctx, idObjUser, batch.ID, form.Namelist)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	semester := models.NewModelSemester(form.Title, students, idObjUser, batch.ID)
	id, err := s.repos.Semesters.Insert(ctx, &semester)
	if err != nil {
		return primitive.NilObjectID, storageError(err, "semester")
	}
	s.notifier.notify(res.SEMESTER, res.CREATED, id, idObjUser, id)
	return id, nil
}

func (s *SemesterService) UpdateSemester(
	ctx context.Context,
	form *forms.UpdateSemesterForm,
	idUser,
	idSemester string,
) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	semester, errRes := s.lookup.semester(ctx, idObjUser, idSemester)
	if errRes != nil {
		return errRes
	}
	update := bson.M{"title": form.Title}
	if form.Namelist != "" {
		students, errRes := s.namelistCopy(ctx, idObjUser, semester.Batch, form.Namelist)
		if errRes != nil {
			return errRes
		}
		update["namelist"] = append([]models.NameStudent{}, students...)
	}
	if err := s.repos.Semesters.Set(ctx, idObjUser, semester.ID, update); err != nil {
		return storageError(err, "semester")
	}
	s.notifier.notify(res.SEMESTER, res.UPDATED, semester.ID, idObjUser, semester.ID)
	return nil
}

func (s *SemesterService) DeleteSemester(ctx context.Context, idUser, idSemester string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	semester, errRes := s.lookup.semester(ctx, idObjUser, idSemester)
	if errRes != nil {
		return errRes
	}
	deleters := []func(ctx context.Context) (int64, error){
		func(ctx context.Context) (int64, error) {
			return s.repos.CoLists.DeleteBy(ctx, idObjUser, "semester", semester.ID)
		},
		func(ctx context.Context) (int64, error) {
			return s.repos.PtLists.DeleteBy(ctx, idObjUser, "semester", semester.ID)
		},
		func(ctx context.Context) (int64, error) {
			return s.repos.SeeLists.DeleteBy(ctx, idObjUser, "semester", semester.ID)
		},
	}
	errRes = utils.Concurrency(ctx, CASCADE_WORKERS, len(deleters), func(
		ctx context.Context,
		index int,
		setError func(errRes *res.ErrorRes),
	) {
		if _, err := deleters[index](ctx); err != nil {
			setError(storageError(err, "semester content"))
		}
	})
	if errRes != nil {
		return errRes
	}
	if err := s.repos.Semesters.Delete(ctx, idObjUser, semester.ID); err != nil {
		return storageError(err, "semester")
	}
	s.notifier.notify(res.SEMESTER, res.DELETED, semester.ID, idObjUser, semester.ID)
	return nil
}
