package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/gin-gonic/gin/binding"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type NamelistService struct {
	repos    *repositories.Repositories
	lookup   *lookup
	notifier *notifier
}

func NewNamelistService(repos *repositories.Repositories, lookup *lookup, notifier *notifier) *NamelistService {
	return &NamelistService{
		repos:    repos,
		lookup:   lookup,
		notifier: notifier,
	}
}

func toNameStudents(students []forms.NameStudentForm) []models.NameStudent {
	nameStudents := make([]models.NameStudent, 0, len(students))
	for _, student := range students {
		nameStudents = append(nameStudents, models.NameStudent{
			RegistrationNo: strings.TrimSpace(student.RegistrationNo),
			Rollno:         strings.TrimSpace(student.Rollno),
			Name:           strings.TrimSpace(student.Name),
		})
	}
	return nameStudents
}

func duplicatedError(rollno string) *res.ErrorRes {
	return res.NewErrorRes(http.StatusConflict, fmt.Sprintf("rollno %s is repeated", rollno))
}

// Search is secondary, index failures are logged
func (n *NamelistService) reindex(ctx context.Context, idUser, idNamelist primitive.ObjectID) {
	namelist, err := n.repos.Namelists.FindOwned(ctx, idUser, idNamelist)
	if err != nil {
		zap.L().Warn("namelist not reindexed", zap.String("namelist", idNamelist.Hex()), zap.Error(err))
		return
	}
	if err := n.repos.Students.Index(ctx, namelist); err != nil {
		zap.L().Warn("namelist not reindexed", zap.String("namelist", idNamelist.Hex()), zap.Error(err))
	}
}

func (n *NamelistService) GetNamelists(ctx context.Context, idUser, idBatch string) ([]models.Namelist, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	batch, errRes := n.lookup.batch(ctx, idObjUser, idBatch)
	if errRes != nil {
		return nil, errRes
	}
	namelists, err := n.repos.Namelists.FindBy(ctx, idObjUser, "batch", batch.ID)
	if err != nil {
		return nil, storageError(err, "namelist")
	}
	return namelists, nil
}

func (n *NamelistService) GetNamelist(ctx context.Context, idUser, idNamelist string) (*models.Namelist, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	return n.lookup.namelist(ctx, idObjUser, idNamelist)
}

func (n *NamelistService) NewNamelist(ctx context.Context, form *forms.NamelistForm, idUser string) (primitive.ObjectID, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	batch, errRes := n.lookup.batch(ctx, idObjUser, form.Batch)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	students := toNameStudents(form.Students)
	if rollno, repeated := models.DuplicatedRollno(students); repeated {
		return primitive.NilObjectID, duplicatedError(rollno)
	}
	namelist := models.NewModelNamelist(form.Title, students, idObjUser, batch.ID)
	id, err := n.repos.Namelists.Insert(ctx, &namelist)
	if err != nil {
		return primitive.NilObjectID, storageError(err, "namelist")
	}
	if err := n.repos.Students.Index(ctx, &namelist); err != nil {
		zap.L().Warn("namelist not indexed", zap.String("namelist", id.Hex()), zap.Error(err))
	}
	n.notifier.notify(res.NAMELIST, res.CREATED, id, idObjUser, primitive.NilObjectID)
	return id, nil
}

func (n *NamelistService) UpdateNamelist(ctx context.Context, form *forms.TitleForm, idUser, idNamelist string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	idObjNamelist, errRes := parseID(idNamelist, "namelist")
	if errRes != nil {
		return errRes
	}
	if err := n.repos.Namelists.Set(ctx, idObjUser, idObjNamelist, bson.M{"title": form.Title}); err != nil {
		return storageError(err, "namelist")
	}
	n.notifier.notify(res.NAMELIST, res.UPDATED, idObjNamelist, idObjUser, primitive.NilObjectID)
	return nil
}

func (n *NamelistService) DeleteNamelist(ctx context.Context, idUser, idNamelist string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	idObjNamelist, errRes := parseID(idNamelist, "namelist")
	if errRes != nil {
		return errRes
	}
	if err := n.repos.Namelists.Delete(ctx, idObjUser, idObjNamelist); err != nil {
		return storageError(err, "namelist")
	}
	if err := n.repos.Students.Remove(ctx, idObjUser, idObjNamelist); err != nil {
		zap.L().Warn("namelist not removed from index", zap.String("namelist", idNamelist), zap.Error(err))
	}
	n.notifier.notify(res.NAMELIST, res.DELETED, idObjNamelist, idObjUser, primitive.NilObjectID)
	return nil
}

func (n *NamelistService) AddStudents(
	ctx context.Context,
	students []models.NameStudent,
	idUser,
	idNamelist string,
) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	idObjNamelist, errRes := parseID(idNamelist, "namelist")
	if errRes != nil {
		return errRes
	}
	if len(students) == 0 {
		return res.NewErrorRes(http.StatusBadRequest, "no students to add")
	}
	if rollno, repeated := models.DuplicatedRollno(students); repeated {
		return duplicatedError(rollno)
	}
	if err := n.repos.Namelists.PushStudents(ctx, idObjUser, idObjNamelist, students...); err != nil {
		if repositories.IsDuplicate(err) {
			return res.NewErrorRes(http.StatusConflict, "a student with that rollno already exists")
		}
		return storageError(err, "namelist")
	}
	n.reindex(ctx, idObjUser, idObjNamelist)
	n.notifier.notify(res.NAMELIST, res.UPDATED, idObjNamelist, idObjUser, primitive.NilObjectID)
	return nil
}

func (n *NamelistService) AddStudent(ctx context.Context, form *forms.NameStudentForm, idUser, idNamelist string) *res.ErrorRes {
	return n.AddStudents(
		ctx,
		toNameStudents([]forms.NameStudentForm{*form}),
		idUser,
		idNamelist,
	)
}

func (n *NamelistService) UpdateStudent(
	ctx context.Context,
	form *forms.NameStudentForm,
	idUser,
	idNamelist,
	rollno string,
) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	namelist, errRes := n.lookup.namelist(ctx, idObjUser, idNamelist)
	if errRes != nil {
		return errRes
	}
	student := toNameStudents([]forms.NameStudentForm{*form})[0]
	if student.Rollno != rollno {
		for _, s := range namelist.Students {
			if s.Rollno == student.Rollno {
				return duplicatedError(student.Rollno)
			}
		}
	}
	if err := n.repos.Namelists.SetStudent(ctx, idObjUser, namelist.ID, rollno, student); err != nil {
		return storageError(err, "student")
	}
	n.reindex(ctx, idObjUser, namelist.ID)
	n.notifier.notify(res.NAMELIST, res.UPDATED, namelist.ID, idObjUser, primitive.NilObjectID)
	return nil
}

func (n *NamelistService) DeleteStudent(ctx context.Context, idUser, idNamelist, rollno string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	idObjNamelist, errRes := parseID(idNamelist, "namelist")
	if errRes != nil {
		return errRes
	}
	if err := n.repos.Namelists.PullStudent(ctx, idObjUser, idObjNamelist, rollno); err != nil {
		return storageError(err, "student")
	}
	n.reindex(ctx, idObjUser, idObjNamelist)
	n.notifier.notify(res.NAMELIST, res.UPDATED, idObjNamelist, idObjUser, primitive.NilObjectID)
	return nil
}

// Reads registration_no, rollno and name from the first sheet, skipping the header row
func ReadStudentsXlsx(r io.Reader) ([]models.NameStudent, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	students := []models.NameStudent{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cells := make([]string, 3)
		for j := 0; j < len(cells) && j < len(row); j++ {
			cells[j] = strings.TrimSpace(row[j])
		}
		if cells[1] == "" && cells[2] == "" {
			continue
		}
		if cells[1] == "" || cells[2] == "" {
			return nil, fmt.Errorf("row %d needs a rollno and a name", i+1)
		}
		// Same limits as the JSON body
		if err := binding.Validator.ValidateStruct(&forms.NameStudentForm{
			RegistrationNo: cells[0],
			Rollno:         cells[1],
			Name:           cells[2],
		}); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		students = append(students, models.NameStudent{
			RegistrationNo: cells[0],
			Rollno:         cells[1],
			Name:           cells[2],
		})
	}
	return students, nil
}

func (n *NamelistService) ImportStudents(ctx context.Context, file io.Reader, idUser, idNamelist string) (int, *res.ErrorRes) {
	students, err := ReadStudentsXlsx(file)
	if err != nil {
		return 0, res.BadRequest(err)
	}
	if errRes := n.AddStudents(ctx, students, idUser, idNamelist); errRes != nil {
		return 0, errRes
	}
	return len(students), nil
}

func (n *NamelistService) SearchStudents(
	ctx context.Context,
	idUser,
	idBatch,
	q string,
) ([]repositories.StudentHit, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	batch, errRes := n.lookup.batch(ctx, idObjUser, idBatch)
	if errRes != nil {
		return nil, errRes
	}
	if strings.TrimSpace(q) == "" {
		return []repositories.StudentHit{}, nil
	}
	hits, err := n.repos.Students.Search(ctx, idObjUser, batch.ID, q)
	if err != nil {
		zap.L().Error("search students", zap.Error(err))
		return nil, res.Unavailable(err)
	}
	return hits, nil
}
