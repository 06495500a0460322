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

func coListKey(list models.CoList) (primitive.ObjectID, string) {
	return list.ID, list.Title
}

type CoListService struct {
	repos    *repositories.Repositories
	lookup   *lookup
	notifier *notifier
}

func NewCoListService(repos *repositories.Repositories, lookup *lookup, notifier *notifier) *CoListService {
	return &CoListService{
		repos:    repos,
		lookup:   lookup,
		notifier: notifier,
	}
}

func (c *CoListService) GetCourses(ctx context.Context, idUser, idSemester string) ([]models.CoList, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	semester, errRes := c.lookup.semester(ctx, idObjUser, idSemester)
	if errRes != nil {
		return nil, errRes
	}
	courses, err := c.repos.CoLists.FindBy(ctx, idObjUser, "semester", semester.ID)
	if err != nil {
		return nil, storageError(err, "course list")
	}
	return courses, nil
}

func (c *CoListService) getCourse(ctx context.Context, idUser primitive.ObjectID, idList string) (*models.CoList, *res.ErrorRes) {
	idObjList, errRes := parseID(idList, "course list")
	if errRes != nil {
		return nil, errRes
	}
	course, err := c.repos.CoLists.FindOwned(ctx, idUser, idObjList)
	if err != nil {
		return nil, storageError(err, "course list")
	}
	return course, nil
}

func (c *CoListService) GetCourse(ctx context.Context, idUser, idList string) (*models.CoList, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	return c.getCourse(ctx, idObjUser, idList)
}

func (c *CoListService) checkTitle(
	ctx context.Context,
	idUser,
	idSemester primitive.ObjectID,
	title string,
	exclude primitive.ObjectID,
) *res.ErrorRes {
	taken, errRes := titleTaken[models.CoList](ctx, c.repos.CoLists, idUser, idSemester, title, exclude, coListKey)
	if errRes != nil {
		return errRes
	}
	if taken {
		return res.NewErrorRes(http.StatusConflict, fmt.Sprintf("a course list titled %q already exists", title))
	}
	return nil
}

func (c *CoListService) NewCourse(ctx context.Context, form *forms.CoListForm, idUser string) (primitive.ObjectID, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	semester, errRes := c.lookup.semester(ctx, idObjUser, form.Semester)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	if len(form.Rows) == 0 && len(form.Structure) == 0 {
		return primitive.NilObjectID, res.NewErrorRes(http.StatusBadRequest, "rows or structure are required")
	}
	var structure models.Scores
	if len(form.Structure) > 0 {
		structure = models.Scores(form.Structure)
		for _, row := range form.Rows {
			if _, ok := structure[row]; !ok {
				return primitive.NilObjectID, res.NewErrorRes(
					http.StatusBadRequest,
					fmt.Sprintf("row %s has no max mark in the structure", row),
				)
			}
		}
	}
	if errRes := c.checkTitle(ctx, idObjUser, semester.ID, form.Title, primitive.NilObjectID); errRes != nil {
		return primitive.NilObjectID, errRes
	}
	roster, errRes := c.lookup.roster(ctx, semester, form.Namelist)
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}

	course := models.NewModelCoList(form.Title, form.Rows, structure, roster, semester)
	id, err := c.repos.CoLists.Insert(ctx, &course)
	if err != nil {
		return primitive.NilObjectID, storageError(err, "course list")
	}
	c.notifier.notify(res.COURSE_SHEET, res.CREATED, id, idObjUser, semester.ID)
	return id, nil
}

func (c *CoListService) UpdateCourse(ctx context.Context, form *forms.TitleForm, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	course, errRes := c.getCourse(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if errRes := c.checkTitle(ctx, idObjUser, course.Semester, form.Title, course.ID); errRes != nil {
		return errRes
	}
	if err := c.repos.CoLists.Set(ctx, idObjUser, course.ID, bson.M{"title": form.Title}); err != nil {
		return storageError(err, "course list")
	}
	c.notifier.notify(res.COURSE_SHEET, res.UPDATED, course.ID, idObjUser, course.Semester)
	return nil
}

func (c *CoListService) DeleteCourse(ctx context.Context, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	course, errRes := c.getCourse(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if err := c.repos.CoLists.Delete(ctx, idObjUser, course.ID); err != nil {
		return storageError(err, "course list")
	}
	c.notifier.notify(res.COURSE_SHEET, res.DELETED, course.ID, idObjUser, course.Semester)
	return nil
}

// Sets one score and recomputes the student average
func (c *CoListService) UpdateScore(ctx context.Context, form *forms.CoScoreForm, idUser, idList string) (*models.CoStudent, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	course, errRes := c.getCourse(ctx, idObjUser, idList)
	if errRes != nil {
		return nil, errRes
	}
	if !course.HasRow(form.Assignment) {
		return nil, res.NewErrorRes(
			http.StatusBadRequest,
			fmt.Sprintf("%s is not a column of the course list", form.Assignment),
		)
	}
	score := *form.Score
	if max, ok := course.MaxMark(form.Assignment); ok && score > max {
		return nil, res.NewErrorRes(
			http.StatusBadRequest,
			fmt.Sprintf("invalid score %v, %s allows 0 to %v", score, form.Assignment, max),
		)
	}
	index := course.StudentIndex(form.Rollno)
	if index == -1 {
		return nil, res.NewErrorRes(http.StatusNotFound, "student not found")
	}

	student := course.Students[index]
	scores := student.Scores.Clone()
	scores[form.Assignment] = score
	student.Scores = scores
	if err := student.Recompute(course.Rows); err != nil {
		return nil, res.BadRequest(err)
	}
	if err := c.repos.CoLists.SetStudent(ctx, idObjUser, course.ID, student.Rollno, student); err != nil {
		return nil, storageError(err, "student")
	}
	c.notifier.notify(res.COURSE_SHEET, res.UPDATED, course.ID, idObjUser, course.Semester)
	return &student, nil
}

func (c *CoListService) setColumns(
	ctx context.Context,
	idUser primitive.ObjectID,
	course *models.CoList,
) *res.ErrorRes {
	update := bson.M{
		"rows":     course.Rows,
		"students": course.Students,
	}
	if course.Structure != nil {
		update["structure"] = course.Structure
	}
	if err := c.repos.CoLists.Set(ctx, idUser, course.ID, update); err != nil {
		return storageError(err, "course list")
	}
	c.notifier.notify(res.COURSE_SHEET, res.UPDATED, course.ID, idUser, course.Semester)
	return nil
}

// Adds a column to every student, averages drop accordingly
func (c *CoListService) AddRow(ctx context.Context, form *forms.RowForm, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	course, errRes := c.getCourse(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	row := strings.TrimSpace(form.Row)
	if course.HasRow(row) {
		return res.NewErrorRes(http.StatusConflict, fmt.Sprintf("column %s already exists", row))
	}
	if course.Structure != nil && form.MaxMark == nil {
		return res.NewErrorRes(http.StatusBadRequest, "maxMark is required by the structure of the list")
	}
	course.Rows = append(course.Rows, row)
	if form.MaxMark != nil {
		if course.Structure == nil {
			course.Structure = make(models.Scores)
		}
		course.Structure[row] = *form.MaxMark
	}
	for i := range course.Students {
		student := &course.Students[i]
		if student.Scores == nil {
			student.Scores = make(models.Scores)
		}
		student.Scores[row] = 0
		if err := student.Recompute(course.Rows); err != nil {
			return res.BadRequest(err)
		}
	}
	return c.setColumns(ctx, idObjUser, course)
}

func (c *CoListService) DeleteRow(ctx context.Context, idUser, idList, row string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	course, errRes := c.getCourse(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if !course.HasRow(row) {
		return res.NewErrorRes(http.StatusNotFound, fmt.Sprintf("column %s not found", row))
	}
	rows := make([]string, 0, len(course.Rows)-1)
	for _, r := range course.Rows {
		if r != row {
			rows = append(rows, r)
		}
	}
	course.Rows = rows
	if course.Structure != nil {
		delete(course.Structure, row)
	}
	for i := range course.Students {
		student := &course.Students[i]
		delete(student.Scores, row)
		if err := student.Recompute(course.Rows); err != nil {
			return res.BadRequest(err)
		}
	}
	return c.setColumns(ctx, idObjUser, course)
}

func (c *CoListService) AddStudent(ctx context.Context, form *forms.StudentForm, idUser, idList string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	course, errRes := c.getCourse(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	student := models.NewCoStudent(strings.TrimSpace(form.Rollno), strings.TrimSpace(form.Name), course.Rows)
	if err := c.repos.CoLists.PushStudents(ctx, idObjUser, course.ID, student); err != nil {
		return storageError(err, "student")
	}
	c.notifier.notify(res.COURSE_SHEET, res.UPDATED, course.ID, idObjUser, course.Semester)
	return nil
}

func (c *CoListService) DeleteStudent(ctx context.Context, idUser, idList, rollno string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	course, errRes := c.getCourse(ctx, idObjUser, idList)
	if errRes != nil {
		return errRes
	}
	if err := c.repos.CoLists.PullStudent(ctx, idObjUser, course.ID, rollno); err != nil {
		return storageError(err, "student")
	}
	c.notifier.notify(res.COURSE_SHEET, res.UPDATED, course.ID, idObjUser, course.Semester)
	return nil
}
