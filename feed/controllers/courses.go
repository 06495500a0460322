package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type CoListController struct {
	courses *services.CoListService
}

func NewCoListController(svc *services.Services) *CoListController {
	return &CoListController{courses: svc.Courses}
}

func student(c *gin.Context, student interface{}) {
	response := make(map[string]interface{})
	response["student"] = student
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
		Data:    response,
	})
}

// NewCourse godoc
// @Summary     New course list
// @Description Create a course mark sheet, students are seeded with zero scores for every column
// @Tags        courses
// @Accept      json
// @Produce     json
// @Param       course body     forms.CoListForm true "Course list"
// @Success     201    {object} res.Response{body=smaps.IdInsertedMap}
// @Failure     400    {object} res.Response{} "rows or structure are required"
// @Failure     404    {object} res.Response{} "semester not found"
// @Failure     409    {object} res.Response{} "a course list titled %q already exists"
// @Router      /courses [post]
func (co *CoListController) NewCourse(c *gin.Context) {
	var course *forms.CoListForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&course); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	id, err := co.courses.NewCourse(c.Request.Context(), course, claims.ID)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	created(c, id.Hex())
}

// UpdateCourse godoc
// @Summary  Rename course list
// @Tags     courses
// @Param    idList path     string          true "MongoID"
// @Param    course body     forms.TitleForm true "Title"
// @Success  200    {object} res.Response{}
// @Router   /courses/{idList} [put]
func (co *CoListController) UpdateCourse(c *gin.Context) {
	var title *forms.TitleForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&title); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := co.courses.UpdateCourse(c.Request.Context(), title, claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

func (co *CoListController) DeleteCourse(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := co.courses.DeleteCourse(c.Request.Context(), claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

// UpdateScore godoc
// @Summary     Update score
// @Description Set the score of one column for a student, the average is recomputed
// @Tags        courses
// @Accept      json
// @Produce     json
// @Param       idList path     string            true "MongoID"
// @Param       score  body     forms.CoScoreForm true "Score"
// @Success     200    {object} res.Response{body=smaps.CoStudentMap}
// @Failure     400    {object} res.Response{} "%s is not a column of the course list"
// @Failure     404    {object} res.Response{} "student not found"
// @Router      /courses/{idList}/score [put]
func (co *CoListController) UpdateScore(c *gin.Context) {
	var score *forms.CoScoreForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&score); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	updated, err := co.courses.UpdateScore(c.Request.Context(), score, claims.ID, c.Param("idList"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	student(c, updated)
}

// AddRow godoc
// @Summary  Add column
// @Tags     courses
// @Param    idList path     string         true "MongoID"
// @Param    row    body     forms.RowForm  true "Column"
// @Success  201    {object} res.Response{}
// @Failure  409    {object} res.Response{} "column %s already exists"
// @Router   /courses/{idList}/rows [post]
func (co *CoListController) AddRow(c *gin.Context) {
	var row *forms.RowForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&row); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := co.courses.AddRow(c.Request.Context(), row, claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
	})
}

func (co *CoListController) DeleteRow(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := co.courses.DeleteRow(c.Request.Context(), claims.ID, c.Param("idList"), c.Param("row")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

func (co *CoListController) AddStudent(c *gin.Context) {
	var student *forms.StudentForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&student); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := co.courses.AddStudent(c.Request.Context(), student, claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
	})
}

func (co *CoListController) DeleteStudent(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := co.courses.DeleteStudent(c.Request.Context(), claims.ID, c.Param("idList"), c.Param("rollno")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}
