package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type NamelistController struct {
	namelists *services.NamelistService
}

func NewNamelistController(svc *services.Services) *NamelistController {
	return &NamelistController{namelists: svc.Namelists}
}

// NewNamelist godoc
// @Summary     New namelist
// @Description Create a roster in a batch, rollno must be unique inside the payload
// @Tags        namelists
// @Accept      json
// @Produce     json
// @Param       namelist body     forms.NamelistForm true "Roster"
// @Success     201      {object} res.Response{body=smaps.IdInsertedMap}
// @Failure     400      {object} res.Response{} "Bad body"
// @Failure     404      {object} res.Response{} "batch not found"
// @Failure     409      {object} res.Response{} "rollno %s is repeated"
// @Router      /namelists [post]
func (n *NamelistController) NewNamelist(c *gin.Context) {
	var namelist *forms.NamelistForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&namelist); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	id, err := n.namelists.NewNamelist(c.Request.Context(), namelist, claims.ID)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	created(c, id.Hex())
}

// UpdateNamelist godoc
// @Summary  Rename namelist
// @Tags     namelists
// @Param    idNamelist path     string          true "MongoID"
// @Param    namelist   body     forms.TitleForm true "Title"
// @Success  200        {object} res.Response{}
// @Router   /namelists/{idNamelist} [put]
func (n *NamelistController) UpdateNamelist(c *gin.Context) {
	var title *forms.TitleForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&title); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := n.namelists.UpdateNamelist(c.Request.Context(), title, claims.ID, c.Param("idNamelist")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

// DeleteNamelist godoc
// @Summary  Delete namelist
// @Tags     namelists
// @Param    idNamelist path     string true "MongoID"
// @Success  200        {object} res.Response{}
// @Router   /namelists/{idNamelist} [delete]
func (n *NamelistController) DeleteNamelist(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := n.namelists.DeleteNamelist(c.Request.Context(), claims.ID, c.Param("idNamelist")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

// AddStudent godoc
// @Summary  Add student to namelist
// @Tags     namelists
// @Param    idNamelist path     string                true "MongoID"
// @Param    student    body     forms.NameStudentForm true "Student"
// @Success  201        {object} res.Response{}
// @Failure  409        {object} res.Response{} "a student with that rollno already exists"
// @Router   /namelists/{idNamelist}/students [post]
func (n *NamelistController) AddStudent(c *gin.Context) {
	var student *forms.NameStudentForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&student); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := n.namelists.AddStudent(c.Request.Context(), student, claims.ID, c.Param("idNamelist")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
	})
}

func (n *NamelistController) UpdateStudent(c *gin.Context) {
	var student *forms.NameStudentForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&student); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	err := n.namelists.UpdateStudent(
		c.Request.Context(),
		student,
		claims.ID,
		c.Param("idNamelist"),
		c.Param("rollno"),
	)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

func (n *NamelistController) DeleteStudent(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	err := n.namelists.DeleteStudent(
		c.Request.Context(),
		claims.ID,
		c.Param("idNamelist"),
		c.Param("rollno"),
	)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

// ImportStudents godoc
// @Summary     Import students
// @Description Append students from the first sheet of an xlsx file (registration_no, rollno, name), header row skipped
// @Tags        namelists
// @Accept      multipart/form-data
// @Produce     json
// @Param       idNamelist path     string true "MongoID"
// @Param       file       formData file   true "xlsx"
// @Success     201        {object} res.Response{body=smaps.ImportedMap}
// @Failure     400        {object} res.Response{} "Bad file"
// @Failure     409        {object} res.Response{} "a student with that rollno already exists"
// @Router      /namelists/{idNamelist}/import [post]
func (n *NamelistController) ImportStudents(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	defer file.Close()

	imported, errRes := n.namelists.ImportStudents(c.Request.Context(), file, claims.ID, c.Param("idNamelist"))
	if errRes != nil {
		app.AbortWithError(c, errRes)
		return
	}
	response := make(map[string]interface{})
	response["imported"] = imported
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
		Data:    response,
	})
}
