package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type SeeListController struct {
	sees *services.SeeListService
}

func NewSeeListController(svc *services.Services) *SeeListController {
	return &SeeListController{sees: svc.Sees}
}

// NewSee godoc
// @Summary     New SEE list
// @Description Create the semester-end exam sheet, one per semester. Courses must be cotypes of the user
// @Tags        sees
// @Accept      json
// @Produce     json
// @Param       see body     forms.SeeListForm true "SEE list"
// @Success     201 {object} res.Response{body=smaps.IdInsertedMap}
// @Failure     400 {object} res.Response{} "unknown cotype %s"
// @Failure     409 {object} res.Response{} "the semester already has a see list"
// @Router      /sees [post]
func (s *SeeListController) NewSee(c *gin.Context) {
	var see *forms.SeeListForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&see); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	id, err := s.sees.NewSee(c.Request.Context(), see, claims.ID)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	created(c, id.Hex())
}

func (s *SeeListController) UpdateSee(c *gin.Context) {
	var title *forms.TitleForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&title); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := s.sees.UpdateSee(c.Request.Context(), title, claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

func (s *SeeListController) DeleteSee(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := s.sees.DeleteSee(c.Request.Context(), claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

// UpdateScore godoc
// @Summary  Update SEE score
// @Tags     sees
// @Param    idList path     string             true "MongoID"
// @Param    score  body     forms.SeeScoreForm true "Score"
// @Success  200    {object} res.Response{body=smaps.SeeStudentMap}
// @Failure  400    {object} res.Response{} "%s is not a course of the see list"
// @Router   /sees/{idList}/score [put]
func (s *SeeListController) UpdateScore(c *gin.Context) {
	var score *forms.SeeScoreForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&score); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	updated, err := s.sees.UpdateScore(c.Request.Context(), score, claims.ID, c.Param("idList"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	student(c, updated)
}

func (s *SeeListController) AddStudent(c *gin.Context) {
	var student *forms.StudentForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&student); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := s.sees.AddStudent(c.Request.Context(), student, claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
	})
}

func (s *SeeListController) DeleteStudent(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := s.sees.DeleteStudent(c.Request.Context(), claims.ID, c.Param("idList"), c.Param("rollno")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}
