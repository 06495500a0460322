package controllers

import (
	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type SemesterController struct {
	semesters *services.SemesterService
}

func NewSemesterController(svc *services.Services) *SemesterController {
	return &SemesterController{semesters: svc.Semesters}
}

// NewSemester godoc
// @Summary     New semester
// @Description Create a semester in a batch, copying the roster of namelist_id when given
// @Tags        semesters
// @Accept      json
// @Produce     json
// @Param       semester body     forms.SemesterForm true "Semester"
// @Success     201      {object} res.Response{body=smaps.IdInsertedMap}
// @Failure     400      {object} res.Response{} "Bad body"
// @Failure     404      {object} res.Response{} "batch not found"
// @Router      /semesters [post]
func (s *SemesterController) NewSemester(c *gin.Context) {
	var semester *forms.SemesterForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&semester); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	id, err := s.semesters.NewSemester(c.Request.Context(), semester, claims.ID)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	created(c, id.Hex())
}

// UpdateSemester godoc
// @Summary     Update semester
// @Description Rename a semester and optionally copy the roster of namelist_id again
// @Tags        semesters
// @Param       idSemester path     string                   true "MongoID"
// @Param       semester   body     forms.UpdateSemesterForm true "Semester"
// @Success     200        {object} res.Response{}
// @Router      /semesters/{idSemester} [put]
func (s *SemesterController) UpdateSemester(c *gin.Context) {
	var semester *forms.UpdateSemesterForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&semester); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := s.semesters.UpdateSemester(c.Request.Context(), semester, claims.ID, c.Param("idSemester")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

// DeleteSemester godoc
// @Summary     Delete semester
// @Description Delete a semester with its sheets
// @Tags        semesters
// @Param       idSemester path     string true "MongoID"
// @Success     200        {object} res.Response{}
// @Router      /semesters/{idSemester} [delete]
func (s *SemesterController) DeleteSemester(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := s.semesters.DeleteSemester(c.Request.Context(), claims.ID, c.Param("idSemester")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}
