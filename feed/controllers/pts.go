package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type PtListController struct {
	pts *services.PtListService
}

func NewPtListController(svc *services.Services) *PtListController {
	return &PtListController{pts: svc.Pts}
}

// NewPt godoc
// @Summary     New periodic test
// @Description Create a periodic test, question options must be cotypes of the user
// @Tags        pts
// @Accept      json
// @Produce     json
// @Param       pt  body     forms.PtListForm true "Periodic test"
// @Success     201 {object} res.Response{body=smaps.IdInsertedMap}
// @Failure     400 {object} res.Response{} "unknown cotype %s"
// @Failure     404 {object} res.Response{} "semester not found"
// @Failure     409 {object} res.Response{} "a periodic test titled %q already exists"
// @Router      /pts [post]
func (p *PtListController) NewPt(c *gin.Context) {
	var pt *forms.PtListForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&pt); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	id, err := p.pts.NewPt(c.Request.Context(), pt, claims.ID)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	created(c, id.Hex())
}

func (p *PtListController) UpdatePt(c *gin.Context) {
	var title *forms.TitleForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&title); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := p.pts.UpdatePt(c.Request.Context(), title, claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

func (p *PtListController) DeletePt(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := p.pts.DeletePt(c.Request.Context(), claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

// UpdateScore godoc
// @Summary     Update question mark
// @Description Set the mark of a question (part is the 0 based part index), totals are recomputed
// @Tags        pts
// @Accept      json
// @Produce     json
// @Param       idList path     string            true "MongoID"
// @Param       score  body     forms.PtScoreForm true "Mark"
// @Success     200    {object} res.Response{body=smaps.PtStudentMap}
// @Failure     400    {object} res.Response{} "invalid mark %v, part %q allows 0 to %v"
// @Failure     404    {object} res.Response{} "student not found"
// @Router      /pts/{idList}/score [put]
func (p *PtListController) UpdateScore(c *gin.Context) {
	var score *forms.PtScoreForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&score); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	updated, err := p.pts.UpdateScore(c.Request.Context(), score, claims.ID, c.Param("idList"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	student(c, updated)
}

func (p *PtListController) AddStudent(c *gin.Context) {
	var student *forms.StudentForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&student); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := p.pts.AddStudent(c.Request.Context(), student, claims.ID, c.Param("idList")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
	})
}

func (p *PtListController) DeleteStudent(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := p.pts.DeleteStudent(c.Request.Context(), claims.ID, c.Param("idList"), c.Param("rollno")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}
