package controllers

import (
	"fmt"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type AttainmentController struct {
	attainment *services.AttainmentService
}

func NewAttainmentController(svc *services.Services) *AttainmentController {
	return &AttainmentController{attainment: svc.Attainment}
}

// GetAttainment godoc
// @Summary     Get co-attainment
// @Description Per student and skill merge of SEE scores, periodic test marks (CIE) and course averages, sorted by rollno
// @Tags        attainment
// @Produce     json
// @Param       idBatch    path     string true "MongoID"
// @Param       idSemester path     string true "MongoID"
// @Success     200        {object} res.Response{body=smaps.AttainmentMap}
// @Failure     400        {object} res.Response{} "invalid semester id"
// @Failure     404        {object} res.Response{} "semester not found"
// @Router      /attainment/{idBatch}/{idSemester} [get]
func (a *AttainmentController) GetAttainment(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	attainments, err := a.attainment.GetAttainment(
		c.Request.Context(),
		claims.ID,
		c.Param("idBatch"),
		c.Param("idSemester"),
	)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "students", attainments)
}

// ExportAttainment godoc
// @Summary     Export co-attainment
// @Description Download the report as xlsx, pdf or a zip bundle of both
// @Tags        attainment
// @Produce     octet-stream
// @Param       idBatch    path  string true  "MongoID"
// @Param       idSemester path  string true  "MongoID"
// @Param       format     query string false "xlsx | pdf | zip" default(xlsx)
// @Success     200
// @Failure     400 {object} res.Response{} "unknown export format %q"
// @Router      /attainment/{idBatch}/{idSemester}/export [get]
func (a *AttainmentController) ExportAttainment(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	format := c.DefaultQuery("format", services.XLSX_FORMAT)

	err := a.attainment.Export(
		c.Request.Context(),
		format,
		claims.ID,
		c.Param("idBatch"),
		c.Param("idSemester"),
		&headerWriter{c: c, format: format, title: c.Param("idSemester")},
	)
	if err != nil {
		app.AbortWithError(c, err)
	}
}

// Sets the download headers right before the first byte
type headerWriter struct {
	c      *gin.Context
	format string
	title  string
	wrote  bool
}

func (h *headerWriter) SetTitle(title string) {
	h.title = title
}

func (h *headerWriter) Write(p []byte) (int, error) {
	if !h.wrote {
		h.wrote = true
		contentType, _ := services.ContentType(h.format)
		h.c.Header("Content-Type", contentType)
		h.c.Header(
			"Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", services.ReportFileName(h.title, h.format)),
		)
		h.c.Status(200)
	}
	return h.c.Writer.Write(p)
}
