package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type AttainmentController struct {
	attainment *services.AttainmentService
}

func NewAttainmentController(svc *services.Services) *AttainmentController {
	return &AttainmentController{attainment: svc.Attainment}
}

// Publish godoc
// @Summary     Publish co-attainment report
// @Description Archive the xlsx and pdf bundle in S3 and announce it on attainment.published
// @Tags        attainment
// @Produce     json
// @Param       idBatch    path     string true "MongoID"
// @Param       idSemester path     string true "MongoID"
// @Success     201        {object} res.Response{body=smaps.PublishedMap}
// @Failure     404        {object} res.Response{} "semester not found"
// @Failure     503        {object} res.Response{} "report storage is not configured"
// @Router      /attainment/{idBatch}/{idSemester}/publish [post]
func (a *AttainmentController) Publish(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	report, err := a.attainment.Publish(
		c.Request.Context(),
		claims.ID,
		c.Param("idBatch"),
		c.Param("idSemester"),
	)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	response := make(map[string]interface{})
	response["key"] = report.Key
	response["url"] = report.URL
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
		Data:    response,
	})
}
