package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type BatchController struct {
	batches *services.BatchService
}

func NewBatchController(svc *services.Services) *BatchController {
	return &BatchController{batches: svc.Batches}
}

func created(c *gin.Context, id string) {
	response := make(map[string]interface{})
	response["_id"] = id
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
		Data:    response,
	})
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
	})
}

// NewBatch godoc
// @Summary     New batch
// @Description Create a batch (cohort)
// @Tags        batches
// @Accept      json
// @Produce     json
// @Param       batch body     forms.TitleForm true "Title"
// @Success     201   {object} res.Response{body=smaps.IdInsertedMap}
// @Failure     400   {object} res.Response{} "Bad body"
// @Failure     401   {object} res.Response{} "Unauthorized"
// @Failure     503   {object} res.Response{} "Service Unavailable - DB Service Unavailable"
// @Router      /batches [post]
func (b *BatchController) NewBatch(c *gin.Context) {
	var batch *forms.TitleForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&batch); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	id, err := b.batches.NewBatch(c.Request.Context(), batch, claims.ID)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	created(c, id.Hex())
}

// UpdateBatch godoc
// @Summary  Rename batch
// @Tags     batches
// @Param    idBatch path     string          true "MongoID"
// @Param    batch   body     forms.TitleForm true "Title"
// @Success  200     {object} res.Response{}
// @Failure  404     {object} res.Response{} "batch not found"
// @Router   /batches/{idBatch} [put]
func (b *BatchController) UpdateBatch(c *gin.Context) {
	var batch *forms.TitleForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&batch); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	if err := b.batches.UpdateBatch(c.Request.Context(), batch, claims.ID, c.Param("idBatch")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}

// DeleteBatch godoc
// @Summary     Delete batch
// @Description Delete a batch with its name lists, semesters and sheets
// @Tags        batches
// @Param       idBatch path     string true "MongoID"
// @Success     200     {object} res.Response{}
// @Failure     400     {object} res.Response{} "invalid batch id"
// @Failure     404     {object} res.Response{} "batch not found"
// @Router      /batches/{idBatch} [delete]
func (b *BatchController) DeleteBatch(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := b.batches.DeleteBatch(c.Request.Context(), claims.ID, c.Param("idBatch")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	ok(c)
}
