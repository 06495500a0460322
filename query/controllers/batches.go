package controllers

import (
	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type BatchController struct {
	batches   *services.BatchService
	namelists *services.NamelistService
	semesters *services.SemesterService
}

func NewBatchController(svc *services.Services) *BatchController {
	return &BatchController{
		batches:   svc.Batches,
		namelists: svc.Namelists,
		semesters: svc.Semesters,
	}
}

// GetBatches godoc
// @Summary  Get batches
// @Tags     batches
// @Produce  json
// @Success  200 {object} res.Response{body=smaps.BatchesMap}
// @Failure  401 {object} res.Response{} "Unauthorized"
// @Router   /batches [get]
func (b *BatchController) GetBatches(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	batches, err := b.batches.GetBatches(c.Request.Context(), claims.ID)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "batches", batches)
}

// GetBatch godoc
// @Summary     Get batch
// @Description Get a batch with the titles of its name lists and semesters
// @Tags        batches
// @Produce     json
// @Param       idBatch path     string true "MongoID"
// @Success     200     {object} res.Response{body=smaps.BatchMap}
// @Failure     400     {object} res.Response{} "invalid batch id"
// @Failure     404     {object} res.Response{} "batch not found"
// @Router      /batches/{idBatch} [get]
func (b *BatchController) GetBatch(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	batch, err := b.batches.GetBatch(c.Request.Context(), claims.ID, c.Param("idBatch"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "batch", batch)
}

func (b *BatchController) GetNamelists(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	namelists, err := b.namelists.GetNamelists(c.Request.Context(), claims.ID, c.Param("idBatch"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "namelists", namelists)
}

func (b *BatchController) GetSemesters(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	semesters, err := b.semesters.GetSemesters(c.Request.Context(), claims.ID, c.Param("idBatch"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "semesters", semesters)
}

// SearchStudents godoc
// @Summary     Search students
// @Description Full text search over the name lists of a batch (name, rollno, registration_no)
// @Tags        batches
// @Produce     json
// @Param       idBatch path     string true  "MongoID"
// @Param       q       query    string false "Search"
// @Success     200     {object} res.Response{body=smaps.SearchHitsMap}
// @Failure     503     {object} res.Response{} "Service Unavailable - Elasticsearch"
// @Router      /batches/{idBatch}/students [get]
func (b *BatchController) SearchStudents(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	hits, err := b.namelists.SearchStudents(
		c.Request.Context(),
		claims.ID,
		c.Param("idBatch"),
		c.Query("q"),
	)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "hits", hits)
}
