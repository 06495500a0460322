package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type CotypeController struct {
	users *services.UsersService
}

func NewCotypeController(svc *services.Services) *CotypeController {
	return &CotypeController{users: svc.Users}
}

// AddCotype godoc
// @Summary     Add cotype
// @Description Add a skill label, adding an existing one is a no-op
// @Tags        cotypes
// @Accept      json
// @Produce     json
// @Param       cotype body     forms.CotypeForm true "Label"
// @Success     201    {object} res.Response{body=smaps.CotypesMap}
// @Failure     400    {object} res.Response{} "Bad body"
// @Failure     401    {object} res.Response{} "Unauthorized"
// @Router      /cotypes [post]
func (co *CotypeController) AddCotype(c *gin.Context) {
	var cotype *forms.CotypeForm
	claims, _ := services.NewClaimsFromContext(c)
	if err := c.BindJSON(&cotype); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	cotypes, err := co.users.AddCotype(c.Request.Context(), claims.ID, cotype.Cotype)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	response := make(map[string]interface{})
	response["cotypes"] = cotypes
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
		Data:    response,
	})
}

// DeleteCotype godoc
// @Summary  Delete cotype
// @Tags     cotypes
// @Param    cotype path     string true "Label"
// @Success  200    {object} res.Response{}
// @Failure  404    {object} res.Response{} "cotype not found"
// @Router   /cotypes/{cotype} [delete]
func (co *CotypeController) DeleteCotype(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	if err := co.users.DeleteCotype(c.Request.Context(), claims.ID, c.Param("cotype")); err != nil {
		app.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
	})
}
