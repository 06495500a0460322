package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UsersService
}

func NewUserController(svc *services.Services) *UserController {
	return &UserController{users: svc.Users}
}

func body(c *gin.Context, key string, value interface{}) {
	response := make(map[string]interface{})
	response[key] = value
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
		Data:    response,
	})
}

// GetUser godoc
// @Summary     Get user
// @Description Get the authenticated user by email, "me" is an alias of the authenticated user
// @Tags        users
// @Produce     json
// @Param       email path     string true "Email or me"
// @Success     200   {object} res.Response{body=smaps.UserMap}
// @Failure     401   {object} res.Response{} "Unauthorized"
// @Failure     404   {object} res.Response{} "user not found"
// @Router      /users/{email} [get]
func (u *UserController) GetUser(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	email := c.Param("email")
	if email == "me" {
		email = claims.Email
	}
	user, err := u.users.GetUserByEmail(c.Request.Context(), claims, email)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "user", user)
}

// GetCotypes godoc
// @Summary  Get cotypes
// @Tags     cotypes
// @Produce  json
// @Success  200 {object} res.Response{body=smaps.CotypesMap}
// @Router   /cotypes [get]
func (u *UserController) GetCotypes(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	cotypes, err := u.users.GetCotypes(c.Request.Context(), claims.ID)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "cotypes", cotypes)
}
