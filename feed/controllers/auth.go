package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	users *services.UsersService
}

func NewAuthController(svc *services.Services) *AuthController {
	return &AuthController{users: svc.Users}
}

// Signup godoc
// @Summary     Signup
// @Description Create an instructor account and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       user body     forms.SignupForm true "Credentials"
// @Success     201  {object} res.Response{body=smaps.TokenMap}
// @Failure     400  {object} res.Response{} "Bad body"
// @Failure     409  {object} res.Response{} "email already registered"
// @Failure     503  {object} res.Response{} "Service Unavailable - DB Service Unavailable"
// @Router      /auth/signup [post]
func (a *AuthController) Signup(c *gin.Context) {
	var signup *forms.SignupForm
	if err := c.BindJSON(&signup); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	token, user, err := a.users.Signup(c.Request.Context(), signup)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	// Response
	response := make(map[string]interface{})
	response["token"] = token
	response["user"] = user
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
		Data:    response,
	})
}

// Login godoc
// @Summary     Login
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       user body     forms.LoginForm true "Credentials"
// @Success     200  {object} res.Response{body=smaps.TokenMap}
// @Failure     400  {object} res.Response{} "Bad body"
// @Failure     401  {object} res.Response{} "invalid email or password"
// @Router      /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var login *forms.LoginForm
	if err := c.BindJSON(&login); err != nil {
		app.AbortWithBindError(c, err)
		return
	}
	token, user, err := a.users.Login(c.Request.Context(), login)
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	response := make(map[string]interface{})
	response["token"] = token
	response["user"] = user
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
		Data:    response,
	})
}
