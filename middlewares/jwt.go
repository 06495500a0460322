package middlewares

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

func JWTMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := services.ExtractToken(ctx.GetHeader("Authorization"))
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		ctx.Set(services.CLAIMS_KEY, claims)
		ctx.Next()
	}
}
