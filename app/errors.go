package app

import (
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Aborts with the standard envelope, server side failures are logged and hidden
func AbortWithError(c *gin.Context, err *res.ErrorRes) {
	message := err.Err.Error()
	if err.StatusCode >= 500 {
		zap.L().Error("request failed",
			zap.Int("status", err.StatusCode),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err.Err),
		)
		if err.StatusCode == 500 {
			message = "Server Internal Error"
		}
	}
	c.AbortWithStatusJSON(err.StatusCode, &res.Response{
		Success: false,
		Message: message,
	})
}

func AbortWithBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(400, &res.Response{
		Success: false,
		Message: err.Error(),
	})
}
