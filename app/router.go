package app

import (
	"net/http"
	"time"

	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const API_PREFIX = "/api/c/attainment"

type RouterConfig struct {
	Logger    *zap.Logger
	ClientURL string
	// Requests per second per IP, 0 disables the limiter
	RateLimit int
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, &res.Response{
		Success: false,
		Message: "Too many requests. Try again in " + time.Until(info.ResetTime).String(),
	})
}

func InitValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("objectid", forms.ObjectID)
		v.RegisterValidation("mongokey", forms.MongoKey)
	}
}

// Engine with logging, recovery, CORS, secure headers and rate limiting
func NewRouter(config RouterConfig) *gin.Engine {
	logger := config.Logger
	if logger == nil {
		logger = zap.L()
	}
	router := gin.New()
	// Proxies
	router.SetTrustedProxies([]string{"localhost"})
	// Zap logger
	router.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{API_PREFIX + "/healthz"},
	}))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, &res.Response{
			Success: false,
			Message: "Server Internal Error",
		})
	}))
	// CORS
	httpOrigin := "http://" + config.ClientURL
	httpsOrigin := "https://" + config.ClientURL
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{httpOrigin, httpsOrigin},
		AllowMethods:     []string{"GET", "OPTIONS", "PUT", "DELETE", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// Secure
	router.Use(secure.New(secure.Config{
		SSLHost:              "ssl." + config.ClientURL,
		STSSeconds:           315360000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		IENoOpen:             true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		SSLProxyHeaders: map[string]string{
			"X-Forwarded-Proto": "https",
		},
	}))
	// Rate limit
	if config.RateLimit > 0 {
		store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  time.Second,
			Limit: uint(config.RateLimit),
		})
		router.Use(ratelimit.RateLimiter(store, &ratelimit.Options{
			ErrorHandler: rateLimitHandler,
			KeyFunc:      keyFunc,
		}))
	}
	// Validators
	InitValidators()
	router.GET(API_PREFIX+"/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, &res.Response{Success: true})
	})
	// No route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, &res.Response{
			Success: false,
			Message: "Not found",
		})
	})
	return router
}
