package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := services.NewAuthService("test-secret", time.Hour)
	user := &models.User{ID: primitive.NewObjectID(), Email: "a@x.com"}
	token, err := auth.CreateToken(user)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/private", JWTMiddleware(auth), func(c *gin.Context) {
		claims, ok := services.NewClaimsFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.ID)
	})

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer " + token, http.StatusOK},
		{token, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code, tc.header)
		if tc.status == http.StatusOK {
			assert.Equal(t, user.ID.Hex(), w.Body.String())
		}
	}
}
