package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegehub/collegehub-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func newProtectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{NewAuthenticator(testSigningKey).VerifyJWT()}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(ctx *gin.Context) {
		claims, err := GetClaims(ctx)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})

			return
		}
		ctx.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})

	router.GET("/protected", handlers...)

	return router
}

func doRequest(t *testing.T, router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, "/protected", nil)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestVerifyJWT(t *testing.T) {
	t.Run("valid token passes claims along", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 7, "student", "CS")
		require.NoError(t, err)

		recorder := doRequest(t, newProtectedRouter(), "Bearer "+token)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"user_id":7`)
	})

	t.Run("missing header", func(t *testing.T) {
		recorder := doRequest(t, newProtectedRouter(), "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		recorder := doRequest(t, newProtectedRouter(), "Token abc")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte("other-key"), 7, "student", "CS")
		require.NoError(t, err)

		recorder := doRequest(t, newProtectedRouter(), "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	t.Run("allowed role passes", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 7, "hod", "CS")
		require.NoError(t, err)

		recorder := doRequest(t, newProtectedRouter("admin", "hod"), "Bearer "+token)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("other roles are rejected", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 7, "student", "CS")
		require.NoError(t, err)

		recorder := doRequest(t, newProtectedRouter("admin", "hod"), "Bearer "+token)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
