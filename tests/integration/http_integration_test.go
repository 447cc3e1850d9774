//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctrl "github.com/jrjohn/docstore-users/internal/controller/http"
	"github.com/jrjohn/docstore-users/internal/domain/service"
	"github.com/jrjohn/docstore-users/internal/dto/response"
	"github.com/jrjohn/docstore-users/internal/middleware"
	"github.com/jrjohn/docstore-users/internal/testutil"
)

func newAPIRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := setupUsersDB(t)
	native := newNative(t, db)

	router := gin.New()
	router.Use(middleware.Recovery(testutil.NewTestLogger(t)))
	router.Use(middleware.RequestID())

	api := router.Group("/api")
	httpctrl.NewUserController(service.VariantNative, native, native).RegisterRoutes(api)
	httpctrl.NewUserController(service.VariantMapped, newMapped(t, db), nil).RegisterRoutes(api)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIntegration_HTTP_UserLifecycle(t *testing.T) {
	router := newAPIRouter(t)

	for _, variant := range []string{service.VariantNative, service.VariantMapped} {
		t.Run(variant, func(t *testing.T) {
			base := "/api/" + variant + "/users"
			email := variant + "@example.com"

			w := doJSON(t, router, http.MethodPost, base, map[string]string{
				"name": "Http User", "email": email, "department": "Web", "role": "Developer",
			})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var created response.UserResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
			assert.True(t, created.Active)

			w = doJSON(t, router, http.MethodPost, base, map[string]string{
				"name": "Other", "email": email, "department": "Web", "role": "Developer",
			})
			assert.Equal(t, http.StatusConflict, w.Code)

			w = doJSON(t, router, http.MethodPut, base+"/"+created.ID, map[string]any{"active": false})
			require.Equal(t, http.StatusOK, w.Code)
			var updated response.UserResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
			assert.False(t, updated.Active)
			assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

			w = doJSON(t, router, http.MethodGet, "/api/"+variant+"/users/count/department/Web", nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"department":"Web","count":1}`, w.Body.String())

			w = doJSON(t, router, http.MethodDelete, base+"/"+created.ID, nil)
			assert.Equal(t, http.StatusNoContent, w.Code)

			w = doJSON(t, router, http.MethodGet, base+"/"+created.ID, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)

			w = doJSON(t, router, http.MethodGet, base+"/nope", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestIntegration_HTTP_Stats(t *testing.T) {
	router := newAPIRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/native/users", map[string]string{
		"name": "Stat User", "email": "stat@example.com", "department": "IT", "role": "Developer",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/native/stats/departments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"department":"IT","totalUsers":1,"activeUsers":1,"inactiveUsers":0}]`, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/mapped/stats/departments", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
