package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/repository"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/service"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/db"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/middleware"
	"gorm.io/gorm"
)

func setupEntityControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	ctrl := NewEntityController(service.NewEntityService(repository.NewEntityRepository(testDB)))
	authMiddleware := middleware.NewAuthMiddleware(testSecret)

	router := gin.New()
	router.GET("/hotels", ctrl.List(model.KindHotel))
	router.GET("/hotels/:id", ctrl.Get(model.KindHotel))

	admin := router.Group("", authMiddleware.Authenticate(), authMiddleware.RequireRole(string(model.RoleAdmin)))
	admin.POST("/hotels", ctrl.Create(model.KindHotel))
	admin.PUT("/hotels/:id", ctrl.Update(model.KindHotel))
	admin.DELETE("/hotels/:id", ctrl.Delete(model.KindHotel))

	return router, testDB
}

func TestEntityController_AdminCRUD(t *testing.T) {
	router, testDB := setupEntityControllerTest(t)
	defer db.CleanupTestDB(testDB)

	_, adminToken := authedUser(t, testDB, "admin@example.com", model.RoleAdmin)
	_, userToken := authedUser(t, testDB, "user@example.com", model.RoleUser)

	// only admins may create content
	w := doJSON(router, "POST", "/hotels", userToken, model.EntityUpsertRequest{
		Title:    "Forbidden Hotel",
		Location: "Seoul",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, "POST", "/hotels", adminToken, model.EntityUpsertRequest{
		Title:    "Grand Hotel",
		Location: "Seoul",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Hotel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	path := fmt.Sprintf("/hotels/%d", created.ID)

	w = doJSON(router, "PUT", path, adminToken, model.EntityUpsertRequest{
		Title:    "Grand Hotel Renamed",
		Location: "Seoul",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", path, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var fetched model.Hotel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Grand Hotel Renamed", fetched.Title)

	w = doJSON(router, "DELETE", path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEntityController_Create_Validation(t *testing.T) {
	router, testDB := setupEntityControllerTest(t)
	defer db.CleanupTestDB(testDB)

	_, adminToken := authedUser(t, testDB, "admin@example.com", model.RoleAdmin)

	// title shorter than two characters fails binding
	w := doJSON(router, "POST", "/hotels", adminToken, model.EntityUpsertRequest{
		Title: "X",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntityController_List(t *testing.T) {
	router, testDB := setupEntityControllerTest(t)
	defer db.CleanupTestDB(testDB)

	for _, h := range []*model.Hotel{
		{Title: "Busan Bay", Location: "Busan"},
		{Title: "Jeju Shore", Location: "Jeju"},
	} {
		require.NoError(t, testDB.Create(h).Error)
	}

	w := doJSON(router, "GET", "/hotels?location=Busan", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var listing map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, float64(1), listing["total"])

	w = doJSON(router, "GET", "/hotels/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
