package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"labhouse/internal/storage"
	"labhouse/pkg/ident"
	"labhouse/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := NewStore(storage.NewMemoryStore(), zap.NewNop())
	require.NoError(t, err)
	gen, err := ident.NewGenerator(1)
	require.NoError(t, err)

	router := gin.New()
	group := router.Group("/api")
	group.Use(func(c *gin.Context) {
		// stand-in for the JWT middleware
		c.Set("userID", "usr-1")
		c.Set("role", "admin")
		c.Set("name", "Alice")
	})
	NewHandler(store, gen).RegisterRoutes(group)
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRoom_Success(t *testing.T) {
	router, store := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{
		"id":   "lab-comp",
		"name": "Computer Lab",
		"type": "computer",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	_, found := store.GetRoom("lab-comp")
	assert.True(t, found)
}

func TestCreateRoom_InvalidType(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{
		"id":   "lab-x",
		"name": "Mystery Lab",
		"type": "dungeon",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid room type", response["error"])
}

func TestCreateRoom_Duplicate(t *testing.T) {
	router, _ := setupTestRouter(t)

	first := doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{
		"id": "lab-comp", "name": "Computer Lab", "type": "computer",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{
		"id": "lab-comp", "name": "Copy", "type": "computer",
	})
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestGetRoom_NotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/rooms/lab-ghost", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateItem_FillsDefaults(t *testing.T) {
	router, _ := setupTestRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{
		"id": "lab-comp", "name": "Computer Lab", "type": "computer",
		"containers": []gin.H{{"id": "cont-1", "name": "Desk 1", "type": "table"}},
	}).Code)

	w := doJSON(t, router, http.MethodPost, "/api/rooms/lab-comp/containers/cont-1/items", gin.H{
		"name": "Monitor",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "good", item.Condition)
	assert.Equal(t, "available", item.Status)
}

func TestCreateItem_RejectsBadCondition(t *testing.T) {
	router, _ := setupTestRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{
		"id": "lab-comp", "name": "Computer Lab", "type": "computer",
		"containers": []gin.H{{"id": "cont-1", "name": "Desk 1"}},
	}).Code)

	w := doJSON(t, router, http.MethodPost, "/api/rooms/lab-comp/containers/cont-1/items", gin.H{
		"name":      "Monitor",
		"condition": "pristine",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStationSlots(t *testing.T) {
	router, _ := setupTestRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{
		"id": "lab-comp", "name": "Computer Lab", "type": "computer",
		"containers": []gin.H{{
			"id": "cont-1", "name": "Desk 1", "type": "table",
			"items": []gin.H{
				{"id": "itm-1", "name": "Dell U2419", "type": "Monitor", "condition": "good", "status": "available"},
				{"id": "itm-2", "name": "Spare screen", "type": "display", "condition": "good", "status": "available"},
				{"id": "itm-3", "name": "Webcam", "type": "camera", "condition": "good", "status": "available"},
			},
		}},
	}).Code)

	w := doJSON(t, router, http.MethodGet, "/api/rooms/lab-comp/containers/cont-1/slots", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Slots      map[string]models.Item `json:"slots"`
		Unassigned []models.Item          `json:"unassigned"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	// first monitor claims the slot, the second spills to unassigned
	assert.Equal(t, "itm-1", response.Slots["monitor"].ID)
	require.Len(t, response.Unassigned, 2)
	assert.Equal(t, "itm-2", response.Unassigned[0].ID)
	assert.Equal(t, "itm-3", response.Unassigned[1].ID)
}

func TestGetStationSlots_NotAStation(t *testing.T) {
	router, _ := setupTestRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{
		"id": "lab-comp", "name": "Computer Lab", "type": "computer",
		"containers": []gin.H{{"id": "cont-1", "name": "Supplies", "type": "cupboard"}},
	}).Code)

	w := doJSON(t, router, http.MethodGet, "/api/rooms/lab-comp/containers/cont-1/slots", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRoom_RequiresAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, err := NewStore(storage.NewMemoryStore(), zap.NewNop())
	require.NoError(t, err)
	gen, err := ident.NewGenerator(1)
	require.NoError(t, err)

	router := gin.New()
	group := router.Group("/api")
	group.Use(func(c *gin.Context) { c.Set("role", "staff") })
	NewHandler(store, gen).RegisterRoutes(group)

	require.NoError(t, store.AddRoom(models.Room{ID: "lab-comp", Name: "Computer Lab"}))

	w := doJSON(t, router, http.MethodDelete, "/api/rooms/lab-comp", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	_, found := store.GetRoom("lab-comp")
	assert.True(t, found)
}

func TestDeleteItem_Flow(t *testing.T) {
	router, store := setupTestRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{
		"id": "lab-comp", "name": "Computer Lab", "type": "computer",
		"containers": []gin.H{{
			"id": "cont-1", "name": "Desk 1",
			"items": []gin.H{{"id": "itm-1", "name": "Monitor", "condition": "good", "status": "available"}},
		}},
	}).Code)

	w := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/rooms/%s/containers/%s/items/%s", "lab-comp", "cont-1", "itm-1"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	room, _ := store.GetRoom("lab-comp")
	assert.Empty(t, room.Containers[0].Items)
}
