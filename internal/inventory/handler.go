package inventory

import (
	"errors"
	"net/http"

	custom_error "labhouse/pkg/errors"
	"labhouse/pkg/ident"
	"labhouse/pkg/metadata"
	"labhouse/pkg/models"
	"labhouse/pkg/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
	ident *ident.Generator
}

func NewHandler(store *Store, ident *ident.Generator) *Handler {
	return &Handler{store: store, ident: ident}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rooms", h.ListRooms)
	router.GET("/rooms/:id", h.GetRoom)
	router.POST("/rooms", h.CreateRoom)
	router.PUT("/rooms/:id", h.UpdateRoom)
	router.DELETE("/rooms/:id", security.Authorize("admin"), h.DeleteRoom)
	router.PUT("/rooms/:id/containers/:containerId", h.UpdateContainer)
	router.GET("/rooms/:id/containers/:containerId/slots", h.GetStationSlots)
	router.POST("/rooms/:id/containers/:containerId/items", h.CreateItem)
	router.PUT("/rooms/:id/containers/:containerId/items/:itemId", h.UpdateItem)
	router.DELETE("/rooms/:id/containers/:containerId/items/:itemId", security.Authorize("admin"), h.DeleteItem)
}

func (h *Handler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Rooms())
}

func (h *Handler) GetRoom(c *gin.Context) {
	room, found := h.store.GetRoom(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if room.ID == "" || room.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Room id and name are required"})
		return
	}

	roomType, err := metadata.NewRoomType(room.Type)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room type", "details": err.Error()})
		return
	}
	room.Type = roomType.String()
	if roomType != metadata.RoomOther {
		room.CustomType = ""
	}

	if err := h.store.AddRoom(room); err != nil {
		respondStoreError(c, err, http.StatusCreated, room)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	room.ID = c.Param("id")

	if err := h.store.UpdateRoom(room); err != nil {
		respondStoreError(c, err, http.StatusOK, room)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	if err := h.store.DeleteRoom(c.Param("id")); err != nil {
		respondStoreError(c, err, http.StatusOK, gin.H{"message": "Room deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

func (h *Handler) UpdateContainer(c *gin.Context) {
	var container models.Container
	if err := c.ShouldBindJSON(&container); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	container.ID = c.Param("containerId")

	if container.Type != "" {
		containerType, err := metadata.NewContainerType(container.Type)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid container type", "details": err.Error()})
			return
		}
		container.Type = containerType.String()
	}

	if err := h.store.UpdateContainer(c.Param("id"), container); err != nil {
		respondStoreError(c, err, http.StatusOK, container)
		return
	}
	c.JSON(http.StatusOK, container)
}

// GetStationSlots maps a table-type container's items onto its fixed
// component slots via the documented alias table.
func (h *Handler) GetStationSlots(c *gin.Context) {
	room, found := h.store.GetRoom(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	for _, container := range room.Containers {
		if container.ID != c.Param("containerId") {
			continue
		}
		if container.Type != metadata.ContainerTable.String() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Container is not a station", "details": "only table containers have component slots"})
			return
		}

		slots := make(map[metadata.Slot]models.Item)
		var unassigned []models.Item
		for _, item := range container.Items {
			slot := metadata.ClassifySlot(item.Type)
			if slot == metadata.SlotNone {
				unassigned = append(unassigned, item)
				continue
			}
			if _, taken := slots[slot]; !taken {
				slots[slot] = item
			} else {
				unassigned = append(unassigned, item)
			}
		}
		c.JSON(http.StatusOK, gin.H{"slots": slots, "unassigned": unassigned})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Container not found"})
}

func (h *Handler) CreateItem(c *gin.Context) {
	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if item.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}
	if item.ID == "" {
		item.ID = h.ident.ItemID()
	}
	if item.Condition == "" {
		item.Condition = metadata.ConditionGood.String()
	}
	if item.Status == "" {
		item.Status = metadata.StatusAvailable.String()
	}
	if err := validateItemState(item); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item state", "details": err.Error()})
		return
	}

	if err := h.store.AddItem(c.Param("id"), c.Param("containerId"), item); err != nil {
		respondStoreError(c, err, http.StatusCreated, item)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	item.ID = c.Param("itemId")

	if err := validateItemState(item); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item state", "details": err.Error()})
		return
	}

	if err := h.store.UpdateItem(c.Param("id"), c.Param("containerId"), item); err != nil {
		respondStoreError(c, err, http.StatusOK, item)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.store.DeleteItem(c.Param("id"), c.Param("containerId"), c.Param("itemId")); err != nil {
		respondStoreError(c, err, http.StatusOK, gin.H{"message": "Item deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func validateItemState(item models.Item) error {
	if _, err := metadata.NewCondition(item.Condition); err != nil {
		return err
	}
	if _, err := metadata.NewStatus(item.Status); err != nil {
		return err
	}
	return nil
}

// respondStoreError maps engine errors to HTTP responses. A storage
// failure is reported as success with a warning: the in-memory change
// applied and stays authoritative for the session.
func respondStoreError(c *gin.Context, err error, okStatus int, body any) {
	var storageErr *custom_error.StorageError
	if errors.As(err, &storageErr) {
		c.JSON(okStatus, gin.H{"result": body, "warning": "state saved in memory only", "details": storageErr.Error()})
		return
	}

	switch err.(type) {
	case *custom_error.NotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case *custom_error.DuplicateIDError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case *custom_error.ValidationError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error", "details": err.Error()})
	}
}
