package handlers

import (
	"net/http"

	"table-service-api/apperrors"
	"table-service-api/events"
	"table-service-api/models"

	"github.com/gin-gonic/gin"
)

// GetKitchenOrders returns the kitchen queue: open orders that still
// have unserved items, oldest first.
func (h *Handler) GetKitchenOrders(c *gin.Context) {
	pending := []models.ItemStatus{models.ItemWaiting, models.ItemCooking, models.ItemDone}

	var orders []models.Order
	h.DB.Preload("Items", "status IN ?", pending).
		Preload("Items.MenuItem").
		Preload("Session.Table").
		Where("status = ?", models.OrderOpen).
		Where("id IN (?)", h.DB.Model(&models.OrderItem{}).Select("order_id").Where("status IN ?", pending)).
		Order("created_at asc").
		Find(&orders)

	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// MarkMenuItemUnavailable is the kitchen's "sold out" switch. Already
// submitted order items keep their snapshots and are unaffected.
func (h *Handler) MarkMenuItemUnavailable(c *gin.Context) {
	var item models.MenuItem
	if err := h.DB.First(&item, c.Param("id")).Error; err != nil {
		respondError(c, apperrors.ErrMenuItemNotFound)
		return
	}

	if err := h.DB.Model(&item).Update("is_available", false).Error; err != nil {
		respondError(c, err)
		return
	}

	h.Bus.Publish(events.Event{
		Topic:   events.TopicMenuUnavailable,
		Payload: events.MenuEvent{MenuItemID: item.ID},
	})

	c.JSON(http.StatusOK, gin.H{"message": "Menu item marked unavailable", "item_id": item.ID})
}
