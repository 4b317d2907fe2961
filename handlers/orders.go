package handlers

import (
	"errors"
	"net/http"
	"time"

	"table-service-api/apperrors"
	"table-service-api/catalog"
	"table-service-api/events"
	"table-service-api/models"
	"table-service-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	TableSessionID uint   `json:"table_session_id" binding:"required"`
	Note           string `json:"note"`
	Items          []struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Qty        int    `json:"qty" binding:"required,min=1"`
		Note       string `json:"note"`
	} `json:"items" binding:"required,min=1"`
}

// CreateOrder submits one batch of items against an active session.
// Item type and price are re-resolved server-side for every line;
// whatever the client claims about prices is ignored.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var session models.TableSession
		if err := tx.First(&session, req.TableSessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrSessionNotFound
			}
			return err
		}
		if session.Status != models.SessionActive {
			return apperrors.ErrSessionInactive
		}
		if session.Expired(time.Now()) {
			return apperrors.ErrSessionExpired
		}

		mode := catalog.Mode(&session)

		var orderItems []models.OrderItem
		for _, reqItem := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrMenuItemNotFound
				}
				return err
			}

			res := catalog.Resolve(mode, &menuItem)
			if !res.Visible {
				return apperrors.Validation("ItemNotOnMenu",
					"menu item '%s' is not on the menu for this session", menuItem.Name)
			}
			if !menuItem.IsAvailable {
				return apperrors.Conflict("ItemUnavailable",
					"menu item '%s' is not available", menuItem.Name)
			}

			orderItems = append(orderItems, models.OrderItem{
				MenuItemID: menuItem.ID,
				Qty:        reqItem.Qty,
				Note:       reqItem.Note,
				Status:     models.ItemWaiting,
				ItemType:   res.ItemType,
				UnitPrice:  res.EffectivePrice,
				Name:       menuItem.Name,
			})
		}

		order = models.Order{
			TableSessionID: session.ID,
			Status:         models.OrderOpen,
			Note:           req.Note,
			Items:          orderItems,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logAction(c, "ORDER_CREATE", gin.H{
		"order_id":         order.ID,
		"table_session_id": order.TableSessionID,
		"item_count":       len(order.Items),
	})

	h.Bus.Publish(events.Event{
		Topic:   events.TopicOrderNew,
		Payload: events.OrderEvent{OrderID: order.ID, SessionID: order.TableSessionID},
	})

	h.DB.Preload("Items.MenuItem").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed", "order": order})
}

// GetSessionOrders returns every order of a session with its items,
// newest first — the customer's "my orders" view.
func (h *Handler) GetSessionOrders(c *gin.Context) {
	var session models.TableSession
	if err := h.DB.First(&session, c.Param("id")).Error; err != nil {
		respondError(c, apperrors.ErrSessionNotFound)
		return
	}

	var orders []models.Order
	h.DB.Preload("Items.MenuItem").
		Where("table_session_id = ?", session.ID).
		Order("created_at desc").
		Find(&orders)

	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type UpdateItemStatusRequest struct {
	Status models.ItemStatus `json:"status" binding:"required"`
}

// statusTopics maps a reached item status to the event it announces
var statusTopics = map[models.ItemStatus]events.Topic{
	models.ItemCooking: events.TopicOrderCooking,
	models.ItemDone:    events.TopicOrderDone,
	models.ItemServed:  events.TopicOrderServed,
}

// UpdateItemStatus advances one order item through the fulfillment
// pipeline. Staff terminals race on this endpoint, so the write is a
// conditional update guarded by the status it was decided against:
// losing the race re-reads and re-decides, and a repeat of an already
// satisfied transition is a quiet no-op.
func (h *Handler) UpdateItemStatus(c *gin.Context) {
	var req UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.OrderItem
	if err := h.DB.First(&item, c.Param("id")).Error; err != nil {
		respondError(c, apperrors.ErrOrderItemNotFound)
		return
	}

	for {
		outcome, err := statemachine.Step(item.Status, req.Status)
		if err != nil {
			respondError(c, apperrors.Conflict("InvalidTransition", "%s", err.Error()))
			return
		}
		if outcome == statemachine.Noop {
			c.JSON(http.StatusOK, gin.H{
				"message": "Item already in requested status",
				"item_id": item.ID,
				"status":  item.Status,
			})
			return
		}

		res := h.DB.Model(&models.OrderItem{}).
			Where("id = ? AND status = ?", item.ID, item.Status).
			Update("status", req.Status)
		if res.Error != nil {
			respondError(c, res.Error)
			return
		}
		if res.RowsAffected == 1 {
			break
		}
		// lost the race to another terminal; re-read and re-decide
		if err := h.DB.First(&item, item.ID).Error; err != nil {
			respondError(c, apperrors.ErrOrderItemNotFound)
			return
		}
	}

	var changedBy uint
	if id := callerID(c); id != nil {
		changedBy = *id
	}
	h.DB.Create(&models.ItemStatusHistory{
		OrderItemID: item.ID,
		FromStatus:  item.Status,
		ToStatus:    req.Status,
		ChangedBy:   changedBy,
	})

	if topic, ok := statusTopics[req.Status]; ok {
		h.Bus.Publish(events.Event{
			Topic:   topic,
			Payload: events.OrderEvent{OrderID: item.OrderID, ItemID: item.ID},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Item status updated",
		"item_id":         item.ID,
		"previous_status": item.Status,
		"current_status":  req.Status,
	})
}
