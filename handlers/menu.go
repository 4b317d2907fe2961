package handlers

import (
	"net/http"
	"strconv"

	"table-service-api/catalog"
	"table-service-api/models"
	"table-service-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type menuItemView struct {
	models.MenuItem
	ItemType       models.ItemType `json:"item_type"`
	EffectivePrice float64         `json:"effective_price"`
}

type menuCategoryView struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	Items []menuItemView `json:"items"`
}

// GetMenu lists categories with the items visible to the caller's
// session mode, priced through the catalog resolver. Without a
// sessionId the menu renders in a la carte mode. Sold-out items stay
// listed with is_available=false; they are rejected at submission
// time, not hidden.
func (h *Handler) GetMenu(c *gin.Context) {
	mode := catalog.ModeALaCarte
	if sessionID := c.Query("sessionId"); sessionID != "" {
		if id, err := strconv.Atoi(sessionID); err == nil {
			var session models.TableSession
			if err := h.DB.First(&session, id).Error; err == nil {
				mode = catalog.Mode(&session)
			}
		}
	}

	var categories []models.MenuCategory
	h.DB.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") }).
		Order("name asc").
		Find(&categories)

	views := make([]menuCategoryView, 0, len(categories))
	for _, cat := range categories {
		view := menuCategoryView{ID: cat.ID, Name: cat.Name, Items: []menuItemView{}}
		for _, item := range cat.Items {
			res := catalog.Resolve(mode, &item)
			if !res.Visible {
				continue
			}
			view.Items = append(view.Items, menuItemView{
				MenuItem:       item,
				ItemType:       res.ItemType,
				EffectivePrice: res.EffectivePrice,
			})
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"session_mode": mode, "categories": views})
}

// GetStateMachineInfo documents the item fulfillment pipeline
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.ItemStatus{models.ItemServed},
		"description":     "Order Item Fulfillment State Machine",
	})
}
