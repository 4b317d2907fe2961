package handlers

import (
	"net/http"

	"table-service-api/models"

	"github.com/gin-gonic/gin"
)

// ── Tables ──────────────────────────────────────────────────────────

type CreateTableRequest struct {
	TableNumber int    `json:"table_number" binding:"required,min=1"`
	Name        string `json:"name"`
}

func (h *Handler) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Table
	if result := h.DB.Where("table_number = ?", req.TableNumber).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Table number already exists"})
		return
	}

	table := models.Table{TableNumber: req.TableNumber, Name: req.Name, Status: models.TableAvailable}
	if err := h.DB.Create(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Table created", "table": table})
}

func (h *Handler) ListTables(c *gin.Context) {
	var tables []models.Table
	query := h.DB.Preload("Sessions", "status = ?", models.SessionActive)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("table_number asc").Find(&tables)
	c.JSON(http.StatusOK, gin.H{"count": len(tables), "tables": tables})
}

func (h *Handler) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := h.DB.First(&table, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	var active int64
	h.DB.Model(&models.TableSession{}).
		Where("table_id = ? AND status IN ?", table.ID,
			[]models.SessionStatus{models.SessionActive, models.SessionClosing}).
		Count(&active)
	if active > 0 || table.Status == models.TableOccupied {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a table with an active session"})
		return
	}

	h.DB.Delete(&table)
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}

// ── Packages ────────────────────────────────────────────────────────

type CreatePackageRequest struct {
	Name            string  `json:"name" binding:"required"`
	PricePerPerson  float64 `json:"price_per_person" binding:"required,gte=0"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1"`
}

func (h *Handler) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pkg := models.Package{
		Name:            req.Name,
		PricePerPerson:  req.PricePerPerson,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}
	if err := h.DB.Create(&pkg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Package created", "package": pkg})
}

func (h *Handler) ListPackages(c *gin.Context) {
	var packages []models.Package
	query := h.DB
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}
	query.Find(&packages)
	c.JSON(http.StatusOK, gin.H{"count": len(packages), "packages": packages})
}

// ── Categories & menu items ─────────────────────────────────────────

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := models.MenuCategory{Name: req.Name}
	if err := h.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

type CreateMenuItemRequest struct {
	CategoryID  uint                  `json:"category_id" binding:"required"`
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Price       float64               `json:"price" binding:"gte=0"`
	Visibility  models.MenuVisibility `json:"visibility" binding:"required"`
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Visibility.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid visibility. Must be: NONE, BUFFET_ONLY, A_LA_CARTE_ONLY or BOTH"})
		return
	}

	var category models.MenuCategory
	if err := h.DB.First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	item := models.MenuItem{
		CategoryID:  category.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Visibility:  req.Visibility,
		IsAvailable: true,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "item": item})
}

// UpdateMenuItem updates safe fields of a menu item
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := h.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "description": true, "price": true, "visibility": true, "is_available": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if vis, ok := update["visibility"].(string); ok && !models.MenuVisibility(vis).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid visibility"})
		return
	}

	h.DB.Model(&item).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// ── Extra charges ───────────────────────────────────────────────────

type CreateExtraChargeRequest struct {
	Name       string            `json:"name" binding:"required"`
	Price      float64           `json:"price" binding:"gte=0"`
	ChargeType models.ChargeType `json:"charge_type" binding:"required,oneof=PER_PERSON PER_SESSION"`
}

func (h *Handler) CreateExtraCharge(c *gin.Context) {
	var req CreateExtraChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	charge := models.ExtraCharge{Name: req.Name, Price: req.Price, ChargeType: req.ChargeType, Active: true}
	if err := h.DB.Create(&charge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create extra charge"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Extra charge created", "extra_charge": charge})
}

func (h *Handler) ListExtraCharges(c *gin.Context) {
	var charges []models.ExtraCharge
	query := h.DB
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}
	query.Find(&charges)
	c.JSON(http.StatusOK, gin.H{"count": len(charges), "extra_charges": charges})
}

// ── Promotions ──────────────────────────────────────────────────────

type CreatePromotionRequest struct {
	Name      string               `json:"name" binding:"required"`
	Type      models.PromotionType `json:"type" binding:"required,oneof=PERCENT FIXED PER_PERSON MIN_PEOPLE MIN_AMOUNT"`
	Value     float64              `json:"value" binding:"gte=0"`
	Condition *float64             `json:"condition"`
}

func (h *Handler) CreatePromotion(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// conditional promotion types are dead rules without a threshold
	if (req.Type == models.PromoMinPeople || req.Type == models.PromoMinAmount) && req.Condition == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Promotion type " + string(req.Type) + " requires a condition"})
		return
	}

	promo := models.Promotion{
		Name:      req.Name,
		Type:      req.Type,
		Value:     req.Value,
		Condition: req.Condition,
		Active:    true,
	}
	if err := h.DB.Create(&promo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Promotion created", "promotion": promo})
}

func (h *Handler) ListPromotions(c *gin.Context) {
	var promotions []models.Promotion
	query := h.DB
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}
	query.Find(&promotions)
	c.JSON(http.StatusOK, gin.H{"count": len(promotions), "promotions": promotions})
}
