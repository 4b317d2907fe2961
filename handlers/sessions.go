package handlers

import (
	"errors"
	"net/http"
	"time"

	"table-service-api/apperrors"
	"table-service-api/events"
	"table-service-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OpenSessionRequest struct {
	TableID     uint  `json:"table_id" binding:"required"`
	PeopleCount int   `json:"people_count" binding:"required,min=1"`
	PackageID   *uint `json:"package_id"`
}

// OpenSession binds a new active session to a table. The table check
// and the two writes run in one transaction so a double-open can never
// produce two active sessions on the same table.
func (h *Handler) OpenSession(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var session models.TableSession
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, req.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("TableNotFound", "table not found")
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.TableSession{}).
			Where("table_id = ? AND status IN ?", table.ID,
				[]models.SessionStatus{models.SessionActive, models.SessionClosing}).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return apperrors.ErrTableBusy
		}

		now := time.Now()
		session = models.TableSession{
			TableID:     table.ID,
			PeopleCount: req.PeopleCount,
			Status:      models.SessionActive,
			StartTime:   now,
		}

		if req.PackageID != nil {
			var pkg models.Package
			if err := tx.First(&pkg, *req.PackageID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("PackageNotFound", "package not found")
				}
				return err
			}
			session.PackageID = &pkg.ID
			if pkg.DurationMinutes != nil {
				expire := now.Add(time.Duration(*pkg.DurationMinutes) * time.Minute)
				session.ExpireTime = &expire
			}
		}

		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		return tx.Model(&table).Update("status", models.TableOccupied).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logAction(c, "OPEN_SESSION", gin.H{
		"session_id":   session.ID,
		"table_id":     session.TableID,
		"people_count": session.PeopleCount,
	})

	h.Bus.Publish(events.Event{
		Topic:   events.TopicSessionOpened,
		Payload: events.SessionEvent{SessionID: session.ID, TableID: session.TableID},
	})

	h.DB.Preload("Table").Preload("Package").First(&session, session.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Session opened", "session": session})
}

// CancelSession closes a session that never ordered anything, freeing
// the table without a billing record.
func (h *Handler) CancelSession(c *gin.Context) {
	var session models.TableSession
	if err := h.DB.First(&session, c.Param("id")).Error; err != nil {
		respondError(c, apperrors.ErrSessionNotFound)
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// Conditional claim: only an ACTIVE session can be cancelled,
		// and losing the race to a close must fail here, not clobber
		// the closed state.
		res := tx.Model(&models.TableSession{}).
			Where("id = ? AND status = ?", session.ID, models.SessionActive).
			Update("status", models.SessionClosed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return apperrors.ErrSessionInactive
		}

		var orderCount int64
		if err := tx.Model(&models.Order{}).
			Where("table_session_id = ?", session.ID).
			Count(&orderCount).Error; err != nil {
			return err
		}
		if orderCount != 0 {
			return apperrors.ErrSessionHasOrders
		}

		return tx.Model(&models.Table{}).Where("id = ?", session.TableID).
			Update("status", models.TableAvailable).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logAction(c, "CANCEL_SESSION", gin.H{
		"session_id": session.ID,
		"table_id":   session.TableID,
	})

	h.Bus.Publish(events.Event{
		Topic:   events.TopicSessionCancelled,
		Payload: events.SessionEvent{SessionID: session.ID, TableID: session.TableID},
	})

	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled", "session_id": session.ID})
}

// GetSession returns an active session. Expiry is derived here on
// read; nothing sweeps expired sessions in the background.
func (h *Handler) GetSession(c *gin.Context) {
	var session models.TableSession
	if err := h.DB.Preload("Table").Preload("Package").
		First(&session, c.Param("id")).Error; err != nil {
		respondError(c, apperrors.ErrSessionNotFound)
		return
	}

	if session.Status != models.SessionActive {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   apperrors.ErrSessionInactive.Message,
			"code":    apperrors.ErrSessionInactive.Code,
			"session": session,
		})
		return
	}
	if session.Expired(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   apperrors.ErrSessionExpired.Message,
			"code":    apperrors.ErrSessionExpired.Code,
			"session": session,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ListActiveSessions feeds the staff dashboard: most recently opened
// first, with the open-order count per session.
func (h *Handler) ListActiveSessions(c *gin.Context) {
	var sessions []models.TableSession
	h.DB.Preload("Table").Preload("Package").
		Where("status = ?", models.SessionActive).
		Order("start_time desc").
		Find(&sessions)

	type sessionView struct {
		models.TableSession
		OpenOrders int64 `json:"open_orders"`
	}
	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		var open int64
		h.DB.Model(&models.Order{}).
			Where("table_session_id = ? AND status = ?", s.ID, models.OrderOpen).
			Count(&open)
		views = append(views, sessionView{TableSession: s, OpenOrders: open})
	}

	c.JSON(http.StatusOK, gin.H{"count": len(views), "sessions": views})
}
