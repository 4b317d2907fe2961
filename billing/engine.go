package billing

import (
	"errors"

	"table-service-api/apperrors"
	"table-service-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CloseRequest carries everything the close-out needs. A non-empty
// ExtraChargeIDs restricts which active charges apply; an empty list
// applies all of them.
type CloseRequest struct {
	SessionID      uint
	PaymentMethod  models.PaymentMethod
	ExtraChargeIDs []uint
}

// Close collapses a session into its billing summary. The whole
// close-out — claim, aggregation, snapshot, state flips — runs in one
// transaction: either the summary exists and the session is closed, or
// neither happened.
//
// The claim step (ACTIVE→CLOSING, guarded by the current status) is
// taken before any order is read, so an order submitted concurrently
// either lands before the read or fails against a non-ACTIVE session.
// Nothing can slip between the read and the close unbilled.
func Close(db *gorm.DB, req CloseRequest) (*models.BillingSummary, error) {
	var summary *models.BillingSummary

	err := db.Transaction(func(tx *gorm.DB) error {
		var session models.TableSession
		if err := tx.Preload("Package").First(&session, req.SessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrSessionNotFound
			}
			return err
		}

		// claim: only an ACTIVE session may be closed, and only once
		claim := tx.Model(&models.TableSession{}).
			Where("id = ? AND status = ?", session.ID, models.SessionActive).
			Update("status", models.SessionClosing)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected != 1 {
			return apperrors.ErrSessionInactive
		}

		var orders []models.Order
		if err := tx.Preload("Items").
			Where("table_session_id = ? AND status = ?", session.ID, models.OrderOpen).
			Find(&orders).Error; err != nil {
			return err
		}

		subtotal, billingItems := menuLines(&session, orders)

		charges, err := applicableCharges(tx, req.ExtraChargeIDs)
		if err != nil {
			return err
		}
		extraTotal, chargeLines := extraChargeLines(charges, session.PeopleCount)
		billingItems = append(billingItems, chargeLines...)

		var promotions []models.Promotion
		if err := tx.Where("active = ?", true).Find(&promotions).Error; err != nil {
			return err
		}
		discount := discountTotal(promotions, subtotal, session.PeopleCount)

		s := models.BillingSummary{
			Reference:     uuid.NewString(),
			SessionID:     session.ID,
			Subtotal:      subtotal,
			ExtraCharge:   extraTotal,
			Discount:      discount,
			GrandTotal:    subtotal + extraTotal - discount,
			PaymentMethod: req.PaymentMethod,
			Items:         billingItems,
		}
		if err := tx.Create(&s).Error; err != nil {
			return err
		}

		// collapse: orders and their items to SERVED, session CLOSED,
		// table freed
		if err := tx.Model(&models.OrderItem{}).
			Where("order_id IN (?)", tx.Model(&models.Order{}).Select("id").Where("table_session_id = ?", session.ID)).
			Update("status", models.ItemServed).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).
			Where("table_session_id = ? AND status = ?", session.ID, models.OrderOpen).
			Update("status", models.OrderServed).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TableSession{}).Where("id = ?", session.ID).
			Update("status", models.SessionClosed).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Table{}).Where("id = ?", session.TableID).
			Update("status", models.TableAvailable).Error; err != nil {
			return err
		}

		summary = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// menuLines sums the consumption part of the bill from the order item
// snapshots frozen at submission time. Buffet-included lines carry a
// zero unit price, so the package charge below is the only thing they
// cost; the snapshot and the math cannot disagree.
func menuLines(session *models.TableSession, orders []models.Order) (float64, []models.BillingItem) {
	var subtotal float64
	var lines []models.BillingItem

	for _, order := range orders {
		for _, item := range order.Items {
			qty := item.Qty
			lineTotal := item.UnitPrice * float64(item.Qty)
			subtotal += lineTotal
			lines = append(lines, models.BillingItem{
				Name:       item.Name,
				Qty:        &qty,
				UnitPrice:  item.UnitPrice,
				TotalPrice: lineTotal,
				Kind:       models.BillingKindMenu,
			})
		}
	}

	if session.Package != nil {
		people := session.PeopleCount
		packageTotal := session.Package.PricePerPerson * float64(people)
		subtotal += packageTotal
		lines = append(lines, models.BillingItem{
			Name:       session.Package.Name,
			Qty:        &people,
			UnitPrice:  session.Package.PricePerPerson,
			TotalPrice: packageTotal,
			Kind:       models.BillingKindMenu,
		})
	}

	return subtotal, lines
}

func applicableCharges(tx *gorm.DB, selected []uint) ([]models.ExtraCharge, error) {
	q := tx.Where("active = ?", true)
	if len(selected) > 0 {
		q = q.Where("id IN ?", selected)
	}
	var charges []models.ExtraCharge
	if err := q.Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}

func extraChargeLines(charges []models.ExtraCharge, peopleCount int) (float64, []models.BillingItem) {
	var total float64
	var lines []models.BillingItem

	for _, charge := range charges {
		amount := charge.Price
		var qty *int
		if charge.ChargeType == models.ChargePerPerson {
			people := peopleCount
			amount = charge.Price * float64(people)
			qty = &people
		}
		total += amount
		lines = append(lines, models.BillingItem{
			Name:       charge.Name,
			Qty:        qty,
			UnitPrice:  charge.Price,
			TotalPrice: amount,
			Kind:       models.BillingKindExtra,
		})
	}

	return total, lines
}

// discountTotal applies every active promotion. PERCENT and PER_PERSON
// scale with the bill; MIN_PEOPLE and MIN_AMOUNT are fixed discounts
// gated on their condition, and never apply without one.
func discountTotal(promotions []models.Promotion, subtotal float64, peopleCount int) float64 {
	var total float64
	for _, promo := range promotions {
		switch promo.Type {
		case models.PromoPercent:
			total += subtotal * promo.Value / 100
		case models.PromoFixed:
			total += promo.Value
		case models.PromoPerPerson:
			total += promo.Value * float64(peopleCount)
		case models.PromoMinPeople:
			if promo.Condition != nil && float64(peopleCount) >= *promo.Condition {
				total += promo.Value
			}
		case models.PromoMinAmount:
			if promo.Condition != nil && subtotal >= *promo.Condition {
				total += promo.Value
			}
		}
	}
	return total
}
