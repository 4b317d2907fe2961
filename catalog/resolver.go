package catalog

import "table-service-api/models"

// SessionMode is the pricing mode a session runs in: BUFFET when a
// package is attached, A_LA_CARTE otherwise.
type SessionMode string

const (
	ModeBuffet   SessionMode = "BUFFET"
	ModeALaCarte SessionMode = "A_LA_CARTE"
)

// Mode derives the pricing mode from the session's package binding.
func Mode(session *models.TableSession) SessionMode {
	if session.PackageID != nil {
		return ModeBuffet
	}
	return ModeALaCarte
}

// Resolution is the server-side answer for one menu item under one
// session mode. EffectivePrice and ItemType are authoritative; client
// supplied prices are never trusted.
type Resolution struct {
	Visible        bool
	ItemType       models.ItemType
	EffectivePrice float64
}

// Resolve classifies a menu item for a session mode.
//
// In buffet mode an item covered by the package is free
// (BUFFET_INCLUDED); anything else visible is a paid add-on. In a la
// carte mode only a-la-carte items are listed, at their listed price.
// Availability is deliberately not part of the resolution: sold-out
// items stay visible on the menu and are rejected at submission time.
func Resolve(mode SessionMode, item *models.MenuItem) Resolution {
	switch mode {
	case ModeBuffet:
		if item.Visibility.InBuffet() {
			return Resolution{Visible: true, ItemType: models.ItemBuffetIncluded, EffectivePrice: 0}
		}
		if item.Visibility.InALaCarte() {
			return Resolution{Visible: true, ItemType: models.ItemALaCarte, EffectivePrice: item.Price}
		}
	case ModeALaCarte:
		if item.Visibility.InALaCarte() {
			return Resolution{Visible: true, ItemType: models.ItemALaCarte, EffectivePrice: item.Price}
		}
	}
	return Resolution{Visible: false, ItemType: models.ItemALaCarte, EffectivePrice: item.Price}
}
