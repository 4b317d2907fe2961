package models

import "time"

// MenuVisibility says in which session pricing modes an item is listed.
// A single enum instead of two independent booleans, so an item can never
// end up listed in no mode by accident.
type MenuVisibility string

const (
	VisibilityNone         MenuVisibility = "NONE"
	VisibilityBuffetOnly   MenuVisibility = "BUFFET_ONLY"
	VisibilityALaCarteOnly MenuVisibility = "A_LA_CARTE_ONLY"
	VisibilityBoth         MenuVisibility = "BOTH"
)

// InBuffet reports whether the item is covered by a buffet package.
func (v MenuVisibility) InBuffet() bool {
	return v == VisibilityBuffetOnly || v == VisibilityBoth
}

// InALaCarte reports whether the item can be ordered at its listed price.
func (v MenuVisibility) InALaCarte() bool {
	return v == VisibilityALaCarteOnly || v == VisibilityBoth
}

func (v MenuVisibility) Valid() bool {
	switch v {
	case VisibilityNone, VisibilityBuffetOnly, VisibilityALaCarteOnly, VisibilityBoth:
		return true
	}
	return false
}

type MenuCategory struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null"`
	Items     []MenuItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CategoryID  uint           `json:"category_id" gorm:"not null;index"`
	Category    MenuCategory   `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"`
	Visibility  MenuVisibility `json:"visibility" gorm:"not null;default:'A_LA_CARTE_ONLY'"`
	IsAvailable bool           `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
