package catalog

import (
	"testing"

	"table-service-api/models"

	"github.com/stretchr/testify/assert"
)

func TestModeFollowsPackageBinding(t *testing.T) {
	pkgID := uint(7)
	assert.Equal(t, ModeBuffet, Mode(&models.TableSession{PackageID: &pkgID}))
	assert.Equal(t, ModeALaCarte, Mode(&models.TableSession{}))
}

func TestResolveBuffetMode(t *testing.T) {
	tests := []struct {
		name       string
		visibility models.MenuVisibility
		visible    bool
		itemType   models.ItemType
		price      float64
	}{
		{"buffet-only is included and free", models.VisibilityBuffetOnly, true, models.ItemBuffetIncluded, 0},
		{"both is included and free", models.VisibilityBoth, true, models.ItemBuffetIncluded, 0},
		{"a-la-carte-only is a paid add-on", models.VisibilityALaCarteOnly, true, models.ItemALaCarte, 120},
		{"hidden item stays hidden", models.VisibilityNone, false, models.ItemALaCarte, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &models.MenuItem{Price: 120, Visibility: tt.visibility}
			res := Resolve(ModeBuffet, item)
			assert.Equal(t, tt.visible, res.Visible)
			if tt.visible {
				assert.Equal(t, tt.itemType, res.ItemType)
				assert.Equal(t, tt.price, res.EffectivePrice)
			}
		})
	}
}

func TestResolveALaCarteMode(t *testing.T) {
	item := &models.MenuItem{Price: 89, Visibility: models.VisibilityBoth}
	res := Resolve(ModeALaCarte, item)
	assert.True(t, res.Visible)
	assert.Equal(t, models.ItemALaCarte, res.ItemType)
	assert.Equal(t, 89.0, res.EffectivePrice)

	// buffet-only items never show up in a la carte sessions
	res = Resolve(ModeALaCarte, &models.MenuItem{Price: 89, Visibility: models.VisibilityBuffetOnly})
	assert.False(t, res.Visible)
}

func TestResolveIgnoresAvailability(t *testing.T) {
	// sold out items remain visible; rejection happens at order submission
	item := &models.MenuItem{Price: 50, Visibility: models.VisibilityALaCarteOnly, IsAvailable: false}
	res := Resolve(ModeALaCarte, item)
	assert.True(t, res.Visible)
}
