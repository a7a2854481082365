package presenters

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/junaidrashid-git/jewelry-api/imageref"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductImageFieldsAreNeverNull(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/catalog", nil)
	req.Host = "shop.local"
	links := imageref.NewMaterializer("")

	data, err := json.Marshal(NewProduct(models.Product{ID: "p1", Title: "Jonc"}, links, req))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "", body["imageUrl"])
	assert.Equal(t, "", body["imageLink"])
	assert.NotContains(t, body, "seller")
}

func TestProductRelativeImage(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Host = "shop.local"
	ref := "/uploads/products/product-1-2.jpg"

	p := NewProduct(models.Product{
		ID:       "p1",
		ImageURL: &ref,
		SellerID: "s1",
		Seller:   models.User{ID: "s1", Name: "Nadia", Boutique: models.Boutique{ShopName: "Or Fin"}},
	}, imageref.NewMaterializer(""), req)

	assert.Equal(t, "http://shop.local/uploads/products/product-1-2.jpg", p.ImageURL)
	assert.Equal(t, p.ImageURL, p.ImageLink)
	require.NotNil(t, p.Seller)
	assert.Equal(t, "Or Fin", p.Seller.Boutique.ShopName)
}

func TestOrderWithDeletedProduct(t *testing.T) {
	o := NewOrder(models.Order{
		ID:         "o1",
		ProductID:  "gone",
		Quantity:   3,
		TotalPrice: decimal.RequireFromString("1259.997"),
	}, imageref.NewMaterializer(""), httptest.NewRequest("GET", "/", nil))

	assert.Nil(t, o.Product)
	assert.Equal(t, 1260.0, o.TotalPrice)
}

func TestMeasurementStandardSize(t *testing.T) {
	m := NewMeasurement(models.Measurement{ID: "m1", Type: "ring", ValueMm: 52})
	assert.Equal(t, 15.0, m.StandardSize)

	m = NewMeasurement(models.Measurement{ID: "m2", Type: "bracelet", ValueMm: 170.5})
	assert.Equal(t, 170.5, m.StandardSize)
}

func TestUserBoutiqueOnlyForSellers(t *testing.T) {
	assert.Nil(t, NewUser(models.User{Role: models.RoleBuyer}).Boutique)
	assert.NotNil(t, NewUser(models.User{Role: models.RoleSeller}).Boutique)
}
