package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/cache"
	"github.com/junaidrashid-git/jewelry-api/config"
	"github.com/junaidrashid-git/jewelry-api/database"
	"github.com/junaidrashid-git/jewelry-api/logger"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/junaidrashid-git/jewelry-api/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init(config.Testing)
	if err := validation.RegisterGin(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type harness struct {
	t *testing.T
	r *gin.Engine
	d *app.Deps
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := config.Config{
		Env:            string(config.Testing),
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		PublicBaseURL:  "http://api.test",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
		ImageURLPolicy: string(config.ImagePolicyLenient),
	}
	d := app.New(db, cfg)
	r := gin.New()
	SetupRoutes(r, d)
	return &harness{t: t, r: r, d: d}
}

type response struct {
	Code int
	Body map[string]any
	Raw  []byte
}

func (h *harness) send(req *http.Request, token string) response {
	h.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)

	res := response{Code: w.Code, Raw: w.Body.Bytes()}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(h.t, json.Unmarshal(res.Raw, &res.Body))
	}
	return res
}

func (h *harness) json(method, path, token string, body any) response {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return h.send(req, token)
}

// withCache puts a miniredis-backed catalog cache in front of the database.
func (h *harness) withCache() *miniredis.Miniredis {
	h.t.Helper()
	mr := miniredis.RunT(h.t)
	rdb, err := cache.Connect(context.Background(), mr.Addr())
	require.NoError(h.t, err)
	h.t.Cleanup(func() { _ = rdb.Close() })
	h.d.Cache = cache.NewProductCache(rdb, time.Minute)
	return mr
}

func (h *harness) register(kind, email string) string {
	h.t.Helper()
	body := map[string]any{"name": "Test " + kind, "email": email, "password": "secret123"}
	path := "/api/auth/register"
	if kind == "seller" {
		body["shopName"] = "Maison " + email
		path = "/api/auth/register-seller"
	}
	res := h.json(http.MethodPost, path, "", body)
	require.Equal(h.t, http.StatusCreated, res.Code, string(res.Raw))
	return res.Body["token"].(string)
}

func (h *harness) createProduct(token string, body map[string]any) map[string]any {
	h.t.Helper()
	base := map[string]any{"title": "Gold ring", "carat": 18, "weight": 3.5, "price": 250.0, "stock": 5}
	for k, v := range body {
		base[k] = v
	}
	res := h.json(http.MethodPost, "/api/seller/products", token, base)
	require.Equal(h.t, http.StatusCreated, res.Code, string(res.Raw))
	return res.Body["product"].(map[string]any)
}

func (h *harness) stockOf(id string) int {
	h.t.Helper()
	var p models.Product
	require.NoError(h.t, h.d.DB.Unscoped().First(&p, "id = ?", id).Error)
	return p.Stock
}

func TestAuthFlow(t *testing.T) {
	h := newHarness(t)
	token := h.register("buyer", "Alice@Example.com")

	res := h.json(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Again", "email": "alice@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "A user with this email already exists.", res.Body["message"])
	assert.NotContains(t, res.Body, "error")

	res = h.json(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Incorrect email or password.", res.Body["message"])

	res = h.json(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ALICE@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotEmpty(t, res.Body["token"])

	res = h.json(http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	user := res.Body["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "buyer", user["role"])
	assert.NotContains(t, user, "boutique")

	res = h.json(http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Access denied. Token missing.", res.Body["message"])

	res = h.json(http.MethodGet, "/api/auth/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Invalid token.", res.Body["message"])
}

func TestSellerRegistrationRequiresShopName(t *testing.T) {
	h := newHarness(t)
	res := h.json(http.MethodPost, "/api/auth/register-seller", "", map[string]any{
		"name": "Bob", "email": "bob@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestProfileAndMeasurements(t *testing.T) {
	h := newHarness(t)
	token := h.register("buyer", "carol@example.com")

	res := h.json(http.MethodPost, "/api/measurements", token, map[string]any{"type": "bague", "valueMm": 52})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	m := res.Body["measurement"].(map[string]any)
	assert.Equal(t, "ring", m["type"])
	assert.EqualValues(t, 15, m["standardSize"])

	res = h.json(http.MethodPost, "/api/measurements", token, map[string]any{"type": "bracelet", "valueMm": "180"})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))

	res = h.json(http.MethodPost, "/api/measurements", token, map[string]any{"type": "necklace", "valueMm": 52})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "The type must be 'ring' or 'bracelet'.", res.Body["message"])

	res = h.json(http.MethodPost, "/api/measurements", token, map[string]any{"type": "ring"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.json(http.MethodPost, "/api/measurements/calculate", token, map[string]any{"type": "ring", "valueMm": 56.6})
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 21, res.Body["standardSize"])
	assert.EqualValues(t, 56.6, res.Body["originalValue"])

	res = h.json(http.MethodGet, "/api/measurements", token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 2, res.Body["count"])

	res = h.json(http.MethodPut, "/api/profile", token, map[string]any{"name": "Caroline"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))

	res = h.json(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Caroline", res.Body["user"].(map[string]any)["name"])
	assert.Len(t, res.Body["mesures"], 2)
}

func TestCreateProductValidation(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "dan@example.com")
	buyer := h.register("buyer", "erin@example.com")

	res := h.json(http.MethodPost, "/api/seller/products", seller, map[string]any{
		"title": "Ring", "carat": 20, "weight": 2, "price": 100, "stock": 1,
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "carat must be 18, 22 or 24.", res.Body["message"])

	res = h.json(http.MethodPost, "/api/seller/products", seller, map[string]any{"title": "Ring"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "The fields title, carat, weight, price and stock are required.", res.Body["message"])

	res = h.json(http.MethodPost, "/api/seller/products", buyer, map[string]any{
		"title": "Ring", "carat": 18, "weight": 2, "price": 100, "stock": 1,
	})
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "Access denied. You are not a seller.", res.Body["message"])
}

func TestImageURLIsNeverNull(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "fay@example.com")

	plain := h.createProduct(seller, nil)
	assert.IsType(t, "", plain["imageUrl"])
	assert.Equal(t, "", plain["imageUrl"])

	junk := h.createProduct(seller, map[string]any{"imageUrl": "[nodemon] starting `node index.js`"})
	assert.Equal(t, "", junk["imageUrl"])

	linked := h.createProduct(seller, map[string]any{"imageUrl": `"https://cdn.example.com/a.png"`})
	assert.Equal(t, "https://cdn.example.com/a.png", linked["imageUrl"])

	res := h.json(http.MethodGet, "/api/catalog", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	for _, p := range res.Body["products"].([]any) {
		assert.IsType(t, "", p.(map[string]any)["imageUrl"])
	}
}

func TestCreateProductWithUpload(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "gus@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{"title:": "Bangle", "carat": "22", "weight": "10", "price": "900", "stock": "2"} {
		require.NoError(t, mw.WriteField(k, v))
	}
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="bangle.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/seller/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res := h.send(req, seller)
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))

	product := res.Body["product"].(map[string]any)
	assert.Equal(t, "Bangle", product["title"])
	assert.True(t, strings.HasPrefix(product["imageUrl"].(string), "http://api.test/uploads/products/product-"))
}

func TestUpdateProductImage(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "hal@example.com")
	product := h.createProduct(seller, map[string]any{"imageUrl": "https://cdn.example.com/a.png"})
	path := "/api/seller/products/" + product["id"].(string)

	res := h.json(http.MethodPut, path, seller, map[string]any{"imageUrl": `C:\fakepath\ring.png`, "price": 300})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	updated := res.Body["product"].(map[string]any)
	assert.Equal(t, "https://cdn.example.com/a.png", updated["imageUrl"])
	assert.EqualValues(t, 300, updated["price"])

	res = h.json(http.MethodPut, path, seller, map[string]any{"imageUrl": nil})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "", res.Body["product"].(map[string]any)["imageUrl"])

	res = h.json(http.MethodPut, path, seller, map[string]any{"carat": 21})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	other := h.register("seller", "ida@example.com")
	res = h.json(http.MethodPut, path, other, map[string]any{"price": 1})
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = h.json(http.MethodPut, "/api/seller/products/not-an-id", seller, map[string]any{"price": 1})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid product ID.", res.Body["message"])
}

func TestStockAndDelete(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "jo@example.com")
	product := h.createProduct(seller, nil)
	id := product["id"].(string)

	res := h.json(http.MethodPatch, "/api/seller/products/"+id+"/stock", seller, map[string]any{"stock": -1})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.json(http.MethodPatch, "/api/seller/products/"+id+"/stock", seller, map[string]any{"stock": "0"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	assert.EqualValues(t, 0, res.Body["product"].(map[string]any)["stock"])

	res = h.json(http.MethodGet, "/api/catalog/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Product not available (out of stock).", res.Body["message"])

	res = h.json(http.MethodDelete, "/api/seller/products/"+id, seller, nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = h.json(http.MethodGet, "/api/seller/products/"+id, seller, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestCatalogFilters(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "kim@example.com")
	h.createProduct(seller, map[string]any{"title": "Rose Ring", "carat": 18, "price": 100})
	h.createProduct(seller, map[string]any{"title": "Chain", "carat": 22, "price": 500})
	h.createProduct(seller, map[string]any{"title": "Sold out ring", "carat": 24, "price": 900, "stock": 0})

	res := h.json(http.MethodGet, "/api/catalog", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 2, res.Body["count"])

	res = h.json(http.MethodGet, "/api/catalog/search?name=RING", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 1, res.Body["count"])

	res = h.json(http.MethodGet, "/api/catalog/filter/carat?carat=22", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 1, res.Body["count"])

	res = h.json(http.MethodGet, "/api/catalog/filter/carat?carat=21", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.json(http.MethodGet, "/api/catalog/filter/price?priceMin=200", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 1, res.Body["count"])

	res = h.json(http.MethodGet, "/api/catalog/filter/price", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.json(http.MethodGet, "/api/catalog/xyz", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.json(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Route not found.", res.Body["message"])
}

func TestOrderInsufficientStock(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "lee@example.com")
	buyer := h.register("buyer", "max@example.com")
	id := h.createProduct(seller, map[string]any{"stock": 2})["id"].(string)

	res := h.json(http.MethodPost, "/api/orders", buyer, map[string]any{"productId": id, "quantity": 3})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body["message"], "Insufficient stock")
	assert.Equal(t, 2, h.stockOf(id))

	res = h.json(http.MethodPost, "/api/orders", buyer, map[string]any{"productId": id, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.json(http.MethodPost, "/api/orders", buyer, map[string]any{"productId": id, "quantity": 2})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	order := res.Body["order"].(map[string]any)
	assert.EqualValues(t, 500, order["totalPrice"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, 0, h.stockOf(id))

	res = h.json(http.MethodGet, "/api/orders", buyer, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 1, res.Body["count"])
}

func TestConcurrentOrdersNeverOversell(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "ned@example.com")
	buyers := []string{h.register("buyer", "ola@example.com"), h.register("buyer", "pat@example.com")}
	id := h.createProduct(seller, map[string]any{"stock": 1})["id"].(string)

	codes := make([]int, len(buyers))
	var wg sync.WaitGroup
	for i, token := range buyers {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			var buf bytes.Buffer
			_ = json.NewEncoder(&buf).Encode(map[string]any{"productId": id, "quantity": 1})
			req := httptest.NewRequest(http.MethodPost, "/api/orders", &buf)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			h.r.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i, token)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusBadRequest}, codes)
	assert.Equal(t, 0, h.stockOf(id))

	var count int64
	require.NoError(t, h.d.DB.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSellerOrders(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "quinn@example.com")
	other := h.register("seller", "ray@example.com")
	buyer := h.register("buyer", "sam@example.com")
	id := h.createProduct(seller, nil)["id"].(string)

	res := h.json(http.MethodPost, "/api/orders", buyer, map[string]any{"productId": id, "quantity": 1})
	require.Equal(t, http.StatusCreated, res.Code)
	orderID := res.Body["order"].(map[string]any)["id"].(string)

	res = h.json(http.MethodGet, "/api/seller/orders", seller, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 1, res.Body["count"])

	res = h.json(http.MethodGet, "/api/seller/orders", other, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 0, res.Body["count"])

	res = h.json(http.MethodGet, "/api/seller/orders/"+orderID, other, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = h.json(http.MethodGet, "/api/seller/orders/bad-id", seller, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid order ID.", res.Body["message"])

	res = h.json(http.MethodPatch, "/api/seller/orders/"+orderID+"/status", seller, map[string]any{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.json(http.MethodPatch, "/api/seller/orders/"+orderID+"/status", other, map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = h.json(http.MethodPatch, "/api/seller/orders/"+orderID+"/status", seller, map[string]any{"status": "Shipped"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	assert.Equal(t, "shipped", res.Body["order"].(map[string]any)["status"])

	res = h.json(http.MethodGet, "/api/seller/orders/"+orderID, seller, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "shipped", res.Body["order"].(map[string]any)["status"])
}

func TestStatistics(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "tia@example.com")
	buyer := h.register("buyer", "uma@example.com")
	a := h.createProduct(seller, map[string]any{"price": 100.10})["id"].(string)
	h.createProduct(seller, map[string]any{"price": 200.25})

	for _, q := range []int{1, 2} {
		res := h.json(http.MethodPost, "/api/orders", buyer, map[string]any{"productId": a, "quantity": q})
		require.Equal(t, http.StatusCreated, res.Code)
	}

	res := h.json(http.MethodGet, "/api/seller/statistics", seller, nil)
	require.Equal(t, http.StatusOK, res.Code)
	stats := res.Body["statistics"].(map[string]any)
	assert.EqualValues(t, 2, stats["productCount"])
	assert.EqualValues(t, 150.18, stats["averagePrice"])
	assert.EqualValues(t, 2, stats["orderCount"])
	assert.EqualValues(t, 300.3, stats["totalRevenue"])
}

func TestShopProfile(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "vic@example.com")

	res := h.json(http.MethodPut, "/api/seller/shop-profile", seller, map[string]any{"shopName": "Atelier Vic", "description": "Handmade"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))

	res = h.json(http.MethodGet, "/api/seller/shop-profile", seller, nil)
	require.Equal(t, http.StatusOK, res.Code)
	raw := string(res.Raw)
	assert.Contains(t, raw, "Atelier Vic")
	assert.Contains(t, raw, "Handmade")
}

func TestExcelExportImport(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "wes@example.com")
	id := h.createProduct(seller, map[string]any{"title": "Signet"})["id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/seller/products/export", nil)
	res := h.send(req, seller)
	require.Equal(t, http.StatusOK, res.Code)

	book, err := xlsx.OpenBinary(res.Raw)
	require.NoError(t, err)
	sheet := book.Sheets[0]
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, id, sheet.Rows[1].Cells[0].String())

	sheet.Rows[1].Cells[5].SetString("275")
	added := sheet.AddRow()
	for _, v := range []string{"", "Hoops", "", "22", "4", "320", "3", "", "", "", ""} {
		added.AddCell().SetString(v)
	}
	bad := sheet.AddRow()
	for _, v := range []string{"", "Broken", "", "20", "4", "320", "3"} {
		bad.AddCell().SetString(v)
	}

	var out bytes.Buffer
	require.NoError(t, book.Write(&out))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "products.xlsx")
	require.NoError(t, err)
	_, _ = part.Write(out.Bytes())
	require.NoError(t, mw.Close())

	req = httptest.NewRequest(http.MethodPost, "/api/seller/products/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res = h.send(req, seller)
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	assert.EqualValues(t, 1, res.Body["createdCount"])
	assert.EqualValues(t, 1, res.Body["updatedCount"])
	assert.EqualValues(t, 1, res.Body["skippedCount"])
	errs := res.Body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.EqualValues(t, 4, errs[0].(map[string]any)["row"])

	var p models.Product
	require.NoError(t, h.d.DB.First(&p, "id = ?", id).Error)
	assert.Equal(t, 275.0, p.Price)

	res = h.json(http.MethodGet, "/api/seller/products", seller, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 2, res.Body["count"], fmt.Sprint(res.Body))
}

func TestShopProfileChangeRefreshesCatalog(t *testing.T) {
	h := newHarness(t)
	mr := h.withCache()
	seller := h.register("seller", "xan@example.com")
	id := h.createProduct(seller, nil)["id"].(string)

	res := h.json(http.MethodGet, "/api/catalog/"+id, "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	require.True(t, mr.Exists("catalog:product:"+id))

	res = h.json(http.MethodPut, "/api/seller/shop-profile", seller, map[string]any{"shopName": "Atelier Xan"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	assert.False(t, mr.Exists("catalog:product:"+id))

	res = h.json(http.MethodGet, "/api/catalog/"+id, "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	product := res.Body["product"].(map[string]any)
	boutique := product["seller"].(map[string]any)["boutique"].(map[string]any)
	assert.Equal(t, "Atelier Xan", boutique["shopName"])
}

func TestProfileRejectsInvalidEmail(t *testing.T) {
	h := newHarness(t)
	token := h.register("buyer", "yara@example.com")

	res := h.json(http.MethodPut, "/api/profile", token, map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "email must be a valid email address.", res.Body["message"])

	res = h.json(http.MethodPut, "/api/profile", token, map[string]any{"email": " Yara.New@Example.com "})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	assert.Equal(t, "yara.new@example.com", res.Body["user"].(map[string]any)["email"])
}

func TestOrderStatusRejectsMalformedBody(t *testing.T) {
	h := newHarness(t)
	seller := h.register("seller", "zed@example.com")
	buyer := h.register("buyer", "zoe@example.com")
	id := h.createProduct(seller, nil)["id"].(string)

	res := h.json(http.MethodPost, "/api/orders", buyer, map[string]any{"productId": id, "quantity": 1})
	require.Equal(t, http.StatusCreated, res.Code)
	orderID := res.Body["order"].(map[string]any)["id"].(string)

	req := httptest.NewRequest(http.MethodPatch, "/api/seller/orders/"+orderID+"/status", strings.NewReader(`{"status":`))
	req.Header.Set("Content-Type", "application/json")
	res = h.send(req, seller)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "The request body is empty or invalid. Please send JSON.", res.Body["message"])
}
