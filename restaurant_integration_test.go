package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/events"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/router"
	"github.com/yeremiapane/table-order-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndSettlement menguji alur utama lewat router asli (termasuk JWT):
// 1. Register restoran -> login -> token
// 2. Buat menu Tea dan Samosa
// 3. Dua order masuk untuk meja 5 (endpoint publik)
// 4. Staff advance keduanya ke recurring
// 5. Settle meja: diskon 10%, service 10, GST 5% exclusive -> total 80.88
// 6. Reprint salah satu order menghasilkan angka yang sama
// 7. Export xlsx jalan
// 8. Gate ditutup -> order baru ditolak tanpa baris tersisa
func TestEndToEndSettlement(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db, events.NewHub())

	// 1. Register + login
	w := doJSON(r, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":           "owner@chaipoint.example",
		"password":        "secret-password",
		"restaurant_name": "Chai Point",
		"gst_number":      "27AAAAA0000A1Z5",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "owner@chaipoint.example",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)

	// 2. Menu
	for _, m := range []map[string]interface{}{
		{"category": "Beverages", "name": "Tea", "is_veg": true, "price": 20.0},
		{"category": "Snacks", "name": "Samosa", "is_veg": true, "price": 15.0},
	} {
		w = doJSON(r, "POST", "/api/menus", token, m)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	// 3. Order A: 2x Tea; Order B: 1x Tea + 1x Samosa
	w = doJSON(r, "POST", "/api/orders", "", map[string]interface{}{
		"restaurant_id": 1,
		"table_no":      5,
		"items": []map[string]interface{}{
			{"menu_id": 1, "name": "Tea", "is_veg": true, "price": 20.0, "quantity": 2, "portion": "full"},
		},
		"total": 40.0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "POST", "/api/orders", "", map[string]interface{}{
		"restaurant_id": 1,
		"table_no":      5,
		"items": []map[string]interface{}{
			{"menu_id": 1, "name": "Tea", "is_veg": true, "price": 20.0, "quantity": 1, "portion": "full"},
			{"menu_id": 2, "name": "Samosa", "is_veg": true, "price": 15.0, "quantity": 1, "portion": "full"},
		},
		"total": 35.0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// 4. Advance keduanya
	for _, id := range []int{1, 2} {
		w = doJSON(r, "PATCH", fmt.Sprintf("/api/orders/%d/advance", id), token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// 5. Settlement
	w = doJSON(r, "POST", "/api/tables/5/settle", token, map[string]interface{}{
		"discount_percent": 10,
		"service_charge":   10,
		"gst_rate":         5,
		"gst_type":         "exclusive",
		"message":          "thank you, visit again",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	receipt := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 75.0, receipt["original_subtotal"])
	assert.Equal(t, 80.88, receipt["total"])

	// 6. Reprint
	w = doJSON(r, "GET", "/api/orders/2/receipt", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	reprinted := decode(t, w)["data"].(map[string]interface{})["receipt"].(map[string]interface{})
	assert.Equal(t, receipt["total"], reprinted["total"])
	assert.Equal(t, receipt["gst_amount"], reprinted["gst_amount"])

	// 7. Export
	year := time.Now().Year()
	w = doJSON(r, "GET", fmt.Sprintf("/api/orders/export?type=year&year=%d", year), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())

	// 8. Gate
	w = doJSON(r, "PATCH", "/api/settings/submit-gate", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "POST", "/api/orders", "", map[string]interface{}{
		"restaurant_id": 1,
		"table_no":      3,
		"items": []map[string]interface{}{
			{"menu_id": 1, "name": "Tea", "is_veg": true, "price": 20.0, "quantity": 1, "portion": "full"},
		},
		"total": 20.0,
	})
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	var live int64
	db.Model(&models.Order{}).Where("status = ?", models.StatusLive).Count(&live)
	assert.Equal(t, int64(0), live)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Menu{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func doJSON(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v (%s)", err, w.Body.String())
	}
	return resp
}
