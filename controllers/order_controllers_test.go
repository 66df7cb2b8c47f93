package controllers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/controllers"
	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/utils"
)

// countingNotifier records status-change notifications.
type countingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *countingNotifier) OrderStatusChanged(order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, order.Status)
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db := openTestDB(t,
		&models.User{}, &models.Hall{}, &models.Table{},
		&models.Category{}, &models.Item{},
		&models.Order{}, &models.OrderItem{},
	)

	hall := models.Hall{Name: "Main"}
	db.Create(&hall)
	db.Create(&models.Table{HallID: hall.ID, Number: "3", Seats: 2})

	category := models.Category{Name: "Drinks"}
	db.Create(&category)
	db.Create(&models.Item{CategoryID: category.ID, Name: "Item A", Price: 3.50, Available: true})
	db.Create(&models.Item{CategoryID: category.ID, Name: "Item B", Price: 5.00, Available: true})
	return db
}

func setupOrderRouter(db *gorm.DB, userID uint, notifier *countingNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	orderCtrl := controllers.NewOrderController(db, notifier)
	r.Use(authAs(userID, models.RoleUser))
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.PUT("/orders/:order_id", orderCtrl.UpdateOrderStatus)
	r.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	return r
}

func TestCreateOrderWithLines(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	notifier := &countingNotifier{}
	r := setupOrderRouter(db, 1, notifier)

	w := doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"table": 1,
		"items": []map[string]interface{}{
			{"item": 1, "quantity": 2},
			{"item": 2, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusPending, resp.Data.Status)
	assert.Len(t, resp.Data.OrderItems, 2)
	assert.Equal(t, 2, resp.Data.OrderItems[0].Quantity)
	assert.Equal(t, 1, resp.Data.OrderItems[1].Quantity)
}

func TestCreateOrderEmptyLines(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	r := setupOrderRouter(db, 1, &countingNotifier{})

	w := doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"table": 1,
		"items": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderZeroQuantity(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	r := setupOrderRouter(db, 1, &countingNotifier{})

	w := doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"table": 1,
		"items": []map[string]interface{}{
			{"item": 1, "quantity": 0},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderBadItemRollsBack(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	r := setupOrderRouter(db, 1, &countingNotifier{})

	w := doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"table": 1,
		"items": []map[string]interface{}{
			{"item": 1, "quantity": 2},
			{"item": 99, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Atomicity: nothing persisted, not even the valid first line
	var orders, lines int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&lines)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), lines)
}

func TestUpdateOrderStatusNotifies(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	notifier := &countingNotifier{}
	r := setupOrderRouter(db, 1, notifier)

	w := doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"table": 1,
		"items": []map[string]interface{}{{"item": 1, "quantity": 2}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var createResp struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	id := strconv.Itoa(int(createResp.Data.ID))

	w = doJSON(t, r, "PUT", "/orders/"+id, map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, notifier.count())

	// Back to pending: no notification for that transition
	w = doJSON(t, r, "PUT", "/orders/"+id, map[string]interface{}{"status": "pending"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, notifier.count())

	w = doJSON(t, r, "PUT", "/orders/"+id, map[string]interface{}{"status": "rejected"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, notifier.count())
}

func TestUpdateOrderInvalidStatus(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	notifier := &countingNotifier{}
	r := setupOrderRouter(db, 1, notifier)

	order := models.Order{UserID: 1, TableID: 1, Status: models.StatusPending}
	db.Create(&order)

	w := doJSON(t, r, "PUT", "/orders/"+strconv.Itoa(int(order.ID)), map[string]interface{}{
		"status": "shipped",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_status", resp["message"])
	assert.Equal(t, 0, notifier.count())
}

func TestOrderOwnerScoping(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)

	order := models.Order{UserID: 1, TableID: 1, Status: models.StatusPending}
	db.Create(&order)
	id := strconv.Itoa(int(order.ID))

	stranger := setupOrderRouter(db, 2, &countingNotifier{})
	w := doJSON(t, stranger, "GET", "/orders/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, stranger, "PUT", "/orders/"+id, map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, stranger, "DELETE", "/orders/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrderCascadesLines(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	r := setupOrderRouter(db, 1, &countingNotifier{})

	w := doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"table": 1,
		"items": []map[string]interface{}{
			{"item": 1, "quantity": 2},
			{"item": 2, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var createResp struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))

	w = doJSON(t, r, "DELETE", "/orders/"+strconv.Itoa(int(createResp.Data.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var orders, lines int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&lines)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), lines)
}
