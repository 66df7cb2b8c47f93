package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/controllers"
	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/utils"
)

// authAs stands in for the JWT middleware in controller-level tests.
func authAs(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func openTestDB(t *testing.T, values ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(values...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func setupBookingTestDB(t *testing.T) *gorm.DB {
	db := openTestDB(t, &models.User{}, &models.Hall{}, &models.Table{}, &models.Booking{})

	hall := models.Hall{Name: "Main"}
	db.Create(&hall)
	db.Create(&models.Table{HallID: hall.ID, Number: "5", Seats: 4})
	db.Create(&models.Table{HallID: hall.ID, Number: "3", Seats: 2})
	return db
}

func setupBookingRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	bookingCtrl := controllers.NewBookingController(db)
	r.Use(authAs(userID, models.RoleUser))
	r.GET("/bookings", bookingCtrl.GetAllBookings)
	r.POST("/bookings", bookingCtrl.CreateBooking)
	r.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	r.PUT("/bookings/:booking_id", bookingCtrl.UpdateBooking)
	r.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)
	return r
}

func TestCreateBookingOutOfHours(t *testing.T) {
	utils.InitLogger()
	db := setupBookingTestDB(t)
	r := setupBookingRouter(db, 1)

	for _, tm := range []string{"09:59", "23:01", "02:30"} {
		w := doJSON(t, r, "POST", "/bookings", map[string]interface{}{
			"table": 1, "date": "2025-06-01", "time": tm,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "time %s should be rejected", tm)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "out_of_hours", resp["message"])
	}
}

func TestCreateBookingWindowBoundsInclusive(t *testing.T) {
	utils.InitLogger()
	db := setupBookingTestDB(t)
	r := setupBookingRouter(db, 1)

	for _, tm := range []string{"10:00", "23:00"} {
		w := doJSON(t, r, "POST", "/bookings", map[string]interface{}{
			"table": 1, "date": "2025-06-01", "time": tm,
		})
		assert.Equal(t, http.StatusCreated, w.Code, "time %s should be accepted", tm)
	}
}

func TestCreateBookingSlotConflict(t *testing.T) {
	utils.InitLogger()
	db := setupBookingTestDB(t)
	r := setupBookingRouter(db, 1)

	// An approved booking occupies the slot
	db.Create(&models.Booking{
		UserID: 2, TableID: 1, Date: "2025-06-01", Time: "19:00",
		Status: models.StatusApproved,
	})

	w := doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"table": 1, "date": "2025-06-01", "time": "19:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "slot_taken", resp["message"])

	// A different slot on the same table is fine
	w = doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"table": 1, "date": "2025-06-01", "time": "20:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateBookingPendingDoesNotBlock(t *testing.T) {
	utils.InitLogger()
	db := setupBookingTestDB(t)
	r := setupBookingRouter(db, 1)

	db.Create(&models.Booking{
		UserID: 2, TableID: 1, Date: "2025-06-01", Time: "19:00",
		Status: models.StatusPending,
	})

	w := doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"table": 1, "date": "2025-06-01", "time": "19:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateBookingUnknownTable(t *testing.T) {
	utils.InitLogger()
	db := setupBookingTestDB(t)
	r := setupBookingRouter(db, 1)

	w := doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"table": 99, "date": "2025-06-01", "time": "19:00",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingOwnerScoping(t *testing.T) {
	utils.InitLogger()
	db := setupBookingTestDB(t)

	owner := setupBookingRouter(db, 1)
	stranger := setupBookingRouter(db, 2)

	w := doJSON(t, owner, "POST", "/bookings", map[string]interface{}{
		"table": 1, "date": "2025-06-01", "time": "19:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	data := createResp["data"].(map[string]interface{})
	id := strconv.Itoa(int(data["id"].(float64)))

	// Non-owner sees 404, not 403
	w = doJSON(t, stranger, "GET", "/bookings/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, stranger, "PUT", "/bookings/"+id, map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, stranger, "DELETE", "/bookings/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Owner list contains exactly one booking, stranger list none
	w = doJSON(t, owner, "GET", "/bookings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Data []models.Booking `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)

	w = doJSON(t, stranger, "GET", "/bookings", nil)
	var strangerResp struct {
		Data []models.Booking `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &strangerResp))
	assert.Len(t, strangerResp.Data, 0)
}

func TestUpdateBookingPartialNoRevalidation(t *testing.T) {
	utils.InitLogger()
	db := setupBookingTestDB(t)
	r := setupBookingRouter(db, 1)

	booking := models.Booking{
		UserID: 1, TableID: 1, Date: "2025-06-01", Time: "19:00",
		Status: models.StatusPending,
	}
	db.Create(&booking)
	id := strconv.Itoa(int(booking.ID))

	// Moving the slot out of hours succeeds: updates skip the hours check
	w := doJSON(t, r, "PUT", "/bookings/"+id, map[string]interface{}{
		"time": "23:30", "status": "approved",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Booking
	assert.NoError(t, db.First(&updated, booking.ID).Error)
	assert.Equal(t, "23:30", updated.Time)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.Equal(t, "2025-06-01", updated.Date)
}

func TestDeleteBooking(t *testing.T) {
	utils.InitLogger()
	db := setupBookingTestDB(t)
	r := setupBookingRouter(db, 1)

	booking := models.Booking{
		UserID: 1, TableID: 1, Date: "2025-06-01", Time: "19:00",
		Status: models.StatusPending,
	}
	db.Create(&booking)

	w := doJSON(t, r, "DELETE", "/bookings/"+strconv.Itoa(int(booking.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
