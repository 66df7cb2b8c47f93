package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/utils"
)

// Operating window for bookings, both ends inclusive.
const (
	openingTime = 10 * 60 // 10:00 in minutes
	closingTime = 23 * 60 // 23:00
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

func withinWorkingHours(t string) bool {
	parsed, err := time.Parse("15:04", t)
	if err != nil {
		return false
	}
	minutes := parsed.Hour()*60 + parsed.Minute()
	return minutes >= openingTime && minutes <= closingTime
}

func validDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}

// GetAllBookings -> bookings owned by the caller
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	userID := c.GetUint("user_id")

	var bookings []models.Booking
	if err := bc.DB.Where("user_id = ?", userID).Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetBookingByID -> owner only; non-owners get 404, not 403
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("booking_id"))

	var booking models.Booking
	if err := bc.DB.Where("id = ? AND user_id = ?", id, userID).First(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// CreateBooking -> reserve a table slot, status starts at pending
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req struct {
		Table uint   `json:"table" binding:"required"`
		Date  string `json:"date" binding:"required"`
		Time  string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !validDate(req.Date) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
		return
	}
	if !withinWorkingHours(req.Time) {
		utils.RespondError(c, http.StatusBadRequest, utils.ErrOutOfHours)
		return
	}

	var table models.Table
	if err := bc.DB.First(&table, req.Table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	// Only an approved booking blocks the slot; pending ones coexist.
	// The check-then-insert is not serialized against concurrent requests,
	// matching the behavior this service replaced.
	var count int64
	err := bc.DB.Model(&models.Booking{}).
		Where("table_id = ? AND date = ? AND time = ? AND status = ?",
			req.Table, req.Date, req.Time, models.StatusApproved).
		Count(&count).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, utils.ErrSlotTaken)
		return
	}

	booking := models.Booking{
		UserID:  userID,
		TableID: req.Table,
		Date:    req.Date,
		Time:    req.Time,
		Status:  models.StatusPending,
	}
	if err := bc.DB.Create(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Booking %d created: table %d at %s %s", booking.ID, booking.TableID, booking.Date, booking.Time)

	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

// UpdateBooking -> partial update by the owner. Hours and slot conflicts
// are not re-checked here, mirroring the original behavior.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("booking_id"))

	var booking models.Booking
	if err := bc.DB.Where("id = ? AND user_id = ?", id, userID).First(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	var req struct {
		Status *string `json:"status"`
		Date   *string `json:"date"`
		Time   *string `json:"time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			utils.RespondError(c, http.StatusBadRequest, utils.ErrInvalidStatus)
			return
		}
		booking.Status = *req.Status
	}
	if req.Date != nil {
		booking.Date = *req.Date
	}
	if req.Time != nil {
		booking.Time = *req.Time
	}

	if err := bc.DB.Save(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

// DeleteBooking -> owner only
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("booking_id"))

	var booking models.Booking
	if err := bc.DB.Where("id = ? AND user_id = ?", id, userID).First(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	if err := bc.DB.Delete(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking deleted", gin.H{"booking_id": id})
}
