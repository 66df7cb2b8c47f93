package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Preload("Hall").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All tables", tables)
}

// GetTableByID
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.Preload("Hall").First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// CreateTable
func (tc *TableController) CreateTable(c *gin.Context) {
	var body struct {
		HallID uint   `json:"hall_id" binding:"required"`
		Number string `json:"number" binding:"required"`
		Seats  int    `json:"seats" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Seats <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("seats must be positive"))
		return
	}

	var hall models.Hall
	if err := tc.DB.First(&hall, body.HallID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	table := models.Table{
		HallID: body.HallID,
		Number: body.Number,
		Seats:  body.Seats,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (hall=%d)", table.Number, table.HallID)

	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTable
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var body struct {
		HallID     *uint   `json:"hall_id"`
		Number     *string `json:"number"`
		Seats      *int    `json:"seats"`
		IsReserved *bool   `json:"is_reserved"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	if body.HallID != nil {
		var hall models.Hall
		if err := tc.DB.First(&hall, *body.HallID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
			return
		}
		table.HallID = *body.HallID
	}
	if body.Number != nil {
		table.Number = *body.Number
	}
	if body.Seats != nil {
		if *body.Seats <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("seats must be positive"))
			return
		}
		table.Seats = *body.Seats
	}
	if body.IsReserved != nil {
		table.IsReserved = *body.IsReserved
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	if err := tc.DB.Delete(&models.Table{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": id})
}
