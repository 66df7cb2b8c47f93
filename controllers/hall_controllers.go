package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/utils"
)

type HallController struct {
	DB *gorm.DB
}

func NewHallController(db *gorm.DB) *HallController {
	return &HallController{DB: db}
}

// GetAllHalls
func (hc *HallController) GetAllHalls(c *gin.Context) {
	var halls []models.Hall
	if err := hc.DB.Find(&halls).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All halls", halls)
}

// GetHallByID
func (hc *HallController) GetHallByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("hall_id"))

	var hall models.Hall
	if err := hc.DB.First(&hall, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Hall detail", hall)
}

// CreateHall
func (hc *HallController) CreateHall(c *gin.Context) {
	var body struct {
		Name  string `json:"name" binding:"required"`
		IsVIP bool   `json:"is_vip"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hall := models.Hall{Name: body.Name, IsVIP: body.IsVIP}
	if err := hc.DB.Create(&hall).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Hall created", hall)
}

// UpdateHall
func (hc *HallController) UpdateHall(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("hall_id"))

	var body struct {
		Name  *string `json:"name"`
		IsVIP *bool   `json:"is_vip"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var hall models.Hall
	if err := hc.DB.First(&hall, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	if body.Name != nil {
		hall.Name = *body.Name
	}
	if body.IsVIP != nil {
		hall.IsVIP = *body.IsVIP
	}

	if err := hc.DB.Save(&hall).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Hall updated", hall)
}

// DeleteHall
func (hc *HallController) DeleteHall(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("hall_id"))

	if err := hc.DB.Delete(&models.Hall{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Hall deleted", gin.H{"hall_id": id})
}
