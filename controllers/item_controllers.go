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

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

// GetAllItems
func (ic *ItemController) GetAllItems(c *gin.Context) {
	var items []models.Item
	if err := ic.DB.Preload("Category").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All items", items)
}

// GetItemByID
func (ic *ItemController) GetItemByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.Item
	if err := ic.DB.Preload("Category").First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item detail", item)
}

// CreateItem
func (ic *ItemController) CreateItem(c *gin.Context) {
	var body struct {
		CategoryID uint     `json:"category_id" binding:"required"`
		Name       string   `json:"name" binding:"required"`
		Price      *float64 `json:"price" binding:"required"`
		Available  *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if *body.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
		return
	}

	var category models.Category
	if err := ic.DB.First(&category, body.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	item := models.Item{
		CategoryID: body.CategoryID,
		Name:       body.Name,
		Price:      *body.Price,
		Available:  true,
	}
	if body.Available != nil {
		item.Available = *body.Available
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Item created", item)
}

// UpdateItem
func (ic *ItemController) UpdateItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var body struct {
		CategoryID *uint    `json:"category_id"`
		Name       *string  `json:"name"`
		Price      *float64 `json:"price"`
		Available  *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.Item
	if err := ic.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	if body.CategoryID != nil {
		var category models.Category
		if err := ic.DB.First(&category, *body.CategoryID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
			return
		}
		item.CategoryID = *body.CategoryID
	}
	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Price != nil {
		if *body.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
			return
		}
		item.Price = *body.Price
	}
	if body.Available != nil {
		item.Available = *body.Available
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item updated", item)
}

// DeleteItem
func (ic *ItemController) DeleteItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	if err := ic.DB.Delete(&models.Item{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item deleted", gin.H{"item_id": id})
}
