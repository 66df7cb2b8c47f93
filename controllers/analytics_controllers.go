package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/utils"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// GetTopItems -> top 5 items ranked by how many order lines reference them
func (ac *AnalyticsController) GetTopItems(c *gin.Context) {
	type itemCount struct {
		ItemName string `json:"item_name"`
		Total    int64  `json:"total"`
	}

	var rows []itemCount
	err := ac.DB.Table("order_items").
		Select("items.name AS item_name, COUNT(order_items.id) AS total").
		Joins("JOIN items ON items.id = order_items.item_id").
		Group("items.name").
		Order("total DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Top items", rows)
}
