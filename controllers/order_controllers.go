package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/services"
	"github.com/oshxona/restaurant-backend/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Notifier services.Notifier
}

func NewOrderController(db *gorm.DB, notifier services.Notifier) *OrderController {
	return &OrderController{DB: db, Notifier: notifier}
}

// GetAllOrders -> caller's orders with their lines
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	userID := c.GetUint("user_id")

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Item").
		Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> owner only
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Item").
		Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> order plus all its lines in one transaction. A line
// referencing a missing item rolls the whole thing back.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID := c.GetUint("user_id")

	type lineReq struct {
		Item     uint `json:"item" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,min=1"`
	}
	var req struct {
		Table uint      `json:"table" binding:"required"`
		Items []lineReq `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := oc.DB.First(&table, req.Table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	order := models.Order{
		UserID:  userID,
		TableID: req.Table,
		Status:  models.StatusPending,
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, line := range req.Items {
			var item models.Item
			if err := tx.First(&item, line.Item).Error; err != nil {
				return utils.ErrNotFound
			}
			orderItem := models.OrderItem{
				OrderID:  order.ID,
				ItemID:   item.ID,
				Quantity: line.Quantity,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err == utils.ErrNotFound {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Item").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d created with %d lines", order.ID, len(order.OrderItems))

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrderStatus -> owner sets a new status. Any status can follow any
// other; the original enforced no transition graph and neither do we.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, utils.ErrInvalidStatus)
		return
	}

	order.Status = req.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if order.Status == models.StatusApproved || order.Status == models.StatusRejected {
		oc.Notifier.OrderStatusChanged(&order)
	}

	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Item").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder -> owner only, lines go with it
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
