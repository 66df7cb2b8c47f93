package services

import (
	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/utils"
)

// Notifier is told about order status transitions. Swap the implementation
// for SMS/email/push delivery.
type Notifier interface {
	OrderStatusChanged(order *models.Order)
}

// LogNotifier writes the notification to the application log.
type LogNotifier struct{}

func (LogNotifier) OrderStatusChanged(order *models.Order) {
	switch order.Status {
	case models.StatusApproved:
		utils.InfoLogger.Printf("Notification: order %d for user %d has been approved", order.ID, order.UserID)
	case models.StatusRejected:
		utils.InfoLogger.Printf("Notification: order %d for user %d has been rejected", order.ID, order.UserID)
	}
}
