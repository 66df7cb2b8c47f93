package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/services"
	"github.com/oshxona/restaurant-backend/utils"
)

type AuthController struct {
	DB *gorm.DB
	// SignupOTP is durable (otp_codes table), ResetOTP lives in the
	// expiring cache. See services.OTPStore.
	SignupOTP services.OTPStore
	ResetOTP  services.OTPStore
}

func NewAuthController(db *gorm.DB, signupOTP, resetOTP services.OTPStore) *AuthController {
	return &AuthController{DB: db, SignupOTP: signupOTP, ResetOTP: resetOTP}
}

// Signup -> issue an OTP for a new phone number
func (ac *AuthController) Signup(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	phone := utils.NormalizePhone(req.PhoneNumber)

	var existing models.User
	if err := ac.DB.Where("phone_number = ?", phone).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("phone number already registered"))
		return
	}

	code, err := ac.SignupOTP.Issue(phone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// No SMS gateway wired up: the code is only logged.
	utils.InfoLogger.Printf("OTP for %s: %s", phone, code)

	utils.RespondJSON(c, http.StatusOK, "OTP sent", nil)
}

// VerifyOTP -> consume the signup OTP and create the user
func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
		OTP         string `json:"otp" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Password    string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	phone := utils.NormalizePhone(req.PhoneNumber)

	// OTP first: a replayed code must read as invalid_or_expired even when
	// the first attempt already created the user.
	if err := ac.SignupOTP.Verify(phone, req.OTP); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.User
	if err := ac.DB.Where("phone_number = ?", phone).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("phone number already registered"))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		PhoneNumber: phone,
		Name:        req.Name,
		Password:    hashed,
		Role:        models.RoleUser,
		IsActive:    true,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.PhoneNumber)

	utils.RespondJSON(c, http.StatusCreated, "User created", gin.H{
		"user_id": user.ID,
	})
}

// Login -> return access + refresh tokens
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
		Password    string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	phone := utils.NormalizePhone(req.PhoneNumber)

	var user models.User
	if err := ac.DB.Where("phone_number = ?", phone).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, utils.ErrInvalidCredentials)
		return
	}

	if !user.IsActive || !utils.CheckPassword(user.Password, req.Password) {
		utils.RespondError(c, http.StatusUnauthorized, utils.ErrInvalidCredentials)
		return
	}

	access, refresh, err := utils.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"access":  access,
		"refresh": refresh,
	})
}

// Logout -> blacklist the current token
func (ac *AuthController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString != "" {
		utils.BlacklistToken(tokenString)
	}
	utils.RespondJSON(c, http.StatusOK, "Logout successful", nil)
}

// RefreshToken -> exchange a refresh token for a new access token
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	claims, err := utils.ParseToken(req.Refresh)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	access, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{
		"access": access,
	})
}

// ForgotPassword -> cache-backed OTP for password reset
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	phone := utils.NormalizePhone(req.PhoneNumber)

	var user models.User
	if err := ac.DB.Where("phone_number = ?", phone).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	code, err := ac.ResetOTP.Issue(phone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Password reset OTP for %s: %s", phone, code)

	utils.RespondJSON(c, http.StatusOK, "OTP sent", nil)
}

// ResetPassword -> verify the cached OTP and set a new password
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	phone := utils.NormalizePhone(req.PhoneNumber)

	if err := ac.ResetOTP.Verify(phone, req.OTP); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("phone_number = ?", phone).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user.Password = hashed
	if err := ac.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Password updated", nil)
}

// GetProfile -> current user from the JWT
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":           user.ID,
		"phone_number": user.PhoneNumber,
		"name":         user.Name,
		"role":         user.Role,
		"created_at":   user.CreatedAt,
	})
}
