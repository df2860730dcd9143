package handlers

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufotoken/backend/internal/config"
	"github.com/ufotoken/backend/internal/models"
	"github.com/ufotoken/backend/internal/utils"
	"gorm.io/gorm"
)

// UserHandler handles user registration and profile operations
type UserHandler struct {
	db      *gorm.DB
	rewards config.RewardConfig
	rng     *rand.Rand
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB, rewards config.RewardConfig, rng *rand.Rand) *UserHandler {
	return &UserHandler{db: db, rewards: rewards, rng: rng}
}

// registerRequest is the payload for user registration
type registerRequest struct {
	WalletAddress string  `json:"wallet_address" binding:"required"`
	ReferredBy    *string `json:"referred_by"`
	TwitterHandle *string `json:"twitter_handle"`
}

// Register creates a new user with a welcome bonus airdrop and credits the
// referrer when a referral code was supplied
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wallet address is required"})
		return
	}

	if !utils.IsValidWalletAddress(req.WalletAddress) || utils.IsZeroAddress(req.WalletAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid wallet address required"})
		return
	}
	walletAddress := utils.NormalizeWalletAddress(req.WalletAddress)

	// Registration is idempotent per wallet
	var existing models.User
	err := h.db.Where("wallet_address = ?", walletAddress).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists", "user": existing})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Registration lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	now := time.Now()
	user := models.User{
		WalletAddress:     walletAddress,
		ReferralCode:      utils.GenerateReferralCode(h.rng),
		ReferredBy:        req.ReferredBy,
		TwitterHandle:     req.TwitterHandle,
		Badges:            models.StringArray{"Newcomer"},
		MissionsCompleted: models.StringArray{},
		LastActive:        now,
	}

	if err := h.db.Create(&user).Error; err != nil {
		log.Printf("Registration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Welcome bonus airdrop, best effort
	welcome := models.Airdrop{
		UserID:        user.ID,
		WalletAddress: walletAddress,
		Amount:        h.rewards.WelcomeBonus,
		Status:        models.AirdropStatusPending,
		Type:          models.AirdropTypeWelcomeBonus,
		Reason:        "Welcome to UFO Token!",
	}
	if err := h.db.Create(&welcome).Error; err != nil {
		log.Printf("Failed to create welcome bonus for %s: %v", user.ID, err)
	}

	// Credit the referrer if the code resolves
	if req.ReferredBy != nil && *req.ReferredBy != "" {
		err := h.db.Model(&models.User{}).
			Where("referral_code = ?", *req.ReferredBy).
			Updates(map[string]interface{}{
				"total_points":      gorm.Expr("total_points + ?", h.rewards.ReferralPoints),
				"referral_earnings": gorm.Expr("referral_earnings + ?", h.rewards.ReferralEarnings),
				"updated_at":        now,
			}).Error
		if err != nil {
			log.Printf("Failed to credit referrer %s: %v", *req.ReferredBy, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
}

// GetByWallet returns a user profile and touches its last-active timestamp
func (h *UserHandler) GetByWallet(c *gin.Context) {
	walletAddress := c.Param("walletAddress")
	if !utils.IsValidWalletAddress(walletAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid wallet address required"})
		return
	}
	walletAddress = utils.NormalizeWalletAddress(walletAddress)

	var user models.User
	if err := h.db.Where("wallet_address = ?", walletAddress).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.db.Model(&user).Update("last_active", time.Now()).Error; err != nil {
		log.Printf("Failed to touch last_active for %s: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// updateRequest is the payload for profile updates
type updateRequest struct {
	TwitterHandle *string `json:"twitter_handle"`
	TelegramID    *string `json:"telegram_id"`
	TotalTrades   *int    `json:"total_trades"`
}

// UpdateByWallet applies a partial profile update
func (h *UserHandler) UpdateByWallet(c *gin.Context) {
	walletAddress := c.Param("walletAddress")
	if !utils.IsValidWalletAddress(walletAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid wallet address required"})
		return
	}
	walletAddress = utils.NormalizeWalletAddress(walletAddress)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	updates := map[string]interface{}{
		"updated_at":  time.Now(),
		"last_active": time.Now(),
	}
	if req.TwitterHandle != nil {
		updates["twitter_handle"] = *req.TwitterHandle
	}
	if req.TelegramID != nil {
		updates["telegram_id"] = *req.TelegramID
	}
	if req.TotalTrades != nil && *req.TotalTrades >= 0 {
		updates["total_trades"] = *req.TotalTrades
	}

	result := h.db.Model(&models.User{}).Where("wallet_address = ?", walletAddress).Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var user models.User
	if err := h.db.Where("wallet_address = ?", walletAddress).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
