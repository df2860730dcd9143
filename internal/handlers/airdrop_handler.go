package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ufotoken/backend/internal/models"
	"github.com/ufotoken/backend/internal/utils"
	"gorm.io/gorm"
)

// AirdropHandler handles airdrop listing and manual grants
type AirdropHandler struct {
	db *gorm.DB
}

// NewAirdropHandler creates a new airdrop handler
func NewAirdropHandler(db *gorm.DB) *AirdropHandler {
	return &AirdropHandler{db: db}
}

// List returns airdrops, newest first, optionally filtered by wallet and status
func (h *AirdropHandler) List(c *gin.Context) {
	query := h.db.Order("created_at DESC").Limit(100)

	if walletAddress := c.Query("wallet_address"); walletAddress != "" {
		if !utils.IsValidWalletAddress(walletAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid wallet address required"})
			return
		}
		query = query.Where("wallet_address = ?", utils.NormalizeWalletAddress(walletAddress))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var airdrops []models.Airdrop
	if err := query.Find(&airdrops).Error; err != nil {
		log.Printf("Airdrops list error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"airdrops": airdrops})
}

// createAirdropRequest is the payload for manual airdrop grants
type createAirdropRequest struct {
	UserID        string             `json:"user_id" binding:"required"`
	WalletAddress string             `json:"wallet_address" binding:"required"`
	Amount        int                `json:"amount" binding:"required"`
	Type          models.AirdropType `json:"type"`
	Reason        string             `json:"reason"`
}

// Create grants a manual airdrop. Records always start pending regardless of
// what the caller sends.
func (h *AirdropHandler) Create(c *gin.Context) {
	var req createAirdropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid airdrop payload"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if !utils.IsValidWalletAddress(req.WalletAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid wallet address required"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}
	if req.Type == "" {
		req.Type = models.AirdropTypeReferralBonus
	}

	airdrop := models.Airdrop{
		UserID:        userID,
		WalletAddress: utils.NormalizeWalletAddress(req.WalletAddress),
		Amount:        req.Amount,
		Status:        models.AirdropStatusPending,
		Type:          req.Type,
		Reason:        req.Reason,
	}
	if err := h.db.Create(&airdrop).Error; err != nil {
		log.Printf("Airdrop create error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Airdrop created successfully", "airdrop": airdrop})
}
