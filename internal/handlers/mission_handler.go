package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/ufotoken/backend/internal/models"
	"gorm.io/gorm"
)

// MissionHandler handles mission listing, creation and participation
type MissionHandler struct {
	db *gorm.DB
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(db *gorm.DB) *MissionHandler {
	return &MissionHandler{db: db}
}

// List returns missions, optionally filtered by category and active flag
func (h *MissionHandler) List(c *gin.Context) {
	query := h.db.Order("created_at DESC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var missions []models.Mission
	if err := query.Find(&missions).Error; err != nil {
		log.Printf("Missions list error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"missions": missions})
}

// createMissionRequest is the payload for mission creation
type createMissionRequest struct {
	Title           string                 `json:"title" binding:"required"`
	Description     string                 `json:"description"`
	Category        models.MissionCategory `json:"category" binding:"required"`
	RewardPoints    int                    `json:"reward_points" binding:"required"`
	RewardBadge     *string                `json:"reward_badge"`
	RequirementType models.RequirementType `json:"requirement_type" binding:"required"`
	TargetValue     int                    `json:"target_value"`
	DurationDays    *int                   `json:"duration_days"`
	EndDate         *time.Time             `json:"end_date"`
}

// Create registers a new mission definition
func (h *MissionHandler) Create(c *gin.Context) {
	var req createMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mission payload"})
		return
	}

	if req.TargetValue <= 0 {
		req.TargetValue = 1
	}

	mission := models.Mission{
		Title:           req.Title,
		Slug:            slug.Make(req.Title),
		Description:     req.Description,
		Category:        req.Category,
		RewardPoints:    req.RewardPoints,
		RewardBadge:     req.RewardBadge,
		RequirementType: req.RequirementType,
		TargetValue:     req.TargetValue,
		DurationDays:    req.DurationDays,
		StartDate:       time.Now(),
		EndDate:         req.EndDate,
		IsActive:        true,
	}

	if err := h.db.Create(&mission).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Mission with this title already exists"})
			return
		}
		log.Printf("Mission create error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Mission created successfully", "mission": mission})
}

// participateRequest is the payload for mission participation
type participateRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	MissionID string `json:"mission_id" binding:"required"`
}

// Participate registers a user's participation in a mission. Repeated calls
// for the same pair return the existing record.
func (h *MissionHandler) Participate(c *gin.Context) {
	var req participateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and Mission ID required"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	missionID, err := uuid.Parse(req.MissionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mission ID"})
		return
	}

	var existing models.UserMission
	err = h.db.Where("user_id = ? AND mission_id = ?", userID, missionID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Already participating", "participation": existing})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	now := time.Now()
	participation := models.UserMission{
		UserID:      userID,
		MissionID:   missionID,
		Progress:    0,
		IsCompleted: false,
		StartedAt:   now,
		LastUpdated: now,
	}
	if err := h.db.Create(&participation).Error; err != nil {
		log.Printf("Mission participation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.db.Model(&models.Mission{}).
		Where("id = ?", missionID).
		Update("participants", gorm.Expr("participants + 1")).Error; err != nil {
		log.Printf("Failed to increment participants for mission %s: %v", missionID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Mission participation started", "participation": participation})
}
