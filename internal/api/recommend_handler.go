package api

import (
	"errors"
	"net/http"

	"github.com/KaedeZzz/MatchRecommender/internal/config"
	"github.com/KaedeZzz/MatchRecommender/internal/interfaces"
	"github.com/KaedeZzz/MatchRecommender/internal/llm"
	"github.com/KaedeZzz/MatchRecommender/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RecommendHandler 个性化推荐接口
type RecommendHandler struct {
	recommendService *service.RecommendService
	logger           *logrus.Logger
}

// NewRecommendHandler 创建 RecommendHandler（模型客户端由 main 构建后注入）
func NewRecommendHandler(store interfaces.MatchStore, client *llm.Client, logger *logrus.Logger, cfg *config.Config) *RecommendHandler {
	return &RecommendHandler{
		recommendService: service.NewRecommendService(store, client, logger, cfg),
		logger:           logger,
	}
}

// GetRecommendations 按用户偏好生成推荐列表
// GET /api/recommendations
func (h *RecommendHandler) GetRecommendations(c *gin.Context) {
	recs, err := h.recommendService.Recommend(c.Request.Context())
	if errors.Is(err, service.ErrProfileMissing) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("生成推荐失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":           len(recs),
		"recommendations": recs,
	})
}
