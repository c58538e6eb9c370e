package api

import (
	"net/http"
	"strconv"

	"github.com/KaedeZzz/MatchRecommender/internal/interfaces"
	"github.com/KaedeZzz/MatchRecommender/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MatchHandler 提供合并后比赛集合的查询接口
type MatchHandler struct {
	store  interfaces.MatchStore
	logger *logrus.Logger
}

// NewMatchHandler 创建 MatchHandler
func NewMatchHandler(store interfaces.MatchStore, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{
		store:  store,
		logger: logger,
	}
}

// ListMatches 比赛列表接口（存档已按开赛时间排好序）
// GET /api/matches?sport=cs2&limit=50
func (h *MatchHandler) ListMatches(c *gin.Context) {
	matches, err := h.store.Load()
	if err != nil {
		h.logger.WithError(err).Error("读取比赛存档失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if sportParam := c.Query("sport"); sportParam != "" {
		sport, ok := model.ParseSport(sportParam)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "未支持的运动: " + sportParam})
			return
		}
		filtered := make([]*model.Match, 0, len(matches))
		for _, m := range matches {
			if m.Sport == sport {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(matches),
		"matches": matches,
	})
}
