package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/KaedeZzz/MatchRecommender/internal/config"
	"github.com/KaedeZzz/MatchRecommender/internal/interfaces"
	"github.com/KaedeZzz/MatchRecommender/internal/model"
	"github.com/KaedeZzz/MatchRecommender/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SyncHandler struct {
	syncService *service.SyncService
	logger      *logrus.Logger
}

func NewSyncHandler(store interfaces.MatchStore, logger *logrus.Logger, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		syncService: service.NewSyncService(store, logger, cfg),
		logger:      logger,
	}
}

// SyncSportHandler 同步指定运动的比赛数据
// POST /sync/sport/{sport}
func (h *SyncHandler) SyncSportHandler(c *gin.Context) {
	sport, ok := model.ParseSport(c.Param("sport"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("未支持的运动: %s", c.Param("sport")),
		})
		return
	}

	err := h.syncService.SyncSport(c.Request.Context(), sport)
	if errors.Is(err, service.ErrTokenMissing) {
		// 没有令牌不算硬失败：提示后跳过，旧数据保持可用
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("%s未配置访问令牌，本次跳过", sport),
		})
		return
	}
	if err != nil {
		h.logger.Errorf("同步%s失败: %v", sport, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s同步成功", sport),
	})
}

// SyncAllHandler 依次同步全部启用的运动，返回每项的结果
// POST /sync/all
func (h *SyncHandler) SyncAllHandler(c *gin.Context) {
	results := h.syncService.SyncAll(c.Request.Context())

	statuses := make(map[string]string, len(results))
	for sport, err := range results {
		switch {
		case err == nil:
			statuses[string(sport)] = "ok"
		case errors.Is(err, service.ErrTokenMissing):
			statuses[string(sport)] = "skipped: 未配置访问令牌"
		default:
			statuses[string(sport)] = err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": statuses})
}
