package main

import (
	"fmt"
	"log"

	"github.com/KaedeZzz/MatchRecommender/internal/api"
	"github.com/KaedeZzz/MatchRecommender/internal/config"
	"github.com/KaedeZzz/MatchRecommender/internal/llm"
	"github.com/KaedeZzz/MatchRecommender/internal/store"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.Info("配置文件加载成功")

	// 3. 初始化比赛存档（单个JSON文档，推荐器与外部脚本共用）
	matchStore := store.NewFileStore(cfg.Settings.StorePath, logger)
	logger.Infof("比赛存档路径: %s", cfg.Settings.StorePath)

	// 4. 进程启动时构建一次模型客户端，显式传给推荐服务，不留全局句柄
	llmClient := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		TimeoutSeconds: cfg.LLM.Timeout,
	})
	if cfg.LLM.APIKey == "" {
		logger.Warn("未检测到 OPENAI_API_KEY，推荐接口将不可用，请在 .env 中补充")
	}

	// 5. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// 注册pprof 方便调试和监测性能问题
	pprof.Register(r)
	logger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 6. 注册API路由
	syncHandler := api.NewSyncHandler(matchStore, logger, cfg)
	r.POST("/sync/sport/:sport", syncHandler.SyncSportHandler)
	r.POST("/sync/all", syncHandler.SyncAllHandler)

	// 比赛查询接口（按时间排好序的合并存档）
	matchHandler := api.NewMatchHandler(matchStore, logger)
	r.GET("/api/matches", matchHandler.ListMatches)

	// 个性化推荐接口（只读存档，不触碰合并与保存）
	recommendHandler := api.NewRecommendHandler(matchStore, llmClient, logger, cfg)
	r.GET("/api/recommendations", recommendHandler.GetRecommendations)

	// 7. 启动服务（从配置读取端口）
	port := cfg.Server.Port
	logger.Infof("服务启动成功，端口：%d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		logger.Fatalf("启动服务失败: %v", err)
	}
}
