package cmd

import (
	"context"
	"fmt"
	"os"

	internalApp "github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/dao"
	"github.com/haierkeys/dev-knowledge-base/internal/upgrade"
	"github.com/haierkeys/dev-knowledge-base/pkg/logger"

	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Migrate the database schema and data to the running version",
	Long: `Migrate the database schema and data to the running version.

Tables are auto-migrated first, then every pending data migration up to the
running version is applied in order. Already applied migrations are skipped,
so the command is safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		if len(configPath) <= 0 {
			configPath = "config/config.yaml"
		}

		appConfig, configRealpath, err := internalApp.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Loading config from: %s\n", configRealpath)

		// 初始化日志
		lg, err := logger.NewLogger(logger.Config{
			Level:      appConfig.Log.Level,
			File:       appConfig.Log.File,
			Production: appConfig.Log.Production,
		})
		if err != nil {
			fmt.Printf("Failed to init logger: %v\n", err)
			os.Exit(1)
		}

		db, err := dao.NewDBEngineWithConfig(appConfig.DaoConfig(), lg)
		if err != nil {
			fmt.Printf("Failed to init database: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Starting database upgrade...")

		ctx := context.Background()
		if err := upgrade.Execute(ctx, db, lg, internalApp.Version); err != nil {
			fmt.Printf("Upgrade failed: %v\n", err)
			os.Exit(1)
		}

		current, _ := upgrade.CurrentVersion(ctx, db)
		fmt.Printf("Database upgrade completed successfully! schema version: %s\n", current)
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
	upgradeCmd.Flags().StringP("config", "c", "", "config file path")
}
