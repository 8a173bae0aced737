package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the candidate web form",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8080)")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, config := setup()

	logger.Info("starting the talent-scout web server", zap.String("version", version))

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	gen, err := newQuestionGenerator(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating a question generator", zap.Error(err))
	}

	srv, err := web.New(web.Config{
		Listen:     config.Server.Listen,
		SessionTTL: config.Server.SessionTTL,
	}, gen, logger)
	if err != nil {
		logger.Fatal("creating a web server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("serving http", zap.Error(err))
	}

	logger.Info("server stopped")
}
