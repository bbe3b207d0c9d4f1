package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/LuisDeAnda17/concept-backend-sub002/internal/profile"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/auth"
	apiv1 "github.com/LuisDeAnda17/concept-backend-sub002/server/router/api/v1"
	"github.com/LuisDeAnda17/concept-backend-sub002/server/service/dayindex"
	"github.com/LuisDeAnda17/concept-backend-sub002/store"
	"github.com/LuisDeAnda17/concept-backend-sub002/store/db"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "scheduled",
	Short: "Day-granularity schedule index for assignments and office hours",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			Secret:  viper.GetString("secret"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return err
		}
		return run(instanceProfile)
	},
}

func init() {
	rootCmd.Flags().String("mode", "dev", `mode of the server, can be "dev" or "prod"`)
	rootCmd.Flags().String("addr", "", "binding address for the server")
	rootCmd.Flags().Int("port", 8081, "binding port for the server")
	rootCmd.Flags().String("data", "", "data directory")
	rootCmd.Flags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.Flags().String("dsn", "", "database source name")
	rootCmd.Flags().String("secret", "", "session token signing secret")

	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("scheduled")
	viper.AutomaticEnv()
}

func run(instanceProfile *profile.Profile) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return err
	}
	storeInstance := store.New(driver, instanceProfile)
	defer storeInstance.Close()

	if err := storeInstance.Migrate(ctx); err != nil {
		return err
	}

	dayIndexService := dayindex.NewService(storeInstance)
	authenticator := auth.NewJWTAuthenticator(instanceProfile.Secret)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	apiService := apiv1.NewAPIV1Service(instanceProfile, storeInstance, dayIndexService, authenticator)
	apiService.RegisterRoutes(e)

	address := fmt.Sprintf("%s:%d", instanceProfile.Addr, instanceProfile.Port)
	slog.Info("starting server",
		slog.String("version", instanceProfile.Version),
		slog.String("mode", instanceProfile.Mode),
		slog.String("address", address),
		slog.String("driver", instanceProfile.Driver),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}
