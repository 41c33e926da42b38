package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dropout-srv/config"
	"dropout-srv/internal/httpserver"
	"dropout-srv/internal/model"
	"dropout-srv/internal/sweeper"
	"dropout-srv/pkg/log"
	"dropout-srv/pkg/scope"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dropout-srv",
		Short:        "Dropout risk scoring and alert escalation service",
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the HTTP API and run the scheduled escalation sweep",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "sweep",
			Short: "Run one escalation pass and exit",
			RunE:  runSweep,
		},
		newTokenCmd(),
	)

	return root
}

func loadConfig() (*config.Config, log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting dropout risk service...")

	a, err := bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize dependencies: %v", err)
		return err
	}
	defer a.close()

	srv, err := httpserver.New(logger, httpserver.Config{
		// Server configuration
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		// Domain
		RiskUC:  a.riskUC,
		AlertUC: a.alertUC,
		Holder:  a.holder,

		// Auth & security
		JWTManager: a.jwtMgr,

		// External services
		DB:       a.db,
		Redis:    a.redis,
		Discord:  a.discord,
		Gatherer: a.registry,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return err
	}

	sw := sweeper.New(logger, a.alertUC, a.lease(), a.metrics, cfg.Alert.SweepInterval)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sw.Run(ctx)
	}()

	err = srv.Run(ctx)
	stop()

	drainCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
	defer cancel()
	if derr := a.riskUC.Drain(drainCtx); derr != nil {
		logger.Warnf(drainCtx, "Pending assessment side effects did not finish: %v", derr)
	}

	select {
	case <-sweepDone:
	case <-drainCtx.Done():
		logger.Warn(context.Background(), "Escalation sweeper did not stop in time")
	}

	logger.Info(context.Background(), "Dropout risk service stopped gracefully")
	return err
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize dependencies: %v", err)
		return err
	}
	defer a.close()

	sw := sweeper.New(logger, a.alertUC, a.lease(), a.metrics, cfg.Alert.SweepInterval)
	out, ran, err := sw.RunOnce(ctx)
	if err != nil {
		return err
	}
	if !ran {
		fmt.Fprintln(cmd.OutOrStdout(), "another replica holds the sweep lease; nothing done")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "candidates=%d escalated=%d skipped=%d failed=%d took=%s\n",
		out.Candidates, out.Escalated, out.Skipped, out.Failed, out.Duration)
	return nil
}

func newTokenCmd() *cobra.Command {
	var (
		userID   string
		username string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token signed with the configured secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch role {
			case model.RoleStudent, model.RoleMentor, model.RoleAdmin:
			default:
				return fmt.Errorf("unknown role %q", role)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			mgr, err := scope.NewWithTTL(cfg.JWT.SecretKey, cfg.JWT.TTL)
			if err != nil {
				return err
			}

			tok, err := mgr.CreateToken(scope.Payload{
				UserID:   userID,
				Username: username,
				Role:     role,
				Type:     scope.TokenTypeAccess,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "sub", "", "user id placed in the sub claim")
	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&role, "role", model.RoleAdmin, "student, mentor or admin")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}
