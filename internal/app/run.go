// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// Run starts all servers and background activities, then blocks until
// SIGINT or SIGTERM and shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.grpcServer.Start(ctx); err != nil {
		return err
	}
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		a.telegram.Receive(runCtx, a.dispatcher)
	}()
	go func() {
		defer a.wg.Done()
		if err := a.loop.Run(runCtx); err != nil {
			logrus.Errorf("control loop error: %v", err)
		}
	}()

	a.grpcServer.SetServing(true)
	logrus.Info("application started successfully")

	<-ctx.Done()

	logrus.Info("shutdown signal received")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return a.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down all application components.
// Order: report not ready, stop receiving commands, stop the control
// loop, remove pending notifications, stop servers, flush telemetry.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	a.grpcServer.SetServing(false)

	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
	a.telegram.Stop()

	a.notifier.Close(ctx)

	if err := a.grpcServer.Shutdown(ctx); err != nil {
		logrus.Errorf("gRPC server shutdown error: %v", err)
	}
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
