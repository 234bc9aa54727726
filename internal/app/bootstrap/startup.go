package bootstrap

import (
	"context"
	"errors"
	"os"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/hallbook/internal/app/scheduler"
)

// Startup hydrates the in-memory scheduler from Mongo and ingests the
// optional admin/whitelist seed files. It runs after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := deps.Core.Load(ctx); err != nil {
		logger.Error("scheduler state load failed", zap.Error(err))
		return err
	}

	if err := ingestRoleFile(ctx, deps, scheduler.RoleAdmin, appCfg.AdminlistPath, logger); err != nil {
		return err
	}
	return ingestRoleFile(ctx, deps, scheduler.RoleWhitelisted, appCfg.WhitelistPath, logger)
}

// ingestRoleFile grants a role to every user ID listed in the file at
// path. A missing file is logged and skipped; malformed lines are
// reported but do not abort startup.
func ingestRoleFile(ctx context.Context, deps DBDeps, role scheduler.Role, path string, logger *zap.Logger) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("role seed file not found, skipping",
				zap.String("role", string(role)),
				zap.String("path", path))
			return nil
		}
		logger.Error("role seed file open failed",
			zap.String("path", path), zap.Error(err))
		return err
	}
	defer f.Close()

	report, err := deps.Core.BulkSetRoles(ctx, role, f)
	if err != nil {
		logger.Error("role seed ingestion failed",
			zap.String("path", path), zap.Error(err))
		return err
	}

	logger.Info("role seed file ingested",
		zap.String("role", string(role)),
		zap.String("path", path),
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", report.Skipped),
		zap.Int("failures", len(report.Failures)))
	for _, le := range report.Failures {
		logger.Warn("role seed line rejected",
			zap.String("path", path),
			zap.Int("line", le.Line),
			zap.String("text", le.Text),
			zap.String("reason", le.Reason))
	}
	return nil
}
