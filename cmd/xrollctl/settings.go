package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xroll/pkg/config/xconf"
	"github.com/omeyang/xroll/pkg/observability/xlog"
	"github.com/omeyang/xroll/pkg/observability/xmetrics"
	"github.com/omeyang/xroll/pkg/observability/xroll"
	"github.com/omeyang/xroll/pkg/observability/xrotate"
)

// settings 配置文件结构。
type settings struct {
	Roll        xroll.Config      `koanf:"xroll"`
	Diagnostics diagnosticsConfig `koanf:"diagnostics"`
}

// diagnosticsConfig 诊断日志配置。File 为空时输出到 stderr。
type diagnosticsConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

func defaultSettings() settings {
	return settings{
		Roll: xroll.DefaultConfig(""),
		Diagnostics: diagnosticsConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// loadSettings 读取配置文件，未出现的字段保留默认值。path 为空时只返回默认值。
func loadSettings(path string) (settings, *xconf.Config, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil, nil
	}
	conf, err := xconf.New(path)
	if err != nil {
		return s, nil, err
	}
	if err := conf.Unmarshal("", &s); err != nil {
		return s, nil, err
	}
	return s, conf, nil
}

// buildDiagnostics 按配置构建诊断 Logger。
func buildDiagnostics(cfg diagnosticsConfig, stderr io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetLevelString(cfg.Level).
		SetFormat(cfg.Format)
	if cfg.File != "" {
		b = b.SetRotation(cfg.File,
			xrotate.WithMaxSize(cfg.MaxSizeMB),
			xrotate.WithMaxBackups(cfg.MaxBackups),
		)
	} else {
		b = b.SetOutput(stderr)
	}
	return b.Build()
}

// session 一次命令执行期间的配置与诊断 Logger。
type session struct {
	settings settings
	conf     *xconf.Config
	logger   xlog.LoggerWithLevel
	previous xlog.LoggerWithLevel
	cleanup  func() error
}

// openSession 合并配置文件与全局 flag，并把诊断 Logger 设为全局默认。
// 调用方负责 Close。
func openSession(cmd *cli.Command) (*session, error) {
	s, conf, err := loadSettings(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if p := cmd.String("path"); p != "" {
		s.Roll.Path = p
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		s.Diagnostics.Level = lvl
	}
	if s.Roll.Path == "" {
		return nil, &usageError{msg: "缺少日志文件路径，请使用 --path 或在配置文件中设置 xroll.path"}
	}
	if err := s.Roll.Validate(); err != nil {
		return nil, &usageError{msg: err.Error()}
	}

	logger, cleanup, err := buildDiagnostics(s.Diagnostics, cmd.Root().ErrWriter)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: %w", err)
	}
	sess := &session{
		settings: s,
		conf:     conf,
		logger:   logger,
		previous: xlog.Default(),
		cleanup:  cleanup,
	}
	xlog.SetDefault(logger)
	return sess, nil
}

// factory 创建写入器工厂，埋点使用全局 OTel Provider。
func (s *session) factory() (*xroll.Factory, error) {
	obs, err := xmetrics.NewOTelObserver(xmetrics.WithInstrumentationName("xrollctl"))
	if err != nil {
		return nil, err
	}
	return xroll.NewFactory(s.settings.Roll, xroll.WithObserver(obs))
}

// watch 监听配置文件，变更时只更新诊断日志级别。
// 未使用配置文件时返回空操作的 stop。
func (s *session) watch(ctx context.Context) (stop func() error, err error) {
	if s.conf == nil {
		return func() error { return nil }, nil
	}
	w, err := xconf.Watch(s.conf, func(cfg *xconf.Config, err error) {
		if err != nil {
			s.logger.Warn(ctx, "xrollctl: config reload failed", xlog.Path(s.conf.Path()), xlog.Err(err))
			return
		}
		s.applyReload(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}
	return w.Stop, nil
}

func (s *session) applyReload(ctx context.Context, cfg *xconf.Config) {
	d := s.settings.Diagnostics
	if err := cfg.Unmarshal("diagnostics", &d); err != nil {
		s.logger.Warn(ctx, "xrollctl: config reload failed", xlog.Err(err))
		return
	}
	level, err := xlog.ParseLevel(d.Level)
	if err != nil {
		s.logger.Warn(ctx, "xrollctl: ignore invalid diagnostics level", xlog.Err(err))
		return
	}
	s.logger.SetLevel(level)
	s.logger.Info(ctx, "xrollctl: diagnostics level reloaded", slog.String("level", level.String()))
}

// Close 恢复原全局 Logger 并关闭诊断输出。
func (s *session) Close() error {
	xlog.SetDefault(s.previous)
	return s.cleanup()
}

// closeSession 把 Close 的错误合并进 err。
func closeSession(s *session, err *error) {
	if cerr := s.Close(); cerr != nil {
		*err = errors.Join(*err, cerr)
	}
}
