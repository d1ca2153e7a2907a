// xrollctl 是 xroll 滚动日志写入器的命令行工具。
//
// 用法:
//
//	xrollctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config     配置文件路径（YAML 或 JSON，包含 xroll 与 diagnostics 两节）
//	-p, --path       活动日志文件路径，覆盖配置文件中的 xroll.path
//	    --log-level  诊断日志级别，覆盖配置文件中的 diagnostics.level
//
// 命令:
//
//	write <message>  写入一条日志记录
//	pump             多个写入者并发写入，用于观察轮转与保留行为
//	status           查看活动文件与归档列表
//	plan             预览下一次写入是否轮转、会删除哪些归档
//	help             显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（如写入失败、配置文件无法读取）
//	2: 参数错误（缺少路径、无效级别、未知命令等）
//	130: 被信号中断
//
// 示例:
//
//	xrollctl -p /var/log/app.log write "service started"
//	xrollctl -c xroll.yaml write -l error -e "dial timeout" "upstream unavailable"
//	xrollctl -c xroll.yaml pump -w 8 -n 10000 --watch
//	xrollctl -c xroll.yaml status
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xrollctl",
		Usage:   "xroll 滚动日志写入器命令行工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "活动日志文件路径，覆盖 xroll.path",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "诊断日志级别 (debug/info/warn/error)，覆盖 diagnostics.level",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 runApp 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
		Description: `xrollctl 直接驱动 xroll 写入器，用于在部署前验证日志目录、
轮转阈值和保留数量是否符合预期。

配置文件示例:
  xroll:
    path: /var/log/orders/app.log
    append: true
    file_size_limit_bytes: 10485760
    max_rolling_files: 5
    min_level: information
  diagnostics:
    level: info
    format: text
    file: ""
    max_size_mb: 10
    max_backups: 3`,
	}
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	return runApp(ctx, os.Args, os.Stdout, os.Stderr)
}

// runApp 执行命令并把错误映射为退出码。
func runApp(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp()
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := app.Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag）同样返回退出码 2。
		if isCLIUsageError(err) {
			fmt.Fprintf(stderr, "参数错误: %v\n", err)
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
