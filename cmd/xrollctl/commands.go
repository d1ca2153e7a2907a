package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xroll/pkg/observability/xlog"
	"github.com/omeyang/xroll/pkg/observability/xroll"
	"github.com/omeyang/xroll/pkg/util/xfile"
)

// exitCodeInterrupted 被信号中断时的退出码（128 + SIGINT）。
const exitCodeInterrupted = 130

// exitError 表示需要非零退出码但已完成输出的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 参数错误，映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// isCLIUsageError 判断是否为 urfave/cli 的 flag 解析错误。
// 框架未导出这类错误类型，只能按消息识别。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "flag provided but not defined") ||
		strings.Contains(msg, "invalid value") ||
		strings.Contains(msg, "flag needs an argument")
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createWriteCommand(),
		createPumpCommand(),
		createStatusCommand(),
		createPlanCommand(),
	}
}

func createWriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "write",
		Aliases:   []string{"w"},
		Usage:     "写入一条日志记录",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"C"},
				Usage:   "日志类别",
				Value:   "xrollctl",
			},
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "日志级别 (trace/debug/information/warning/error/critical)",
				Value:   "information",
			},
			&cli.StringFlag{
				Name:    "error",
				Aliases: []string{"e"},
				Usage:   "附带的错误描述，写在消息之后",
			},
		},
		Action: cmdWrite,
	}
}

func cmdWrite(_ context.Context, cmd *cli.Command) (err error) {
	if cmd.NArg() == 0 {
		return &usageError{msg: "write 需要日志消息参数"}
	}
	level, err := xroll.ParseLevel(cmd.String("level"))
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeSession(sess, &err)

	factory, err := sess.factory()
	if err != nil {
		return err
	}
	var failure error
	if e := cmd.String("error"); e != "" {
		failure = errors.New(e)
	}
	message := strings.Join(cmd.Args().Slice(), " ")
	return factory.Writer(cmd.String("category")).Log(level, message, failure)
}

func createPumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "pump",
		Usage: "多个写入者并发写入，观察轮转与保留行为",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "并发写入者数量，每个写入者使用独立类别",
				Value:   4,
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "每个写入者写入的记录数",
				Value:   1000,
			},
			&cli.IntFlag{
				Name:    "size",
				Aliases: []string{"s"},
				Usage:   "每条消息的最小字节数",
				Value:   64,
			},
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"C"},
				Usage:   "类别前缀，写入者 i 使用 <prefix>.<i>",
				Value:   "pump",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "每个写入者两次写入之间的间隔",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "监听配置文件，变更时热更新诊断日志级别",
			},
		},
		Action: cmdPump,
	}
}

// pumpOptions pump 命令参数。
type pumpOptions struct {
	workers  int
	count    int
	size     int
	category string
	interval time.Duration
}

func (o pumpOptions) validate() error {
	if o.workers <= 0 {
		return &usageError{msg: fmt.Sprintf("workers 必须大于 0，当前 %d", o.workers)}
	}
	if o.count <= 0 {
		return &usageError{msg: fmt.Sprintf("count 必须大于 0，当前 %d", o.count)}
	}
	if o.size < 0 {
		return &usageError{msg: fmt.Sprintf("size 不能为负数，当前 %d", o.size)}
	}
	if o.interval < 0 {
		return &usageError{msg: fmt.Sprintf("interval 不能为负数，当前 %s", o.interval)}
	}
	return nil
}

func cmdPump(ctx context.Context, cmd *cli.Command) (err error) {
	opts := pumpOptions{
		workers:  cmd.Int("workers"),
		count:    cmd.Int("count"),
		size:     cmd.Int("size"),
		category: cmd.String("category"),
		interval: cmd.Duration("interval"),
	}
	if err := opts.validate(); err != nil {
		return err
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeSession(sess, &err)

	if cmd.Bool("watch") {
		stop, err := sess.watch(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if serr := stop(); serr != nil {
				sess.logger.Warn(ctx, "xrollctl: stop config watcher", xlog.Err(serr))
			}
		}()
	}

	factory, err := sess.factory()
	if err != nil {
		return err
	}

	start := time.Now()
	written, err := pump(ctx, factory, opts)
	elapsed := time.Since(start).Round(time.Millisecond)
	out := cmd.Root().Writer

	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(out, "已中断: 写入 %d 条记录，耗时 %s\n", written, elapsed)
		return &exitError{code: exitCodeInterrupted}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "已写入 %d 条记录（%d 个写入者），耗时 %s\n", written, opts.workers, elapsed)
	sess.logger.Debug(ctx, "xrollctl: pump finished", xlog.Path(factory.Path()), xlog.Count(written))
	return nil
}

// pump 启动 opts.workers 个写入者，任一写入失败或 ctx 取消时停止全部写入者。
func pump(ctx context.Context, factory *xroll.Factory, opts pumpOptions) (int64, error) {
	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for i := range opts.workers {
		w := factory.Writer(fmt.Sprintf("%s.%d", opts.category, i))
		g.Go(func() error {
			for seq := range opts.count {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := w.Log(xroll.LevelInformation, pumpMessage(i, seq, opts.size), nil); err != nil {
					return err
				}
				written.Add(1)
				if opts.interval > 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					case <-time.After(opts.interval):
					}
				}
			}
			return nil
		})
	}
	err := g.Wait()
	return written.Load(), err
}

// pumpMessage 生成至少 size 字节的消息，前缀标识写入者和序号便于核对顺序。
func pumpMessage(worker, seq, size int) string {
	msg := fmt.Sprintf("worker=%d seq=%d", worker, seq)
	if pad := size - len(msg) - 1; pad > 0 {
		msg += " " + strings.Repeat("x", pad)
	}
	return msg
}

func createStatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "查看活动文件与归档列表",
		Action: cmdStatus,
	}
}

// fileStatus 活动文件与归档的快照。
type fileStatus struct {
	path     string
	exists   bool
	size     int64
	archives []xroll.Archive
}

// inspect 读取 path 的活动文件大小和归档列表。
func inspect(path string) (fileStatus, error) {
	resolved, err := xfile.ResolvePath(path)
	if err != nil {
		return fileStatus{}, err
	}
	st := fileStatus{path: resolved}
	info, err := os.Stat(resolved)
	switch {
	case err == nil:
		st.exists = true
		st.size = info.Size()
	case !errors.Is(err, fs.ErrNotExist):
		return st, err
	}
	st.archives, err = xroll.ListArchives(resolved)
	if err != nil {
		return st, err
	}
	return st, nil
}

func cmdStatus(_ context.Context, cmd *cli.Command) (err error) {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeSession(sess, &err)

	st, err := inspect(sess.settings.Roll.Path)
	if err != nil {
		return err
	}
	return printStatus(cmd.Root().Writer, sess.settings.Roll, st)
}

func printStatus(out io.Writer, cfg xroll.Config, st fileStatus) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "路径:\t%s\n", st.path)
	if st.exists {
		fmt.Fprintf(tw, "活动文件:\t%d 字节\n", st.size)
	} else {
		fmt.Fprintf(tw, "活动文件:\t不存在\n")
	}
	if cfg.RotationEnabled() {
		fmt.Fprintf(tw, "轮转:\t上限 %d 字节，保留 %d 个文件\n", cfg.FileSizeLimitBytes, cfg.MaxRollingFiles)
	} else {
		fmt.Fprintf(tw, "轮转:\t未启用\n")
	}
	fmt.Fprintf(tw, "归档:\t%d\n", len(st.archives))
	for _, a := range st.archives {
		size := "-"
		if info, err := os.Stat(a.Path); err == nil {
			size = fmt.Sprintf("%d 字节", info.Size())
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", a.Name, size, a.Created.Format(xroll.TimeLayout))
	}
	return tw.Flush()
}

func createPlanCommand() *cli.Command {
	return &cli.Command{
		Name:   "plan",
		Usage:  "预览下一次写入是否轮转以及会删除哪些归档",
		Action: cmdPlan,
	}
}

// rotationPlan 下一次写入前的轮转预览。
type rotationPlan struct {
	rotate   bool
	truncate bool
	prune    []xroll.Archive
	archive  string
}

// planFor 根据当前文件状态计算轮转预览。now 决定新归档名中的时间戳。
func planFor(cfg xroll.Config, st fileStatus, now time.Time) rotationPlan {
	var p rotationPlan
	if !xroll.ShouldRotate(st.size, st.exists, cfg) {
		return p
	}
	p.rotate = true
	p.prune = xroll.PlanRetention(st.archives, cfg.MaxRollingFiles)
	if cfg.MaxRollingFiles == 1 {
		p.truncate = true
		return p
	}
	if !cfg.LocalTime {
		now = now.UTC()
	}
	_, stem, ext := xfile.SplitName(st.path)
	p.archive = xroll.ArchiveName(stem, ext, now, 0)
	return p
}

func cmdPlan(_ context.Context, cmd *cli.Command) (err error) {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeSession(sess, &err)

	cfg := sess.settings.Roll
	st, err := inspect(cfg.Path)
	if err != nil {
		return err
	}
	printPlan(cmd.Root().Writer, planFor(cfg, st, time.Now()))
	return nil
}

func printPlan(out io.Writer, p rotationPlan) {
	if !p.rotate {
		fmt.Fprintln(out, "下一次写入不会轮转")
		return
	}
	if p.truncate {
		fmt.Fprintln(out, "下一次写入前清空活动文件（max_rolling_files=1，不保留归档）")
	} else {
		fmt.Fprintln(out, "下一次写入前轮转")
	}
	for _, a := range p.prune {
		fmt.Fprintf(out, "  删除 %s\n", a.Name)
	}
	if p.archive != "" {
		fmt.Fprintf(out, "  归档为 %s\n", p.archive)
	}
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(exitCodeInterrupted)
	}()
}
