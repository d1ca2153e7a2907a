package xroll_test

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/omeyang/xroll/pkg/observability/xroll"
)

func ExampleFormat() {
	r := xroll.Record{
		Time:     time.Date(2024, 5, 1, 12, 30, 45, 123_000_000, time.UTC),
		Level:    xroll.LevelError,
		Category: "orders",
		Message:  "payment declined",
		Failure:  "card expired",
	}
	fmt.Println(xroll.Format(r))
	// Output:
	// 2024-05-01 12:30:45.123 [Error] orders: payment declined
	// card expired
}

func ExamplePlanRetention() {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var archives []xroll.Archive
	for i := 0; i < 4; i++ {
		t := base.Add(time.Duration(i) * time.Hour)
		archives = append(archives, xroll.Archive{Name: xroll.ArchiveName("app", ".log", t, 0), Created: t})
	}

	for _, a := range xroll.PlanRetention(archives, 3) {
		fmt.Println(a.Name)
	}
	// Output:
	// app-20240501000000.log
	// app-20240501010000.log
	// app-20240501020000.log
}

func ExampleNewFactory() {
	dir, err := os.MkdirTemp("", "xroll-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	cfg := xroll.DefaultConfig(filepath.Join(dir, "app.log"))
	cfg.FileSizeLimitBytes = 10 << 20
	cfg.MaxRollingFiles = 5

	factory, err := xroll.NewFactory(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer factory.Close()

	w := factory.Writer("orders")
	if w.Enabled(xroll.LevelInformation) {
		if err := w.Log(xroll.LevelInformation, "order created", nil); err != nil {
			fmt.Println(err)
		}
	}

	slog.New(xroll.NewHandler(factory.Writer("http"))).Warn("slow request", "path", "/orders")

	fmt.Println(factory.Categories())
	// Output: [http orders]
}
