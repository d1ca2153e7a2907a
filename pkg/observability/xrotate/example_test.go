package xrotate_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/xroll/pkg/observability/xrotate"
)

func ExampleNewLumberjack() {
	dir, err := os.MkdirTemp("", "xrotate-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	r, err := xrotate.NewLumberjack(filepath.Join(dir, "diag.log"),
		xrotate.WithMaxSize(10),
		xrotate.WithMaxBackups(5),
		xrotate.WithMaxAge(0),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer r.Close()

	n, err := r.Write([]byte("hello\n"))
	fmt.Println(n, err)
	// Output: 6 <nil>
}
