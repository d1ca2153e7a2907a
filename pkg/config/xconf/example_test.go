package xconf_test

import (
	"fmt"

	"github.com/omeyang/xroll/pkg/config/xconf"
)

func ExampleNewFromBytes() {
	data := []byte(`
xroll:
  path: logs/app.log
  max_rolling_files: 3
`)
	cfg, err := xconf.NewFromBytes(data, xconf.FormatYAML)
	if err != nil {
		fmt.Println(err)
		return
	}

	var section struct {
		Path            string `koanf:"path"`
		MaxRollingFiles int    `koanf:"max_rolling_files"`
	}
	if err := cfg.Unmarshal("xroll", &section); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(section.Path, section.MaxRollingFiles)
	// Output: logs/app.log 3
}
