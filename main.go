// main.go 是 cascloc 的程序入口。
// 该文件仅负责加载 .env、注入版本号并执行 Cobra 根命令，
// 让业务逻辑保持在 cmd/internal 目录中，便于测试和扩展。
package main

import (
	"fmt"
	"io/fs"
	"os"

	"cascloc/cmd"
	"cascloc/internal/errors"

	"github.com/joho/godotenv"
)

// version 默认值为 dev。
// 发布时可以通过 -ldflags "-X main.version=vX.Y.Z" 覆盖该值。
var version = "dev"

func main() {
	// .env 可以按项目设置 CASCLOC_GLOBAL_CONFIG、CASCLOC_LOG_LEVEL，已存在的环境变量不会被覆盖。
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "cascloc warning: load .env: %v\n", err)
	}

	if err := cmd.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "cascloc error: %v\n", err)
		os.Exit(1)
	}
}
