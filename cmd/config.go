package cmd

import (
	"fmt"

	"cascloc/internal/config"
	"cascloc/internal/errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// configCmd 创建 config 子命令。
// 命令输出全局配置文件路径，文件不存在时写出内置默认配置。
func (a *app) configCmd() *cobra.Command {
	var show bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "显示全局配置文件路径，缺失时生成默认配置",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globalPath, err := config.GlobalPath()
			if err != nil {
				return err
			}

			created, err := config.EnsureGlobal(a.fs, globalPath)
			if err != nil {
				return err
			}

			status := "exists"
			if created {
				status = "created"
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", globalPath, status); err != nil {
				return errors.WithStackTrace(err)
			}

			if !show {
				return nil
			}

			content, err := afero.ReadFile(a.fs, globalPath)
			if err != nil {
				return errors.WithStackTrace(err)
			}
			_, err = cmd.OutOrStdout().Write(content)
			return errors.WithStackTrace(err)
		},
	}

	configCmd.Flags().BoolVar(&show, "show", false, "同时输出配置文件内容")
	return configCmd
}
