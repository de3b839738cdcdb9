package cmd

import (
	"cascloc/internal/config"
	"cascloc/internal/report"

	"github.com/spf13/cobra"
)

// languageCmd 创建 language 子命令。
// 命令展示内置默认值、全局配置和 --config 叠加后生效的语言表。
func (a *app) languageCmd() *cobra.Command {
	var flags configFlags

	languageCmd := &cobra.Command{
		Use:   "language",
		Short: "展示当前生效的语言、后缀及注释记号",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, override, err := a.contexts(cmd, flags)
			if err != nil {
				return err
			}

			effective := config.Merge(base, override)
			return report.PrintLanguages(cmd.OutOrStdout(), effective.Catalog().Languages())
		},
	}

	flags.register(languageCmd)
	return languageCmd
}
