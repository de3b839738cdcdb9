package cmd

import (
	"cascloc/internal/config"

	"github.com/spf13/cobra"
)

// configFlags 是 scan 与 language 共用的配置参数。
type configFlags struct {
	path   string
	hidden bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "config", "", "显式指定配置文件，优先级高于所有目录配置")
	cmd.Flags().BoolVar(&f.hidden, "hidden", true, "是否忽略以 . 开头的文件和目录")
}

// contexts 解析基础上下文（内置默认 + 全局配置）和覆盖上下文（--config 与命令行参数）。
func (a *app) contexts(cmd *cobra.Command, flags configFlags) (base *config.Context, override *config.Context, err error) {
	loader := config.NewLoader(a.fs, a.logger)

	globalPath, err := config.GlobalPath()
	if err != nil {
		a.logger.WithError(err).Warn("global configuration disabled")
		globalPath = ""
	}

	base, err = loader.LoadBase(globalPath)
	if err != nil {
		return nil, nil, err
	}

	if flags.path != "" {
		explicitPath, err := config.ExpandPath(flags.path)
		if err != nil {
			return nil, nil, err
		}

		override, err = loader.Load(explicitPath)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Infof("using configuration file %s", explicitPath)
	}

	if cmd.Flags().Changed("hidden") {
		override = config.Merge(override, config.WithIgnoreHidden(flags.hidden))
	}

	return base, override, nil
}
