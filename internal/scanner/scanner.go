// Package scanner 提供目录聚合流水线。
// 该层负责遍历、层叠配置发现、忽略判定、并发分类和结果合并，不负责单行分类细节。
//
// 一次扫描分为四个阶段：遍历（单协程、顺序敏感）→ 分发（有界并发）→ 合并（互斥锁）→ 完成。
package scanner

import (
	"context"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"cascloc/internal/config"
	"cascloc/internal/counter"
	"cascloc/internal/errors"
	"cascloc/internal/fswalk"
	"cascloc/internal/ignore"
	"cascloc/internal/languages"
	"cascloc/internal/log"
	"cascloc/internal/model"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Options 是扫描服务的可配置项，零值字段会被填充为默认值。
type Options struct {
	// Fs 是被扫描的文件系统，默认为操作系统文件系统。
	Fs afero.Fs
	// Logger 默认丢弃全部日志。
	Logger logrus.FieldLogger
	// Workers 是同时运行的分类任务上限，默认为 CPU 核数。
	Workers int
	// Base 是遍历根目录之前生效的配置，默认为内置配置。
	Base *config.Context
	// Override 是显式指定的配置（命令行参数、--config），在每一层层叠之后重新叠加，优先级最高。
	Override *config.Context
	// KeepFiles 为 true 时在报告中保留逐文件明细。
	KeepFiles bool
}

// Service 是扫描服务对象，可以重复使用；配置文件解析结果在多次扫描之间缓存。
type Service struct {
	opts   Options
	loader *config.Loader
}

// task 表示一个待分类文件。语言在遍历阶段按该文件所在子树的配置解析完成。
type task struct {
	path string
	rel  string
	lang *languages.Language
}

// NewService 创建扫描服务。
func NewService(opts Options) *Service {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Base == nil {
		opts.Base = config.Default()
	}

	return &Service{
		opts:   opts,
		loader: config.NewLoader(opts.Fs, opts.Logger),
	}
}

// ScanPath 扫描目录或单文件。
func (s *Service) ScanPath(ctx context.Context, target string) (model.Report, error) {
	absolute, entry, err := s.resolve(target)
	if err != nil {
		return model.Report{}, err
	}

	if entry.IsDir {
		return s.aggregate(ctx, absolute)
	}
	return s.countFile(ctx, absolute)
}

// Aggregate 统计目录下所有未被忽略的普通文件。根路径不是目录时返回 PathError。
func (s *Service) Aggregate(ctx context.Context, root string) (model.Report, error) {
	absolute, entry, err := s.resolve(root)
	if err != nil {
		return model.Report{}, err
	}
	if !entry.IsDir {
		return model.Report{}, PathError{Path: absolute, Reason: "not a directory"}
	}

	return s.aggregate(ctx, absolute)
}

// CountFile 统计单个文件。文件所在目录的配置文件同样生效。
func (s *Service) CountFile(ctx context.Context, filePath string) (model.Report, error) {
	absolute, entry, err := s.resolve(filePath)
	if err != nil {
		return model.Report{}, err
	}
	if entry.IsDir {
		return model.Report{}, PathError{Path: absolute, Reason: "is a directory"}
	}

	return s.countFile(ctx, absolute)
}

func (s *Service) resolve(target string) (string, fswalk.Entry, error) {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return "", fswalk.Entry{}, PathError{Path: target, Reason: "path is empty"}
	}

	absolute, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fswalk.Entry{}, PathError{Path: trimmed, Reason: "resolve absolute path", Err: err}
	}

	entry, err := fswalk.Stat(s.opts.Fs, absolute)
	if err != nil {
		return "", fswalk.Entry{}, PathError{Path: absolute, Reason: "stat", Err: err}
	}

	return absolute, entry, nil
}

func (s *Service) aggregate(ctx context.Context, root string) (model.Report, error) {
	report := model.NewReport(root)

	walker := &traversal{service: s}
	if err := walker.visitDir(root, "", config.Merge(s.opts.Base, s.opts.Override)); err != nil {
		return model.Report{}, err
	}

	report.Stats = walker.stats
	for _, failure := range walker.failures {
		report.AddFailure(failure.Path, failure)
	}

	s.opts.Logger.WithFields(logrus.Fields{
		"files":   walker.stats.Discovered,
		"ignored": walker.stats.Ignored,
		"configs": walker.stats.Configs,
	}).Debugf("traversal of %s finished", root)

	if err := s.dispatch(ctx, walker.tasks, &report); err != nil {
		return model.Report{}, err
	}

	return report, nil
}

func (s *Service) countFile(ctx context.Context, filePath string) (model.Report, error) {
	effective, err := s.contextFor(filepath.Dir(filePath), config.Merge(s.opts.Base, s.opts.Override), nil)
	if err != nil {
		return model.Report{}, err
	}

	lang, _ := effective.Catalog().ForFile(filePath)

	report := model.NewReport(filePath)
	report.Stats.Discovered = 1

	item := task{path: filePath, rel: filepath.Base(filePath), lang: lang}
	if err := s.dispatch(ctx, []task{item}, &report); err != nil {
		return model.Report{}, err
	}

	return report, nil
}

// contextFor 在 dir 下存在配置文件时返回叠加后的新上下文，否则原样返回 parent。
// stats 非 nil 时累计加载的配置文件数量。
func (s *Service) contextFor(dir string, parent *config.Context, stats *model.Stats) (*config.Context, error) {
	local, found, err := s.loader.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if !found {
		return parent, nil
	}

	if stats != nil {
		stats.Configs++
	}
	s.opts.Logger.Infof("loading configuration file from %s", filepath.Join(dir, config.FileName))

	return config.Merge(config.Merge(parent, local), s.opts.Override), nil
}

// traversal 保存一次遍历的输出。遍历只在单个协程中执行，因此不需要加锁。
type traversal struct {
	service  *Service
	tasks    []task
	failures []FileIOError
	stats    model.Stats
}

// visitDir 先解析目录自身的配置，再按名称顺序处理子条目。
// effective 只向下传递给当前目录的后代，兄弟目录始终使用父目录的上下文。
func (t *traversal) visitDir(dir string, rel string, parent *config.Context) error {
	logger := t.service.opts.Logger

	effective, err := t.service.contextFor(dir, parent, &t.stats)
	if err != nil {
		return err
	}

	entries, err := fswalk.ReadDir(t.service.opts.Fs, dir)
	if err != nil {
		if rel == "" {
			return PathError{Path: dir, Reason: "read directory", Err: err}
		}
		logger.WithError(err).Warnf("skipping unreadable directory %s", rel)
		t.failures = append(t.failures, FileIOError{Path: rel, Err: err})
		return nil
	}

	resolver := ignore.NewResolver(effective)

	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name)

		decision := resolver.Decide(childRel, entry.IsDir)
		if decision == ignore.Reserved {
			continue
		}

		// 被规则排除的目录只有在取反规则可能命中其中条目时才深入，其中的文件逐个判定。
		descend := decision == ignore.ByRule && entry.IsDir && effective.Reincludes(childRel)
		if decision != ignore.Included && !descend {
			t.stats.Ignored++
			logger.Debugf("ignoring %s (%s)", childRel, decision)
			continue
		}

		if entry.IsDir {
			if err := t.visitDir(entry.Path, childRel, effective); err != nil {
				return err
			}
			continue
		}

		if !entry.IsRegular {
			t.stats.Ignored++
			logger.Debugf("ignoring %s (not a regular file)", childRel)
			continue
		}

		lang, _ := effective.Catalog().ForFile(entry.Name)
		t.tasks = append(t.tasks, task{path: entry.Path, rel: childRel, lang: lang})
		t.stats.Discovered++
	}

	return nil
}

// dispatch 并发分类全部文件，并把结果合并到报告中。
// 单文件读取失败不会中断其他任务；只有 ctx 被取消时才返回错误。
func (s *Service) dispatch(ctx context.Context, tasks []task, report *model.Report) error {
	var (
		mu         sync.Mutex
		totals     = model.LineRecord{Language: model.TotalsKey}
		classified = xsync.NewCounter()
		failed     = xsync.NewCounter()
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.Workers)

	for _, item := range tasks {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return errors.WithStackTrace(err)
			}

			record, err := counter.CountFile(s.opts.Fs, item.path, item.lang)
			if err != nil {
				failed.Inc()
				s.opts.Logger.WithError(err).Warnf("failed to count %s", item.rel)

				mu.Lock()
				report.AddFailure(item.rel, FileIOError{Path: item.rel, Err: err})
				mu.Unlock()
				return nil
			}
			classified.Inc()

			mu.Lock()
			defer mu.Unlock()

			report.Languages[record.Language] = report.Languages[record.Language].Add(record)
			totals = totals.Add(record)
			if s.opts.KeepFiles {
				report.Files = append(report.Files, model.FileRecord{Path: item.rel, Record: record})
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	report.Languages[model.TotalsKey] = totals
	report.Finalize()

	s.opts.Logger.WithFields(logrus.Fields{
		"classified": classified.Value(),
		"failed":     failed.Value(),
	}).Debug("classification finished")

	return nil
}
