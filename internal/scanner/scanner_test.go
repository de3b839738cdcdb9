package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cascloc/internal/config"
	"cascloc/internal/errors"
	"cascloc/internal/log"
	"cascloc/internal/model"
	"cascloc/internal/scanner"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplesDir = "../../testdata/samples"

// writeTree 在内存文件系统中按路径创建文件。
func writeTree(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()

	for name, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0o755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
}

func newMemService(t *testing.T, files map[string]string, opts scanner.Options) *scanner.Service {
	t.Helper()

	fs := afero.NewMemMapFs()
	writeTree(t, fs, files)

	opts.Fs = fs
	opts.Logger = log.Discard()
	return scanner.NewService(opts)
}

func record(language string, files, total, empty, code, comment int64) model.LineRecord {
	return model.LineRecord{
		Language: language,
		Files:    files,
		Total:    total,
		Empty:    empty,
		Code:     code,
		Comment:  comment,
	}
}

func TestAggregateSamples(t *testing.T) {
	t.Parallel()

	service := scanner.NewService(scanner.Options{Workers: 4})

	report, err := service.Aggregate(context.Background(), samplesDir)
	require.NoError(t, err)
	require.NoError(t, report.Err())

	assert.Equal(t, record(model.TotalsKey, 6, 84, 18, 32, 30), report.Totals())
	assert.Equal(t, []model.LineRecord{
		record("C/C++", 2, 32, 7, 12, 13),
		record("Java", 1, 23, 4, 10, 9),
		record("Lua", 1, 13, 3, 4, 6),
		record(model.PlainText, 1, 5, 1, 0, 0),
		record("Python", 1, 11, 3, 6, 2),
	}, report.Sorted())
	assert.Equal(t, int64(6), report.Stats.Discovered)
	assert.Empty(t, report.Files)
}

func TestAggregateIsDeterministicAcrossWorkers(t *testing.T) {
	t.Parallel()

	serial, err := scanner.NewService(scanner.Options{Workers: 1, KeepFiles: true}).Aggregate(context.Background(), samplesDir)
	require.NoError(t, err)

	parallel, err := scanner.NewService(scanner.Options{Workers: 16, KeepFiles: true}).Aggregate(context.Background(), samplesDir)
	require.NoError(t, err)

	assert.Equal(t, serial.Languages, parallel.Languages)
	assert.Equal(t, serial.Files, parallel.Files)
}

func TestAggregateEmptyDirectory(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0o755))
	service := scanner.NewService(scanner.Options{Fs: fs})

	report, err := service.Aggregate(context.Background(), "/empty")
	require.NoError(t, err)

	require.Contains(t, report.Languages, model.TotalsKey)
	assert.Equal(t, record(model.TotalsKey, 0, 0, 0, 0, 0), report.Totals())
	assert.Empty(t, report.Sorted())
}

func TestAggregateCascadingScope(t *testing.T) {
	t.Parallel()

	service := newMemService(t, map[string]string{
		"/repo/a/.cascloc.yml": "languages:\n  - name: Foo\n    extensions: [foo]\n    lineComment: \"#\"\nignore:\n  - gen/\n",
		"/repo/a/x.foo":        "# note\nvalue\n",
		"/repo/a/gen/skip.go":  "package gen\n",
		"/repo/a/sub/y.foo":    "value\n",
		"/repo/b/z.foo":        "# not a comment here\n",
		"/repo/b/gen/keep.go":  "package gen\n",
	}, scanner.Options{KeepFiles: true})

	report, err := service.Aggregate(context.Background(), "/repo")
	require.NoError(t, err)

	assert.Equal(t, record("Foo", 2, 3, 0, 2, 1), report.Languages["Foo"])
	assert.Equal(t, record(model.PlainText, 1, 1, 0, 0, 0), report.Languages[model.PlainText])
	assert.Equal(t, record("Go", 1, 1, 0, 1, 0), report.Languages["Go"])

	paths := make([]string, 0, len(report.Files))
	for _, file := range report.Files {
		paths = append(paths, file.Path)
	}
	assert.Equal(t, []string{"a/sub/y.foo", "a/x.foo", "b/gen/keep.go", "b/z.foo"}, paths)
	assert.Equal(t, int64(1), report.Stats.Configs)
	assert.Equal(t, int64(1), report.Stats.Ignored)
}

func TestAggregateIgnoreNegation(t *testing.T) {
	t.Parallel()

	service := newMemService(t, map[string]string{
		"/repo/.cascloc.yml":   "ignore:\n  - build/\n  - \"!build/keep.txt\"\n",
		"/repo/main.go":        "package main\n",
		"/repo/build/drop.go":  "package build\n",
		"/repo/build/keep.txt": "kept\n",
	}, scanner.Options{KeepFiles: true})

	report, err := service.Aggregate(context.Background(), "/repo")
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, "build/keep.txt", report.Files[0].Path)
	assert.Equal(t, "main.go", report.Files[1].Path)
	assert.Equal(t, int64(2), report.Totals().Files)
}

func TestAggregateHiddenAndReserved(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/repo/.cascloc.yml":      "ignore: []\n",
		"/repo/.hidden.go":        "package hidden\n",
		"/repo/.git/config":       "[core]\n",
		"/repo/visible.go":        "package visible\n",
		"/repo/vendor/dep/d.go":   "package dep\n",
		"/repo/node_modules/m.js": "module.exports = 1\n",
	}

	report, err := newMemService(t, files, scanner.Options{}).Aggregate(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Totals().Files)
	assert.Equal(t, int64(4), report.Stats.Ignored)

	report, err = newMemService(t, files, scanner.Options{
		Override: config.WithIgnoreHidden(false),
	}).Aggregate(context.Background(), "/repo")
	require.NoError(t, err)

	// 保留文件名在任何配置下都不参与统计。
	assert.Equal(t, int64(3), report.Totals().Files)
	assert.Equal(t, int64(2), report.Languages["Go"].Files)
}

func TestAggregateOverrideWinsOverNestedConfig(t *testing.T) {
	t.Parallel()

	override, err := config.FromSource(map[string]any{
		"languages": []any{map[string]any{
			"name":        "Lua",
			"extensions":  []any{"lua"},
			"lineComment": "//",
		}},
	}, "override")
	require.NoError(t, err)

	service := newMemService(t, map[string]string{
		"/repo/lib/.cascloc.yml": "languages:\n  - name: Lua\n    extensions: [lua]\n    lineComment: \"--\"\n",
		"/repo/lib/a.lua":        "-- comment\n// comment\n",
	}, scanner.Options{Override: override})

	report, err := service.Aggregate(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, record("Lua", 1, 2, 0, 1, 1), report.Languages["Lua"])
}

// brokenFs 对指定路径的 Open 返回权限错误，用于模拟不可读文件。
type brokenFs struct {
	afero.Fs
	broken map[string]bool
}

func (fs brokenFs) Open(name string) (afero.File, error) {
	if fs.broken[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return fs.Fs.Open(name)
}

func TestAggregateRecordsFileFailures(t *testing.T) {
	t.Parallel()

	mem := afero.NewMemMapFs()
	writeTree(t, mem, map[string]string{
		"/repo/ok.go":        "package ok\n",
		"/repo/locked.go":    "package locked\n",
		"/repo/private/p.go": "package private\n",
	})

	service := scanner.NewService(scanner.Options{
		Fs:     brokenFs{Fs: mem, broken: map[string]bool{"/repo/locked.go": true, "/repo/private": true}},
		Logger: log.Discard(),
	})

	report, err := service.Aggregate(context.Background(), "/repo")
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.Totals().Files)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, "locked.go", report.Failures[0].Path)
	assert.Equal(t, "private", report.Failures[1].Path)

	failures := report.Err()
	require.Error(t, failures)
	assert.True(t, errors.Is(failures, os.ErrPermission))

	var ioErr scanner.FileIOError
	assert.True(t, errors.As(failures, &ioErr))
}

func TestAggregateNegationDoesNotOpenUnrelatedDirectories(t *testing.T) {
	t.Parallel()

	mem := afero.NewMemMapFs()
	writeTree(t, mem, map[string]string{
		"/repo/.cascloc.yml":        "ignore:\n  - build/\n  - \"!build/keep.txt\"\n",
		"/repo/build/keep.txt":      "kept\n",
		"/repo/node_modules/pkg.js": "module.exports = 1\n",
		"/repo/vendor/dep/d.go":     "package dep\n",
	})

	service := scanner.NewService(scanner.Options{
		Fs:        brokenFs{Fs: mem, broken: map[string]bool{"/repo/node_modules": true, "/repo/vendor": true}},
		Logger:    log.Discard(),
		KeepFiles: true,
	})

	report, err := service.Aggregate(context.Background(), "/repo")
	require.NoError(t, err)

	assert.Empty(t, report.Failures)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "build/keep.txt", report.Files[0].Path)
	assert.Equal(t, int64(2), report.Stats.Ignored)
}

func TestAggregateConfigErrorIsFatal(t *testing.T) {
	t.Parallel()

	service := newMemService(t, map[string]string{
		"/repo/sub/.cascloc.yml": "languages:\n  - extensions: [x]\n",
		"/repo/sub/a.x":          "a\n",
	}, scanner.Options{})

	_, err := service.Aggregate(context.Background(), "/repo")
	require.Error(t, err)

	var configErr config.ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "/repo/sub/.cascloc.yml", configErr.Path)
}

func TestPathErrors(t *testing.T) {
	t.Parallel()

	service := newMemService(t, map[string]string{"/repo/a.go": "package a\n"}, scanner.Options{})

	testCases := []struct {
		name string
		run  func() error
	}{
		{"missing root", func() error { _, err := service.Aggregate(context.Background(), "/missing"); return err }},
		{"root is a file", func() error { _, err := service.Aggregate(context.Background(), "/repo/a.go"); return err }},
		{"count a directory", func() error { _, err := service.CountFile(context.Background(), "/repo"); return err }},
		{"empty path", func() error { _, err := service.ScanPath(context.Background(), "  "); return err }},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.run()
			var pathErr scanner.PathError
			assert.True(t, errors.As(err, &pathErr), "unexpected error %v", err)
		})
	}
}

func TestScanPathSingleFile(t *testing.T) {
	t.Parallel()

	service := scanner.NewService(scanner.Options{})

	report, err := service.ScanPath(context.Background(), filepath.Join(samplesDir, "Sample.java"))
	require.NoError(t, err)

	assert.Equal(t, record("Java", 1, 23, 4, 10, 9), report.Languages["Java"])
	assert.Equal(t, record(model.TotalsKey, 1, 23, 4, 10, 9), report.Totals())
}

func TestCountFileUsesLocalConfig(t *testing.T) {
	t.Parallel()

	service := newMemService(t, map[string]string{
		"/repo/.cascloc.yml": "languages:\n  - name: Foo\n    extensions: [foo]\n    lineComment: \";\"\n",
		"/repo/a.foo":        "; c\nx\n\n",
	}, scanner.Options{})

	report, err := service.CountFile(context.Background(), "/repo/a.foo")
	require.NoError(t, err)
	assert.Equal(t, record("Foo", 1, 3, 1, 1, 1), report.Languages["Foo"])
}

func TestAggregateCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.NewService(scanner.Options{Workers: 1}).Aggregate(ctx, samplesDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
