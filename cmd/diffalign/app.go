package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/johnstarich/go/diffalign"
	"github.com/johnstarich/go/diffalign/internal/fspath"
	"github.com/johnstarich/go/diffalign/internal/report"
	"github.com/johnstarich/go/diffalign/internal/vcs"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "diffalign"

// Environment variables used as flag defaults
const (
	envRepo   = "DIFFALIGN_REPO"
	envFormat = "DIFFALIGN_FORMAT"
)

const defaultMaxMatchLines = 20000

func run(args []string, inReader io.Reader, outWriter, errWriter io.Writer) error {
	return newApp(inReader, outWriter, errWriter).Run(args)
}

// App runs diffalign commands with injectable dependencies
type App struct {
	errWriter io.Writer
	fs        hackpadfs.FS
	getEnv    func(string) string
	inReader  io.Reader
	openRepo  func(path string, config vcs.Config) (*vcs.Repo, error)
	outWriter io.Writer
}

func newApp(inReader io.Reader, outWriter, errWriter io.Writer) App {
	return App{
		errWriter: errWriter,
		fs:        osfs.NewFS(),
		getEnv:    os.Getenv,
		inReader:  inReader,
		openRepo:  vcs.Open,
		outWriter: outWriter,
	}
}

// Run parses args and runs the matching command
func (a App) Run(args []string) error {
	outputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: terminal, markdown, or json. Env: " + envFormat,
			Value:   a.getEnvDefault(envFormat, report.FormatColorTerminal.String()),
		},
		&cli.BoolFlag{
			Name:    "side-by-side",
			Aliases: []string{"s"},
			Usage:   "Show each file's lines side-by-side, joined by connectors.",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "Max width of each side in side-by-side output.",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "Alignment engine: 'git' uses git's hunks when available, 'match' matches file content.",
			Value: diffalign.TrustHunks.String(),
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "Max number of files to align in parallel. Defaults to the number of CPUs.",
		},
		&cli.IntFlag{
			Name:  "max-match-lines",
			Usage: "Files with more lines than this on both sides are marked entirely changed instead of matched. 0 is unlimited.",
			Value: defaultMaxMatchLines,
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log debug information to stderr.",
		},
	}
	repoFlag := &cli.StringFlag{
		Name:  "repo",
		Usage: "Path inside the git repository. Env: " + envRepo,
		Value: a.getEnvDefault(envRepo, "."),
	}

	cliApp := &cli.App{
		Name:  appName,
		Usage: "Align the before and after versions of changed files for side-by-side review",
		Commands: []*cli.Command{
			{
				Name:      "diff",
				Usage:     "Align changes between two git refs. '@' is the working tree.",
				ArgsUsage: "[PATH...]",
				Action:    a.diff,
				Flags: append([]cli.Flag{
					repoFlag,
					&cli.StringFlag{
						Name:    "before",
						Aliases: []string{"b"},
						Value:   "HEAD",
					},
					&cli.StringFlag{
						Name:    "after",
						Aliases: []string{"a"},
						Value:   vcs.WorkingTree,
					},
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "Re-run the diff when files in the repository change. Requires '--after @'.",
					},
				}, outputFlags...),
			},
			{
				Name:   "refs",
				Usage:  "List refs which can be passed to 'diff'.",
				Before: a.noArgs,
				Action: a.refs,
				Flags: []cli.Flag{
					repoFlag,
				},
			},
			{
				Name:   "patch",
				Usage:  "Align a unified diff against the changed files on disk.",
				Before: a.noArgs,
				Action: a.patch,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "diff-file",
						Usage:    "Path to a diff file. Use '-' for stdin.",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "base-dir",
						Usage: "Path to the diff's base directory.",
						Value: ".",
					},
				}, outputFlags...),
			},
			{
				Name:      "files",
				Usage:     "Align two files by matching their content.",
				ArgsUsage: "BEFORE AFTER",
				Action:    a.files,
				Flags:     outputFlags,
			},
		},
		HideHelpCommand: true,
		ErrWriter:       a.errWriter,
		ExitErrHandler:  func(*cli.Context, error) {},
		Reader:          a.inReader,
		Writer:          a.outWriter,
	}
	return cliApp.Run(args)
}

func (a App) getEnvDefault(key, defaultValue string) string {
	if value := a.getEnv(key); value != "" {
		return value
	}
	return defaultValue
}

func (a App) noArgs(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unexpected arguments used without flags: %s", strings.Join(c.Args().Slice(), " "))
	}
	return nil
}

// fromOSPath attempts to derive the FS path from an OS-like path
func (a App) fromOSPath(path string) (string, error) {
	fs, ok := a.fs.(fspath.OSPathFS)
	if ok {
		return fspath.FromOS(fs, path)
	}
	return path, nil
}

func (a App) logger(c *cli.Context) *zap.Logger {
	level := zapcore.WarnLevel
	if c.Bool("verbose") {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(a.errWriter),
		level,
	)
	return zap.New(core).Named(appName)
}

// output contains the parsed flags shared by every aligning command
type output struct {
	report  report.Options
	options diffalign.Options
}

func (a App) parseOutput(c *cli.Context) (output, error) {
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return output{}, err
	}
	strategy, err := diffalign.ParseStrategy(c.String("engine"))
	if err != nil {
		return output{}, err
	}
	return output{
		report: report.Options{
			Format:     format,
			SideBySide: c.Bool("side-by-side"),
			Width:      c.Int("width"),
		},
		options: diffalign.Options{
			Logger:        a.logger(c),
			Concurrency:   c.Int("jobs"),
			MaxMatchLines: c.Int("max-match-lines"),
			Strategy:      strategy,
		},
	}, nil
}

func (a App) writeReport(c *cli.Context, out output, inputs []diffalign.Input) error {
	diffs, err := diffalign.AlignAll(c.Context, inputs, out.options)
	if err != nil {
		return err
	}
	return a.writeDiffs(diffs, out)
}
