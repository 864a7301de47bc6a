package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"schemaforge/internal/config"
	"schemaforge/internal/emit"
	"schemaforge/internal/generator"
	"schemaforge/internal/logging"
	"schemaforge/internal/parser"
	"schemaforge/internal/schema"
	"schemaforge/internal/templates"
	"schemaforge/internal/watch"
)

var errUsage = errors.New("usage")

type cli struct {
	stdin          io.Reader
	stdout, stderr io.Writer
}

// session: разобранные флаги, конфиг и логгер одной команды.
type session struct {
	fs  *pflag.FlagSet
	cfg *config.Config
	log *zap.Logger
}

func (c *cli) flags(name string, extra func(fs *pflag.FlagSet)) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	config.RegisterFlags(fs)
	if extra != nil {
		extra(fs)
	}
	return fs
}

func (c *cli) open(fs *pflag.FlagSet, args []string) (*session, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, pflag.ErrHelp
		}
		return nil, errUsage
	}
	cfg, err := config.Load("", fs)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &session{fs: fs, cfg: cfg, log: logging.New(cfg.Logger.Level, cfg.Logger.Format)}, nil
}

func inputFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "", "Input file, directory or '-' for stdin")
	fs.String("format", string(parser.FormatAuto), "Input format (auto|json|yaml|typescript|mongoose)")
}

func (s *session) str(name string) string {
	v, _ := s.fs.GetString(name)
	return v
}

// load читает один источник: файл или stdin.
func (c *cli) load(s *session) (parser.Source, error) {
	input := s.str("input")
	format, err := parser.ParseFormat(s.str("format"))
	if err != nil {
		return parser.Source{}, err
	}
	if input == "" {
		fmt.Fprintln(c.stderr, "missing -i/--input")
		return parser.Source{}, errUsage
	}
	if input != "-" {
		return parser.LoadFile(input, format)
	}
	b, err := io.ReadAll(c.stdin)
	if err != nil {
		return parser.Source{}, fmt.Errorf("read stdin: %w", err)
	}
	sch, used, err := parser.Parse(string(b), format)
	if err != nil {
		return parser.Source{}, err
	}
	return parser.Source{Path: "-", Format: used, Schema: sch}, nil
}

// loadAll: файл, stdin или каталог целиком.
func (c *cli) loadAll(s *session) ([]parser.Source, error) {
	input := s.str("input")
	if input != "" && input != "-" {
		if st, err := os.Stat(input); err == nil && st.IsDir() {
			return parser.LoadDir(input)
		}
	}
	src, err := c.load(s)
	if err != nil {
		return nil, err
	}
	return []parser.Source{src}, nil
}

func reportIssues(log *zap.Logger, src parser.Source) {
	for _, is := range schema.Lint(src.Schema) {
		log.Warn("schema lint",
			zap.String("file", src.Path),
			zap.String("path", is.Path),
			zap.String("code", is.Code),
			zap.String("message", is.Message),
		)
	}
}

func (c *cli) generate(args []string) error {
	fs := c.flags("generate", func(fs *pflag.FlagSet) {
		inputFlags(fs)
		fs.StringP("out", "o", "", "Output directory (stdout when empty)")
	})
	s, err := c.open(fs, args)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	sources, err := c.loadAll(s)
	if err != nil {
		return err
	}
	opts := s.cfg.GenerateOptions()
	out := s.str("out")

	for _, src := range sources {
		reportIssues(s.log, src)
		code := generator.Generate(src.Schema, opts)
		if out == "" {
			c.print(src.Schema.Name, opts.Family, code)
			continue
		}
		written, err := emit.Write(out, src.Schema.Name, opts.Family, code)
		if err != nil {
			return err
		}
		s.log.Info("generated",
			zap.String("schema", src.Schema.Name),
			zap.String("source", src.Path),
			zap.Strings("files", written),
		)
	}
	return nil
}

// print выводит три артефакта подряд с именем файла в заголовке.
func (c *cli) print(name string, family generator.Family, code schema.GeneratedCode) {
	files := emit.Files(name, family)
	bodies := [3]string{code.Validator, code.Interface, code.Model}
	for i, f := range files {
		prefix := "//"
		if strings.HasSuffix(f, ".sql") {
			prefix = "--"
		}
		fmt.Fprintf(c.stdout, "%s %s\n%s\n\n", prefix, f, bodies[i])
	}
}

func (c *cli) parse(args []string) error {
	fs := c.flags("parse", func(fs *pflag.FlagSet) {
		inputFlags(fs)
		fs.String("output", "json", "Output encoding (json|yaml)")
	})
	s, err := c.open(fs, args)
	if err != nil {
		return err
	}
	src, err := c.load(s)
	if err != nil {
		return err
	}

	var b []byte
	switch strings.ToLower(s.str("output")) {
	case "yaml", "yml":
		b, err = yaml.Marshal(src.Schema)
	case "json":
		b, err = json.MarshalIndent(src.Schema, "", "  ")
		b = append(b, '\n')
	default:
		return fmt.Errorf("unknown output encoding %q", s.str("output"))
	}
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(b)
	return err
}

func (c *cli) lint(args []string) error {
	fs := c.flags("lint", inputFlags)
	s, err := c.open(fs, args)
	if err != nil {
		return err
	}
	src, err := c.load(s)
	if err != nil {
		return err
	}
	issues := schema.Lint(src.Schema)
	if len(issues) == 0 {
		fmt.Fprintf(c.stdout, "%s: ok\n", src.Schema.Name)
		return nil
	}
	for _, is := range issues {
		fmt.Fprintf(c.stdout, "%s: %s: %s\n", is.Path, is.Code, is.Message)
	}
	return nil
}

func (c *cli) watchCmd(args []string) error {
	fs := c.flags("watch", func(fs *pflag.FlagSet) {
		inputFlags(fs)
		fs.StringP("out", "o", "", "Output directory")
		config.RegisterWatchFlags(fs)
	})
	s, err := c.open(fs, args)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	input, out := s.str("input"), s.str("out")
	if input == "" || input == "-" || out == "" {
		fmt.Fprintln(c.stderr, "watch needs -i <file> and -o <dir>")
		return errUsage
	}
	format, err := parser.ParseFormat(s.str("format"))
	if err != nil {
		return err
	}
	opts := s.cfg.GenerateOptions()

	cycle := func(_ context.Context, path string) error {
		src, err := parser.LoadFile(path, format)
		if err != nil {
			return err
		}
		reportIssues(s.log, src)
		written, err := emit.Write(out, src.Schema.Name, opts.Family, generator.Generate(src.Schema, opts))
		if err != nil {
			return err
		}
		s.log.Info("regenerated", zap.String("schema", src.Schema.Name), zap.Strings("files", written))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// первый прогон сразу, дальше: по изменениям
	if err := cycle(ctx, input); err != nil {
		s.log.Warn("initial generation failed", zap.Error(err))
	}
	s.log.Info("watching", zap.String("path", filepath.Clean(input)), zap.Duration("debounce", s.cfg.Watch.Debounce))
	return watch.Run(ctx, input, s.cfg.Watch.Debounce, s.log, cycle)
}

func (c *cli) templates(args []string) error {
	fs := pflag.NewFlagSet("templates", pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return errUsage
	}
	catalog, err := templates.Default()
	if err != nil {
		return err
	}
	if name := fs.Arg(0); name != "" {
		t, ok := catalog.Lookup(name)
		if !ok {
			return fmt.Errorf("template %q not found", name)
		}
		fmt.Fprintln(c.stdout, strings.TrimRight(t.Content, "\n"))
		return nil
	}
	for _, t := range catalog.List() {
		fmt.Fprintf(c.stdout, "%s\t%s\t%s\n", t.Name, t.Format, t.Title)
	}
	return nil
}
