package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const usage = `schemaforge: schema to code generator

Usage:
  schemaforge generate -i <file|dir|-> [-o dir] [--family document|relational] [--smart-defaults] [--format auto]
  schemaforge parse    -i <file|-> [--format auto] [--output json|yaml]
  schemaforge lint     -i <file|->  [--format auto]
  schemaforge watch    -i <file> -o <dir> [--debounce 300ms]
  schemaforge templates [name]
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run возвращает код выхода (0 ок, 1 ошибка разбора/генерации, 2 неверный вызов).
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	env := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	var err error
	switch args[0] {
	case "generate", "gen":
		err = env.generate(args[1:])
	case "parse":
		err = env.parse(args[1:])
	case "lint":
		err = env.lint(args[1:])
	case "watch":
		err = env.watchCmd(args[1:])
	case "templates":
		err = env.templates(args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
	if err != nil {
		switch {
		case errors.Is(err, pflag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			return 2
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
