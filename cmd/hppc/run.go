package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hpp-embedded/hpp/pkg/hpp"
)

var (
	scriptFile   string
	encodingHint string
	sets         []string
	dumpPrefix   string
	timeoutFlag  time.Duration
	debugErrors  bool
)

func init() {
	rootCmd.Flags().StringVarP(&scriptFile, "file", "f", "", "Read the script from this file instead of stdin/argument")
	rootCmd.Flags().StringVar(&encodingHint, "encoding", "", `Source encoding hint ("UTF-8", "UTF-16LE", "Windows-1252"); a BOM always wins`)
	rootCmd.Flags().StringArrayVar(&sets, "set", nil, "Seed a global variable before running, as key=value (repeatable)")
	rootCmd.Flags().StringVar(&dumpPrefix, "dump-prefix", "", "Print every store key starting with this prefix after the run")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Abort the script after this long (0 disables the poll timeout)")
	rootCmd.Flags().BoolVar(&debugErrors, "debug-errors", false, `Use "ReturnWithDebugInfo" as the result key so a failure is printed as the "#Error ..." result with exit status 0, instead of on stderr with exit status 1`)
}

func runScript(args []string) error {
	raw, err := readScript(args)
	if err != nil {
		return err
	}

	var opts []hpp.Option
	if !quiet {
		opts = append(opts, hpp.WithWriteln(func(s string) { printInfo("%s\n", s) }))
	}
	if timeoutFlag > 0 {
		opts = append(opts, hpp.WithPoll(hpp.TimeoutAfter(timeoutFlag)))
	}
	engine := hpp.New(opts...)

	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, expected key=value", kv)
		}
		engine.Store().PutString(key, value)
	}

	resultKey := ""
	if debugErrors {
		resultKey = "ReturnWithDebugInfo"
	}

	printVerbose("running %d bytes of source\n", len(raw))
	value, ok, err := engine.RunSource(raw, encodingHint, resultKey)
	if err != nil {
		return fmt.Errorf("decoding script: %w", err)
	}
	if !ok {
		if lastErr := engine.LastError(); lastErr != nil {
			printError("%s\n", lastErr.Render())
		} else {
			printError("script aborted (timeout)\n")
		}
		if dumpPrefix != "" {
			dumpStore(engine, dumpPrefix)
		}
		os.Exit(1)
	}

	if jsonOut {
		if err := printJSON(map[string]any{"result": value}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(os.Stdout, "%s\n", value)
	}

	if dumpPrefix != "" {
		dumpStore(engine, dumpPrefix)
	}
	return nil
}

func readScript(args []string) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	if scriptFile != "" {
		return os.ReadFile(scriptFile)
	}
	return io.ReadAll(os.Stdin)
}

func dumpStore(e *hpp.Engine, prefix string) {
	text, err := e.Store().GetAll(prefix, "%s=%s\n")
	if err != nil {
		printError("dumping store: %s\n", err)
		return
	}
	if jsonOut {
		lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
		if err := printJSON(map[string]any{"dump": lines}); err != nil {
			printError("dumping store: %s\n", err)
		}
		return
	}
	printInfo("%s", text)
}
