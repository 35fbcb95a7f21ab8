package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/maja42/declrom"
	"github.com/maja42/declrom/compiler"
	"github.com/maja42/declrom/description"
	"github.com/maja42/declrom/embedding"
)

type CommandLine struct {
	In          string
	Out         string
	Verify      string
	Firmware    string
	Size        int64
	Dump        bool
	Interactive bool
	Verbose     bool
	Force       bool
}

func main() {
	var cmd CommandLine
	flag.StringVar(&cmd.In, "in", "", "Path to the YAML description of the declaration data")
	flag.StringVar(&cmd.Out, "out", "decl.rom", "Path for the resulting ROM image")
	flag.StringVar(&cmd.Verify, "verify", "", "Verify an existing ROM image instead of compiling one")
	flag.StringVar(&cmd.Firmware, "firmware", "", "Firmware image placed in front of the declaration data")
	flag.Int64Var(&cmd.Size, "size", 0, "Total ROM size in bytes; the gap before the declaration data is filled with 0xFF")
	flag.BoolVar(&cmd.Dump, "dump", false, "Print lists, entries and a hex dump of the image")
	flag.BoolVar(&cmd.Interactive, "i", false, "Browse the image interactively")
	flag.BoolVar(&cmd.Verbose, "v", false, "Enable debug logging")
	flag.BoolVar(&cmd.Force, "force", false, "Overwrite the output file if it exists")
	flag.Parse()
	if cmd.In == "" && cmd.Verify == "" {
		flag.Usage()
		os.Exit(1)
	}

	logger := NewLogger(cmd.Verbose)
	defer logger.Sync() //nolint:errcheck
	compiler.SetLogger(logger.Named("compiler"))

	if err := Run(cmd, logger, os.Stdout); err != nil {
		logger.Fatal("declc failed", zap.Error(err))
	}
}

// NewLogger builds the console logger used by the command line tool.
func NewLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %s\n", err)
		return zap.NewNop()
	}
	return logger
}

// Run executes a single invocation and writes any requested output to out.
func Run(cmd CommandLine, logger *zap.Logger, out io.Writer) error {
	var decl *declrom.Declaration
	var err error

	if cmd.Verify != "" {
		decl, err = declrom.Open(cmd.Verify)
		if err != nil {
			return fmt.Errorf("verify %q: %w", cmd.Verify, err)
		}
		logger.Info("Image verified",
			zap.String("path", cmd.Verify),
			zap.Int("length", decl.Length()),
			zap.String("checksum", fmt.Sprintf("0x%08X", decl.Checksum())),
			zap.Int("lists", decl.Count()))
	} else {
		decl, err = CompileFile(cmd, logger)
		if err != nil {
			return err
		}
		logger.Info("Wrote declaration ROM",
			zap.String("in", cmd.In),
			zap.String("out", cmd.Out),
			zap.Int("length", decl.Length()),
			zap.Int("romSize", len(decl.Bytes())),
			zap.String("checksum", fmt.Sprintf("0x%08X", decl.Checksum())))
	}

	if cmd.Dump {
		Dump(out, decl, IsTerminal(out))
	}
	if cmd.Interactive {
		return Browse(decl)
	}
	return nil
}

// CompileFile compiles the description at cmd.In and writes the image to cmd.Out,
// behind the firmware if one is given.
// An existing output file is only replaced if cmd.Force is set.
// The resulting ROM is parsed back, so it always passes verification.
func CompileFile(cmd CommandLine, logger *zap.Logger) (*declrom.Declaration, error) {
	dir, err := description.LoadFile(cmd.In)
	if err != nil {
		return nil, fmt.Errorf("load description: %w", err)
	}
	img, err := compiler.Compile(dir)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", cmd.In, err)
	}

	rom := img
	if cmd.Firmware != "" || cmd.Size != 0 {
		var buf bytes.Buffer
		if cmd.Firmware != "" {
			err = embedding.EmbedFile(&buf, cmd.Firmware, img, cmd.Size, logger.Sugar().Debugf)
		} else {
			err = embedding.Embed(&buf, bytes.NewReader(nil), img, cmd.Size, logger.Sugar().Debugf)
		}
		if err != nil {
			return nil, fmt.Errorf("embed: %w", err)
		}
		rom = buf.Bytes()
	}

	decl, err := declrom.Parse(rom)
	if err != nil {
		return nil, fmt.Errorf("self-check: %w", err)
	}

	mode := os.O_CREATE | os.O_WRONLY
	if cmd.Force {
		mode |= os.O_TRUNC
	} else {
		mode |= os.O_EXCL
	}
	file, err := os.OpenFile(cmd.Out, mode, 0644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	if _, err := file.Write(rom); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write output: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	return decl, nil
}
