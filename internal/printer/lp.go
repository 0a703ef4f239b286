// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package printer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/models"
)

// DefaultCommand is the CUPS command-line spooler.
const DefaultCommand = "lp"

var ErrPrintFailed = errors.New("print command failed")

// runner executes name with args and returns the combined output.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// LPPrinter prints through an lp-compatible command. Arguments are passed
// as argv, never through a shell.
type LPPrinter struct {
	command string
	run     runner

	logger *logger.Logger
}

func NewLPPrinter(command string, logger *logger.Logger) *LPPrinter {
	if command == "" {
		command = DefaultCommand
	}
	return &LPPrinter{command: command, run: execRunner, logger: logger}
}

// Print runs the spooler and waits for it to accept the job. Cancelling ctx
// kills the command.
func (p *LPPrinter) Print(ctx context.Context, path string, settings models.PrintSettings) error {
	args := Args(path, settings)
	p.logger.Debug().Str("command", p.command).Strs("args", args).Msg("printing")

	output, err := p.run(ctx, p.command, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrPrintFailed, ctxErr)
		}
		return fmt.Errorf("%w: %w: %s", ErrPrintFailed, err, strings.TrimSpace(string(output)))
	}

	p.logger.Info().Str("file", path).Str("spooler", strings.TrimSpace(string(output))).Msg("job sent to spooler")
	return nil
}

// Args builds the lp argument list for settings:
//
//	<file> -n <copies> [-o sides=two-sided-long-edge|two-sided-short-edge] [-o ColorModel=KGray]
func Args(path string, settings models.PrintSettings) []string {
	copies := settings.Copies
	if copies < 1 {
		copies = 1
	}

	args := []string{path, "-n", strconv.Itoa(copies)}

	switch settings.DoubleSided {
	case models.DoubleSidedLongEdge:
		args = append(args, "-o", "sides=two-sided-long-edge")
	case models.DoubleSidedShortEdge:
		args = append(args, "-o", "sides=two-sided-short-edge")
	}

	if !settings.Color {
		args = append(args, "-o", "ColorModel=KGray")
	}

	return args
}
