package printer

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/models"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name     string
		settings models.PrintSettings
		want     []string
	}{
		{
			name:     "single sided color",
			settings: models.PrintSettings{Copies: 1, DoubleSided: models.DoubleSidedNone, Color: true},
			want:     []string{"/tmp/print.pdf", "-n", "1"},
		},
		{
			name:     "long edge greyscale",
			settings: models.PrintSettings{Copies: 2, DoubleSided: models.DoubleSidedLongEdge, Color: false},
			want:     []string{"/tmp/print.pdf", "-n", "2", "-o", "sides=two-sided-long-edge", "-o", "ColorModel=KGray"},
		},
		{
			name:     "short edge color",
			settings: models.PrintSettings{Copies: 3, DoubleSided: models.DoubleSidedShortEdge, Color: true},
			want:     []string{"/tmp/print.pdf", "-n", "3", "-o", "sides=two-sided-short-edge"},
		},
		{
			name:     "zero copies prints one",
			settings: models.PrintSettings{Color: true},
			want:     []string{"/tmp/print.pdf", "-n", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Args("/tmp/print.pdf", tt.settings))
		})
	}
}

func TestNewLPPrinter_DefaultCommand(t *testing.T) {
	assert.Equal(t, DefaultCommand, NewLPPrinter("", logger.Nop()).command)
	assert.Equal(t, "/usr/bin/lpr", NewLPPrinter("/usr/bin/lpr", logger.Nop()).command)
}

func TestLPPrinter_Print_RunsCommand(t *testing.T) {
	var gotName string
	var gotArgs []string

	p := NewLPPrinter("lp", logger.Nop())
	p.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte("request id is lab-42 (1 file(s))\n"), nil
	}

	err := p.Print(context.Background(), "/work/print.pdf", models.PrintSettings{Copies: 2, Color: false})

	require.NoError(t, err)
	assert.Equal(t, "lp", gotName)
	assert.Equal(t, []string{"/work/print.pdf", "-n", "2", "-o", "ColorModel=KGray"}, gotArgs)
}

func TestLPPrinter_Print_CommandFails(t *testing.T) {
	p := NewLPPrinter("lp", logger.Nop())
	p.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("lp: The printer or class does not exist.\n"), errors.New("exit status 1")
	}

	err := p.Print(context.Background(), "/work/print.pdf", models.DefaultPrintSettings())

	require.ErrorIs(t, err, ErrPrintFailed)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLPPrinter_Print_Timeout(t *testing.T) {
	p := NewLPPrinter("lp", logger.Nop())
	p.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, errors.New("signal: killed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Print(ctx, "/work/print.pdf", models.DefaultPrintSettings())

	assert.ErrorIs(t, err, ErrPrintFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLPPrinter_Print_RealProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX true(1)")
	}
	truePath, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true(1) not found")
	}

	err = NewLPPrinter(truePath, logger.Nop()).Print(context.Background(), "/dev/null", models.DefaultPrintSettings())

	assert.NoError(t, err)
}
