package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gordian-engine/dstream"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	logLevel string
}

// NewRootCommand returns the dstream command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:          "dstream",
		Short:        "Subscribe to example dstream sources",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(
		&f.logLevel, "log-level", "info", "log level: debug, info, warn, or error",
	)

	root.AddCommand(
		newOfCommand(&f),
		newIntervalCommand(&f),
	)

	return root
}

func (f *rootFlags) logger(w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(f.logLevel))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", f.logLevel, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func newOfCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "of VALUE...",
		Short: "Print each argument as a value, then complete",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := f.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			dstream.Of(args...).WithLogger(log).Subscribe(printer[string](out, log))
			return nil
		},
	}
}

func newIntervalCommand(f *rootFlags) *cobra.Command {
	var (
		period time.Duration
		count  int
	)

	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Print an increasing counter every period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive (got %d)", count)
			}

			log, err := f.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			// Ticks arrive on timer goroutines and may outlive RunE,
			// so stop writing to the command's output before returning.
			out := &gatedWriter{w: cmd.OutOrStdout()}
			defer out.Close()

			done := make(chan struct{})
			var seen atomic.Int64
			p := printer[int](out, log)
			next := p.Next
			p.Next = func(n int) {
				// Ticks may still arrive before the deferred Unsubscribe.
				if seen.Load() >= int64(count) {
					return
				}
				next(n)
				if seen.Add(1) == int64(count) {
					close(done)
				}
			}

			sub := dstream.Interval(dstream.TimerScheduler{}, period).
				WithLogger(log).
				Subscribe(p)
			defer sub.Unsubscribe()

			select {
			case <-done:
				log.Debug("Reached requested count", "count", count)
				return nil
			case <-ctx.Done():
				return fmt.Errorf("interrupted before printing %d values: %w", count, ctx.Err())
			}
		},
	}

	cmd.Flags().DurationVar(&period, "period", time.Second, "time between values")
	cmd.Flags().IntVar(&count, "count", 5, "number of values to print before unsubscribing")

	return cmd
}

// printer returns an observer writing each signal to out.
func printer[T any](out io.Writer, log *slog.Logger) dstream.Observer[T] {
	return dstream.Observer[T]{
		Next: func(v T) {
			fmt.Fprintln(out, v)
		},
		Error: func(err error) {
			log.Warn("Source failed", "err", err)
			fmt.Fprintln(out, "error:", err)
		},
		Complete: func() {
			fmt.Fprintln(out, "complete")
		},
	}
}

// gatedWriter forwards writes to w until closed,
// then discards them.
type gatedWriter struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

func (g *gatedWriter) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return len(p), nil
	}
	return g.w.Write(p)
}

// Close waits for any in-flight Write and discards all later ones.
func (g *gatedWriter) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}
