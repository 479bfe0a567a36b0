package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
)

// traceLimit bounds how many steps --trace keeps.
const traceLimit = 1000

// RunOptions configures RunFile.
type RunOptions struct {
	Path      string
	MaxSteps  int // overrides the document's budget when positive
	Debug     bool
	LogLevel  string
	JSON      bool
	Trace     bool
	RedisAddr string
}

// RunFile compiles and runs the document at opts.Path and prints the result to w.
func RunFile(ctx context.Context, w io.Writer, opts RunOptions) (*domain.RunRecord, error) {
	logger, err := createLogger(opts.Debug, opts.LogLevel)
	if err != nil {
		return nil, err
	}

	prog, err := turing.Compile(opts.Path)
	if err != nil {
		return nil, err
	}
	if opts.MaxSteps > 0 {
		prog.MaxSteps = opts.MaxSteps
	}

	simOpts := []turing.Option{turing.WithLogger(logger)}
	store, closeStore := openStore(opts.RedisAddr)
	defer closeStore()
	if store != nil {
		simOpts = append(simOpts, turing.WithStore(store))
	}

	limit := 1
	if opts.Trace {
		limit = traceLimit
	}
	rec := observability.NewRecorder(limit)

	record, err := turing.New(simOpts...).Run(ctx, prog, rec.Hooks())
	if err != nil {
		return nil, err
	}
	logger.Info("run stored", "run_id", record.ID, "reason", record.Result.Reason)

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return record, enc.Encode(record)
	}

	p := NewPrinter(w)
	if opts.Trace {
		p.Trace(rec.Steps())
	}
	var tapes []domain.TapeSnapshot
	if halt := rec.Halt(); halt != nil {
		tapes = halt.Tapes
	}
	p.Summary(record.Result, tapes)
	if opts.RedisAddr != "" {
		fmt.Fprintf(w, "Run ID: %s\n", record.ID)
	}
	return record, nil
}
