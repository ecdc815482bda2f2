package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vegasq/thresh/assemble"
	"github.com/vegasq/thresh/expr"
	"github.com/vegasq/thresh/internal/logging"
	"github.com/vegasq/thresh/namespace"
	"github.com/vegasq/thresh/output"
	"github.com/vegasq/thresh/reader"
	"github.com/vegasq/thresh/table"
)

// Exit statuses
const (
	ExitOK           = 0
	ExitAssertFailed = 1
	ExitFault        = 2
)

// Env holds the streams and settings of one invocation
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	// Seed makes random expressions reproducible; nil means unseeded
	Seed *uint64
}

// Run executes inst and returns the process exit status. Faults are reported
// on env.Stderr.
func Run(ctx context.Context, inst *Instructions, env Env) int {
	if env.Logger == nil {
		env.Logger = logging.WithComponent("cli")
	}

	passed, err := run(ctx, inst, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return ExitFault
	}
	if !passed {
		return ExitAssertFailed
	}
	return ExitOK
}

func run(ctx context.Context, inst *Instructions, env Env) (bool, error) {
	if inst.Action == ActionHelp {
		_, err := io.WriteString(env.Stdout, HelpText)
		return true, err
	}

	loader := reader.NewLoader(reader.WithStdin(env.Stdin), reader.WithLogger(env.Logger))
	tables, err := loader.LoadAll(ctx, inst.Gather)
	if err != nil {
		return false, err
	}

	evalOpts := []expr.Option{expr.WithLogger(env.Logger)}
	if env.Seed != nil {
		evalOpts = append(evalOpts, expr.WithSeed(*env.Seed))
	}
	assembler := assemble.New(
		assemble.WithLogger(env.Logger),
		assemble.WithEvaluator(expr.NewEvaluator(evalOpts...)),
	)

	var result *assemble.Result
	if inst.Cat {
		result, err = assembler.Assemble(tables, inst.Tokens)
		if err != nil {
			return false, err
		}
	}

	switch inst.Action {
	case ActionList, ActionHeaderList:
		return true, list(inst.Action, listed(tables, result, env.Logger), env.Stdout)
	case ActionAssert:
		source, err := assertSource(tables, result)
		if err != nil {
			return false, err
		}
		return assembler.Assert(source, inst.Asserts, env.Stderr)
	}

	tbl := single(tables, result, env.Logger)
	if tbl == nil {
		return true, nil
	}

	switch inst.Action {
	case ActionOutput:
		return true, output.WriteFile(inst.Target, tbl)
	case ActionBurst:
		return true, output.Burst(inst.Target, tbl)
	default:
		return true, output.ForSuffix(inst.Target, env.Stdout).Format(tbl)
	}
}

// listed returns the tables a list stage describes: the assembled table
// after cat, otherwise every input.
func listed(tables []*table.Table, result *assemble.Result, logger *slog.Logger) []*table.Table {
	if result != nil {
		return []*table.Table{result.Table}
	}
	if len(tables) == 0 {
		logger.Warn("no files")
	}
	return tables
}

func list(action Action, tables []*table.Table, w io.Writer) error {
	for _, tbl := range tables {
		var err error
		if action == ActionList {
			err = tbl.ListHeaders(w)
		} else {
			err = tbl.BasicListHeaders(w)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// single returns the one table print, output and burst operate on
func single(tables []*table.Table, result *assemble.Result, logger *slog.Logger) *table.Table {
	if result != nil {
		return result.Table
	}
	if len(tables) == 0 {
		logger.Warn("no files")
		return nil
	}
	if len(tables) > 1 {
		logger.Warn("discarding extra files", "kept", tables[0].Label(), "discarded", len(tables)-1)
	}
	return tables[0]
}

// assertSource is the namespace asserts are evaluated in
func assertSource(tables []*table.Table, result *assemble.Result) (map[string]interface{}, error) {
	if result != nil {
		return result.Namespace, nil
	}
	ns, err := namespace.Resolve(tables)
	if err != nil {
		return nil, err
	}
	return ns.Source(), nil
}
