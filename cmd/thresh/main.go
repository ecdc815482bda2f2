package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vegasq/thresh/internal/cli"
	"github.com/vegasq/thresh/internal/config"
	"github.com/vegasq/thresh/internal/logging"
	"github.com/vegasq/thresh/reader"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the exit status
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := cli.ExitOK
	root := newRootCommand(stdin, stdout, stderr, &code)
	// a nil slice would make cobra fall back to os.Args
	root.SetArgs(append([]string{}, protectSentinels(args)...))
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.ExitFault
	}
	return code
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:   "thresh [[alias=]file ...] [cat token ...] [list|headerlist|print|output|burst|assert ...]",
		Short: "Separate the wheat from the chaff in tabular text files",
		Long:  cli.HelpText,
		Args:  cobra.ArbitraryArgs,

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			profile, _ := cmd.Flags().GetString("profile")
			cfg, err := config.Load(cfgFile, profile)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("quiet") {
				cfg.Quiet, _ = cmd.Flags().GetBool("quiet")
			}
			if cmd.Flags().Changed("log-level") {
				level, _ := cmd.Flags().GetString("log-level")
				cfg.LogLevel = logging.ParseLevel(level)
			}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				cfg.Seed = &seed
			}

			level := cfg.LogLevel
			if cfg.Quiet {
				level = logging.LevelError
			}
			logger := logging.Init(level, stderr)

			inst, err := cli.Parse(args)
			if err != nil {
				return err
			}

			*code = cli.Run(cmd.Context(), inst, cli.Env{
				Stdin:  stdin,
				Stdout: stdout,
				Stderr: stderr,
				Logger: logger,
				Seed:   cfg.Seed,
			})
			return nil
		},
	}

	root.PersistentFlags().String("config", config.DefaultConfigFile, "config file")
	root.PersistentFlags().String("profile", config.DefaultConfigProfile, "config profile")
	root.PersistentFlags().BoolP("quiet", "q", false, "only report errors")
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	root.PersistentFlags().Uint64("seed", 0, "seed for random, uniform and normal")

	// expressions such as -a+1 and file arguments must reach the tokenizer verbatim
	root.Flags().SetInterspersed(false)
	return root
}

// protectSentinels inserts "--" before a leading stdin sentinel such as
// "-.csv", which the flag parser would otherwise read as shorthand flags.
func protectSentinels(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if reader.IsStdin(arg) && arg != reader.Stdin {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		if len(arg) == 0 || arg[0] != '-' {
			return args
		}
	}
	return args
}
