// Package cli turns thresh command lines into instructions and runs them.
//
// A command line has up to three stages:
//
//	[gather...] [cat token...] [postprocess]
//
// Gather items are input files, optionally bound to an alias as
// "alias=file". The cat stage lists the columns and assignments to
// assemble. The postprocess stage is one of list, headerlist, print, output,
// burst or assert; without one the result is printed as text.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vegasq/thresh/reader"
	"github.com/vegasq/thresh/table"
)

// ErrUsage is returned for command lines that do not form valid instructions
var ErrUsage = errors.New("invalid command line")

// Action is the postprocess stage of an invocation
type Action int

const (
	// ActionPrint writes the result to standard output
	ActionPrint Action = iota
	// ActionHelp shows the help text
	ActionHelp
	// ActionList lists headers with their index and length
	ActionList
	// ActionHeaderList lists bare header names
	ActionHeaderList
	// ActionOutput writes the result to a file
	ActionOutput
	// ActionBurst writes each column of the result to its own file
	ActionBurst
	// ActionAssert evaluates expressions and sets the exit status
	ActionAssert
)

var actionWords = map[string]Action{
	"list":       ActionList,
	"headerlist": ActionHeaderList,
	"print":      ActionPrint,
	"output":     ActionOutput,
	"burst":      ActionBurst,
	"assert":     ActionAssert,
}

// catWord starts the process stage
const catWord = "cat"

// DefaultPrintSuffix selects the text format
const DefaultPrintSuffix = ".txt"

// Instructions is a parsed command line
type Instructions struct {
	// Gather lists the inputs in argument order
	Gather []reader.Source
	// Cat is set when the process stage was requested, even without tokens
	Cat bool
	// Tokens are the process stage tokens, verbatim
	Tokens []string
	// Action is the postprocess stage
	Action Action
	// Target is the print suffix or the output/burst path
	Target string
	// Asserts are the expressions of an assert stage
	Asserts []string
}

// IsMagicWord reports whether arg starts a stage
func IsMagicWord(arg string) bool {
	if arg == catWord {
		return true
	}
	_, ok := actionWords[arg]
	return ok
}

// Parse splits args into instructions. Stage words are case-sensitive.
func Parse(args []string) (*Instructions, error) {
	if len(args) == 0 {
		return &Instructions{Action: ActionHelp}, nil
	}

	inst := &Instructions{Action: ActionPrint, Target: DefaultPrintSuffix}

	i := 0
	for ; i < len(args) && !IsMagicWord(args[i]); i++ {
		switch args[i] {
		case "help", "-h", "--help":
			return &Instructions{Action: ActionHelp}, nil
		}
		inst.Gather = append(inst.Gather, classify(args[i]))
	}

	if i < len(args) && args[i] == catWord {
		inst.Cat = true
		inst.Tokens = []string{}
		for i++; i < len(args) && !IsMagicWord(args[i]); i++ {
			inst.Tokens = append(inst.Tokens, args[i])
		}
		if i < len(args) && args[i] == catWord {
			return nil, fmt.Errorf("%w: cat given more than once", ErrUsage)
		}
	}

	if i == len(args) {
		return inst, nil
	}

	word := args[i]
	rest := args[i+1:]
	for _, arg := range rest {
		if IsMagicWord(arg) && word != "assert" {
			return nil, fmt.Errorf("%w: %q cannot follow %q", ErrUsage, arg, word)
		}
	}

	inst.Action = actionWords[word]
	switch inst.Action {
	case ActionList, ActionHeaderList:
		if len(rest) > 0 {
			return nil, fmt.Errorf("%w: %s takes no arguments", ErrUsage, word)
		}
	case ActionPrint:
		if len(rest) > 1 {
			return nil, fmt.Errorf("%w: print takes at most one suffix", ErrUsage)
		}
		if len(rest) == 1 {
			inst.Target = rest[0]
			if !strings.HasPrefix(inst.Target, ".") {
				inst.Target = "." + inst.Target
			}
		}
	case ActionOutput, ActionBurst:
		if len(rest) != 1 {
			return nil, fmt.Errorf("%w: %s takes exactly one file name", ErrUsage, word)
		}
		inst.Target = rest[0]
	case ActionAssert:
		if len(rest) == 0 {
			return nil, fmt.Errorf("%w: assert needs at least one expression", ErrUsage)
		}
		inst.Target = ""
		inst.Asserts = append([]string(nil), rest...)
	}
	return inst, nil
}

// classify turns one gather item into a source. An existing file or a stdin
// sentinel is taken as is; otherwise "alias=file" binds an alias when the
// text before the first '=' is an identifier.
func classify(arg string) reader.Source {
	if reader.IsStdin(arg) || exists(arg) {
		return reader.Source{Path: arg}
	}
	if alias, path, ok := strings.Cut(arg, "="); ok && table.IsIdentifier(alias) {
		return reader.Source{Path: path, Alias: alias}
	}
	return reader.Source{Path: arg}
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
