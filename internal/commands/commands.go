package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"
)

const prefix = "cmd "

// ErrUnknownCommand is returned by Execute for a subcommand that was never registered.
var ErrUnknownCommand = errors.New("unknown command")

// Setup defines a command's flags on a fresh FlagSet and returns the function to run
// after parsing. It is called on every Execute, so flag values never leak between runs.
type Setup func(fs *flag.FlagSet) (run func(args []string) error)

// Command is a console subcommand: a name, a one-line summary and its Setup.
type Command struct {
	Name    string
	Summary string
	Setup   Setup
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "gravity").
func (r *Registry) Register(name, summary string, setup Setup) {
	r.cmds[name] = &Command{Name: name, Summary: summary, Setup: setup}
}

// Simple wraps a flagless run function as a Setup.
func Simple(run func() error) Setup {
	return func(*flag.FlagSet) func([]string) error {
		return func([]string) error { return run() }
	}
}

func (c *Command) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(c.Name, flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	return fs
}

// Names returns the registered subcommands in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Help returns one line per command: name, summary and flags.
func (r *Registry) Help() []string {
	var out []string
	for _, n := range r.Names() {
		c := r.cmds[n]
		fs := c.flagSet()
		c.Setup(fs)
		var flags []string
		fs.VisitAll(func(f *flag.Flag) {
			flags = append(flags, "-"+f.Name)
		})
		line := n + ": " + c.Summary
		if len(flags) > 0 {
			line += " [" + strings.Join(flags, " ") + "]"
		}
		out = append(out, line)
	}
	return out
}

// IsSet reports whether the flag name was given on the command line parsed by fs.
func IsSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// Parse interprets line as a console line. If line starts with "cmd " (case-sensitive),
// the rest is tokenized by spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from the command itself.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	fs := cmd.flagSet()
	run := cmd.Setup(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return run(fs.Args())
}
