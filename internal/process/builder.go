package process

import (
	"maps"
	"slices"
	"strings"
)

// Builder assembles a command invocation: program, arguments, working
// directory and environment overrides.
type Builder struct {
	program string
	args    []string
	dir     string
	env     map[string]string
}

// New returns a Builder for program with no arguments.
func New(program string) *Builder {
	return &Builder{program: program}
}

// Arg appends a single argument.
func (b *Builder) Arg(arg string) {
	b.args = append(b.args, arg)
}

// Args appends arguments and returns b for chaining.
func (b *Builder) Args(args ...string) *Builder {
	b.args = append(b.args, args...)
	return b
}

// Cwd sets the working directory and returns b for chaining.
func (b *Builder) Cwd(dir string) *Builder {
	b.dir = dir
	return b
}

// Env sets an environment override and returns b for chaining.
func (b *Builder) Env(key, value string) *Builder {
	if b.env == nil {
		b.env = make(map[string]string)
	}
	b.env[key] = value
	return b
}

func (b *Builder) Program() string { return b.program }

func (b *Builder) Dir() string { return b.dir }

// GetArgs returns the arguments without the program.
func (b *Builder) GetArgs() []string { return slices.Clone(b.args) }

// Argv returns the program followed by its arguments.
func (b *Builder) Argv() []string {
	return append([]string{b.program}, b.args...)
}

// Environ returns the overrides as sorted KEY=value pairs.
func (b *Builder) Environ() []string {
	keys := slices.Sorted(maps.Keys(b.env))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+b.env[k])
	}
	return out
}

// Clone returns an independent copy of b.
func (b *Builder) Clone() *Builder {
	return &Builder{
		program: b.program,
		args:    slices.Clone(b.args),
		dir:     b.dir,
		env:     maps.Clone(b.env),
	}
}

// String renders the command for display, quoting arguments that contain
// whitespace or quotes.
func (b *Builder) String() string {
	parts := make([]string, 0, len(b.args)+1)
	for _, a := range b.Argv() {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
