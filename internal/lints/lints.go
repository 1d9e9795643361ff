package lints

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Severity is the level a lint is reported at.
type Severity int

const (
	Allow Severity = iota
	Warn
	Deny
)

// Severities lists every severity in flag emission order.
var Severities = []Severity{Allow, Warn, Deny}

func (s Severity) String() string {
	switch s {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Deny:
		return "deny"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Flag returns the compiler flag marker for s.
func (s Severity) Flag() string {
	switch s {
	case Allow:
		return "-A"
	case Warn:
		return "-W"
	case Deny:
		return "-D"
	default:
		return ""
	}
}

// ParseSeverity maps a declared lint state to a Severity. Matching is exact:
// no case folding and no trimming.
func ParseSeverity(state string) (Severity, bool) {
	switch state {
	case "allow":
		return Allow, true
	case "warn":
		return Warn, true
	case "deny":
		return Deny, true
	default:
		return 0, false
	}
}

// ArgSink receives command-line arguments one at a time.
type ArgSink interface {
	Arg(arg string)
}

// InvalidStateWarning formats the warning reported for an unrecognized lint state.
func InvalidStateWarning(name string) string {
	return fmt.Sprintf("invalid lint state for \"%s\" (expected \"warn\", \"allow\" or \"deny\")", name)
}

// Set maps lint names to severities for one configuration scope.
// A Set is never modified after New returns.
type Set struct {
	names            []string
	severities       map[string]Severity
	requiredFeatures []string
}

// New builds a Set from declared lint states, visiting names in lexicographic
// order. Unknown states are reported to warnings and dropped.
func New(declared map[string]string, requiredFeatures []string, warnings *[]string) *Set {
	s := &Set{
		names:      make([]string, 0, len(declared)),
		severities: make(map[string]Severity, len(declared)),
	}
	if requiredFeatures != nil {
		s.requiredFeatures = slices.Clone(requiredFeatures)
	}

	keys := lo.Keys(declared)
	slices.Sort(keys)
	for _, name := range keys {
		sev, ok := ParseSeverity(declared[name])
		if !ok {
			if warnings != nil {
				*warnings = append(*warnings, InvalidStateWarning(name))
			}
			continue
		}
		if _, seen := s.severities[name]; !seen {
			s.names = append(s.names, name)
		}
		s.severities[name] = sev
	}
	return s
}

// Severity reports the severity recorded for name.
func (s *Set) Severity(name string) (Severity, bool) {
	if s == nil {
		return 0, false
	}
	sev, ok := s.severities[name]
	return sev, ok
}

// Has reports whether name is recorded under any severity.
func (s *Set) Has(name string) bool {
	_, ok := s.Severity(name)
	return ok
}

// Names returns the recorded lint names in iteration order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.names)
}

// Len returns the number of recorded lints.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// RequiredFeatures returns the feature names the set was declared with.
// They are carried for callers and never affect flags.
func (s *Set) RequiredFeatures() []string {
	if s == nil || s.requiredFeatures == nil {
		return nil
	}
	return slices.Clone(s.requiredFeatures)
}

func (s *Set) namesWith(sev Severity) []string {
	if s == nil {
		return nil
	}
	return lo.Filter(s.names, func(name string, _ int) bool {
		return s.severities[name] == sev
	})
}

// bucket joins the names at sev from s, then the names at sev from other that
// s does not mention at any severity.
func (s *Set) bucket(other *Set, sev Severity) string {
	own := s.namesWith(sev)
	inherited := lo.Filter(other.namesWith(sev), func(name string, _ int) bool {
		return !s.Has(name)
	})
	return strings.Join(append(own, inherited...), ",")
}

// ApplyFlags appends lint flags to cmd, one marker/list pair per non-empty
// severity in Allow, Warn, Deny order. Entries of s take precedence over
// other per lint name.
func (s *Set) ApplyFlags(other *Set, cmd ArgSink) {
	for _, sev := range Severities {
		list := s.bucket(other, sev)
		if list == "" {
			continue
		}
		cmd.Arg(sev.Flag())
		cmd.Arg(list)
	}
}

// Flags returns the arguments ApplyFlags would emit.
func (s *Set) Flags(other *Set) []string {
	var c collector
	s.ApplyFlags(other, &c)
	return c
}

type collector []string

func (c *collector) Arg(arg string) { *c = append(*c, arg) }
