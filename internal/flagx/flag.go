// Package flagx lets several components parse their own subset of the
// command line without tripping over flags that belong to someone else.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Set describes the flags a component owns. The value reports whether the
// flag takes a value (as in "-d dsn"); boolean flags ("-i") map to false so a
// following positional argument is not mistaken for their value.
type Set map[string]bool

// FilterArgs keeps only the arguments that belong to flags in owned,
// together with their values. Both "-name value" and "-name=value" forms are
// understood, with one or two leading dashes; owned is keyed by the bare
// name ("config", not "-config").
func FilterArgs(args []string, owned Set) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		name, hasValue, ok := flagName(args[i])
		if !ok {
			continue
		}

		takesValue, known := owned[name]
		if !known {
			continue
		}

		out = append(out, args[i])
		if hasValue || !takesValue {
			continue
		}

		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// Positionals returns the arguments that are neither flags in owned nor
// their values, in order. It is the complement of FilterArgs.
func Positionals(args []string, owned Set) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		name, hasValue, ok := flagName(args[i])
		if !ok {
			out = append(out, args[i])
			continue
		}
		if takesValue := owned[name]; takesValue && !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
		}
	}

	return out
}

// ConfigFile extracts the path given with -c or -config, or "" when neither
// is present.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, Set{"c": true, "config": true}))

	return path
}

func flagName(arg string) (name string, hasValue bool, ok bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false, false
	}
	name = strings.TrimLeft(arg, "-")
	if name == "" {
		return "", false, false
	}
	if i := strings.IndexByte(name, '='); i >= 0 {
		return name[:i], true, true
	}
	return name, false, true
}
