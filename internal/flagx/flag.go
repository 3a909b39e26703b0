// Package flagx lets several independent parsers share one command line.
// Each parser keeps only the arguments it understands before calling
// flag.FlagSet.Parse, so unknown flags never abort it.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the arguments that belong to valueFlags or boolFlags.
//
// Accepted forms:
//
//	-d mindcandy.db    value flag, value in the next argument
//	-d=mindcandy.db    any flag, value after '='
//	-strict            bool flag, never consumes the next argument
//
// A value flag only consumes the next argument when it does not start
// with '-'. The result is never nil.
func FilterArgs(args []string, valueFlags []string, boolFlags ...string) []string {
	kinds := make(map[string]bool, len(valueFlags)+len(boolFlags))
	for _, f := range valueFlags {
		kinds[f] = true
	}
	for _, f := range boolFlags {
		kinds[f] = false
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, known := kinds[name]; known {
				out = append(out, arg)
			}
			continue
		}

		takesValue, known := kinds[arg]
		if !known {
			continue
		}
		out = append(out, arg)
		if takesValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath returns the configuration file named by -c or -config in args,
// or "" when neither is present. When both appear the last one wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to the JSON config file")
	fs.StringVar(&path, "c", "", "path to the JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
