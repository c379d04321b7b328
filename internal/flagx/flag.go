// Package flagx lets several flag sets share one command line. Each set sees
// only the arguments that belong to it, so the JSON config path can be read
// before the main server flags are defined.
package flagx

import (
	"flag"
	"strings"
)

// EnvConfig names the environment variable consulted when no -c/-config
// flag is given.
const EnvConfig = "VERISCHOL_CONFIG"

type boolFlag interface {
	IsBoolFlag() bool
}

// FilterArgs returns the arguments of args that name a flag defined in fs,
// together with their values. Both "-f value" and "-f=value" forms are kept,
// with one or two leading dashes. Boolean flags never take the following
// argument as their value.
func FilterArgs(args []string, fs *flag.FlagSet) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		filtered = append(filtered, arg)
		if hasValue {
			continue
		}

		if b, ok := f.Value.(boolFlag); ok && b.IsBoolFlag() {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath extracts the config file path given with -c or -config. When
// neither is present it falls back to EnvConfig via lookupEnv, which may be nil.
func ConfigPath(args []string, lookupEnv func(string) (string, bool)) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, fs))

	if path == "" && lookupEnv != nil {
		if v, ok := lookupEnv(EnvConfig); ok {
			path = v
		}
	}
	return path
}
