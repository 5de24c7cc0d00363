package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// configFlag returns the --config value from args, or fallback. The flag
// has to be known before parsing because the file feeds flag defaults.
func configFlag(args []string, fallback string) (path string, explicit bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v, true
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return fallback, false
}

// loadConfig reads a TOML file of flag values keyed by flag name, with
// dashes written as underscores (store_dir = "..."). A missing file is only
// an error when it was named explicitly.
func loadConfig(path string, explicit bool) (kong.Resolver, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return configResolver(values), nil
}

func configResolver(values map[string]any) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
			return v, nil
		}
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		return nil, nil
	})
}
