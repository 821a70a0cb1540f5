package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// keysFromConfig reads a document key list from viper. Flags, env and the
// config file all land here.
func keysFromConfig(key string) []string {
	return normalizeKeys(viper.GetStringSlice(key))
}

// normalizeKeys trims, drops blanks and removes repeats, keeping first-seen
// order. An empty result is nil so callers can treat it as "all keys".
func normalizeKeys(values []string) []string {
	keys := lo.Uniq(lo.Compact(lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	})))
	if len(keys) == 0 {
		return nil
	}
	return keys
}

// bindFlags binds viper keys to flags of set, keyed by viper key. A missing
// flag name is a programming error.
func bindFlags(set *pflag.FlagSet, bindings map[string]string) {
	for key, name := range bindings {
		flag := set.Lookup(name)
		if flag == nil {
			cobra.CheckErr(fmt.Errorf("flag --%s not defined for %s", name, key))
		}
		cobra.CheckErr(viper.BindPFlag(key, flag))
	}
}
