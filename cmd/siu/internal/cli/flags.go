package cli

import (
	"fmt"
	"strings"

	"github.com/siujs/cli/internal/naming"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/siujs/cli/pkg/options"
	"github.com/spf13/cobra"
)

// FlagSpec is a parsed plugin option such as "-d, --deps <deps>".
type FlagSpec struct {
	Long  string
	Short string
	// HasValue is false for boolean switches.
	HasValue bool
}

// Key returns the option key the flag value is stored under.
func (f FlagSpec) Key() string {
	return naming.Camelize(f.Long, false)
}

// ParseFlagSpec parses the flags string of a plugin option.
// A value placeholder is written <name> or [name].
func ParseFlagSpec(spec string) (FlagSpec, error) {
	var f FlagSpec
	for _, token := range strings.FieldsFunc(spec, func(r rune) bool { return r == ',' || r == ' ' }) {
		switch {
		case strings.HasPrefix(token, "--"):
			f.Long = strings.TrimPrefix(token, "--")
		case strings.HasPrefix(token, "-"):
			f.Short = strings.TrimPrefix(token, "-")
		case strings.HasPrefix(token, "<"), strings.HasPrefix(token, "["):
			f.HasValue = true
		default:
			return FlagSpec{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidFlagSpec, token, spec)
		}
	}

	if f.Long == "" {
		return FlagSpec{}, fmt.Errorf("%w: %q has no long name", ErrInvalidFlagSpec, spec)
	}
	if len(f.Short) > 1 {
		return FlagSpec{}, fmt.Errorf("%w: shorthand %q is more than one letter", ErrInvalidFlagSpec, f.Short)
	}
	return f, nil
}

// pluginFlag is a plugin option registered on a cobra command.
type pluginFlag struct {
	spec   FlagSpec
	option hooks.CLIOption
}

// addPluginFlag registers option on cmd. It reports false when the flag
// clashes with one already defined on cmd or its parents.
func addPluginFlag(cmd *cobra.Command, option hooks.CLIOption) (pluginFlag, bool, error) {
	spec, err := ParseFlagSpec(option.Flags)
	if err != nil {
		return pluginFlag{}, false, err
	}

	if cmd.Flags().Lookup(spec.Long) != nil || cmd.InheritedFlags().Lookup(spec.Long) != nil {
		return pluginFlag{}, false, nil
	}
	if spec.Short != "" &&
		(cmd.Flags().ShorthandLookup(spec.Short) != nil || cmd.InheritedFlags().ShorthandLookup(spec.Short) != nil) {
		spec.Short = ""
	}

	description := option.Description
	if option.PluginID != "" {
		description = fmt.Sprintf("%s [support by %s]", description, option.PluginID)
	}

	if spec.HasValue {
		def := ""
		if option.DefaultValue != nil {
			def = fmt.Sprint(option.DefaultValue)
		}
		cmd.Flags().StringP(spec.Long, spec.Short, def, description)
	} else {
		def, _ := option.DefaultValue.(bool)
		cmd.Flags().BoolP(spec.Long, spec.Short, def, description)
	}
	return pluginFlag{spec: spec, option: option}, true, nil
}

// Asker answers the prompt of an option left empty.
type Asker func(prompt hooks.Prompt) (any, error)

// collectPluginFlags stores the plugin flag values of cmd into opts.
// A flag left unset takes its default, or the prompt answer when ask is set.
func collectPluginFlags(cmd *cobra.Command, flags []pluginFlag, opts *options.Options, ask Asker) error {
	for _, f := range flags {
		key := f.spec.Key()

		if cmd.Flags().Changed(f.spec.Long) || f.option.DefaultValue != nil {
			value, err := flagValue(cmd, f.spec)
			if err != nil {
				return err
			}
			opts.Set(key, value)
			continue
		}

		if _, set := opts.Lookup(key); set || f.option.Prompt == nil || ask == nil {
			continue
		}
		answer, err := ask(*f.option.Prompt)
		if err != nil {
			return fmt.Errorf("failed to ask for --%s: %w", f.spec.Long, err)
		}
		opts.Set(key, answer)
	}
	return nil
}

func flagValue(cmd *cobra.Command, spec FlagSpec) (any, error) {
	if spec.HasValue {
		return cmd.Flags().GetString(spec.Long)
	}
	return cmd.Flags().GetBool(spec.Long)
}
