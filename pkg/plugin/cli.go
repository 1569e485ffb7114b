package plugin

import (
	"context"
	"fmt"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/hooks"
)

// ProcessCLIOptions collects the command line options declared by the cli
// handlers of every command. Previously collected options are discarded.
func (p *Plugin) ProcessCLIOptions(ctx context.Context) error {
	collected := make(map[consts.Command][]hooks.CLIOption)

	for i := len(consts.Commands) - 1; i >= 0; i-- {
		cmd := consts.Commands[i]
		handlers := p.registry.CLIHandlers(cmd)
		if len(handlers) == 0 {
			continue
		}

		for _, handler := range handlers {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := handler(p.optionFunc(cmd, collected)); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrCLIOptions, consts.HookID(cmd, consts.StageCLI), err)
			}
		}
	}

	p.mu.Lock()
	p.cliOptions = collected
	p.mu.Unlock()
	return nil
}

func (p *Plugin) optionFunc(cmd consts.Command, collected map[consts.Command][]hooks.CLIOption) hooks.OptionFunc {
	return func(flags, description string, defaultValue any) hooks.PromptSetter {
		if p.id != consts.DefaultPluginID {
			description += " [support by " + p.id + "]"
		}

		collected[cmd] = append(collected[cmd], hooks.CLIOption{
			PluginID:     p.id,
			Flags:        flags,
			Description:  description,
			DefaultValue: defaultValue,
		})
		index := len(collected[cmd]) - 1

		return func(prompt hooks.Prompt) {
			collected[cmd][index].Prompt = &prompt
		}
	}
}

// CLIOptions returns the options collected by ProcessCLIOptions per command.
func (p *Plugin) CLIOptions() map[consts.Command][]hooks.CLIOption {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[consts.Command][]hooks.CLIOption, len(p.cliOptions))
	for cmd, list := range p.cliOptions {
		out[cmd] = append([]hooks.CLIOption(nil), list...)
	}
	return out
}
