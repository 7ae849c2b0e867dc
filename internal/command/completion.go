// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/meta"
)

const bashCompletionScript = `# bash completion for tfinv
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_tfinv()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "gen list host outputs diff completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--from-file --no-cache --org --root -r --tldr --verbose -v"
    local envs="dev staging prod"

    case "$cmd" in
        gen)
            local opts="$common --dir -d --format -f --stdout"
            ;;
        list)
            local opts="$common"
            ;;
        host)
            local opts="$common"
            ;;
        outputs)
            local opts="$common --color -c --output -o --reveal --titles -t"
            ;;
        diff)
            local opts="$common --color -c --dir -d"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--format" || "$prev" == "-f" ]]; then
        COMPREPLY=( $(compgen -W "ini json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    # The first positional after the subcommand is the environment.
    if [[ ${COMP_CWORD} -eq 2 && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -W "$envs" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _tfinv tfinv
`

const zshCompletionScript = `#compdef tfinv

_tfinv() {
  local -a cmds
  cmds=(
    'gen:generate an inventory artifact'
    'list:print the dynamic inventory document'
    'host:print the variables of one host'
    'outputs:list the Terraform outputs of an environment'
    'diff:show drift against the last generated inventory'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '--from-file[read outputs or state from a JSON file]:file:_files'
  '--no-cache[bypass the output bundle cache]'
  '--org[organization for remote backends]:org'
  '(-r --root)'{-r,--root}'[Terraform root module directory]:dir:_directories'
  '--tldr[show tldr page]'
  '(-v --verbose)'{-v,--verbose}'[enable debug logging]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tfinv commands' cmds
    return
  fi

  case $words[2] in
    gen)
      _arguments -C \
        $common \
        '(-d --dir)'{-d,--dir}'[artifact directory]:dir:_directories' \
        '(-f --format)'{-f,--format}'[inventory format]:format:(ini json yaml)' \
        '--stdout[write to stdout]' \
        '1:environment:(dev staging prod)'
      ;;
    list)
      _arguments -C \
        $common \
        '1:environment:(dev staging prod)'
      ;;
    host)
      _arguments -C \
        $common \
        '1:environment:(dev staging prod)' \
        '2:host name'
      ;;
    outputs)
      _arguments -C \
        $common \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)' \
        '--reveal[show sensitive output values]' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '1:environment:(dev staging prod)'
      ;;
    diff)
      _arguments -C \
        $common \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-d --dir)'{-d,--dir}'[artifact directory]:dir:_directories' \
        '1:environment:(dev staging prod)'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tfinv tfinv
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: tfinv completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tfinv completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
