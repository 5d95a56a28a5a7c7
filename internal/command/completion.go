// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/forkctl/forkctl/internal/meta"
)

const bashCompletionScript = `# bash completion for forkctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_forkctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "compare crates brandfix browse completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --padding --sort -s --titles -t --tldr"

    case "$cmd" in
        compare)
            local opts="$common --schema --all --summary --files --publish --upstream -u --fork -k --out --exclude -x --manifest -m"
            ;;
        crates)
            local opts="$common --schema --names --manifest -m"
            ;;
        brandfix)
            local opts="--from --to --tldr"
            ;;
        browse)
            local opts="--out --manifest -m --tldr"
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

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--upstream" || "$prev" == "-u" || "$prev" == "--fork" || "$prev" == "-k" || "$prev" == "--out" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
        return 0
    fi

    # If current token starts with '-', offer flags
    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # compare's positional is a crate name; brandfix takes files
    case "$cmd" in
        compare)
            COMPREPLY=( $(compgen -W "$(forkctl crates --names 2>/dev/null)" -- "$cur") )
            ;;
        brandfix)
            COMPREPLY=( $(compgen -o default -- "$cur") )
            ;;
        *)
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            ;;
    esac
    return 0
}

complete -F _forkctl forkctl
`

const zshCompletionScript = `#compdef forkctl

_forkctl() {
  local -a cmds
  cmds=(
    'compare:compare fork crates against upstream'
    'crates:list the registered crates'
    'brandfix:rewrite brand names inside quoted string literals'
    'browse:browse diff artifacts interactively'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
    '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
    '(-c --color)'{-c,--color}'[enable colored text]'
    '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
    '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
    '--padding[extra spaces between table columns]:padding'
    '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
    '(-t --titles)'{-t,--titles}'[show titles]'
    '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'forkctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    compare)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--all[compare every registered crate]' \
        '--summary[rebuild the report from existing artifacts]' \
        '--files[per-file breakdown for a single crate]' \
        '--publish[upload report and artifacts]:target' \
        '(-u --upstream)'{-u,--upstream}'[upstream baseline root]:directory:_directories' \
        '(-k --fork)'{-k,--fork}'[fork root]:directory:_directories' \
        '--out[artifact output directory]:directory:_directories' \
        '(-x --exclude)'{-x,--exclude}'[exclusion glob]:glob' \
        '(-m --manifest)'{-m,--manifest}'[cargo metadata JSON]:file:_files' \
        '::crate:($(forkctl crates --names 2>/dev/null))'
      ;;
    crates)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--names[print bare crate names]' \
        '(-m --manifest)'{-m,--manifest}'[cargo metadata JSON]:file:_files'
      ;;
    brandfix)
      _arguments -C \
        '--from[brand name to replace]:name' \
        '--to[replacement brand name]:name' \
        '*:file:_files'
      ;;
    browse)
      _arguments -C \
        '--out[artifact output directory]:directory:_directories' \
        '(-m --manifest)'{-m,--manifest}'[cargo metadata JSON]:file:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _forkctl forkctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
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
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: forkctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "forkctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
