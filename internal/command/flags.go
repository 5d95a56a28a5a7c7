// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/forkctl/forkctl/internal/artifact"
)

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "extra spaces between table columns",
			Value: 1,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewUpstreamFlag constructs the "upstream" flag: the baseline tree root the
// fork is compared against. params[0] is the command namespace and params[1]
// the config file; when both are given the flag resolves through
// FORKCTL_UPSTREAM and then the namespaced/global config keys.
func NewUpstreamFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "upstream",
		Aliases: []string{"u"},
		Usage:   "upstream baseline root directory",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("FORKCTL_UPSTREAM"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewForkFlag constructs the "fork" flag: the maintained divergent tree
// being audited. Resolution mirrors NewUpstreamFlag with FORKCTL_FORK.
func NewForkFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "fork",
		Aliases: []string{"k"},
		Usage:   "fork root directory",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("FORKCTL_FORK"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewOutFlag constructs the "out" flag for the artifact directory. The
// default keeps artifacts under a fixed relative path so repeated runs hit
// the same files.
func NewOutFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "out",
		Usage: "artifact output directory",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("FORKCTL_OUT"),
		),
		Value: artifact.DefaultDir,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewManifestFlag constructs the "manifest" flag naming a cargo metadata
// JSON document to load the crate registry from.
func NewManifestFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "manifest",
		Aliases: []string{"m"},
		Usage:   "cargo metadata JSON to read the crate registry from",
	}
}

// NewExcludeFlag constructs the repeatable "exclude" flag. Values append to
// the configured exclusion globs rather than replacing them.
func NewExcludeFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "exclude",
		Aliases: []string{"x"},
		Usage:   "additional glob to exclude from comparison (repeatable)",
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable exists in PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
