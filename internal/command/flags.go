// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/config"
)

func init() {
	cfg, _ = config.Load()
}

var (
	cfg config.Type

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}

	verboseFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "verbose",
		Aliases:     []string{"v"},
		Usage:       "enable debug logging",
		HideDefault: true,
	}

	stdoutFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "stdout",
		Usage:       "write the inventory to stdout instead of a file",
		HideDefault: true,
	}

	noCacheFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "no-cache",
		Usage:       "bypass the output bundle cache",
		HideDefault: true,
	}
)

// NewFormatFlag constructs the "format" flag namespaced to the given command.
func NewFormatFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "inventory format",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"format", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("format", altsrc.StringSourcer(cfg.Source)),
		),
		Value: "ini",
		Validator: func(value string) error {
			return FlagValidators(value, FormatValidator)
		},
	}
}

// NewDirFlag constructs the "dir" flag for the directory inventory artifacts
// are written to.
func NewDirFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "directory to write inventory artifacts to",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"dir", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("dir", altsrc.StringSourcer(cfg.Source)),
		),
		Value: "ansible/inventory",
	}
}

// NewRootFlag constructs the "root" flag for the Terraform root module
// directory outputs are read from.
func NewRootFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "root",
		Aliases: []string{"r"},
		Usage:   "Terraform root module directory",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TFINV_ROOT"),
			cli.EnvVar("TERRAFORM_DIR"),
			yaml.YAML(ns+"."+"root", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("root", altsrc.StringSourcer(cfg.Source)),
		),
	}
}

// NewFromFileFlag constructs the "from-file" flag. It short-circuits backend
// resolution entirely.
func NewFromFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "from-file",
		Usage: "read an outputs or state JSON document instead of querying a backend",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TFINV_FROM_FILE"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}
}

// NewOrgFlag constructs a cli.StringFlag for the "org" flag, optionally
// namespaced to a command and config file. params[1] is the config file.
func NewOrgFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "org",
		Usage: "organization to use for remote backends. Overrides the backend",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TFINV_ORG"),
			cli.EnvVar("TF_CLOUD_ORGANIZATION"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewOutputFlags returns the flags shared by commands that render tabular
// results (currently only "outputs").
func NewOutputFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
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

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
