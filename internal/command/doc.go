// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package command defines the CLI command set for tfinv. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
