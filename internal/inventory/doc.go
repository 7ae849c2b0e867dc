// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package inventory builds the host/group model from a Terraform output
// bundle. Two upstream shapes converge on the same model: a pre-structured
// ansible_inventory output, or reconstruction from flat scalar/list outputs.
package inventory
