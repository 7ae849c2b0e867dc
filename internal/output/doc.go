// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package output emits tabular command results as text, JSON, or YAML per
// the common output flags.
package output
