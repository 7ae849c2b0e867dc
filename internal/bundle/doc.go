// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package bundle models the recorded outputs of a Terraform run as a
// read-only key/value document, regardless of which source produced it.
package bundle
