// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package source fetches the output bundle from wherever the state lives:
// the terraform CLI, an explicit file, an S3 state object, or a Terraform
// Cloud/Enterprise workspace.
package source
