// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the tfinv release version. It is overridden at build
// time via -ldflags "-X ...version.Version=vX.Y.Z".
package version

var Version = "dev"
