// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package render serializes the inventory model. One traversal of the model
// feeds three pluggable serializers (ini, yaml, json) so the formats can
// never disagree about which hosts exist.
package render
