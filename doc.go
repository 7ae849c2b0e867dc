// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// tfinv is the main package for the tfinv command line tool. It turns
// Terraform output values into Ansible inventories, reading them from a
// local working copy or straight from the state backend.
package main
