// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the admin command-line application.
//
// It maps commands onto the REST adapter and renders results as terminal
// tables. Privileged commands log in with the configured admin password
// first.
package client
