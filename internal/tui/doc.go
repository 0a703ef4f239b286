// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui holds the terminal views of the printzz CLI: the credentials
// prompt, the job watcher and the table renderers.
//
// Interactive views are bubbletea models. They are exported through [TUI] so
// the client package never depends on bubbletea directly; the models
// themselves are plain values and are tested by feeding messages to Update.
package tui
