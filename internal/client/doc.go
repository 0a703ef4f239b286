// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the printzz command-line application.
//
// [App] dispatches a sub-command (register, login, submit, list, cancel,
// watch, ...) to the server through an adapter.ServerAdapter, keeps the
// session token in a [TokenStore] between invocations and renders results
// with the tui package.
package client
