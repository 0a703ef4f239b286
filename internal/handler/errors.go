// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server config
// has neither SERVER_ADDRESS nor SERVER_GRPC_ADDRESS.
var errNoHandlersAreCreated = errors.New("no handlers are created: set an HTTP or gRPC address")
