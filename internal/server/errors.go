// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoTransports is returned by NewServer when the handlers carry neither
// an HTTP router nor a gRPC handler.
var errNoTransports = errors.New("no HTTP or gRPC transport configured")
