// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoControlAddress is returned by NewServers when the control API has no
// listen address.
var errNoControlAddress = errors.New("no local control address configured")
