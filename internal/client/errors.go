// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	errNoServices = errors.New("client services are not provided")
	errNoMonitor  = errors.New("network monitor is not provided")
)
