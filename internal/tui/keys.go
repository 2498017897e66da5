// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	esc           key.Binding
	quit          key.Binding
	sync          key.Binding
	clearCache    key.Binding
	cleanup       key.Binding
	clearFailures key.Binding
	buildInfo     key.Binding
	yes           key.Binding
	no            key.Binding
}

var keys = keyMap{
	esc:           key.NewBinding(key.WithKeys("esc")),
	quit:          key.NewBinding(key.WithKeys("q", "ctrl+c")),
	sync:          key.NewBinding(key.WithKeys("s")),
	clearCache:    key.NewBinding(key.WithKeys("c")),
	cleanup:       key.NewBinding(key.WithKeys("r")),
	clearFailures: key.NewBinding(key.WithKeys("f")),
	buildInfo:     key.NewBinding(key.WithKeys("v")),
	yes:           key.NewBinding(key.WithKeys("y")),
	no:            key.NewBinding(key.WithKeys("n")),
}
