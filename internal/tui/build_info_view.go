// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-meal-planner/models"
)

// renderBuildInfoWindow shows build metadata together with the local sync
// identity the client reports to the server.
func renderBuildInfoWindow(info models.BuildInfo, state models.SyncState) string {
	rows := [][2]string{
		{"Приложение", "Meal Planner (клиент синхронизации)"},
		{"Версия", info.Version},
		{"Дата сборки", info.Date},
		{"Коммит", info.Commit},
		{"Последняя синхронизация", formatTime(state.LastSuccessfulSync)},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-24s %s", row[0]+":", orNA(row[1]))
	}

	return renderPage("О ПРОГРАММЕ", b.String(), "esc: назад")
}

func orNA(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "N/A"
	}
	return v
}
