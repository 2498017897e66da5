// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-meal-planner/internal/adapter"
	"github.com/MKhiriev/go-meal-planner/internal/service"
)

func syncErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrOffline):
		return "синхронизация не выполнена. Отсутствует сеть, изменения сохранены локально"
	case errors.Is(err, service.ErrSyncInProgress):
		return "синхронизация уже выполняется"
	case errors.Is(err, adapter.ErrNetwork):
		return "синхронизация не выполнена. Сервер недоступен"
	case errors.Is(err, service.ErrStorageFull):
		return "локальное хранилище заполнено. Очистите кэш"
	}

	return fmt.Sprintf("Ошибка синхронизации: %v", err)
}
