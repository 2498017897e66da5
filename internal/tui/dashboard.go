// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-meal-planner/internal/service"
	"github.com/MKhiriev/go-meal-planner/models"
)

const (
	statusTTL   = 3 * time.Second
	maxFailures = 5

	dashboardHotKeys = "s: синхр. │ r: очистка │ f: сбросить ошибки │ c: очистить кэш │ v: версия"
)

// dashboardModel shows the sync state of the device and lets the user force a
// sync or free local storage.
type dashboardModel struct {
	ctx       context.Context
	services  *service.ClientServices
	buildInfo models.BuildInfo

	updates <-chan models.SyncState
	cancel  func()

	state  models.SyncState
	usage  models.StorageUsage
	health models.StorageHealth
	sync   syncModel

	status        string
	errMsg        string
	confirmClear  bool
	showBuildInfo bool
	quitByUser    bool
}

func newDashboardModel(ctx context.Context, services *service.ClientServices, buildInfo models.BuildInfo) dashboardModel {
	updates, cancel := services.SyncControl.Subscribe()
	return dashboardModel{
		ctx:       ctx,
		services:  services,
		buildInfo: buildInfo,
		updates:   updates,
		cancel:    cancel,
		sync:      newSyncModel(),
	}
}

func (m dashboardModel) close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadState(), m.cmdWaitState(), m.cmdLoadStorage())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.applyState(msg.state)
		return m, tea.Batch(m.cmdWaitState(), m.spinnerTick())
	case syncDoneMsg:
		m.sync.running = m.state.SyncInProgress
		if msg.err != nil {
			m.errMsg = syncErrorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("Синхронизация завершена: отправлено %d, повтор %d, отклонено %d",
			msg.report.Succeeded, msg.report.Retried, msg.report.Dropped)
		return m, tea.Batch(m.cmdLoadStorage(), clearStatusAfter(statusTTL))
	case storageLoadedMsg:
		m.usage = msg.usage
		m.health = msg.health
		return m, nil
	case cleanupDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка очистки: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("Очистка (%s): удалено %d, сжато %d", msg.report.Level, msg.report.Evicted, msg.report.Compressed)
		return m, tea.Batch(m.cmdLoadStorage(), clearStatusAfter(statusTTL))
	case cacheClearedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка очистки кэша: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = "Кэш очищен"
		return m, tea.Batch(m.cmdLoadStorage(), clearStatusAfter(statusTTL))
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.sync, cmd = m.sync.Update(msg)
	return m, cmd
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitByUser = true
		return m, tea.Quit
	}

	switch {
	case m.errMsg != "" && (key.Matches(msg, keys.esc) || msg.Type == tea.KeyEnter):
		m.errMsg = ""
		return m, nil
	case m.showBuildInfo:
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil
	case m.confirmClear:
		switch {
		case key.Matches(msg, keys.yes):
			m.confirmClear = false
			return m, m.cmdClearCache()
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.confirmClear = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	case key.Matches(msg, keys.sync):
		if m.sync.running {
			return m, nil
		}
		m.sync.running = true
		return m, tea.Batch(m.cmdForceSync(), m.sync.spinner.Tick)
	case key.Matches(msg, keys.cleanup):
		return m, m.cmdCleanup()
	case key.Matches(msg, keys.clearFailures):
		m.services.Coordinator.ClearFailures()
		m.services.Coordinator.Publish(m.ctx)
		return m, nil
	case key.Matches(msg, keys.clearCache):
		m.confirmClear = true
		return m, nil
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
		return m, nil
	}

	return m, nil
}

func (m *dashboardModel) applyState(state models.SyncState) {
	m.state = state
	m.sync.running = state.SyncInProgress
}

func (m dashboardModel) spinnerTick() tea.Cmd {
	if !m.sync.running {
		return nil
	}
	return m.sync.spinner.Tick
}

func (m dashboardModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo, m.state)
	}

	var b strings.Builder

	network := offlineStyle.Render("офлайн")
	if m.state.IsOnline {
		network = onlineStyle.Render("онлайн")
	}
	fmt.Fprintf(&b, "Сеть              │ %s\n", network)
	fmt.Fprintf(&b, "В очереди         │ %d\n", m.state.PendingChanges)
	fmt.Fprintf(&b, "Синхронизация     │ %s\n", m.sync.View())
	fmt.Fprintf(&b, "Последняя попытка │ %s\n", formatTime(m.state.LastSyncAttempt))
	fmt.Fprintf(&b, "Последний успех   │ %s\n", formatTime(m.state.LastSuccessfulSync))

	if m.usage.Available > 0 {
		fmt.Fprintf(&b, "Хранилище         │ %s из %s (%d%%)\n",
			formatBytes(m.usage.Used), formatBytes(m.usage.Available), m.usage.Percentage)
	} else {
		fmt.Fprintf(&b, "Хранилище         │ %s\n", formatBytes(m.usage.Used))
	}

	for i, issue := range m.health.Issues {
		fmt.Fprintf(&b, "! %s", issue)
		if i < len(m.health.Recommendations) {
			fmt.Fprintf(&b, ": %s", m.health.Recommendations[i])
		}
		b.WriteString("\n")
	}

	if len(m.state.Failures) > 0 {
		b.WriteString("\nНе синхронизировано:\n")
		failures := m.state.Failures
		if len(failures) > maxFailures {
			failures = failures[len(failures)-maxFailures:]
		}
		for _, f := range failures {
			fmt.Fprintf(&b, "  %s/%s: %s\n", f.Collection, fitText(f.TargetID, 24), fitText(f.Reason, 48))
		}
	}

	if m.status != "" {
		b.WriteString("\nСтатус: " + m.status + "\n")
	}

	page := renderPage("СИНХРОНИЗАЦИЯ", strings.TrimRight(b.String(), "\n"), dashboardHotKeys)

	switch {
	case m.errMsg != "":
		return page + "\n\n" + errorOverlayModel{message: m.errMsg}.View()
	case m.confirmClear:
		return page + "\n\n" + confirmModel{message: "Удалить все локальные данные и неотправленные изменения?"}.View()
	}
	return page
}

func (m dashboardModel) cmdLoadState() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncControl

	return func() tea.Msg {
		state, err := svc.Status(ctx)
		if err != nil {
			return nil
		}
		return stateMsg{state: state}
	}
}

func (m dashboardModel) cmdWaitState() tea.Cmd {
	updates := m.updates

	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg{state: state}
	}
}

func (m dashboardModel) cmdLoadStorage() tea.Cmd {
	ctx := m.ctx
	quota := m.services.Quota

	return func() tea.Msg {
		return storageLoadedMsg{usage: quota.GetUsage(ctx), health: quota.GetHealth(ctx)}
	}
}

func (m dashboardModel) cmdForceSync() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncControl

	return func() tea.Msg {
		report, err := svc.ForceSyncAttempt(ctx)
		return syncDoneMsg{report: report, err: err}
	}
}

func (m dashboardModel) cmdCleanup() tea.Cmd {
	ctx := m.ctx
	quota := m.services.Quota

	return func() tea.Msg {
		report, err := quota.Cleanup(ctx, models.CleanupStandard)
		return cleanupDoneMsg{report: report, err: err}
	}
}

func (m dashboardModel) cmdClearCache() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncControl

	return func() tea.Msg {
		return cacheClearedMsg{err: svc.ClearAllCachedData(ctx)}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
