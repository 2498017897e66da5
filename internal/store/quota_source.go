// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"
)

// ConfiguredQuota is a fixed byte budget for the local store.
type ConfiguredQuota int64

// Available implements [QuotaSource].
func (q ConfiguredQuota) Available(context.Context, int64) (int64, error) {
	return int64(q), nil
}

// DiskQuota treats the free space of the file system holding the database,
// plus what the store already occupies, as the budget.
type DiskQuota struct {
	Path string
}

// Available implements [QuotaSource].
func (q DiskQuota) Available(ctx context.Context, used int64) (int64, error) {
	dir := filepath.Dir(q.Path)

	stat, err := disk.UsageWithContext(ctx, dir)
	if err != nil {
		return 0, fmt.Errorf("error reading disk usage of %s: %w", dir, err)
	}

	return int64(stat.Free) + used, nil
}

// NewQuotaSource picks the quota source for the given settings: an explicit
// byte quota wins, then the disk of dbPath, otherwise none.
func NewQuotaSource(quotaBytes int64, useDisk bool, dbPath string) QuotaSource {
	switch {
	case quotaBytes > 0:
		return ConfiguredQuota(quotaBytes)
	case useDisk && dbPath != "":
		return DiskQuota{Path: dbPath}
	}
	return nil
}
