package core

import (
	"context"
	"fmt"

	"github.com/fox-one/pkg/property"
)

// SysVersion ledger wire version
const SysVersion int64 = 1

// Property keys
const (
	// SysPausedKey global pause gate checked before every mutating operation
	SysPausedKey = "sys_paused"
	// SysVersionKey deployed ledger version
	SysVersionKey = "sys_version"
)

// CheckSysVersion refuses to run against a database written by a newer
// binary, and stamps the current version on first run
func CheckSysVersion(ctx context.Context, store property.Store) error {
	v, err := store.Get(ctx, SysVersionKey)
	if err != nil {
		return err
	}

	cur := v.Int64()
	if cur > SysVersion {
		return fmt.Errorf("sys version %d is ahead of binary version %d", cur, SysVersion)
	}
	if cur < SysVersion {
		return store.Save(ctx, SysVersionKey, SysVersion)
	}

	return nil
}

// ReadPaused read the global pause flag
func ReadPaused(ctx context.Context, store property.Store) (bool, error) {
	v, err := store.Get(ctx, SysPausedKey)
	if err != nil {
		return false, err
	}
	return v.Int64() > 0, nil
}

// WritePaused toggle the global pause flag
func WritePaused(ctx context.Context, store property.Store, paused bool) error {
	var v int64
	if paused {
		v = 1
	}
	return store.Save(ctx, SysPausedKey, v)
}
