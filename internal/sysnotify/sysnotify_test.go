//go:build !windows

package sysnotify_test

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synctv-org/authd/internal/sysnotify"
)

func TestExitTasksRunInPriorityOrder(t *testing.T) {
	sn := sysnotify.New()
	var order []string
	add := func(p int, name string) {
		require.NoError(t, sn.Register(p, sysnotify.NewTask(name, sysnotify.NotifyTypeEXIT, func() error {
			order = append(order, name)
			return nil
		})))
	}
	add(3, "db")
	add(1, "http")
	add(2, "redis")

	reloads := 0
	require.NoError(t, sn.Register(0, sysnotify.NewTask("log", sysnotify.NotifyTypeRELOAD, func() error {
		reloads++
		return nil
	})))

	done := make(chan struct{})
	go func() {
		sn.Wait()
		close(done)
	}()
	sn.Notify(syscall.SIGUSR1)
	sn.Notify(syscall.SIGUSR1)
	sn.Notify(syscall.SIGTERM)
	<-done

	require.Equal(t, []string{"http", "redis", "db"}, order)
	require.Equal(t, 2, reloads)
}

func TestRegisterRejectsInvalidTask(t *testing.T) {
	sn := sysnotify.New()
	require.Error(t, sn.Register(0, nil))
	require.Error(t, sn.Register(0, sysnotify.NewTask("x", 0, func() error { return nil })))
}
