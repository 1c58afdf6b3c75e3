// SPDX-License-Identifier: MPL-2.0

//go:build unix

package cmd

import "syscall"

// detachedProcAttr starts the child in a new session.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
