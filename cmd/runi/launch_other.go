// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package cmd

import "syscall"

func detachedProcAttr() *syscall.SysProcAttr {
	return nil
}
