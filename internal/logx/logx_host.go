//go:build !tinygo

// Package logx is a minimal diagnostic logger for the bonding handshake.
// The host build delegates straight to the standard log package; the
// tinygo build (logx_mcu.go) routes through x/fmtx instead.
package logx

import "log"

func Printf(format string, args ...any) { log.Printf(format, args...) }
func Println(args ...any)               { log.Println(args...) }
