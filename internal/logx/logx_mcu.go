//go:build tinygo

package logx

import "github.com/jangala-dev/icmsg-go/x/fmtx"

// No heap-hungry formatting on MCU builds: route through the same tiny
// formatter the teacher's firmware uses. On rp2040 builds that formatter
// writes to fmtx.DefaultOutput, which discards everything until the
// platform sets it; Println's separators and trailing newline go to the
// console through print.
func Printf(format string, args ...any) { fmtx.Printf(format, args...) }

func Println(args ...any) {
	for i, a := range args {
		if i > 0 {
			print(" ")
		}
		fmtx.Print(a)
	}
	print("\n")
}
