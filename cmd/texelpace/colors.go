package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

var oscColorReply = regexp.MustCompile(`rgb:([0-9A-Fa-f]{4})/([0-9A-Fa-f]{4})/([0-9A-Fa-f]{4})`)

// terminalColors queries the terminal for its default foreground and
// background so the demo blends in instead of forcing a palette. Any failure
// falls back to tcell's defaults.
func terminalColors() (tcell.Color, tcell.Color) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return tcell.ColorDefault, tcell.ColorDefault
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return tcell.ColorDefault, tcell.ColorDefault
	}
	defer term.Restore(int(tty.Fd()), oldState)

	fg, err := queryOSCColor(tty, 10)
	if err != nil {
		fg = tcell.ColorDefault
	}
	bg, err := queryOSCColor(tty, 11)
	if err != nil {
		bg = tcell.ColorDefault
	}
	return fg, bg
}

func queryOSCColor(tty *os.File, code int) (tcell.Color, error) {
	if _, err := fmt.Fprintf(tty, "\x1b]%d;?\a", code); err != nil {
		return tcell.ColorDefault, err
	}
	if err := tty.SetReadDeadline(time.Now().Add(500 * time.Millisecond)); err != nil {
		return tcell.ColorDefault, err
	}

	resp := make([]byte, 0, 64)
	buf := make([]byte, 1)
	for {
		n, err := tty.Read(buf)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("read reply: %w", err)
		}
		resp = append(resp, buf[:n]...)
		if buf[0] == '\a' {
			break
		}
	}

	m := oscColorReply.FindStringSubmatch(string(resp))
	if len(m) != 4 {
		return tcell.ColorDefault, fmt.Errorf("unexpected reply: %q", resp)
	}
	hex2int := func(s string) int32 {
		v, _ := strconv.ParseInt(s, 16, 32)
		return int32(v)
	}
	return tcell.NewRGBColor(hex2int(m[1]), hex2int(m[2]), hex2int(m[3])), nil
}
