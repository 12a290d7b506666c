package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpace/pace"
	"github.com/framegrace/texelpace/pacetcell"
)

// statsView renders the demo screen: a clock plus live pacer state. It draws
// only when asked, which is the whole point of the exercise.
type statsView struct {
	driver   pacetcell.SurfaceDriver
	sched    *pace.Scheduler
	tableLen int
	frames   int
}

func newStatsView(driver pacetcell.SurfaceDriver, sched *pace.Scheduler, tableLen int) *statsView {
	return &statsView{driver: driver, sched: sched, tableLen: tableLen}
}

func (v *statsView) draw() {
	v.frames++
	v.driver.Clear()

	bold := tcell.StyleDefault.Bold(true)
	normal := tcell.StyleDefault
	dim := tcell.StyleDefault.Dim(true)

	m := v.sched.Metrics()
	state := "active"
	if !v.sched.Active() {
		state = "quiescent"
	}

	v.drawString(2, 1, bold, "texelpace — adaptive redraw pacing")
	v.drawString(2, 3, normal, time.Now().Format("15:04:05.000"))
	v.drawString(2, 5, normal, fmt.Sprintf("interval %-6v cursor %d/%d  %s",
		v.sched.Interval(), v.sched.Cursor(), v.tableLen-1, v.cadenceBar()))
	v.drawString(2, 6, normal, fmt.Sprintf("surface %s, frames drawn %d", state, v.frames))
	v.drawString(2, 8, dim, fmt.Sprintf("fires %d  immediate %d  resets %d  activity %d  quiescence %d",
		m.TimerFires, m.ImmediateRedraws, m.Resets, m.ActivitySignals, m.QuiescenceSignals))
	v.drawString(2, 10, dim, "interact to resume fast rendering · r = reload reset · ESC quits")

	v.driver.Show()
}

// cadenceBar shows how far the cursor has slid toward the idle floor.
func (v *statsView) cadenceBar() string {
	if v.tableLen <= 0 {
		return ""
	}
	pos := v.sched.Cursor()
	return "[" + strings.Repeat("#", pos+1) + strings.Repeat("-", v.tableLen-pos-1) + "]"
}

func (v *statsView) drawString(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		v.driver.SetContent(x+i, y, r, nil, style)
	}
}
