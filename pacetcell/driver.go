// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pacetcell/driver.go
// Summary: Terminal surface driver abstraction over tcell.
// Usage: Wrap a tcell.Screen with NewTcellSurfaceDriver; tests use stubs.

package pacetcell

import "github.com/gdamore/tcell/v2"

// SurfaceDriver abstracts the terminal surface the pacer drives. It mirrors
// the subset of tcell.Screen functionality required today so tests and remote
// surfaces can provide their own implementation.
type SurfaceDriver interface {
	Init() error
	Fini()
	Size() (int, int)
	SetStyle(style tcell.Style)
	HideCursor()
	Show()
	Sync()
	Clear()
	EnableMouse()
	EnableFocus()
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// TcellSurfaceDriver adapts a tcell.Screen to the SurfaceDriver interface.
type TcellSurfaceDriver struct {
	screen tcell.Screen
}

// NewTcellSurfaceDriver wraps the provided screen.
func NewTcellSurfaceDriver(screen tcell.Screen) *TcellSurfaceDriver {
	return &TcellSurfaceDriver{screen: screen}
}

func (d *TcellSurfaceDriver) Init() error {
	return d.screen.Init()
}

func (d *TcellSurfaceDriver) Fini() {
	d.screen.Fini()
}

func (d *TcellSurfaceDriver) Size() (int, int) {
	return d.screen.Size()
}

func (d *TcellSurfaceDriver) SetStyle(style tcell.Style) {
	d.screen.SetStyle(style)
}

func (d *TcellSurfaceDriver) HideCursor() {
	d.screen.HideCursor()
}

func (d *TcellSurfaceDriver) Show() {
	d.screen.Show()
}

func (d *TcellSurfaceDriver) Sync() {
	d.screen.Sync()
}

func (d *TcellSurfaceDriver) Clear() {
	d.screen.Clear()
}

func (d *TcellSurfaceDriver) EnableMouse() {
	d.screen.EnableMouse()
}

func (d *TcellSurfaceDriver) EnableFocus() {
	d.screen.EnableFocus()
}

func (d *TcellSurfaceDriver) PollEvent() tcell.Event {
	return d.screen.PollEvent()
}

func (d *TcellSurfaceDriver) PostEvent(ev tcell.Event) error {
	return d.screen.PostEvent(ev)
}

func (d *TcellSurfaceDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	d.screen.SetContent(x, y, mainc, combc, style)
}

// Underlying exposes the wrapped tcell.Screen for compatibility code paths
// that still need direct access.
func (d *TcellSurfaceDriver) Underlying() tcell.Screen {
	return d.screen
}
