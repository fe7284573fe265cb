package main

import "unicode/utf8"

// editor is the text being typed. It is only touched from GLFW callbacks
// and the frame loop, both on the main thread.
type editor struct {
	text  string
	dirty bool
}

func (e *editor) insert(r rune) {
	e.text += string(r)
	e.dirty = true
}

func (e *editor) newline() {
	e.text += "\n"
	e.dirty = true
}

func (e *editor) backspace() {
	if e.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(e.text)
	e.text = e.text[:len(e.text)-size]
	e.dirty = true
}

// take reports whether the text changed since the last call.
func (e *editor) take() bool {
	d := e.dirty
	e.dirty = false
	return d
}
