// Package suggest implements the inline-completion lifecycle: extracting
// prefix/suffix context around a cursor offset, debouncing and cancelling
// backend requests as typing continues, cleaning raw model output into a
// presentable suggestion, and managing the ghost overlay through its
// accept/dismiss/invalidate transitions.
//
// The Scheduler and Overlay are synchronous state machines with no timers or
// goroutines of their own; the host's event loop delivers keystrokes, timer
// fires, and completion results, and generation counters make late messages
// self-fencing. The editor package wires them into Bubble Tea.
package suggest
