// Package editor provides a Bubble Tea text editor component with inline
// ghost-text suggestions.
//
// The package is responsible for input handling, viewport behavior,
// grapheme-aware rendering, and the suggestion lifecycle: edits debounce a
// context snapshot, a provider is asked for a completion, and the result is
// drawn as dimmed ghost text at the cursor until accepted with Tab or
// dismissed with Escape.
package editor
