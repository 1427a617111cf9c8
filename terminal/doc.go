// Package terminal hosts the classroom on a tcell screen.
//
// Features:
//   - Half-block output: every cell shows two vertically stacked pixels
//   - True color (24-bit) and 256-color palette support
//   - Keyboard, resize and mouse drag events translated to a small Event type
//   - Terminal restoration on exit and on panic via Restore
package terminal
