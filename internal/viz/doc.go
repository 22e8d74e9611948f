// Package viz renders arrays in the terminal.
//
//   - [RenderSlots]: one bordered cell per allocated slot, used slots highlighted
//   - [UtilizationBar]: used/capacity fill bar
//   - [RunInteractive]: Bubble Tea REPL driving an Array[int]
//
// # Commands
//
//	push v..    append one or more values
//	set i v     write slot i, growing if needed
//	get i       read-only access
//	front       first element
//	new [size]  replace with an empty array
//	from v..    replace with an array built from values
//	reset       same as new
//	quit        leave (also esc / ctrl+c)
package viz
