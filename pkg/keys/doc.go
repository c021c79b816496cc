// Package keys defines the keyboard event behaviors consume and the pure
// mappers shared by every widget.
//
// Key names follow the DOM KeyboardEvent.key vocabulary ("ArrowDown", "Home",
// "Enter", " " for the space bar, "a" for a printable character) so that
// events from a browser bridge, a terminal or a test script look the same.
//
//   - MapArrow turns physical arrow/Home/End keys into a logical
//     Previous/Next/First/Last move, honoring orientation and RTL.
//   - HandleActivation treats Enter and Space as "activate" with a
//     configurable preventDefault policy.
//   - Parse and Format convert between events and specs like "Ctrl+A".
//   - ParseTerminal decodes raw terminal input bytes.
package keys
