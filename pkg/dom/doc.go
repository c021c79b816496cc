// Package dom is a small in-memory element tree that behaviors operate on in
// place of a browser document.
//
// It models exactly what interaction behaviors touch: attributes (tabindex,
// aria-*), inline style hints, text content, layout rectangles, focus with
// bubbling focusin, keydown/click/pointerdown dispatch with removable
// listeners, simple selector queries and scrollIntoView requests. Rendering
// bridges mirror a real document into this tree or implement the same calls.
package dom
