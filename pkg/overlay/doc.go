// Package overlay provides the layered-UI services composite behaviors
// consume: an open/close disclosure, anchor positioning, a dismissable layer
// (Escape and outside pointer presses), a focus scope and exit-animation
// presence.
//
// Each service is declared as an interface with a default in-memory
// implementation over pkg/dom, so composites can be tested without a
// browser and hosts can substitute their own.
package overlay
