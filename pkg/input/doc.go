// Package input adapts key events from terminal toolkits into keys.Event so
// behaviors can sit behind a tcell or Bubble Tea front end unchanged.
package input
