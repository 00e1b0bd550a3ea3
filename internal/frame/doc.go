// Package frame runs the per-frame simulate-and-draw loop.
//
// A [Driver] owns the orb population and the FPS window. Each call to
// [Driver.Frame] drains input, steps every orb, draws each orb's outline as one
// point batch, overlays the smoothed frame rate and presents. Drawing, text and
// input are supplied by a display backend through the small interfaces in this
// package:
//
//   - [Canvas]: clear, draw points, copy a texture, present
//   - [Typesetter]: turn a string into a [Texture]
//   - [Input]: non-blocking drain of pending [Event] values
//
// # Thread Safety
//
// A Driver is single-threaded. Backends may use goroutines internally but all
// calls into them come from the goroutine running the driver.
package frame
