// Package display provides the backends a frame.Driver draws through.
//
//   - [Window]: raylib window, the default interactive backend
//   - [Terminal]: tcell screen rendered with braille sub-pixels
//   - [Headless]: in-memory framebuffer for tests and benchmarks
//
// Each backend implements frame.Canvas, frame.Typesetter and frame.Input.
// Textures are backend specific and must be copied back into the backend
// that rendered them.
package display
