package display

import "errors"

var (
	ErrWindow   = errors.New("display: window unavailable")
	ErrFont     = errors.New("display: font unavailable")
	ErrTerminal = errors.New("display: terminal unavailable")
	ErrTexture  = errors.New("display: texture from another backend")
)
