package flowengine

import "errors"

// ErrNoFlowLoaded indicates Run was called before any flow definition was
// installed with LoadFlow.
var ErrNoFlowLoaded = errors.New("no flow loaded")
