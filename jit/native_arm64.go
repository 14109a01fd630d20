package jit

import "github.com/colorfulnotion/calcjit/jit/arm64"

// Native is the backend for the machine this binary runs on.
var Native Backend = arm64.Backend{}
