package jit

import "github.com/colorfulnotion/calcjit/jit/x86"

// Native is the backend for the machine this binary runs on.
var Native Backend = x86.Backend{}
