// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "go.uber.org/zap"

// configs stores the parameters of a Base, built up by the functional
// options below, following the teacher's Nodesize/Cachesize pattern
// (config.go) and extended with the Swarm/logging knobs the new domain
// needs.
type configs struct {
	varnum     int // number of real input variables known in advance
	cachesize  int // initial size hint for the computed cache (Xmemo)
	cacheratio int // unused placeholder kept for parity with the teacher's ratio knob; Xmemo never resizes
	workers    int // Swarm worker count; 0 means defaultWorkers()
	logger     *zap.SugaredLogger
}

func makeconfigs(varnum int) *configs {
	return &configs{
		varnum:    varnum,
		cachesize: 10000,
	}
}

// Workers is a configuration option. Used as a parameter to New it sets the
// number of goroutines in the engine's Swarm. The default (0, or a value
// less than 1) picks runtime.GOMAXPROCS(0)-1, clamped to a minimum of one
// (§4.6).
func Workers(n int) func(*configs) {
	return func(c *configs) {
		c.workers = n
	}
}

// Cachesize is a configuration option. Used as a parameter to New it sets an
// initial size hint for the computed cache. Unlike the teacher's itecache
// (a fixed-slot hash table that must be sized up front), Xmemo is a growable
// sync.Map and never actually needs resizing; the hint exists only to
// pre-size a future array-backed implementation without changing the
// exported API.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Cacheratio is kept for source compatibility with the teacher's
// configuration surface; Xmemo does not resize, so it is a no-op.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// Logger is a configuration option. Used as a parameter to New it installs l
// as the package-level logger through SetLogger (see logger.go), so it
// applies to every Base in the process, not only the one being built.
func Logger(l *zap.SugaredLogger) func(*configs) {
	return func(c *configs) {
		c.logger = l
	}
}
