// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mode - system mode control
//
// mutating RPC operations are refused unless the system is in Normal
// mode, so that clients cannot modify the ledger while start up or
// shut down is in progress
package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
)

// Mode - type to hold the mode
type Mode int

// all possible modes
const (
	Stopped Mode = iota
	Starting
	Normal
	maximum
)

var globalData struct {
	sync.RWMutex
	log  *logger.L
	mode Mode

	// set once during initialise
	initialised bool
}

// Initialise - set up the mode system
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("mode")
	globalData.log.Info("starting…")

	globalData.mode = Starting
	globalData.initialised = true

	return nil
}

// Finalise - shutdown mode handling
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	Set(Stopped)

	globalData.Lock()
	defer globalData.Unlock()

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false

	return nil
}

// Set - change mode
func Set(mode Mode) {

	if mode >= Stopped && mode < maximum {
		globalData.Lock()
		globalData.mode = mode
		globalData.Unlock()

		globalData.log.Infof("set: %s", mode)
	} else {
		globalData.log.Errorf("ignore invalid set: %d", mode)
	}
}

// Is - detect mode
func Is(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode == globalData.mode
}

// IsNot - detect not mode
func IsNot(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode != globalData.mode
}

// String - current mode represented as a string
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Starting:
		return "Starting"
	case Normal:
		return "Normal"
	default:
		return "*Unknown*"
	}
}

// String - current mode of the system
func String() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.mode.String()
}
