// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
)

// hold a logger channel
var log *logger.L

// Initialise - setup a log channel for last attempt to log something
func Initialise() error {
	if nil != log {
		return AlreadyInitialised
	}
	log = logger.New("PANIC")
	return nil
}

// Finalise - flush any data
func Finalise() {
	if nil != log {
		log.Flush()
	}
}

// Criticalf - log a formatted string with arguments like fmt.Sprintf()
func Criticalf(format string, arguments ...interface{}) {
	internalCriticalf(format, arguments...)
}

// Panic - log and panic
func Panic(message string) {
	internalCriticalf("%s", message)
	time.Sleep(100 * time.Millisecond) // to allow logging output
	panic(message)
}

// Panicf - panic with a formatted string with arguments like fmt.Sprintf()
func Panicf(format string, arguments ...interface{}) {
	internalCriticalf(format, arguments...)
	Panic("abort, see last messages in log file")
}

// PanicWithError - final panic
func PanicWithError(message string, err error) {
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	internalCriticalf("%s", s)
	time.Sleep(100 * time.Millisecond) // to allow logging output
	panic(s)
}

// PanicIfError - conditional panic
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	PanicWithError(message, err)
}

// internal routine to handle an uninitialised logger channel
func internalCriticalf(format string, arguments ...interface{}) {
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
	} else {
		log.Criticalf(format, arguments...)
		log.Flush() // make sure log file is saved
	}
}
