// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"io/ioutil"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/counter"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/rpc/certificate"
	"github.com/bitmark-inc/marketd/rpc/listeners"
	"github.com/bitmark-inc/marketd/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// global connection count
var connectionCountRPC counter.Counter

// Initialise - start the RPC listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, version string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	// the configuration carries file names, the certificate
	// package wants the PEM blocks
	certificatePEM, err := ioutil.ReadFile(rpcConfiguration.Certificate)
	if nil != err {
		log.Errorf("certificate: %q  error: %s", rpcConfiguration.Certificate, err)
		return err
	}
	keyPEM, err := ioutil.ReadFile(rpcConfiguration.PrivateKey)
	if nil != err {
		log.Errorf("private key: %q  error: %s", rpcConfiguration.PrivateKey, err)
		return err
	}

	tlsConfig, certificateFingerprint, err := certificate.Get(log, tlsName, string(certificatePEM), string(keyPEM))
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, version, &connectionCountRPC),
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
