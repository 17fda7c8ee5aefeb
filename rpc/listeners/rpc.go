// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/counter"
	"github.com/bitmark-inc/marketd/fault"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// Listener - something that accepts and serves connections
type Listener interface {
	Serve() error
}

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	log             *logger.L
	listener        net.Listener
	count           *counter.Counter
	server          *rpc.Server
	maxConnections  uint64
	tlsConfig       *tls.Config
	ipType          []string
	listenIPAndPort []string
}

// NewRPC - create an RPC listener from its configuration
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	r := rpcListener{
		log:             log,
		maxConnections:  configuration.MaximumConnections,
		listenIPAndPort: configuration.Listen,
		server:          server,
		count:           count,
		tlsConfig:       tlsConfig,
	}

	// validate all listen addresses
	ipType, err := parseListenAddress(configuration.Listen, r.log)
	if nil != err {
		return nil, err
	}
	r.ipType = ipType

	return &r, nil
}

func (r *rpcListener) Serve() error {
	var err error
	for i, listen := range r.listenIPAndPort {
		r.log.Infof("starting RPC server: %s", listen)
		r.listener, err = tls.Listen(r.ipType[i], listen, r.tlsConfig)
		if err != nil {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}

		go doServeRPC(r.listener, r.server, r.maxConnections, r.log, r.count)
	}
	return nil
}

func doServeRPC(listen net.Listener, server *rpc.Server, maximumConnections uint64, log *logger.L, count *counter.Counter) {
	for {
		conn, err := listen.Accept()
		if err != nil {
			log.Errorf("rpc.server terminated: accept error: %s", err)
			break
		}
		if count.Increment() <= maximumConnections {
			go func() {
				server.ServeCodec(jsonrpc.NewServerCodec(conn))
				_ = conn.Close()
				count.Decrement()
			}()
		} else {
			count.Decrement()
			_ = conn.Close()
		}

	}
	_ = listen.Close()
	log.Error("RPC accept terminated")
}

func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			addrs[i] = "[::]" + ":" + strings.Split(listen, ":")[1]
			listen = "::"
			parsed[i] = "tcp"
		} else if '[' == listen[0] {
			listen = strings.Split(listen[1:], "]:")[0]
			parsed[i] = "tcp6"
		} else {
			listen = strings.Split(listen, ":")[0]
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(listen); nil == ip {
			err := fault.InvalidIpAddress
			log.Errorf("rpc server listen error: %s", err)
			return nil, err
		}
	}

	return parsed, nil
}
