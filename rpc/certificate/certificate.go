// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/util"
)

// Get - verify the keypair PEM blocks are valid and return the
// resulting TLS configuration and certificate fingerprint
func Get(log *logger.L, name string, certificate string, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fin = fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// MakeSelfSigned - create a self-signed certificate pair on disk
//
// refuses to overwrite existing files
func MakeSelfSigned(name string, certificateFileName string, privateKeyFileName string, extraHosts []string) error {

	if util.EnsureFileExists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "marketd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, false, extraHosts)
	if nil != err {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); nil != err {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// fingerprint - compute the fingerprint of a certificate
//
// openssl x509 -outform DER -in marketd-rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
