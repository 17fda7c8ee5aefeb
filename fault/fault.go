// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AccountChecksumFailed          = InvalidError("account checksum failed")
	AccountLengthIsInvalid         = InvalidError("account length is invalid")
	AlreadyInitialised             = ProcessError("already initialised")
	AlreadyListed                  = ExistsError("asset is already listed")
	AssetNotFound                  = NotFoundError("asset not found")
	CertificateFileAlreadyExists   = ExistsError("certificate file already exists")
	InsufficientFunds              = InvalidError("insufficient funds")
	InsufficientPayment            = InvalidError("payment is below listing price")
	InvalidCount                   = InvalidError("invalid count")
	InvalidIpAddress               = InvalidError("invalid IP Address")
	InvalidStructPointer           = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists           = ExistsError("key file already exists")
	MissingParameters              = InvalidError("missing parameters")
	NotAssetOwner                  = InvalidError("not asset owner")
	NotAvailableDuringStartup      = ProcessError("not available during startup")
	NotInitialised                 = ProcessError("not initialised")
	NotListed                      = NotFoundError("asset is not listed")
	NotListingSeller               = InvalidError("not listing seller")
	NothingToWithdraw              = NotFoundError("nothing to withdraw")
	NotOwnerOrNotApproved          = InvalidError("not owner or not approved")
	RateLimiting                   = ProcessError("rate limiting active")
	ReentrantCall                  = ProcessError("reentrant call")
	TransferFailed                 = ProcessError("value transfer failed")
	ZeroAccount                    = InvalidError("account cannot be zero")
	ZeroPrice                      = InvalidError("price cannot be zero")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine if an error is an ExistsError
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an error is an InvalidError
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine if an error is a NotFoundError
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if an error is a ProcessError
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
