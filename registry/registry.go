// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/counter"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/messagebus"
	"github.com/bitmark-inc/marketd/storage"
)

// Registry - the operations consumed by the marketplace and the RPC layer
type Registry interface {
	Mint(metadataRef string, caller account.Account) (uint64, error)
	Transfer(from account.Account, to account.Account, assetId uint64, caller account.Account) error
	Approve(operator account.Account, assetId uint64, caller account.Account) error
	OwnerOf(assetId uint64) (account.Account, error)
	CreatorOf(assetId uint64) account.Account
	MetadataOf(assetId uint64) (string, error)
	Total() uint64
}

type registryData struct {
	sync.Mutex

	log       *logger.L
	assets    storage.Handle
	approvals storage.Handle
	nextId    counter.Counter
	cache     *recordCache

	// set once during initialise
	initialised bool
}

// global data
var globalData registryData

// Initialise - connect the registry to its storage pools
//
// the next asset id is recovered from the highest stored id so a
// restart never reuses an id
func Initialise(assets storage.Handle, approvals storage.Handle) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("registry")
	globalData.log.Info("starting…")

	globalData.assets = assets
	globalData.approvals = approvals
	globalData.cache = newRecordCache()

	globalData.nextId.Set(0)
	if element, found := assets.LastElement(); found {
		if 8 != len(element.Key) {
			globalData.log.Criticalf("corrupt asset key: %x", element.Key)
			return fault.AssetNotFound
		}
		globalData.nextId.Set(binary.BigEndian.Uint64(element.Key))
		globalData.log.Infof("recovered next id: %d", globalData.nextId.Uint64()+1)
	}

	globalData.initialised = true
	return nil
}

// Finalise - shutdown the registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// Get - return the Registry interface
func Get() Registry {
	return &globalData
}

// Mint - create a new asset
//
// the caller becomes both owner and creator; ids are strictly
// increasing from 1 and are never reused
func (r *registryData) Mint(metadataRef string, caller account.Account) (uint64, error) {
	r.Lock()
	defer r.Unlock()

	if !r.initialised {
		return 0, fault.NotInitialised
	}

	assetId := r.nextId.Increment()

	record := Record{
		Owner:       caller,
		Creator:     caller,
		MetadataRef: metadataRef,
	}
	r.assets.Put(assetKey(assetId), record.Pack())
	r.cache.set(assetId, record)

	r.log.Infof("mint: id: %d  creator: %s", assetId, caller)

	messagebus.Send(messagebus.Event{
		Kind:        messagebus.Minted,
		Account:     caller,
		AssetId:     assetId,
		MetadataRef: metadataRef,
	})

	return assetId, nil
}

// Transfer - reassign ownership of an asset
//
// the caller must be the current owner or the approved operator for
// this asset; any approval is consumed by the transfer
func (r *registryData) Transfer(from account.Account, to account.Account, assetId uint64, caller account.Account) error {
	r.Lock()
	defer r.Unlock()

	if !r.initialised {
		return fault.NotInitialised
	}

	record, err := r.read(assetId)
	if nil != err {
		return err
	}

	if from != record.Owner {
		return fault.NotAssetOwner
	}

	if caller != record.Owner && caller != r.approvedOperator(assetId) {
		return fault.NotOwnerOrNotApproved
	}

	record.Owner = to
	r.assets.Put(assetKey(assetId), record.Pack())
	r.cache.set(assetId, record)
	r.approvals.Delete(assetKey(assetId))

	r.log.Debugf("transfer: id: %d  %s -> %s", assetId, from, to)

	return nil
}

// Approve - allow one operator to transfer a specific asset
//
// only the current owner may approve; a zero operator clears the
// approval
func (r *registryData) Approve(operator account.Account, assetId uint64, caller account.Account) error {
	r.Lock()
	defer r.Unlock()

	if !r.initialised {
		return fault.NotInitialised
	}

	record, err := r.read(assetId)
	if nil != err {
		return err
	}

	if caller != record.Owner {
		return fault.NotAssetOwner
	}

	if operator.IsZero() {
		r.approvals.Delete(assetKey(assetId))
	} else {
		r.approvals.Put(assetKey(assetId), operator.Bytes())
	}

	return nil
}

// OwnerOf - current owner of an asset
func (r *registryData) OwnerOf(assetId uint64) (account.Account, error) {
	record, err := r.read(assetId)
	if nil != err {
		return account.Zero, err
	}
	return record.Owner, nil
}

// CreatorOf - original creator of an asset
//
// returns the zero account for an unminted id, it never fails; callers
// that need strict existence checking use OwnerOf
func (r *registryData) CreatorOf(assetId uint64) account.Account {
	record, err := r.read(assetId)
	if nil != err {
		return account.Zero
	}
	return record.Creator
}

// MetadataOf - metadata reference of an asset
func (r *registryData) MetadataOf(assetId uint64) (string, error) {
	record, err := r.read(assetId)
	if nil != err {
		return "", err
	}
	return record.MetadataRef, nil
}

// Total - number of assets minted so far
func (r *registryData) Total() uint64 {
	return r.nextId.Uint64()
}

// read - fetch and unpack one asset record, cached
func (r *registryData) read(assetId uint64) (Record, error) {
	if record, found := r.cache.get(assetId); found {
		return record, nil
	}

	buffer := r.assets.Get(assetKey(assetId))
	if nil == buffer {
		return Record{}, fault.AssetNotFound
	}

	record, err := Unpack(buffer)
	if nil != err {
		// a corrupt stored record must not leave a stale cached copy
		r.cache.invalidate(assetId)
		return Record{}, err
	}

	r.cache.set(assetId, record)
	return record, nil
}

// approvedOperator - operator approved for an asset, zero if none
func (r *registryData) approvedOperator(assetId uint64) account.Account {
	buffer := r.approvals.Get(assetKey(assetId))
	if nil == buffer {
		return account.Zero
	}
	operator, err := account.FromBytes(buffer)
	if nil != err {
		r.log.Criticalf("corrupt approval record for id: %d", assetId)
		return account.Zero
	}
	return operator
}
