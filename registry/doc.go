// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the asset registry
//
// single source of truth for asset ownership and creator attribution
//
// assets are assigned strictly increasing ids starting at 1; the
// creator and metadata reference are captured at mint time and are
// immutable for the life of the asset; only ownership can change, and
// only through Transfer
//
// one operator per asset may be approved by the owner to transfer on
// the owner's behalf; the approval is consumed by the next transfer
package registry
