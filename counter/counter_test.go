// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"testing"

	"github.com/bitmark-inc/marketd/counter"
)

// test incrementing/decrementing a counter
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	c1.Increment()
	c1.Increment()
	c1.Increment()

	if 3 != c1.Uint64() {
		t.Errorf("counter is not 3 after incrementing: %d", c1.Uint64())
	}

	c1.Decrement()

	if 2 != c1.Uint64() {
		t.Errorf("counter is not 2 after decrementing: %d", c1.Uint64())
	}

	c1.Decrement()
	c1.Decrement()

	if !c1.IsZero() {
		t.Errorf("counter did not return to zero: %d", c1.Uint64())
	}
}

// test recovery set
func TestCounterSet(t *testing.T) {

	var c1 counter.Counter

	if 42 != c1.Set(42) {
		t.Errorf("set returned wrong value: %d", c1.Uint64())
	}

	if 43 != c1.Increment() {
		t.Errorf("increment after set returned wrong value: %d", c1.Uint64())
	}
}
