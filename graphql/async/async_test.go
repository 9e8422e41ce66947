// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package async

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnAwait(t *testing.T) {
	for _, sched := range []Scheduler{SyncScheduler{}, NewConcurrentScheduler()} {
		val, err := sched.Await(Return(42, nil))
		require.NoError(t, err)
		assert.Equal(t, 42, val)
	}
}

func TestBindChainsOnSuccess(t *testing.T) {
	f := Bind(Return(1, nil), func(val interface{}, err error) Future {
		return Return(val.(int)+1, nil)
	})
	val, err := SyncScheduler{}.Await(f)
	require.NoError(t, err)
	assert.Equal(t, 2, val)
}

func TestBindSeesUpstreamError(t *testing.T) {
	wantErr := errors.New("boom")
	var sawErr error
	f := Bind(Return(nil, wantErr), func(val interface{}, err error) Future {
		sawErr = err
		return Return(nil, err)
	})
	_, err := SyncScheduler{}.Await(f)
	assert.Equal(t, wantErr, err)
	assert.Equal(t, wantErr, sawErr)
}

func TestAllPreservesPerItemResults(t *testing.T) {
	boom := errors.New("boom")
	fs := []Future{Return(1, nil), Return(nil, boom), Return(3, nil)}
	for _, sched := range []Scheduler{SyncScheduler{}, NewConcurrentScheduler()} {
		val, err := sched.Await(All(fs))
		require.NoError(t, err)
		results := val.([]Result)
		require.Len(t, results, 3)
		assert.Equal(t, Result{Value: 1}, results[0])
		assert.Equal(t, boom, results[1].Err)
		assert.Equal(t, Result{Value: 3}, results[2])
	}
}

func TestAwaitAllPreservesOrder(t *testing.T) {
	fs := make([]Future, 10)
	for i := range fs {
		i := i
		fs[i] = Return(i, nil)
	}
	for _, sched := range []Scheduler{SyncScheduler{}, NewConcurrentScheduler()} {
		results := sched.AwaitAll(fs)
		require.Len(t, results, 10)
		for i, r := range results {
			assert.NoError(t, r.Err)
			assert.Equal(t, i, r.Value)
		}
	}
}
