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

// Package async provides the concurrency abstraction the execution engine
// is built on. The engine itself never calls go - it only sequences work
// with Bind and combines independent work with All. Whether All's futures
// actually run on separate goroutines, or are simply run one after another,
// is entirely up to the Scheduler an Execute call is given: SyncScheduler
// for deterministic tests, and the WaitGroup-backed Scheduler returned by
// NewConcurrentScheduler for production traffic.
package async

import "sync"

// Future is a suspended computation that produces a value or an error once
// awaited by a Scheduler. Futures are built only by Return, Bind, and All;
// there is no exported constructor for arbitrary thunks, so a Future can
// never smuggle in a bare `go` statement of its own.
type Future interface {
	run(sched Scheduler) (interface{}, error)
}

// Result is one entry of an All future's resolved value: the outcome of a
// single constituent Future, kept separate from its siblings' so a caller
// can accumulate every error rather than short-circuit on the first one.
type Result struct {
	Value interface{}
	Err   error
}

type futureFunc func(sched Scheduler) (interface{}, error)

func (f futureFunc) run(sched Scheduler) (interface{}, error) { return f(sched) }

// Return lifts an already-known (value, err) pair into a Future, the unit
// operation of the Future monad.
func Return(val interface{}, err error) Future {
	return futureFunc(func(Scheduler) (interface{}, error) {
		return val, err
	})
}

// Bind sequences f with a continuation k that receives f's resolved value
// and error and produces the next Future to await. Bind never introduces
// concurrency on its own: k only runs after f has fully resolved.
func Bind(f Future, k func(val interface{}, err error) Future) Future {
	return futureFunc(func(sched Scheduler) (interface{}, error) {
		val, err := sched.Await(f)
		return sched.Await(k(val, err))
	})
}

// All combines a set of independent futures into one Future whose value is
// a []Result holding each input's outcome in the same order, regardless of
// the order in which the Scheduler actually resolves them. All's own error
// return is always nil: per-item failures are reported in their Result,
// never escalated to fail the whole group, so that sibling field errors can
// be collected individually by path (C8's accumulation behavior) instead of
// aborting the rest of the selection set.
func All(fs []Future) Future {
	return futureFunc(func(sched Scheduler) (interface{}, error) {
		return sched.AwaitAll(fs), nil
	})
}

// Scheduler decides how Bind's continuations and All's constituent futures
// are actually executed. It is the only place concurrency policy lives;
// Future, Return, Bind, and All are oblivious to it.
type Scheduler interface {
	// Await forces f to completion, returning its resolved value and error.
	Await(f Future) (interface{}, error)
	// AwaitAll forces every future in fs, returning one Result per input in
	// the same order.
	AwaitAll(fs []Future) []Result
}

// SyncScheduler awaits every future one at a time, in order, on the calling
// goroutine. It is deterministic and allocation-light, suited to unit tests
// and to request handling where predictable ordering matters more than
// parallel I/O.
type SyncScheduler struct{}

// Await implements Scheduler.
func (s SyncScheduler) Await(f Future) (interface{}, error) {
	return f.run(s)
}

// AwaitAll implements Scheduler.
func (s SyncScheduler) AwaitAll(fs []Future) []Result {
	results := make([]Result, len(fs))
	for i, f := range fs {
		val, err := f.run(s)
		results[i] = Result{Value: val, Err: err}
	}
	return results
}

// concurrentScheduler awaits the futures passed to AwaitAll on their own
// goroutines, synchronizing with a sync.WaitGroup - the same pattern
// graph-gophers/graphql-go's executor uses to resolve a selection set's
// fields in parallel. Nested Bind chains still run sequentially; only the
// members of a single All call are farmed out concurrently.
type concurrentScheduler struct{}

// NewConcurrentScheduler returns a Scheduler that resolves the members of
// each All call concurrently, one goroutine per member. It is the Scheduler
// Execute should be given in production.
func NewConcurrentScheduler() Scheduler {
	return concurrentScheduler{}
}

// Await implements Scheduler.
func (s concurrentScheduler) Await(f Future) (interface{}, error) {
	return f.run(s)
}

// AwaitAll implements Scheduler.
func (s concurrentScheduler) AwaitAll(fs []Future) []Result {
	results := make([]Result, len(fs))
	var wg sync.WaitGroup
	wg.Add(len(fs))
	for i, f := range fs {
		i, f := i, f
		go func() {
			defer wg.Done()
			val, err := f.run(s)
			results[i] = Result{Value: val, Err: err}
		}()
	}
	wg.Wait()
	return results
}
