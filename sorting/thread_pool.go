// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package sorting

import (
	"fmt"
	"sync"
)

// ThreadPool runs sorting tasks on a fixed number of goroutines.
//
// Enqueue never blocks, so a running task may enqueue further
// tasks on the pool it runs on. Close must be called once all
// enqueued tasks have been waited for.
type ThreadPool struct {
	threads  int
	wg       sync.WaitGroup // workers
	pending  sync.WaitGroup // requests not yet handed to a worker
	requests chan *Task
	closed   sync.Once
}

// Task is a unit of work enqueued on a ThreadPool.
type Task struct {
	fn   func() ([]int, error)
	done chan struct{}
	out  []int
	err  error
}

// NewThreadPool starts a pool of the given number of workers.
// Values below 1 start a single worker.
func NewThreadPool(threads int) *ThreadPool {
	if threads < 1 {
		threads = 1
	}
	pool := &ThreadPool{
		threads:  threads,
		requests: make(chan *Task),
	}

	pool.init()
	return pool
}

func (t *ThreadPool) init() {

	worker := func() {
		defer t.wg.Done()

		for task := range t.requests {
			task.run()
		}
	}

	for i := 0; i < t.threads; i++ {
		t.wg.Add(1)
		go worker()
	}
}

// Threads returns the number of workers.
func (t *ThreadPool) Threads() int { return t.threads }

// Enqueue schedules fn on the pool and returns
// a Task that can be waited for.
func (t *ThreadPool) Enqueue(fn func() ([]int, error)) *Task {
	task := &Task{fn: fn, done: make(chan struct{})}
	t.pending.Add(1)
	go func() {
		defer t.pending.Done()
		t.requests <- task
	}()
	return task
}

// Close stops the workers after every enqueued
// task has been picked up and has finished.
func (t *ThreadPool) Close() {
	t.closed.Do(func() {
		t.pending.Wait()
		close(t.requests)
		t.wg.Wait()
	})
}

func (k *Task) run() {
	defer close(k.done)
	defer func() {
		if r := recover(); r != nil {
			k.out = nil
			k.err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
	}()
	k.out, k.err = k.fn()
}

// Wait blocks until the task has finished
// and returns its result.
func (k *Task) Wait() ([]int, error) {
	<-k.done
	return k.out, k.err
}
