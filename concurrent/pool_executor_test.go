/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package concurrent_test

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/botobag/incremental/concurrent"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("PoolExecutor", func() {
	It("rejects config without workers", func() {
		_, err := concurrent.NewPoolExecutor(concurrent.PoolExecutorConfig{})
		Expect(err).Should(HaveOccurred())
	})

	It("executes a submitted task and returns its result", func() {
		executor, err := concurrent.NewPoolExecutor(concurrent.PoolExecutorConfig{NumWorkers: 2})
		Expect(err).ShouldNot(HaveOccurred())

		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return 42, nil
		}))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(handle.AwaitResult(0)).Should(Equal(42))
	})

	It("propagates the error returned from a task", func() {
		executor, err := concurrent.NewPoolExecutor(concurrent.PoolExecutorConfig{NumWorkers: 1})
		Expect(err).ShouldNot(HaveOccurred())

		taskErr := errors.New("task failed")
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return nil, taskErr
		}))
		Expect(err).ShouldNot(HaveOccurred())
		_, err = handle.AwaitResult(0)
		Expect(err).Should(MatchError(taskErr))
	})

	It("times out waiting for a slow task", func() {
		executor, err := concurrent.NewPoolExecutor(concurrent.PoolExecutorConfig{NumWorkers: 1})
		Expect(err).ShouldNot(HaveOccurred())

		release := make(chan struct{})
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			<-release
			return nil, nil
		}))
		Expect(err).ShouldNot(HaveOccurred())

		_, err = handle.AwaitResult(10 * time.Millisecond)
		Expect(err).Should(MatchError(concurrent.ErrAwaitTaskResultTimeout))
		close(release)
	})

	It("cancels a task that has not started", func() {
		executor, err := concurrent.NewPoolExecutor(concurrent.PoolExecutorConfig{NumWorkers: 1})
		Expect(err).ShouldNot(HaveOccurred())

		// Occupy the only worker so the second task stays queued.
		started := make(chan struct{})
		release := make(chan struct{})
		_, err = executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			close(started)
			<-release
			return nil, nil
		}))
		Expect(err).ShouldNot(HaveOccurred())
		<-started

		var ran int32
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			atomic.StoreInt32(&ran, 1)
			return nil, nil
		}))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(handle.Cancel()).Should(Succeed())

		_, err = handle.AwaitResult(0)
		Expect(err).Should(MatchError(concurrent.ErrTaskCancelled))

		close(release)
		Expect(atomic.LoadInt32(&ran)).Should(Equal(int32(0)))
	})

	It("drains remaining tasks on shutdown and reports termination", func() {
		executor, err := concurrent.NewPoolExecutor(concurrent.PoolExecutorConfig{NumWorkers: 2})
		Expect(err).ShouldNot(HaveOccurred())

		var completed int32
		for i := 0; i < 8; i++ {
			_, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
				atomic.AddInt32(&completed, 1)
				return nil, nil
			}))
			Expect(err).ShouldNot(HaveOccurred())
		}

		terminated, err := executor.Shutdown()
		Expect(err).ShouldNot(HaveOccurred())
		Eventually(terminated).Should(Receive(BeTrue()))
		Expect(atomic.LoadInt32(&completed)).Should(Equal(int32(8)))

		_, err = executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return nil, nil
		}))
		Expect(err).Should(MatchError(concurrent.ErrExecutorShutdown))
	})
})
