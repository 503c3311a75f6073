package crashguard_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/faultline/pkg/crashguard"
	"github.com/smykla-labs/faultline/pkg/diag"
	"github.com/smykla-labs/faultline/pkg/thread"
)

func faultyThread(*thread.Thread, any) any {
	crashguard.TriggerFault()
	return nil
}

var _ = Describe("Thread guards", func() {
	var (
		engine *crashguard.Engine
		spy    *handlerSpy
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		engine = crashguard.New(crashguard.WithDumpDir(GinkgoT().TempDir()))
		spy = &handlerSpy{}
		ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	})

	AfterEach(func() {
		cancel()
		engine.ClearThreadGuard()
		thread.SetDefaultGuard(nil)
	})

	It("contains faults of every thread under the process-wide registration", func() {
		engine.SetThreadGuard(spy.Handle, "workers")
		Expect(thread.DefaultGuard()).To(BeIdenticalTo(engine))

		threads := make([]*thread.Thread, 32)
		for i := range threads {
			threads[i] = thread.New(faultyThread, fmt.Sprintf("worker-%d", i), thread.PriorityNormal)
			Expect(threads[i].Start(nil)).To(Succeed())
		}

		Expect(thread.WaitForFinish(ctx, threads...)).To(Succeed())

		for _, t := range threads {
			Expect(t.Crashed()).To(BeTrue(), t.Name())
		}

		paths := spy.Paths()
		Expect(paths).To(HaveLen(len(threads)))

		info := readDump(paths[0])
		Expect(info.Label).To(Equal("workers"))
		Expect(info.Thread).NotTo(BeNil())
		Expect(info.Thread.ID).NotTo(BeZero())
	})

	It("keeps the registration armed for the thread lifetime", func() {
		engine.SetThreadGuard(spy.Handle, "late")

		gate := make(chan struct{})
		t := thread.New(func(*thread.Thread, any) any {
			<-gate
			crashguard.TriggerFault()
			return nil
		}, "late", thread.PriorityLow, thread.WithGuard(engine))

		Expect(t.Start(nil)).To(Succeed())
		Expect(thread.WaitForStartup(ctx, t)).To(Succeed())
		close(gate)

		Eventually(t.Done()).Should(BeClosed())
		Expect(t.Crashed()).To(BeTrue())
		Expect(spy.Paths()).To(HaveLen(1))
	})

	It("lets a thread install its own registration", func() {
		var guardErr error

		t := thread.New(func(self *thread.Thread, _ any) any {
			guardErr = self.SetGuard(spy.Handle, "self")
			crashguard.TriggerFault()
			return nil
		}, "self", thread.PriorityNormal, thread.WithGuard(engine))

		Expect(t.Start(nil)).To(Succeed())

		_, err := t.Join(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(guardErr).NotTo(HaveOccurred())
		Expect(t.Crashed()).To(BeTrue())
		Expect(readDump(spy.Paths()[0]).Label).To(Equal("self"))
	})

	It("prefers the per-thread registration", func() {
		process := &handlerSpy{}
		engine.SetThreadGuard(process.Handle, "process")

		var guardErr error

		t := thread.New(func(self *thread.Thread, _ any) any {
			guardErr = self.SetGuard(spy.Handle, "own")
			crashguard.TriggerFault()
			return nil
		}, "own", thread.PriorityNormal)

		Expect(t.Start(nil)).To(Succeed())
		Expect(thread.WaitForFinish(ctx, t)).To(Succeed())
		Expect(guardErr).NotTo(HaveOccurred())

		Expect(spy.Paths()).To(HaveLen(1))
		Expect(process.Paths()).To(BeEmpty())
	})

	It("records the thread error context in the dump", func() {
		engine.SetThreadGuard(spy.Handle, "context")

		t := thread.New(func(self *thread.Thread, _ any) any {
			if st, ok := diag.FromContext(self.Context()); ok {
				st.PushContext("Decoding", "frame 7")
			}

			crashguard.TriggerFault()

			return nil
		}, "context", thread.PriorityHighest)

		Expect(t.Start(nil)).To(Succeed())
		Expect(thread.WaitForFinish(ctx, t)).To(Succeed())

		info := readDump(spy.Paths()[0])
		if diag.ContextEnabled {
			Expect(info.Context).To(HaveLen(1))
			Expect(info.Context[0].Name).To(Equal("Decoding"))
		}
	})

	It("returns the result of a thread that does not fault", func() {
		engine.SetThreadGuard(spy.Handle, "calm")

		t := thread.New(func(_ *thread.Thread, arg any) any {
			return arg.(int) + 1
		}, "calm", thread.PriorityNormal)

		Expect(t.Start(41)).To(Succeed())

		res, err := t.Join(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(42))
		Expect(t.Crashed()).To(BeFalse())
		Expect(spy.Paths()).To(BeEmpty())
	})
})
