package thread_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"

	"github.com/smykla-labs/faultline/pkg/diag"
	"github.com/smykla-labs/faultline/pkg/errcode"
	"github.com/smykla-labs/faultline/pkg/thread"
)

// recoveringGuard contains every panic and remembers registrations.
type recoveringGuard struct {
	mu     sync.Mutex
	ran    []thread.ID
	labels map[thread.ID]string
}

func newRecoveringGuard() *recoveringGuard {
	return &recoveringGuard{labels: map[thread.ID]string{}}
}

func (g *recoveringGuard) RunThread(id thread.ID, _ *diag.State, body func()) (crashed bool) {
	g.mu.Lock()
	g.ran = append(g.ran, id)
	g.mu.Unlock()

	defer func() {
		if recover() != nil {
			crashed = true
		}
	}()

	body()

	return false
}

func (g *recoveringGuard) SetGuardFor(id thread.ID, _ func(string), label string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.labels[id] = label
}

func (g *recoveringGuard) Label(id thread.ID) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.labels[id]
}

var _ = Describe("Thread", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	})

	AfterEach(func() {
		cancel()
		thread.SetDefaultGuard(nil)
	})

	It("runs the body with its argument and returns the result", func() {
		t := thread.New(func(_ *thread.Thread, arg any) any {
			return fmt.Sprintf("hello %v", arg)
		}, "greeter", thread.PriorityNormal)

		Expect(t.IsStarted()).To(BeFalse())
		Expect(t.Start("world")).To(Succeed())

		res, err := t.Join(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal("hello world"))
		Expect(t.IsStarted()).To(BeTrue())
		Expect(t.IsRunning()).To(BeFalse())
		Expect(t.Crashed()).To(BeFalse())
	})

	It("assigns distinct non-zero identities", func() {
		a := thread.New(nil, "a", thread.PriorityLow)
		b := thread.New(nil, "b", thread.PriorityLow)

		Expect(a.ID()).NotTo(BeZero())
		Expect(a.ID()).NotTo(Equal(b.ID()))
		Expect(a.Name()).To(Equal("a"))
		Expect(a.Priority()).To(Equal(thread.PriorityLow))
	})

	It("refuses to start twice", func() {
		t := thread.New(func(*thread.Thread, any) any { return nil }, "once", thread.PriorityNormal)

		Expect(t.Start(nil)).To(Succeed())
		Expect(t.Start(nil)).To(MatchError(thread.ErrAlreadyStarted))
	})

	It("cannot be joined before it starts", func() {
		t := thread.New(func(*thread.Thread, any) any { return nil }, "idle", thread.PriorityNormal)

		_, err := t.Join(ctx)
		Expect(err).To(MatchError(thread.ErrNotStarted))
		Expect(thread.WaitForFinish(ctx, t)).To(MatchError(thread.ErrNotStarted))
	})

	It("stops cooperatively on Terminate", func() {
		t := thread.New(func(self *thread.Thread, _ any) any {
			<-self.Context().Done()
			return "stopped"
		}, "looper", thread.PriorityBelowNormal)

		Expect(t.Start(nil)).To(Succeed())
		Expect(thread.WaitForStartup(ctx, t)).To(Succeed())
		Expect(t.IsRunning()).To(BeTrue())

		t.Terminate()

		Eventually(t.Done()).Should(BeClosed())

		res, err := t.Join(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal("stopped"))
	})

	It("gives up joining when the context ends", func() {
		block := make(chan struct{})
		defer close(block)

		t := thread.New(func(*thread.Thread, any) any {
			<-block
			return nil
		}, "stuck", thread.PriorityNormal)
		Expect(t.Start(nil)).To(Succeed())

		short, stop := context.WithTimeout(ctx, 20*time.Millisecond)
		defer stop()

		_, err := t.Join(short)
		Expect(err).To(MatchError(context.DeadlineExceeded))
	})

	It("owns its diagnostic state", func() {
		t := thread.New(func(self *thread.Thread, _ any) any {
			st, ok := diag.FromContext(self.Context())
			if !ok || st != self.Diag() {
				return errcode.InternalFailure
			}

			st.Report(errcode.LevelError, errcode.Timeout)

			return st.Error()
		}, "owner", thread.PriorityNormal)

		Expect(t.Start(nil)).To(Succeed())

		res, err := t.Join(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(errcode.Timeout))
	})

	Context("with a guard", func() {
		It("reports contained faults", func() {
			guard := newRecoveringGuard()

			t := thread.New(func(*thread.Thread, any) any {
				panic("broken")
			}, "faulty", thread.PriorityNormal, thread.WithGuard(guard))

			Expect(t.Start(nil)).To(Succeed())
			Expect(thread.WaitForFinish(ctx, t)).To(Succeed())
			Expect(t.Crashed()).To(BeTrue())
		})

		It("uses the default guard resolved at start", func() {
			guard := newRecoveringGuard()

			t := thread.New(func(self *thread.Thread, _ any) any {
				return self.SetGuard(func(string) {}, "mine")
			}, "late", thread.PriorityNormal)

			thread.SetDefaultGuard(guard)
			Expect(t.Start(nil)).To(Succeed())

			res, err := t.Join(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeNil())
			Expect(guard.Label(t.ID())).To(Equal("mine"))
		})

		It("rejects SetGuard without any guard", func() {
			t := thread.New(func(self *thread.Thread, _ any) any {
				return self.SetGuard(func(string) {}, "none")
			}, "bare", thread.PriorityNormal)

			Expect(t.Start(nil)).To(Succeed())

			res, err := t.Join(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(MatchError(thread.ErrNoGuard))
		})
	})

	It("runs many threads concurrently with independent state", func() {
		const workers = 32

		threads := make([]*thread.Thread, workers)
		for i := range threads {
			threads[i] = thread.New(func(self *thread.Thread, arg any) any {
				st := self.Diag()
				code := errcode.Code(arg.(int)%int(errcode.Timeout) + 1)

				for range 512 {
					st.Report(errcode.LevelDebug, code)
					if got := st.Error(); got != code {
						return fmt.Errorf("%s read %s, want %s", self.Name(), got, code)
					}
				}

				return nil
			}, fmt.Sprintf("stress-%d", i), thread.PriorityNormal)
		}

		var g errgroup.Group

		for i, t := range threads {
			Expect(t.Start(i)).To(Succeed())

			g.Go(func() error {
				res, err := t.Join(ctx)
				if err != nil {
					return err
				}

				if res != nil {
					return res.(error)
				}

				return nil
			})
		}

		Expect(g.Wait()).To(Succeed())
	})
})

var _ = Describe("Priority", func() {
	It("names known priorities", func() {
		Expect(thread.PriorityTimecritical.String()).To(Equal("timecritical"))
		Expect(thread.Priority(42).String()).To(Equal("Priority(42)"))
		Expect(thread.Priority(-1).IsAPriority()).To(BeFalse())
	})

	It("parses names", func() {
		p, err := thread.PriorityString("below_normal")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(thread.PriorityBelowNormal))
	})
})
