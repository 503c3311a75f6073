package crashguard_test

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"

	"github.com/smykla-labs/faultline/internal/crashdump"
	"github.com/smykla-labs/faultline/internal/metrics"
	"github.com/smykla-labs/faultline/pkg/crashguard"
	"github.com/smykla-labs/faultline/pkg/diag"
	"github.com/smykla-labs/faultline/pkg/errcode"
)

var _ = Describe("Run", func() {
	var (
		dir     string
		engine  *crashguard.Engine
		spy     *handlerSpy
		states  *transitionLog
		reg     *prometheus.Registry
		counter *metrics.Recorder
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		spy = &handlerSpy{}
		states = &transitionLog{}
		reg = prometheus.NewPedanticRegistry()
		counter = metrics.New(reg)
		engine = crashguard.New(
			crashguard.WithDumpDir(dir),
			crashguard.WithMetrics(counter),
			crashguard.WithStateObserver(states.Observe),
		)
	})

	It("returns the result of work that completes", func() {
		res, status := crashguard.Run(engine, func(n int) int { return n * 2 }, 21, spy.Handle, "double")

		Expect(status).To(Equal(crashguard.StatusCompleted))
		Expect(res).To(Equal(42))
		Expect(spy.Paths()).To(BeEmpty())
		Expect(states.All()).To(Equal([]transition{
			{crashguard.StateUnarmed, crashguard.StateArmed},
			{crashguard.StateArmed, crashguard.StateUnarmed},
		}))
	})

	It("contains a memory fault and calls the handler once with the dump path", func() {
		res, status := crashguard.Run(engine, faultyWork, 0, spy.Handle, "memory")

		Expect(status).To(Equal(crashguard.StatusDumpGenerated))
		Expect(status.Crashed()).To(BeTrue())
		Expect(res).To(BeZero())

		paths := spy.Paths()
		Expect(paths).To(HaveLen(1))
		Expect(paths[0]).NotTo(BeEmpty())
		Expect(filepath.Dir(paths[0])).To(Equal(dir))

		info := readDump(paths[0])
		Expect(info.Label).To(Equal("memory"))
		Expect(info.FaultKind).To(Equal("memory_access"))
		Expect(info.StackTrace).To(ContainSubstring("TriggerFault"))

		Expect(counterValue(reg, "faultline_guard_faults_total")).To(BeNumerically("==", 1))
		Expect(counterValue(reg, "faultline_guard_dumps_total")).To(BeNumerically("==", 1))
	})

	It("walks the guard state machine on a fault", func() {
		crashguard.Run(engine, faultyWork, 0, spy.Handle, "states")

		Expect(states.All()).To(Equal([]transition{
			{crashguard.StateUnarmed, crashguard.StateArmed},
			{crashguard.StateArmed, crashguard.StateFaulted},
			{crashguard.StateFaulted, crashguard.StateDumping},
			{crashguard.StateDumping, crashguard.StateCallback},
			{crashguard.StateCallback, crashguard.StateResumed},
		}))
	})

	It("classifies integer division by zero as arithmetic", func() {
		_, status := crashguard.Run(engine, divide, 0, spy.Handle, "divide")

		Expect(status).To(Equal(crashguard.StatusDumpGenerated))
		Expect(readDump(spy.Paths()[0]).FaultKind).To(Equal("arithmetic"))
	})

	It("classifies explicit panics as aborts", func() {
		_, status := crashguard.Run(engine, func(string) struct{} {
			panic("boom")
		}, "", spy.Handle, "abort")

		Expect(status).To(Equal(crashguard.StatusDumpGenerated))

		info := readDump(spy.Paths()[0])
		Expect(info.FaultKind).To(Equal("abort"))
		Expect(info.PanicValue).To(Equal("boom"))
	})

	It("can be used again after containing a fault", func() {
		for range 3 {
			_, status := crashguard.Run(engine, faultyWork, 0, spy.Handle, "again")
			Expect(status).To(Equal(crashguard.StatusDumpGenerated))
		}

		res, status := crashguard.Run(engine, divide, 4, spy.Handle, "again")
		Expect(status).To(Equal(crashguard.StatusCompleted))
		Expect(res).To(Equal(25))

		paths := spy.Paths()
		Expect(paths).To(HaveLen(3))
		Expect(paths[0]).NotTo(Equal(paths[1]))
		Expect(paths[1]).NotTo(Equal(paths[2]))
	})

	It("lets the innermost guard contain a fault", func() {
		outer := &handlerSpy{}

		res, status := crashguard.Run(engine, func(int) crashguard.Status {
			_, inner := crashguard.Run(engine, faultyWork, 0, spy.Handle, "inner")
			return inner
		}, 0, outer.Handle, "outer")

		Expect(status).To(Equal(crashguard.StatusCompleted))
		Expect(res).To(Equal(crashguard.StatusDumpGenerated))
		Expect(spy.Paths()).To(HaveLen(1))
		Expect(outer.Paths()).To(BeEmpty())
	})

	It("includes the error context of the faulting thread", func() {
		st := diag.NewState()
		st.PushContext("Loading", "scene.bin")
		st.Report(errcode.LevelError, errcode.Corrupt)

		_, status := crashguard.Run(engine, faultyWork, 0, spy.Handle, "context", crashguard.WithDiag(st))
		Expect(status).To(Equal(crashguard.StatusDumpGenerated))

		info := readDump(spy.Paths()[0])
		Expect(info.LastError).To(Equal(errcode.Corrupt.String()))

		if diag.ContextEnabled {
			Expect(info.Context).To(Equal([]crashdump.ContextFrame{{Name: "Loading", Data: "scene.bin"}}))
		} else {
			Expect(info.Context).To(BeEmpty())
		}

		Expect(st.Error()).To(Equal(errcode.Corrupt))
	})

	Context("when the dump cannot be written", func() {
		var ctrl *gomock.Controller

		BeforeEach(func() {
			ctrl = gomock.NewController(GinkgoT())
		})

		It("calls the handler with an empty path", func() {
			writer := NewMockDumpWriter(ctrl)
			writer.EXPECT().NewCrashInfo("nodump").Return(&crashdump.CrashInfo{Label: "nodump"})
			writer.EXPECT().Write(gomock.Any()).Return("", errors.New("disk full"))

			e := crashguard.New(crashguard.WithDumpWriter(writer), crashguard.WithMetrics(counter))

			_, status := crashguard.Run(e, faultyWork, 0, spy.Handle, "nodump")

			Expect(status).To(Equal(crashguard.StatusDumpFailed))
			Expect(spy.Paths()).To(Equal([]string{""}))
		})

		It("fills in the fault before writing", func() {
			writer := NewMockDumpWriter(ctrl)
			writer.EXPECT().NewCrashInfo("fill").Return(&crashdump.CrashInfo{Label: "fill"})
			writer.EXPECT().Write(gomock.Any()).DoAndReturn(func(info *crashdump.CrashInfo) (string, error) {
				Expect(info.FaultKind).To(Equal("abort"))
				Expect(info.PanicValue).To(Equal("kaput"))
				return "/dumps/fill.dump.json", nil
			})

			e := crashguard.New(crashguard.WithDumpWriter(writer))

			_, status := crashguard.Run(e, func(int) int { panic("kaput") }, 0, spy.Handle, "fill")

			Expect(status).To(Equal(crashguard.StatusDumpGenerated))
			Expect(spy.Paths()).To(Equal([]string{"/dumps/fill.dump.json"}))
		})
	})

	Context("when the handler faults", func() {
		It("does not contain the second fault", func() {
			faultingHandler := func(string) { crashguard.TriggerFault() }

			Expect(func() {
				crashguard.Run(engine, faultyWork, 0, faultingHandler, "reentrant")
			}).To(PanicWith(BeAssignableToTypeOf(&crashguard.ReentrantFault{})))

			Expect(states.All()).To(ContainElement(
				transition{crashguard.StateCallback, crashguard.StateDisarmedOnReentrantFault},
			))
		})

		It("escapes enclosing guards", func() {
			faultingHandler := func(string) { panic("handler broke") }

			Expect(func() {
				crashguard.Run(engine, func(int) int {
					_, _ = crashguard.Run(engine, faultyWork, 0, faultingHandler, "inner")
					return 0
				}, 0, spy.Handle, "outer")
			}).To(PanicWith(BeAssignableToTypeOf(&crashguard.ReentrantFault{})))

			Expect(spy.Paths()).To(BeEmpty())
			Expect(counterValue(reg, "faultline_guard_reentrant_faults_total")).To(BeNumerically("==", 1))
		})
	})
})

var _ = Describe("RunChecked", func() {
	It("skips the work when a debugger is attached", func() {
		called := false
		spy := &handlerSpy{}
		engine := crashguard.New(crashguard.WithDumpDir(GinkgoT().TempDir()))

		res, status := crashguard.RunChecked(engine, func(int) int {
			called = true
			return 1
		}, 0, spy.Handle, "debugged", crashguard.WithDebuggerCheck(func() bool { return true }))

		Expect(status).To(Equal(crashguard.StatusDebuggerPresentSkipped))
		Expect(res).To(BeZero())
		Expect(called).To(BeFalse())
	})

	It("runs guarded when no debugger is attached", func() {
		spy := &handlerSpy{}
		engine := crashguard.New(crashguard.WithDumpDir(GinkgoT().TempDir()))

		_, status := crashguard.RunChecked(engine, faultyWork, 0, spy.Handle, "free",
			crashguard.WithDebuggerCheck(func() bool { return false }))

		Expect(status).To(Equal(crashguard.StatusDumpGenerated))
		Expect(spy.Paths()).To(HaveLen(1))
	})

	It("honours the debugger override variable", func() {
		GinkgoT().Setenv("FAULTLINE_DEBUGGER_ATTACHED", "1")

		engine := crashguard.New(crashguard.WithDumpDir(GinkgoT().TempDir()))

		_, status := crashguard.RunChecked(engine, faultyWork, 0, nil, "env")
		Expect(status).To(Equal(crashguard.StatusDebuggerPresentSkipped))
	})
})

var _ = Describe("Status", func() {
	DescribeTable("String",
		func(s crashguard.Status, want string) {
			Expect(s.String()).To(Equal(want))
		},
		Entry("completed", crashguard.StatusCompleted, "completed"),
		Entry("generated", crashguard.StatusDumpGenerated, "dump_generated"),
		Entry("failed", crashguard.StatusDumpFailed, "dump_failed"),
		Entry("skipped", crashguard.StatusDebuggerPresentSkipped, "debugger_present_skipped"),
		Entry("unknown", crashguard.Status(9), "Status(9)"),
	)

	It("parses names back", func() {
		s, err := crashguard.StatusString("dump_failed")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(crashguard.StatusDumpFailed))

		k, err := crashguard.FaultKindString("memory_access")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(crashguard.FaultMemoryAccess))

		Expect(crashguard.StateDisarmedOnReentrantFault.String()).To(Equal("disarmed_on_reentrant_fault"))

		_, err = crashguard.StatusString("exploded")
		Expect(err).To(HaveOccurred())
	})
})

// counterValue sums every series of the named counter family.
func counterValue(reg *prometheus.Registry, name string) float64 {
	families, err := reg.Gather()
	Expect(err).NotTo(HaveOccurred())

	var sum float64

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}

		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
	}

	return sum
}
