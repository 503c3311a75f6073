package diag_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/faultline/pkg/diag"
	"github.com/smykla-labs/faultline/pkg/errcode"
)

var _ = Describe("State", func() {
	var (
		log *recordingLogger
		st  *diag.State
	)

	BeforeEach(func() {
		log = &recordingLogger{}
		st = diag.NewState(diag.WithLogger(log))
	})

	Describe("Error", func() {
		It("reads each report once", func() {
			Expect(st.Error()).To(Equal(errcode.None))
			Expect(st.Error()).To(Equal(errcode.None))

			st.Report(errcode.LevelWarning, errcode.AccessDenied)
			Expect(st.Error()).To(Equal(errcode.AccessDenied))
			Expect(st.Error()).To(Equal(errcode.None))

			st.Report(errcode.LevelError, errcode.InvalidValue)
			Expect(st.Error()).To(Equal(errcode.InvalidValue))
			Expect(st.Error()).To(Equal(errcode.None))
		})

		It("peeks at the last error", func() {
			st.Report(errcode.LevelError, errcode.Corrupt)
			Expect(st.LastError()).To(Equal(errcode.Corrupt))
			Expect(st.Error()).To(Equal(errcode.Corrupt))
		})
	})

	Describe("Context", func() {
		It("is absent before the first push", func() {
			Expect(st.Context()).To(BeNil())
		})

		It("nests frames in push order", func() {
			st.PushContext("error test", "data")

			ctx := st.Context()
			if !diag.ContextEnabled {
				Expect(ctx).To(BeNil())
				return
			}

			Expect(ctx).NotTo(BeNil())
			Expect(ctx.Depth).To(Equal(1))
			Expect(ctx.Frame[0]).To(Equal(diag.Frame{Name: "error test", Data: "data"}))

			st.PopContext()
			Expect(st.Context()).NotTo(BeNil())
			Expect(st.Context().Depth).To(Equal(0))

			st.PushContext("error test", "data")
			st.PushContext("another test", "more data")

			ctx = st.Context()
			Expect(ctx.Depth).To(Equal(2))
			Expect(ctx.Frame).To(Equal([]diag.Frame{
				{Name: "error test", Data: "data"},
				{Name: "another test", Data: "more data"},
			}))

			st.PopContext()
			ctx = st.Context()
			Expect(ctx.Depth).To(Equal(1))
			Expect(ctx.Frame[0]).To(Equal(diag.Frame{Name: "error test", Data: "data"}))

			st.PopContext()
			Expect(st.Context().Depth).To(Equal(0))
		})

		It("tolerates popping an empty stack", func() {
			st.PopContext()
			st.PushContext("only", "frame")
			st.PopContext()
			st.PopContext()

			if diag.ContextEnabled {
				Expect(st.Context().Depth).To(Equal(0))
			} else {
				Expect(st.Context()).To(BeNil())
			}
		})

		It("returns a live view", func() {
			if !diag.ContextEnabled {
				Skip("error context compiled out")
			}

			st.PushContext("outer", "")
			view := st.Context()
			st.PushContext("inner", "")

			Expect(view.Depth).To(Equal(2))
			Expect(view.Frame[1].Name).To(Equal("inner"))
		})

		It("evicts the oldest frame on overflow", func() {
			if !diag.ContextEnabled {
				Skip("error context compiled out")
			}

			st = diag.NewState(diag.WithLogger(log), diag.WithMaxDepth(3))
			for _, name := range []string{"a", "b", "c", "d", "e"} {
				st.PushContext(name, "")
			}

			ctx := st.Context()
			Expect(ctx.Depth).To(Equal(3))
			Expect(ctx.Frame).To(HaveLen(3))
			Expect(ctx.Frame[0].Name).To(Equal("c"))
			Expect(ctx.Frame[2].Name).To(Equal("e"))

			warnings := 0
			for _, l := range log.Lines() {
				if l.Level == "warn" && strings.Contains(l.Msg, "overflow") {
					warnings++
				}
			}
			Expect(warnings).To(Equal(2))
		})

		It("truncates long fields at rune boundaries", func() {
			if !diag.ContextEnabled {
				Skip("error context compiled out")
			}

			st = diag.NewState(diag.WithMaxFieldLength(5))
			st.PushContext("abcdefgh", "żółw")

			frame := st.Context().Frame[0]
			Expect(frame.Name).To(Equal("abcde"))
			Expect(frame.Data).To(Equal("żó"))
		})

		It("copies frames", func() {
			if !diag.ContextEnabled {
				Expect(st.Frames()).To(BeNil())
				return
			}

			st.PushContext("outer", "1")
			frames := st.Frames()
			st.PopContext()

			Expect(frames).To(Equal([]diag.Frame{{Name: "outer", Data: "1"}}))
		})
	})

	Describe("Report", func() {
		It("logs context frames outermost first", func() {
			st.PushContext("loading", "config.toml")
			st.PushContext("", "")
			st.Report(errcode.LevelWarning, errcode.AccessDenied)

			if !diag.ContextEnabled {
				Expect(log.Lines()).To(BeEmpty())
				return
			}

			Expect(log.Lines()).To(Equal([]line{
				{Level: "warn", Msg: "When loading: config.toml"},
				{Level: "warn", Msg: "When <something>: "},
			}))
		})

		It("logs nothing without context", func() {
			st.Report(errcode.LevelError, errcode.Timeout)
			Expect(log.Lines()).To(BeEmpty())
		})

		It("reflects the context as of the report", func() {
			if !diag.ContextEnabled {
				Skip("error context compiled out")
			}

			st.PushContext("step", "one")
			st.Report(errcode.LevelError, errcode.Corrupt)
			st.PopContext()

			Expect(log.Lines()).To(ConsistOf(line{Level: "error", Msg: "When step: one"}))
			Expect(st.Error()).To(Equal(errcode.Corrupt))
		})

		It("skips context below the report level", func() {
			st = diag.NewState(diag.WithLogger(log), diag.WithReportLevel(errcode.LevelError))
			st.PushContext("step", "one")
			st.Report(errcode.LevelWarning, errcode.Deprecated)

			Expect(log.Lines()).To(BeEmpty())
			Expect(st.Error()).To(Equal(errcode.Deprecated))
		})
	})

	Describe("Warnf and Errorf", func() {
		It("logs context before the message", func() {
			if !diag.ContextEnabled {
				Skip("error context compiled out")
			}

			st.PushContext("parsing", "line 4")
			st.Warnf("odd value %d", 7)

			Expect(log.Lines()).To(Equal([]line{
				{Level: "warn", Msg: "When parsing: line 4"},
				{Level: "warn", Msg: "odd value 7"},
			}))
		})

		It("records the code after logging once", func() {
			st.PushContext("writing", "dump")
			st.Errorf(errcode.LevelError, errcode.SystemCallFail, "write failed: %s", "EACCES")

			Expect(st.Error()).To(Equal(errcode.SystemCallFail))

			lines := log.Lines()
			Expect(lines[len(lines)-1]).To(Equal(line{Level: "error", Msg: "write failed: EACCES"}))

			if diag.ContextEnabled {
				Expect(lines).To(HaveLen(2))
			}
		})
	})

	Describe("context.Context carriage", func() {
		It("round trips a state", func() {
			ctx := diag.WithState(context.Background(), st)

			got, ok := diag.FromContext(ctx)
			Expect(ok).To(BeTrue())
			Expect(got).To(BeIdenticalTo(st))
		})

		It("reports absence", func() {
			_, ok := diag.FromContext(context.Background())
			Expect(ok).To(BeFalse())

			//nolint:staticcheck // nil context is tolerated on purpose
			_, ok = diag.FromContext(nil)
			Expect(ok).To(BeFalse())
		})
	})
})
