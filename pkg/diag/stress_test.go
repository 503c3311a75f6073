package diag_test

import (
	"runtime"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"

	"github.com/smykla-labs/faultline/pkg/diag"
	"github.com/smykla-labs/faultline/pkg/errcode"
)

var errMismatch = errors.New("diagnostic state mismatch")

// exercise runs one pass of the register and context sequence against st and returns an
// error describing the first mismatch.
func exercise(st *diag.State, id int) error {
	if got := st.Error(); got != errcode.None {
		return errors.Wrapf(errMismatch, "worker %d: stale code %s", id, got)
	}

	st.Report(errcode.LevelWarning, errcode.AccessDenied)
	if got := st.Error(); got != errcode.AccessDenied {
		return errors.Wrapf(errMismatch, "worker %d: read %s", id, got)
	}

	st.Report(errcode.LevelError, errcode.InvalidValue)
	if got := st.Error(); got != errcode.InvalidValue {
		return errors.Wrapf(errMismatch, "worker %d: read %s", id, got)
	}

	if got := st.Error(); got != errcode.None {
		return errors.Wrapf(errMismatch, "worker %d: second read %s", id, got)
	}

	st.PushContext("error test", "data")
	st.PushContext("another test", "more data")

	if ctx := st.Context(); diag.ContextEnabled {
		if ctx == nil || ctx.Depth != 2 ||
			ctx.Frame[0] != (diag.Frame{Name: "error test", Data: "data"}) ||
			ctx.Frame[1] != (diag.Frame{Name: "another test", Data: "more data"}) {
			return errors.Wrapf(errMismatch, "worker %d: context %+v", id, ctx)
		}
	} else if ctx != nil {
		return errors.Wrapf(errMismatch, "worker %d: context present while disabled", id)
	}

	st.PopContext()

	if ctx := st.Context(); diag.ContextEnabled && (ctx.Depth != 1 || ctx.Frame[0].Name != "error test") {
		return errors.Wrapf(errMismatch, "worker %d: after pop %+v", id, ctx)
	}

	st.PopContext()

	if ctx := st.Context(); diag.ContextEnabled && ctx.Depth != 0 {
		return errors.Wrapf(errMismatch, "worker %d: after second pop %+v", id, ctx)
	}

	return nil
}

var _ = Describe("Concurrent states", func() {
	It("keeps every goroutine's state isolated", func() {
		const (
			workers = 32
			passes  = 512
		)

		var g errgroup.Group

		for id := range workers {
			g.Go(func() error {
				st := diag.NewState()

				for range passes {
					if err := exercise(st, id); err != nil {
						return err
					}

					runtime.Gosched()
				}

				return nil
			})
		}

		Expect(g.Wait()).To(Succeed())
	})
})
