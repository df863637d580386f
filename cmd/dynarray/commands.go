package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/dynarray"
	"github.com/pavanmanishd/dynarray/internal/workload"
)

// session is one array plus the allocator stack behind it.
type session struct {
	arr     *dynarray.Array[int]
	tracker *dynarray.TrackingAllocator[int]
	closeFn func() error
}

func newSession(name string, chunk int, lg *zap.Logger) (*session, error) {
	var (
		base    dynarray.Allocator[int]
		closeFn = func() error { return nil }
	)
	switch name {
	case "heap":
		base = dynarray.NewHeapAllocator[int]()
	case "manual":
		m := dynarray.NewManualAllocator[int]()
		base, closeFn = m, m.Close
	case "arena":
		ar := dynarray.NewArena(chunk)
		base = dynarray.NewArenaAllocator[int](ar)
		closeFn = func() error {
			lg.Info("arena", zap.Any("metrics", ar.Metrics()))
			ar.Release()
			return nil
		}
	default:
		return nil, errors.Errorf("unknown allocator %q", name)
	}
	tracker := dynarray.NewTrackingAllocator(base, lg.Named(name))
	return &session{
		arr:     dynarray.NewWith[int](tracker),
		tracker: tracker,
		closeFn: closeFn,
	}, nil
}

// finish releases the array and fails if any block is unaccounted for.
func (s *session) finish() error {
	s.arr.Release()
	m := s.tracker.Metrics()
	logger.Info("allocations",
		zap.Int("allocs", m.Allocs),
		zap.Int("releases", m.Releases),
		zap.Int("peak_bytes", m.PeakBytes),
		zap.Int("total_bytes", m.TotalBytes))
	leakErr := s.tracker.CheckLeaks()
	if err := s.closeFn(); err != nil {
		return errors.Wrap(err, "close allocator")
	}
	return leakErr
}

func runWorkload(w *workload.Workload) error {
	s, err := newSession(allocatorName, chunkSize, logger)
	if err != nil {
		return err
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("workload %s (%s allocator)", w.Name, allocatorName)))
	_, runErr := workload.Run(w, s.arr, func(step workload.Step, r workload.Result) {
		fmt.Printf("  %-22s len=%-6d cap=%d\n", step, r.Len, r.Cap)
	})
	if err := s.finish(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	fmt.Println(okStyle.Render("ok"))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	return runWorkload(workload.Scenario())
}

func runReplay(cmd *cobra.Command, args []string) error {
	w, err := workload.Load(workloadFile)
	if err != nil {
		return err
	}
	if w.Name == "" {
		w.Name = workloadFile
	}
	return runWorkload(w)
}

func runGrowth(cmd *cobra.Command, args []string) error {
	if pushCount < 0 {
		return errors.Errorf("negative count %d", pushCount)
	}
	s, err := newSession(allocatorName, chunkSize, logger)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("growth over %d pushes (%s allocator)", pushCount, allocatorName)))
	caps := make([]float64, 0, pushCount)
	prev := s.arr.Cap()
	for i := 0; i < pushCount; i++ {
		s.arr.Push(i)
		if c := s.arr.Cap(); c != prev {
			fmt.Printf("  len=%-8d cap %d -> %d\n", s.arr.Len(), prev, c)
			prev = c
		}
		caps = append(caps, float64(s.arr.Cap()))
	}
	fmt.Printf("  final len=%d cap=%d utilization=%.2f\n", s.arr.Len(), s.arr.Cap(), s.arr.Utilization())

	if plot && len(caps) > 0 {
		fmt.Println(asciigraph.Plot(caps,
			asciigraph.Height(12),
			asciigraph.Width(72),
			asciigraph.Caption("capacity by length")))
	}
	return s.finish()
}
