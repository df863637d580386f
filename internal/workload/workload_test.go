package workload_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pavanmanishd/dynarray"
	"github.com/pavanmanishd/dynarray/internal/workload"
)

const sample = `
name: small
steps:
  - op: push
    count: 3
    value: 10
  - op: check
    len: 3
    cap: 4
  - op: reserve
    capacity: 9
  - op: check
    cap: 9
`

var _ = Describe("Parse", func() {
	It("decodes steps", func() {
		w, err := workload.Parse([]byte(sample))
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Name).To(Equal("small"))
		Expect(w.Steps).To(HaveLen(4))
		Expect(w.Steps[0]).To(Equal(workload.Step{Op: workload.OpPush, Count: 3, Value: 10}))
		Expect(*w.Steps[1].Len).To(Equal(3))
		Expect(w.Steps[3].Len).To(BeNil())
	})

	DescribeTable("rejects invalid workloads",
		func(doc string, msg string) {
			_, err := workload.Parse([]byte(doc))
			Expect(err).To(MatchError(ContainSubstring(msg)))
		},
		Entry("unknown op", "steps: [{op: pop}]", `unknown op "pop"`),
		Entry("negative push", "steps: [{op: push, count: -1}]", "negative push count"),
		Entry("negative reserve", "steps: [{op: reserve, capacity: -5}]", "negative capacity"),
		Entry("empty check", "steps: [{op: check}]", "check needs len or cap"),
	)

	It("reports YAML syntax errors", func() {
		_, err := workload.Parse([]byte("steps: [op: push"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Load", func() {
	It("reads a workload file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "w.yaml")
		Expect(os.WriteFile(path, []byte(sample), 0o644)).To(Succeed())

		w, err := workload.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Steps).To(HaveLen(4))
	})

	It("names the file in validation errors", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bad.yaml")
		Expect(os.WriteFile(path, []byte("steps: [{op: shrink}]"), 0o644)).To(Succeed())

		_, err := workload.Load(path)
		Expect(err).To(MatchError(ContainSubstring("bad.yaml")))
	})

	It("fails for a missing file", func() {
		_, err := workload.Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Run", func() {
	var (
		tracker *dynarray.TrackingAllocator[int]
		arr     *dynarray.Array[int]
	)

	BeforeEach(func() {
		tracker = dynarray.NewTrackingAllocator[int](nil, nil)
		arr = dynarray.NewWith[int](tracker)
	})

	AfterEach(func() {
		arr.Release()
		Expect(tracker.CheckLeaks()).To(Succeed())
		Expect(tracker.Metrics().Balanced()).To(BeTrue())
	})

	It("passes the reference scenario", func() {
		var seen []workload.Result
		results, err := workload.Run(workload.Scenario(), arr, func(_ workload.Step, r workload.Result) {
			seen = append(seen, r)
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(Equal(seen))
		Expect(results[len(results)-1]).To(Equal(workload.Result{Len: 460, Cap: 800}))
	})

	It("pushes consecutive values from the start value", func() {
		w, err := workload.Parse([]byte(sample))
		Expect(err).NotTo(HaveOccurred())

		_, err = workload.Run(w, arr, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect([]int{arr.Get(0), arr.Get(1), arr.Get(2)}).To(Equal([]int{10, 11, 12}))
	})

	It("stops at the first failed check", func() {
		want := 5
		w := &workload.Workload{Steps: []workload.Step{
			{Op: workload.OpPush, Count: 2},
			{Op: workload.OpCheck, Len: &want},
			{Op: workload.OpPush, Count: 2},
		}}

		results, err := workload.Run(w, arr, nil)
		Expect(err).To(MatchError(ContainSubstring("len = 2, want 5")))
		Expect(results).To(HaveLen(1))
		Expect(arr.Len()).To(Equal(2))
	})
})
