package observ

import (
	"testing"
	"time"

	"kr.dev/diff"
)

func TestTimerSummary(t *testing.T) {
	clock := time.Unix(0, 0)
	timer := NewTimer()
	timer.now = func() time.Time { return clock }

	end := timer.Begin("collect")
	clock = clock.Add(2 * time.Millisecond)
	end("3 files")
	end = timer.Begin("check")
	clock = clock.Add(500 * time.Microsecond)
	end("")

	diff.Test(t, t.Errorf, timer.Summary(), "timings:\n"+
		"  collect          2.00 ms  3 files\n"+
		"  check            0.50 ms\n"+
		"  total            2.50 ms\n")

	report := timer.Report()
	if report.TotalMS != 2.5 || len(report.Phases) != 2 {
		t.Fatalf("report = %+v", report)
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("report = %+v", r)
	}
}
