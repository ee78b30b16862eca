package render

import (
	"math"
	"strings"
	"testing"
)

func TestStatsReporter_Window(t *testing.T) {
	r := NewStatsReporter(4)
	if r.WindowSummary() != nil || r.FormatLatest() != "No data." {
		t.Fatal("empty reporter should report nothing")
	}
	for i := 1; i <= 6; i++ {
		r.Collect(FrameStats{
			Frame:       i,
			LOD:         i % 2,
			LiveDraws:   10,
			SpriteBlits: 20,
			SpriteHits:  3,
			SpriteMiss:  1,
		})
	}
	wr := r.WindowSummary()
	if wr.SampleCount != 4 || wr.FromFrame != 3 || wr.ToFrame != 6 {
		t.Fatalf("window = %d samples F=%d..%d", wr.SampleCount, wr.FromFrame, wr.ToFrame)
	}
	if wr.LODFrames[0] != 2 || wr.LODFrames[1] != 2 {
		t.Fatalf("lod frames = %v", wr.LODFrames)
	}
	if wr.AvgLive != 10 || wr.AvgBlits != 20 {
		t.Fatalf("averages live=%.1f blits=%.1f", wr.AvgLive, wr.AvgBlits)
	}
	if math.Abs(wr.HitRate-0.75) > 1e-9 {
		t.Fatalf("hit rate = %f, want 0.75", wr.HitRate)
	}
	if wr.TotalSpriteMisses != 4 {
		t.Fatalf("sprite misses = %d, want 4", wr.TotalSpriteMisses)
	}
	out := wr.Format()
	for _, want := range []string{"F=3..6", "LOD1", "hit rate=75.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Format missing %q:\n%s", want, out)
		}
	}
	if !strings.HasPrefix(r.FormatLatest(), "F=6 LOD0") {
		t.Fatalf("FormatLatest = %q", r.FormatLatest())
	}
}

func TestFrameStats_Drawn(t *testing.T) {
	fs := FrameStats{LiveDraws: 3, SpriteBlits: 4}
	if fs.Drawn() != 7 {
		t.Fatalf("Drawn = %d", fs.Drawn())
	}
}

func TestWindowReport_NilFormat(t *testing.T) {
	var wr *WindowReport
	if !strings.Contains(wr.Format(), "No frames") {
		t.Fatal("nil report format")
	}
}
