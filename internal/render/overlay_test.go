package render

import "testing"

func textOps(rec *Recorder, s string) []Op {
	var out []Op
	for _, op := range rec.Ops() {
		if op.Kind == OpText && op.Text == s {
			out = append(out, op)
		}
	}
	return out
}

func TestOverlay_ReloadingLabel(t *testing.T) {
	rec := NewRecorder(800, 600)
	or := NewOverlayRenderer()
	snap := &Snapshot{
		Camera: testCam,
		Player: &Entity{Kind: KindPlayer, X: 400, Y: 300, Radius: 12},
		Status: PlayerStatus{Reloading: true},
	}
	or.Render(rec, snap)
	if len(textOps(rec, ReloadingLabel)) != 1 || or.Drawn() != 1 {
		t.Fatalf("reloading label drawn %d times, Drawn()=%d", len(textOps(rec, ReloadingLabel)), or.Drawn())
	}
	if op := textOps(rec, ReloadingLabel)[0]; op.Y >= 300 {
		t.Fatalf("label at y=%.1f, want above the player", op.Y)
	}

	rec.Reset()
	snap.Status.Reloading = false
	or.Render(rec, snap)
	if len(textOps(rec, ReloadingLabel)) != 0 {
		t.Fatal("label drawn while not reloading")
	}
}

func TestOverlay_FloatingTextCulledAndFaded(t *testing.T) {
	rec := NewRecorder(800, 600)
	or := NewOverlayRenderer()
	snap := &Snapshot{
		Camera: testCam,
		FloatingTexts: []FloatingText{
			{Text: "12", Kind: TextDamage, X: 100, Y: 100, Life: 5, MaxLife: 10},
			{Text: "+5", Kind: TextLoot, X: 5000, Y: 100, Life: 5, MaxLife: 10},
			{Text: "gone", Kind: TextDamage, X: 100, Y: 100, Life: 0, MaxLife: 10},
			{Text: "WAVE 3", Kind: TextSystem, X: 400, Y: 200, Life: 10, MaxLife: 10},
			{Text: "fade", Kind: TextDamage, X: 200, Y: 100, Life: 1.5, MaxLife: 10},
		},
	}
	or.Render(rec, snap)

	if or.Drawn() != 3 {
		t.Fatalf("drawn = %d, want 3", or.Drawn())
	}
	if len(textOps(rec, "+5")) != 0 || len(textOps(rec, "gone")) != 0 {
		t.Fatal("culled or expired text was drawn")
	}

	// Half-way through its life the damage number has risen 12px.
	dmg := textOps(rec, "12")
	if len(dmg) != 2 {
		t.Fatalf("damage text ops = %d, want shadow + text", len(dmg))
	}
	if dmg[1].X != 100 || dmg[1].Y != 88 {
		t.Fatalf("damage text at (%.1f,%.1f), want (100,88)", dmg[1].X, dmg[1].Y)
	}
	if dmg[1].Color.A != 255 {
		t.Fatalf("damage text before fade start has alpha %d", dmg[1].Color.A)
	}
	if fade := textOps(rec, "fade"); len(fade) != 2 || fade[1].Color.A >= 255 {
		t.Fatal("text past fade start should be translucent")
	}
}

func TestOverlay_HiddenDuringBaseDrop(t *testing.T) {
	rec := NewRecorder(800, 600)
	or := NewOverlayRenderer()
	or.Render(rec, &Snapshot{
		Camera:   testCam,
		Player:   &Entity{X: 100, Y: 100},
		Status:   PlayerStatus{Reloading: true},
		BaseDrop: BaseDropState{Active: true},
	})
	if or.Drawn() != 0 {
		t.Fatal("reloading label drawn while the player is hidden")
	}
}
