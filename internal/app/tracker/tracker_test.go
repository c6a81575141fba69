package tracker

import (
	"errors"
	"testing"

	"github.com/bankrollbuddy/bankroll/internal/domain"
)

// fakeStore is an in-memory Store for exercising the service rules without
// a database. The sqlite implementation has its own tests.
type fakeStore struct {
	sessions map[string]domain.Session
	order    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]domain.Session)}
}

func (f *fakeStore) InsertSession(s domain.Session) error {
	f.sessions[s.ID] = s
	f.order = append(f.order, s.ID)
	return nil
}

func (f *fakeStore) UpdateSession(s domain.Session) error {
	if _, ok := f.sessions[s.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeStore) GetSession(id string) (domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeStore) DeleteSession(id string) error {
	if _, ok := f.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(f.sessions, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) ClearSessions() error {
	f.sessions = make(map[string]domain.Session)
	f.order = nil
	return nil
}

func (f *fakeStore) ListSessions() ([]domain.Session, error) {
	out := make([]domain.Session, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.sessions[id])
	}
	return out, nil
}

// ─── Service Tests ──────────────────────────────────────────────────────────

func TestService_Add(t *testing.T) {
	svc := New(newFakeStore())

	sess, err := svc.Add("Friday home game", 100, 250.50, "1/2")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sess.ID == "" {
		t.Error("session ID empty")
	}
	if sess.GainLoss != 15050 {
		t.Errorf("GainLoss = %d cents, want 15050", sess.GainLoss)
	}

	if _, err := svc.Add("", 10, 10, ""); !errors.Is(err, domain.ErrEmptyName) {
		t.Errorf("blank name err = %v, want ErrEmptyName", err)
	}
}

func TestService_Update(t *testing.T) {
	svc := New(newFakeStore())
	sess, _ := svc.Add("Casino trip", 200, 150, "2/5")

	hands := "set over set on the turn"
	got, err := svc.Update(sess.ID, Update{MemorableHands: &hands})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.MemorableHands != hands {
		t.Errorf("MemorableHands = %q", got.MemorableHands)
	}
	if got.GainLoss != sess.GainLoss {
		t.Errorf("notes-only update changed GainLoss: %d → %d", sess.GainLoss, got.GainLoss)
	}

	// Financial update recomputes gain/loss.
	cashOut := 300.0
	got, err = svc.Update(sess.ID, Update{CashOut: &cashOut})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.GainLoss != 10000 {
		t.Errorf("GainLoss = %d cents, want 10000", got.GainLoss)
	}

	if _, err := svc.Update("missing", Update{}); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("missing id err = %v, want ErrSessionNotFound", err)
	}
}

func TestService_Stats(t *testing.T) {
	svc := New(newFakeStore())
	svc.Add("g1", 100, 150, "")
	svc.Add("g2", 100, 80, "")
	svc.Add("g3", 50, 120, "")

	st, err := svc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.GamesPlayed != 3 {
		t.Errorf("GamesPlayed = %d, want 3", st.GamesPlayed)
	}
	if st.TotalBuyIn != 250 {
		t.Errorf("TotalBuyIn = %v, want 250", st.TotalBuyIn)
	}
	if st.TotalCashOut != 350 {
		t.Errorf("TotalCashOut = %v, want 350", st.TotalCashOut)
	}
	if st.TotalGainLoss != 100 {
		t.Errorf("TotalGainLoss = %v, want 100", st.TotalGainLoss)
	}
	if st.AverageGainLoss < 33.33 || st.AverageGainLoss > 33.34 {
		t.Errorf("AverageGainLoss = %v, want ≈33.33", st.AverageGainLoss)
	}
}

func TestService_Stats_Empty(t *testing.T) {
	svc := New(newFakeStore())
	st, err := svc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st != (Stats{}) {
		t.Errorf("empty stats = %+v, want zero value", st)
	}
}

func TestService_RunningProfit(t *testing.T) {
	svc := New(newFakeStore())
	svc.Add("g1", 100, 150, "") // +50  → 50
	svc.Add("g2", 100, 20, "")  // -80  → -30
	svc.Add("g3", 50, 150, "")  // +100 → 70

	series, err := svc.RunningProfit()
	if err != nil {
		t.Fatal(err)
	}
	wantRunning := []float64{50, -30, 70}
	if len(series.Running) != 3 {
		t.Fatalf("series = %+v", series)
	}
	for i, want := range wantRunning {
		if series.Running[i] != want {
			t.Errorf("running[%d] = %v, want %v", i, series.Running[i], want)
		}
	}
	if series.MaxIndex != 2 {
		t.Errorf("MaxIndex = %d, want 2", series.MaxIndex)
	}
	if series.MinIndex != 1 {
		t.Errorf("MinIndex = %d, want 1", series.MinIndex)
	}
	if len(series.Labels) != 3 || series.Labels[0] != "g1" {
		t.Errorf("labels = %v", series.Labels)
	}
}

func TestService_Noted(t *testing.T) {
	svc := New(newFakeStore())
	a, _ := svc.Add("quiet game", 10, 10, "")
	b, _ := svc.Add("wild game", 10, 10, "")
	notes := "Bob triple-barreled air"
	if _, err := svc.Update(b.ID, Update{PlayerNotes: &notes}); err != nil {
		t.Fatal(err)
	}

	noted, err := svc.Noted()
	if err != nil {
		t.Fatal(err)
	}
	if len(noted) != 1 || noted[0].ID != b.ID {
		t.Errorf("Noted() = %+v, want only %s", noted, b.ID)
	}
	_ = a
}

func TestService_DeleteAndClear(t *testing.T) {
	svc := New(newFakeStore())
	sess, _ := svc.Add("g1", 10, 20, "")
	svc.Add("g2", 10, 20, "")

	if err := svc.Delete(sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, _ := svc.List()
	if len(list) != 1 {
		t.Errorf("after delete, %d sessions remain, want 1", len(list))
	}

	if err := svc.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	list, _ = svc.List()
	if len(list) != 0 {
		t.Errorf("after clear, %d sessions remain, want 0", len(list))
	}
}
