package scoring

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	profiles map[string]*Profile
	qcs      map[string]*QCSRecord
	compat   map[string]*CompatibilityScore

	failQCSUpsert map[string]bool
	upsertCalls   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		profiles:      make(map[string]*Profile),
		qcs:           make(map[string]*QCSRecord),
		compat:        make(map[string]*CompatibilityScore),
		failQCSUpsert: make(map[string]bool),
	}
}

func (r *fakeRepository) GetProfile(_ context.Context, userID string) (*Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeRepository) ListProfiles(_ context.Context) ([]*Profile, error) {
	var out []*Profile
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepository) UpdateProfileTotalQCS(_ context.Context, userID string, score int) error {
	p, ok := r.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	p.TotalQCS = &score
	return nil
}

func (r *fakeRepository) GetQCSRecord(_ context.Context, userID string) (*QCSRecord, error) {
	rec, ok := r.qcs[userID]
	if !ok {
		return nil, ErrQCSNotFound
	}
	return rec, nil
}

func (r *fakeRepository) UpsertQCSRecord(_ context.Context, record *QCSRecord) error {
	if r.failQCSUpsert[record.UserID] {
		return errors.New("upsert failed")
	}
	r.qcs[record.UserID] = record
	return nil
}

func pairKey(u1, u2 string) string {
	u1, u2 = CanonicalPair(u1, u2)
	return u1 + "|" + u2
}

func (r *fakeRepository) GetCompatibility(_ context.Context, user1ID, user2ID string) (*CompatibilityScore, error) {
	return r.compat[pairKey(user1ID, user2ID)], nil
}

func (r *fakeRepository) UpsertCompatibility(_ context.Context, score *CompatibilityScore) error {
	r.upsertCalls++
	score.CalculatedAt = time.Now()
	r.compat[pairKey(score.User1ID, score.User2ID)] = score
	return nil
}

// fakeAIScorer returns a fixed score or error.
type fakeAIScorer struct {
	score int
	err   error
}

func (f *fakeAIScorer) ScoreProfile(_ context.Context, _ *Profile) (int, error) {
	return f.score, f.err
}

func newTestService(repo Repository, ai AIScorer) *service {
	return NewService(repo, NewCompatibilityScorer(nil), ai, 24*time.Hour).(*service)
}

func TestComputeCompatibilityInvalidPairs(t *testing.T) {
	svc := newTestService(newFakeRepository(), nil)

	tests := []struct {
		name   string
		u1, u2 string
	}{
		{"empty first", "", "b"},
		{"empty second", "a", ""},
		{"same user", "a", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ComputeCompatibility(context.Background(), tt.u1, tt.u2)
			if !errors.Is(err, ErrInvalidUserPair) {
				t.Fatalf("error = %v, want ErrInvalidUserPair", err)
			}
		})
	}
}

func TestComputeCompatibilityMissingProfile(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles["a"] = &Profile{UserID: "a"}
	svc := newTestService(repo, nil)

	_, err := svc.ComputeCompatibility(context.Background(), "a", "b")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("error = %v, want ErrProfileNotFound", err)
	}
}

func TestComputeCompatibilityPersistsAndCaches(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles["a"] = &Profile{UserID: "a"}
	repo.profiles["b"] = &Profile{UserID: "b"}
	svc := newTestService(repo, nil)

	first, err := svc.ComputeCompatibility(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	if first.Cached {
		t.Fatal("first compute reported cached")
	}
	if first.Breakdown == nil {
		t.Fatal("fresh compute missing breakdown")
	}
	if repo.upsertCalls != 1 {
		t.Fatalf("upsert calls = %d, want 1", repo.upsertCalls)
	}

	second, err := svc.ComputeCompatibility(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if !second.Cached {
		t.Fatal("second compute not served from cache")
	}
	if second.Score != first.Score {
		t.Fatalf("cached score %v differs from computed %v", second.Score, first.Score)
	}
	if repo.upsertCalls != 1 {
		t.Fatalf("upsert calls after cache hit = %d, want 1", repo.upsertCalls)
	}
}

func TestComputeCompatibilityCanonicalOrder(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles["a"] = &Profile{UserID: "a"}
	repo.profiles["b"] = &Profile{UserID: "b"}
	svc := newTestService(repo, nil)

	if _, err := svc.ComputeCompatibility(context.Background(), "b", "a"); err != nil {
		t.Fatalf("reversed compute: %v", err)
	}

	// Same pair in the other order hits the same stored row
	result, err := svc.ComputeCompatibility(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("canonical compute: %v", err)
	}
	if !result.Cached {
		t.Fatal("reversed pair order missed the cache")
	}

	stored := repo.compat[pairKey("a", "b")]
	if stored == nil || stored.User1ID != "a" || stored.User2ID != "b" {
		t.Fatalf("stored pair = %+v, want user1=a user2=b", stored)
	}
}

func TestComputeCompatibilityCacheExpiry(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles["a"] = &Profile{UserID: "a"}
	repo.profiles["b"] = &Profile{UserID: "b"}
	svc := newTestService(repo, nil)

	if _, err := svc.ComputeCompatibility(context.Background(), "a", "b"); err != nil {
		t.Fatalf("first compute: %v", err)
	}

	// Move the clock past the TTL
	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	result, err := svc.ComputeCompatibility(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if result.Cached {
		t.Fatal("stale score served from cache")
	}
	if repo.upsertCalls != 2 {
		t.Fatalf("upsert calls = %d, want 2", repo.upsertCalls)
	}
}

func TestSyncUserQCS(t *testing.T) {
	repo := newFakeRepository()
	old := 50
	repo.profiles["a"] = &Profile{
		UserID:     "a",
		FullName:   strPtr("Asha"),
		University: strPtr("IIT Bombay"),
		TotalQCS:   &old,
	}
	svc := newTestService(repo, nil)

	detail, err := svc.SyncUserQCS(context.Background(), "a")
	if err != nil {
		t.Fatalf("SyncUserQCS: %v", err)
	}
	if detail.Status != syncStatusSynced {
		t.Fatalf("status = %s, want synced", detail.Status)
	}
	if detail.OldScore != 50 {
		t.Fatalf("old score = %d, want 50", detail.OldScore)
	}
	// 5 education tier jump to 25, plus physical base 4
	if detail.NewScore != 29 {
		t.Fatalf("new score = %d, want 29", detail.NewScore)
	}

	// Record and profile cache stay in lockstep
	record := repo.qcs["a"]
	if record == nil || record.TotalScore != detail.NewScore {
		t.Fatalf("stored record = %+v, want total %d", record, detail.NewScore)
	}
	if repo.profiles["a"].TotalQCS == nil || *repo.profiles["a"].TotalQCS != detail.NewScore {
		t.Fatal("profile total_qcs not updated")
	}
}

func TestSyncAllQCSPartialFailure(t *testing.T) {
	repo := newFakeRepository()
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("u%d", i)
		repo.profiles[id] = &Profile{UserID: id}
	}
	repo.failQCSUpsert["u1"] = true
	svc := newTestService(repo, nil)

	report, err := svc.SyncAllQCS(context.Background())
	if err != nil {
		t.Fatalf("SyncAllQCS: %v", err)
	}
	if report.SyncID == "" {
		t.Fatal("report missing sync ID")
	}
	if report.TotalProfiles != 3 {
		t.Fatalf("total profiles = %d, want 3", report.TotalProfiles)
	}
	if report.SuccessfullySynced != 2 || report.Failed != 1 {
		t.Fatalf("synced/failed = %d/%d, want 2/1", report.SuccessfullySynced, report.Failed)
	}
	if len(report.Details) != 3 {
		t.Fatalf("details count = %d, want 3", len(report.Details))
	}
}

func TestSyncQCSAIScoreInformational(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles["a"] = &Profile{UserID: "a"}

	// AI score recorded alongside the logic score but never replaces it
	svc := newTestService(repo, &fakeAIScorer{score: 88})
	if _, err := svc.SyncUserQCS(context.Background(), "a"); err != nil {
		t.Fatalf("SyncUserQCS: %v", err)
	}

	record := repo.qcs["a"]
	if record.AIScore == nil || *record.AIScore != 88 {
		t.Fatalf("ai_score = %v, want 88", record.AIScore)
	}
	if record.TotalScore != record.LogicScore {
		t.Fatalf("total %d != logic %d", record.TotalScore, record.LogicScore)
	}

	// An AI failure leaves the sync successful
	svcErr := newTestService(repo, &fakeAIScorer{err: errors.New("quota exceeded")})
	detail, err := svcErr.SyncUserQCS(context.Background(), "a")
	if err != nil {
		t.Fatalf("SyncUserQCS with failing AI: %v", err)
	}
	if detail.Status != syncStatusSynced {
		t.Fatalf("status = %s, want synced despite AI failure", detail.Status)
	}
	if repo.qcs["a"].AIScore != nil {
		t.Fatal("failed AI call left a stale score")
	}
}

func TestCanonicalPair(t *testing.T) {
	tests := []struct {
		u1, u2, want1, want2 string
	}{
		{"a", "b", "a", "b"},
		{"b", "a", "a", "b"},
		{"user-2", "user-10", "user-10", "user-2"},
	}

	for _, tt := range tests {
		got1, got2 := CanonicalPair(tt.u1, tt.u2)
		if got1 != tt.want1 || got2 != tt.want2 {
			t.Fatalf("CanonicalPair(%s, %s) = (%s, %s), want (%s, %s)",
				tt.u1, tt.u2, got1, got2, tt.want1, tt.want2)
		}
	}
}
