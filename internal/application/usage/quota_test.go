package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"linkedin-content-api/internal/domain/entity"
)

type fakeEventRepo struct {
	usage     int64
	usageErr  error
	gotUserID string
	gotStart  time.Time
	gotEnd    time.Time
	created   []*entity.GenerationEvent
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.GenerationEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeEventRepo) GetTokenUsage(_ context.Context, userID string, start, end time.Time) (int64, error) {
	f.gotUserID = userID
	f.gotStart = start
	f.gotEnd = end
	return f.usage, f.usageErr
}

func TestCheckDailyQuota(t *testing.T) {
	fixedNow := time.Date(2025, 6, 15, 13, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		usage     int64
		usageErr  error
		maxPerDay int64
		wantErr   bool
	}{
		{name: "disabled", usage: 999999, maxPerDay: 0, wantErr: false},
		{name: "under quota", usage: 500, maxPerDay: 1000, wantErr: false},
		{name: "at quota", usage: 1000, maxPerDay: 1000, wantErr: true},
		{name: "over quota", usage: 1500, maxPerDay: 1000, wantErr: true},
		{name: "query failure skips check", usage: 0, usageErr: errors.New("db down"), maxPerDay: 1, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventRepo{usage: tt.usage, usageErr: tt.usageErr}
			r := NewRecorder(repo)
			r.now = func() time.Time { return fixedNow }

			err := r.CheckDailyQuota(context.Background(), "user-1", tt.maxPerDay)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected quota error, got nil")
				}
				var qe QuotaExceededError
				if !errors.As(err, &qe) {
					t.Fatalf("expected QuotaExceededError, got %T", err)
				}
				if qe.Used != tt.usage || qe.Max != tt.maxPerDay {
					t.Errorf("QuotaExceededError = used %d max %d, want used %d max %d",
						qe.Used, qe.Max, tt.usage, tt.maxPerDay)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckDailyQuotaWindow(t *testing.T) {
	fixedNow := time.Date(2025, 6, 15, 13, 30, 0, 0, time.UTC)
	repo := &fakeEventRepo{usage: 0}
	r := NewRecorder(repo)
	r.now = func() time.Time { return fixedNow }

	if err := r.CheckDailyQuota(context.Background(), "user-1", 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !repo.gotStart.Equal(wantStart) {
		t.Errorf("window start = %v, want %v", repo.gotStart, wantStart)
	}
	if !repo.gotEnd.Equal(fixedNow) {
		t.Errorf("window end = %v, want %v", repo.gotEnd, fixedNow)
	}
	if repo.gotUserID != "user-1" {
		t.Errorf("user id = %q, want %q", repo.gotUserID, "user-1")
	}
}
