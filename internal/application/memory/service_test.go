package memory

import (
	"context"
	"testing"

	"linkedin-content-api/internal/domain/entity"
)

type fakeMemoryRepo struct {
	deletedUser string
	deleteErr   error
}

func (f *fakeMemoryRepo) Insert(_ context.Context, _ []*entity.UserMemory, _ [][]float32) error {
	return nil
}

func (f *fakeMemoryRepo) Search(_ context.Context, _ string, _ []float32, _ int) ([]entity.MemoryHit, error) {
	return nil, nil
}

func (f *fakeMemoryRepo) DeleteByUser(_ context.Context, userID string) error {
	f.deletedUser = userID
	return f.deleteErr
}

func TestForget(t *testing.T) {
	repo := &fakeMemoryRepo{}
	s := NewService(repo, nil, nil, nil, nil)

	if err := s.Forget(context.Background(), "user-1"); err != nil {
		t.Fatalf("Forget returned error: %v", err)
	}
	if repo.deletedUser != "user-1" {
		t.Fatalf("deleted user = %q, want %q", repo.deletedUser, "user-1")
	}
}

func TestForgetNotConfigured(t *testing.T) {
	s := NewService(nil, nil, nil, nil, nil)
	if err := s.Forget(context.Background(), "user-1"); err == nil {
		t.Fatal("expected error when vector store is not configured")
	}
}
