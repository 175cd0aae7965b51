package stats

import "testing"

func TestRecordAndCount(t *testing.T) {
	r, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	if err := r.RecordUse("abc"); err != nil {
		t.Fatalf("RecordUse failed: %v", err)
	}
	if err := r.RecordUse("abc"); err != nil {
		t.Fatalf("RecordUse failed: %v", err)
	}

	n, err := r.Count("abc")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestCountUnknownIsZero(t *testing.T) {
	r, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	n, err := r.Count("never-used")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

func TestForget(t *testing.T) {
	r, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	if err := r.RecordUse("gone"); err != nil {
		t.Fatalf("RecordUse failed: %v", err)
	}
	if err := r.Forget("gone"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	n, err := r.Count("gone")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count after Forget = %d, want 0", n)
	}
}
