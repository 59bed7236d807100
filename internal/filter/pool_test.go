package filter

import "testing"

func TestGetPlaneZeroed(t *testing.T) {
	p := GetPlane(64)
	for i := range p {
		p[i] = 1
	}
	PutPlane(p)

	q := GetPlane(64)
	if len(q) != 64 {
		t.Fatalf("len = %d, want 64", len(q))
	}
	for i, v := range q {
		if v != 0 {
			t.Fatalf("q[%d] = %v, want 0", i, v)
		}
	}
	PutPlane(q)
}

func TestGetPlaneLarge(t *testing.T) {
	n := 1024 * 1024
	p := GetPlane(n)
	if len(p) != n {
		t.Errorf("len = %d, want %d", len(p), n)
	}
	PutPlane(p)
}

func TestPutPlaneNil(t *testing.T) {
	// Must not panic.
	PutPlane(nil)
}
