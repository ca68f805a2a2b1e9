package clock

import (
	"testing"
	"time"
)

func TestSystemClock_UsesZone(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("IST", 5*60*60+30*60)
	if got := NewSystemClock(loc).Now().Location(); got != loc {
		t.Fatalf("Now().Location()=%v, want %v", got, loc)
	}
	if got := NewSystemClock(nil).Now().Location(); got != time.UTC {
		t.Fatalf("Now().Location()=%v, want UTC", got)
	}
	if got := (SystemClock{}).Now().Location(); got != time.UTC {
		t.Fatalf("zero SystemClock location=%v, want UTC", got)
	}
}
