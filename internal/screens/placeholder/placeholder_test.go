package placeholder

import (
	"strings"
	"testing"
)

func TestPlaceholder(t *testing.T) {
	p := New("History", "No database configured")
	if p.Title() != "History" {
		t.Errorf("Title() = %q", p.Title())
	}
	if !strings.Contains(p.View(80, 20), "No database configured") {
		t.Error("view missing message")
	}
	if s, cmd := p.Update(nil); s != p || cmd != nil {
		t.Error("Update should be a no-op")
	}
}
