package tui

import "testing"

func TestInputLine_AddToHistory(t *testing.T) {
	il := NewInputLine("")

	il.AddToHistory("")
	if len(il.history) != 0 {
		t.Error("empty string should not be added to history")
	}

	il.AddToHistory("!submit a x")
	il.AddToHistory("!view a")
	il.AddToHistory("!view a")

	if len(il.history) != 2 {
		t.Errorf("history length = %d, want 2", len(il.history))
	}
}

func TestInputLine_AddToHistory_MaxSize(t *testing.T) {
	il := NewInputLine("")

	for i := 0; i < maxHistorySize+10; i++ {
		il.AddToHistory(string(rune('a' + i%26)))
	}

	if len(il.history) > maxHistorySize {
		t.Errorf("history length = %d, should not exceed %d", len(il.history), maxHistorySize)
	}
}

func TestInputLine_HistoryNavigation(t *testing.T) {
	il := NewInputLine("")

	if il.HistoryUp() || il.HistoryDown() {
		t.Error("navigation with empty history should return false")
	}

	il.AddToHistory("first")
	il.AddToHistory("second")
	il.SetValue("draft")

	if !il.HistoryUp() || il.Value() != "second" {
		t.Errorf("after up: %q, want second", il.Value())
	}
	if !il.HistoryUp() || il.Value() != "first" {
		t.Errorf("after up: %q, want first", il.Value())
	}
	if il.HistoryUp() {
		t.Error("up at oldest entry should return false")
	}
	if !il.HistoryDown() || il.Value() != "second" {
		t.Errorf("after down: %q, want second", il.Value())
	}
	if !il.HistoryDown() || il.Value() != "draft" {
		t.Errorf("after down: %q, want draft restored", il.Value())
	}
	if il.HistoryDown() {
		t.Error("down when not browsing should return false")
	}
}
