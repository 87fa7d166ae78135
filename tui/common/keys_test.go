package common

import "testing"

func TestDefaultKeyMap_HasCriticalBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ToggleHints.Keys()) == 0 || km.ToggleHints.Keys()[0] != "?" {
		t.Fatalf("expected ? key binding for hints")
	}
	if len(km.ForceQuit.Keys()) == 0 || km.ForceQuit.Keys()[0] != "ctrl+c" {
		t.Fatalf("expected ctrl+c force quit binding")
	}

	seen := map[string]string{}
	for name, b := range map[string][]string{
		"like":     km.Like.Keys(),
		"bookmark": km.Bookmark.Keys(),
		"reply":    km.Reply.Keys(),
		"inline":   km.ReplyInline.Keys(),
		"refresh":  km.Refresh.Keys(),
		"theme":    km.Theme.Keys(),
		"open":     km.Open.Keys(),
		"quit":     km.Quit.Keys(),
	} {
		for _, k := range b {
			if other, dup := seen[k]; dup {
				t.Fatalf("key %q bound to both %s and %s", k, other, name)
			}
			seen[k] = name
		}
	}
}
