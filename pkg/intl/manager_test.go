package intl_test

import (
	"testing"

	"intlpipe/pkg/intl"
)

func TestNewManager_EmptyDefaultFallsBack(t *testing.T) {
	m := intl.NewManager("")
	if m.Locale() != "en" {
		t.Fatalf("expected fallback locale en, got %q", m.Locale())
	}
	if m.DefaultLocale() != "en" {
		t.Fatalf("expected default locale en, got %q", m.DefaultLocale())
	}
}

func TestSetLocale_NotifiesInRegistrationOrder(t *testing.T) {
	m := intl.NewManager("en")

	var order []string
	m.OnLocaleChange(func(locale string) { order = append(order, "first:"+locale) })
	m.OnLocaleChange(func(locale string) { order = append(order, "second:"+locale) })

	m.SetLocale("fr")

	if len(order) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(order))
	}
	if order[0] != "first:fr" || order[1] != "second:fr" {
		t.Fatalf("unexpected notification order: %v", order)
	}
	if m.Locale() != "fr" {
		t.Fatalf("expected active locale fr, got %q", m.Locale())
	}
}

func TestSetLocale_EmptyResetsToDefault(t *testing.T) {
	m := intl.NewManager("de")
	m.SetLocale("fr")
	m.SetLocale("")
	if m.Locale() != "de" {
		t.Fatalf("expected reset to default de, got %q", m.Locale())
	}
}

func TestSetLocale_UnsupportedLocaleAccepted(t *testing.T) {
	m := intl.NewManager("en")
	m.SetLocale("zz-not-a-locale")
	if m.Locale() != "zz-not-a-locale" {
		t.Fatalf("expected unvalidated locale to be accepted, got %q", m.Locale())
	}
	if m.Config() == nil {
		t.Fatal("expected a formatter config even for an unknown locale")
	}
}

func TestOnLocaleChange_DisposeStopsNotifications(t *testing.T) {
	m := intl.NewManager("en")

	calls := 0
	dispose := m.OnLocaleChange(func(string) { calls++ })

	m.SetLocale("fr")
	dispose()
	dispose() // double dispose must be harmless
	m.SetLocale("de")

	if calls != 1 {
		t.Fatalf("expected 1 call before dispose, got %d", calls)
	}
}

func TestSetLocale_PanickingSubscriberDoesNotStarveOthers(t *testing.T) {
	m := intl.NewManager("en")

	survived := false
	m.OnLocaleChange(func(string) { panic("bad subscriber") })
	m.OnLocaleChange(func(string) { survived = true })

	m.SetLocale("fr")

	if !survived {
		t.Fatal("expected the second subscriber to run despite the first panicking")
	}
}
