package features

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wilbur182/linecount/internal/config"
)

func TestIsEnabled_DefaultValue(t *testing.T) {
	m := New(nil)
	if m.IsEnabled(ReportPreview) != ReportPreview.Default {
		t.Errorf("expected default value %v for %s", ReportPreview.Default, ReportPreview.Name)
	}
	if m.IsEnabled(HistorySnapshots) != HistorySnapshots.Default {
		t.Errorf("expected default value %v for %s", HistorySnapshots.Default, HistorySnapshots.Name)
	}
}

func TestIsEnabled_NilManager(t *testing.T) {
	var m *Manager
	if m.IsEnabled(ReportPreview) != ReportPreview.Default {
		t.Error("nil manager should fall back to defaults")
	}
}

func TestIsEnabled_UnknownFeature(t *testing.T) {
	if New(config.Default()).IsEnabledName("unknown_feature") {
		t.Error("unknown features should default to false")
	}
}

func TestIsEnabled_ConfigOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Features.Flags[HistorySnapshots.Name] = true

	if !New(cfg).IsEnabled(HistorySnapshots) {
		t.Error("config override should enable feature")
	}
}

func TestIsEnabled_CLIOverrideTakesPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Features.Flags[HistorySnapshots.Name] = false

	m := New(cfg)
	m.SetOverride(HistorySnapshots.Name, true)

	if !m.IsEnabled(HistorySnapshots) {
		t.Error("CLI override should take precedence over config")
	}
}

func TestList(t *testing.T) {
	list := New(config.Default()).List()
	if len(list) != len(allFeatures) {
		t.Errorf("List returned %d features, want %d", len(list), len(allFeatures))
	}
	if _, ok := list[ReportPreview.Name]; !ok {
		t.Errorf("expected %s in list", ReportPreview.Name)
	}
}

func TestListAll(t *testing.T) {
	for _, f := range ListAll() {
		if f.Description == "" {
			t.Errorf("feature %s should have description", f.Name)
		}
	}
}

func TestListAllReturnsCopy(t *testing.T) {
	original := ListAll()
	original[0].Name = "modified"

	if ListAll()[0].Name == "modified" {
		t.Error("ListAll should return a copy, not the original slice")
	}
}

func TestSetEnabled_UpdatesAndSavesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.Default()
	cfg.Features.Flags = nil // Force nil map
	m := New(cfg)

	if err := m.SetEnabled(path, HistorySnapshots.Name, true); err != nil {
		t.Fatalf("SetEnabled() error: %v", err)
	}
	if !cfg.Features.Flags[HistorySnapshots.Name] {
		t.Error("SetEnabled should update config")
	}

	saved, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !saved.Features.Flags[HistorySnapshots.Name] {
		t.Error("SetEnabled should persist the flag")
	}
}

func TestSetEnabled_UnknownFeature(t *testing.T) {
	err := New(nil).SetEnabled(filepath.Join(t.TempDir(), "c.json"), "nope", true)
	if !errors.Is(err, ErrUnknownFeature) {
		t.Errorf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestIsKnownFeature(t *testing.T) {
	if !IsKnownFeature("report_preview") {
		t.Error("report_preview should be a known feature")
	}
	if IsKnownFeature("unknown_feature") {
		t.Error("unknown_feature should not be a known feature")
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New(config.Default())

	var wg sync.WaitGroup
	const goroutines = 50

	for i := 0; i < goroutines; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = m.IsEnabled(ReportPreview)
		}()
		go func() {
			defer wg.Done()
			m.SetOverride(ReportPreview.Name, true)
		}()
		go func() {
			defer wg.Done()
			_ = m.List()
		}()
	}
	wg.Wait()
}
