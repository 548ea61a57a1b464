package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"StorWatch/internal/monitoring/storage"
	"StorWatch/internal/pkg/config"
	"StorWatch/internal/probes/disk"

	"github.com/gin-gonic/gin"
)

type stubDiskProbe struct {
	reading disk.SystemCounters
}

func (p *stubDiskProbe) Read() disk.SystemCounters { return p.reading }
func (p *stubDiskProbe) Capabilities() disk.Capabilities {
	return disk.Capabilities{HasStats: true, HasByteCounts: true}
}

func newStorageTestRouter(t *testing.T, model *storage.Model) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	monitor := storage.NewMonitor(cfg, model)
	handler := NewStorageHandler(cfg, monitor)

	engine := gin.New()
	engine.GET("/api/storage/latest", handler.GetLatest)
	engine.GET("/api/storage/capabilities", handler.GetCapabilities)
	engine.PUT("/api/storage/history/window", handler.SetHistoryWindow)
	return engine
}

func TestStorageGetLatestBeforeSampling(t *testing.T) {
	model := storage.NewModel(&stubDiskProbe{}, 300)
	engine := newStorageTestRouter(t, model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/storage/latest", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Available {
		t.Error("available = true before any sample")
	}
}

func TestStorageGetLatestAfterSampling(t *testing.T) {
	probe := &stubDiskProbe{reading: disk.SystemCounters{
		Devices: []disk.Counters{{Name: "sda", ReadsCompleted: 10, SectorSize: 512, Physical: true}},
	}}
	model := storage.NewModel(probe, 300)
	model.Sample()

	engine := newStorageTestRouter(t, model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/storage/latest", nil)
	engine.ServeHTTP(w, req)

	var body struct {
		Available bool `json:"available"`
		Snapshot  struct {
			Disks []struct {
				Name string `json:"name"`
			} `json:"disks"`
		} `json:"snapshot"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Available {
		t.Fatal("available = false after sampling")
	}
	if len(body.Snapshot.Disks) != 1 || body.Snapshot.Disks[0].Name != "sda" {
		t.Errorf("disks = %+v, want one sda entry", body.Snapshot.Disks)
	}
}

func TestStorageGetCapabilities(t *testing.T) {
	model := storage.NewModel(&stubDiskProbe{}, 300)
	engine := newStorageTestRouter(t, model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/storage/capabilities", nil)
	engine.ServeHTTP(w, req)

	var caps disk.Capabilities
	if err := json.Unmarshal(w.Body.Bytes(), &caps); err != nil {
		t.Fatal(err)
	}
	if !caps.HasStats || !caps.HasByteCounts {
		t.Errorf("capabilities = %+v, want stats and byte counts", caps)
	}
}

func TestStorageSetHistoryWindow(t *testing.T) {
	model := storage.NewModel(&stubDiskProbe{}, 300)
	engine := newStorageTestRouter(t, model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/storage/history/window?seconds=60", nil)
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/storage/history/window?seconds=-5", nil)
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status for negative window = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/storage/history/window", nil)
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status for missing value = %d, want 400", w.Code)
	}
}
