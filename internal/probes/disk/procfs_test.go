package disk

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDiskstats = `   8       0 sda 843293 79340 29664874 429438 1814469 1381448 122412858 4522813 0 1237476 4952251 0 0 0 0
   8       1 sda1 843000 79000 29600000 429000 1814000 1381000 122400000 4522000 0 1237000 4951000 0 0 0 0
 259       0 nvme0n1 100 0 800 50 200 0 1600 100 3 150 200 0 0 0 0
 259       1 nvme0n1p1 90 0 700 45 190 0 1500 95 0 140 190 0 0 0 0
   7       0 loop0 55 0 2122 18 0 0 0 0 0 32 18 0 0 0 0
`

func TestParseDiskstatsLine(t *testing.T) {
	line := " 259       0 nvme0n1 100 0 800 50 200 0 1600 100 3 150 200 0 0 0 0"

	c, ok := parseDiskstatsLine(line)
	if !ok {
		t.Fatal("expected line to parse")
	}

	if c.Name != "nvme0n1" {
		t.Errorf("Name = %q, want nvme0n1", c.Name)
	}
	if c.ReadsCompleted != 100 {
		t.Errorf("ReadsCompleted = %d, want 100", c.ReadsCompleted)
	}
	if c.SectorsRead != 800 {
		t.Errorf("SectorsRead = %d, want 800", c.SectorsRead)
	}
	if c.ReadTimeMs != 50 {
		t.Errorf("ReadTimeMs = %d, want 50", c.ReadTimeMs)
	}
	if c.WritesCompleted != 200 {
		t.Errorf("WritesCompleted = %d, want 200", c.WritesCompleted)
	}
	if c.SectorsWritten != 1600 {
		t.Errorf("SectorsWritten = %d, want 1600", c.SectorsWritten)
	}
	if c.WriteTimeMs != 100 {
		t.Errorf("WriteTimeMs = %d, want 100", c.WriteTimeMs)
	}
	if c.IOInProgress != 3 {
		t.Errorf("IOInProgress = %d, want 3", c.IOInProgress)
	}
	if c.IOTimeMs != 150 {
		t.Errorf("IOTimeMs = %d, want 150", c.IOTimeMs)
	}
	if c.WeightedIOTimeMs != 200 {
		t.Errorf("WeightedIOTimeMs = %d, want 200", c.WeightedIOTimeMs)
	}
	if c.SectorSize != 512 {
		t.Errorf("SectorSize = %d, want 512", c.SectorSize)
	}
	if !c.Physical {
		t.Error("Physical = false, want true")
	}
}

func TestParseDiskstatsLineMalformed(t *testing.T) {
	tests := []struct {
		desc string
		line string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too few fields", "8 0 sda 1 2 3"},
		{"non-numeric counter", "8 0 sda 1 2 3 4 x 6 7 8 9 10 11"},
	}

	for _, tt := range tests {
		if _, ok := parseDiskstatsLine(tt.line); ok {
			t.Errorf("%s: expected parse to fail for %q", tt.desc, tt.line)
		}
	}
}

func TestProcProbeRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diskstats")
	if err := os.WriteFile(path, []byte(sampleDiskstats), 0644); err != nil {
		t.Fatal(err)
	}

	probe := NewProcProbe(path)
	reading := probe.Read()

	if len(reading.Devices) != 2 {
		t.Fatalf("got %d devices, want 2: %+v", len(reading.Devices), reading.Devices)
	}
	if reading.Devices[0].Name != "sda" {
		t.Errorf("first device = %q, want sda", reading.Devices[0].Name)
	}
	if reading.Devices[1].Name != "nvme0n1" {
		t.Errorf("second device = %q, want nvme0n1", reading.Devices[1].Name)
	}
}

func TestProcProbeReadMissingFile(t *testing.T) {
	probe := NewProcProbe(filepath.Join(t.TempDir(), "does-not-exist"))

	reading := probe.Read()
	if len(reading.Devices) != 0 {
		t.Errorf("got %d devices from missing file, want 0", len(reading.Devices))
	}

	// Capabilities stay fixed regardless of read failures
	caps := probe.Capabilities()
	if !caps.HasStats {
		t.Error("HasStats should remain true after a failed read")
	}
}

func TestProcProbeSkipsMalformedLines(t *testing.T) {
	content := "garbage line\n" + sampleDiskstats + "8 0 sdb bad counters here\n"
	path := filepath.Join(t.TempDir(), "diskstats")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	probe := NewProcProbe(path)
	reading := probe.Read()
	if len(reading.Devices) != 2 {
		t.Errorf("got %d devices, want 2", len(reading.Devices))
	}
}
