package storage

import (
	"sync"
	"testing"
	"time"

	"StorWatch/internal/probes/disk"
)

// fakeProbe returns a scripted sequence of readings, repeating the last one
// once the script is exhausted.
type fakeProbe struct {
	mu       sync.Mutex
	readings []disk.SystemCounters
	index    int
}

func (p *fakeProbe) Read() disk.SystemCounters {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.readings) == 0 {
		return disk.SystemCounters{}
	}
	r := p.readings[p.index]
	if p.index < len(p.readings)-1 {
		p.index++
	}
	return r
}

func (p *fakeProbe) Capabilities() disk.Capabilities {
	return disk.Capabilities{HasStats: true, HasByteCounts: true, HasIOTime: true}
}

func counters(name string, reads, sectorsRead, readMs, writes, sectorsWritten, writeMs, ioMs uint64) disk.Counters {
	return disk.Counters{
		Name:            name,
		ReadsCompleted:  reads,
		SectorsRead:     sectorsRead,
		ReadTimeMs:      readMs,
		WritesCompleted: writes,
		SectorsWritten:  sectorsWritten,
		WriteTimeMs:     writeMs,
		IOTimeMs:        ioMs,
		SectorSize:      512,
		Physical:        true,
	}
}

func TestDeriveDiskFirstSample(t *testing.T) {
	state := &deviceState{}
	c := counters("sda", 100, 800, 50, 200, 1600, 100, 150)

	ds := deriveDisk(c, state, time.Now())

	if ds.ReadBytesPerSec != 0 || ds.WriteBytesPerSec != 0 {
		t.Errorf("first sample rates = %v/%v, want 0/0", ds.ReadBytesPerSec, ds.WriteBytesPerSec)
	}
	if ds.TotalReads != 100 {
		t.Errorf("TotalReads = %d, want 100", ds.TotalReads)
	}
	if ds.TotalReadBytes != 800*512 {
		t.Errorf("TotalReadBytes = %d, want %d", ds.TotalReadBytes, 800*512)
	}
	if ds.UtilizationPercent != 0 {
		t.Errorf("UtilizationPercent = %v, want 0 on first sample", ds.UtilizationPercent)
	}
}

func TestDeriveDiskRates(t *testing.T) {
	t0 := time.Now()
	t1 := t0.Add(2 * time.Second)

	prev := counters("sda", 100, 800, 50, 200, 1600, 100, 150)
	curr := counters("sda", 150, 1600, 150, 300, 3200, 300, 1150)

	state := &deviceState{prev: prev, prevTime: t0, hasPrev: true}
	ds := deriveDisk(curr, state, t1)

	// 800 sectors x 512 bytes over 2 seconds
	if ds.ReadBytesPerSec != 800*512/2 {
		t.Errorf("ReadBytesPerSec = %v, want %v", ds.ReadBytesPerSec, 800*512/2)
	}
	if ds.WriteBytesPerSec != 1600*512/2 {
		t.Errorf("WriteBytesPerSec = %v, want %v", ds.WriteBytesPerSec, 1600*512/2)
	}
	if ds.ReadOpsPerSec != 25 {
		t.Errorf("ReadOpsPerSec = %v, want 25", ds.ReadOpsPerSec)
	}
	if ds.WriteOpsPerSec != 50 {
		t.Errorf("WriteOpsPerSec = %v, want 50", ds.WriteOpsPerSec)
	}

	// 100ms of read time across 50 reads
	if ds.AvgReadLatencyMs != 2 {
		t.Errorf("AvgReadLatencyMs = %v, want 2", ds.AvgReadLatencyMs)
	}
	// 200ms of write time across 100 writes
	if ds.AvgWriteLatencyMs != 2 {
		t.Errorf("AvgWriteLatencyMs = %v, want 2", ds.AvgWriteLatencyMs)
	}

	// 1000ms active in a 2000ms window
	if ds.UtilizationPercent != 50 {
		t.Errorf("UtilizationPercent = %v, want 50", ds.UtilizationPercent)
	}
}

func TestDeriveDiskCounterReset(t *testing.T) {
	t0 := time.Now()
	t1 := t0.Add(time.Second)

	prev := counters("sda", 1000, 8000, 500, 2000, 16000, 1000, 1500)
	curr := counters("sda", 10, 80, 5, 20, 160, 10, 15)

	state := &deviceState{prev: prev, prevTime: t0, hasPrev: true}
	ds := deriveDisk(curr, state, t1)

	if ds.ReadBytesPerSec != 0 || ds.WriteBytesPerSec != 0 ||
		ds.ReadOpsPerSec != 0 || ds.WriteOpsPerSec != 0 {
		t.Errorf("rates after counter reset = %v/%v/%v/%v, want all 0",
			ds.ReadBytesPerSec, ds.WriteBytesPerSec, ds.ReadOpsPerSec, ds.WriteOpsPerSec)
	}
	if ds.AvgReadLatencyMs != 0 || ds.AvgWriteLatencyMs != 0 {
		t.Errorf("latencies after reset = %v/%v, want 0/0",
			ds.AvgReadLatencyMs, ds.AvgWriteLatencyMs)
	}
}

func TestDeriveDiskZeroElapsed(t *testing.T) {
	t0 := time.Now()

	prev := counters("sda", 100, 800, 50, 200, 1600, 100, 150)
	curr := counters("sda", 150, 1600, 150, 300, 3200, 300, 1150)

	state := &deviceState{prev: prev, prevTime: t0, hasPrev: true}
	ds := deriveDisk(curr, state, t0)

	if ds.ReadBytesPerSec != 0 || ds.WriteBytesPerSec != 0 {
		t.Errorf("rates with zero elapsed = %v/%v, want 0/0",
			ds.ReadBytesPerSec, ds.WriteBytesPerSec)
	}
	if ds.TotalReads != 150 {
		t.Errorf("TotalReads = %d, want cumulative 150", ds.TotalReads)
	}
}

func TestDeriveDiskUtilizationClamp(t *testing.T) {
	t0 := time.Now()
	t1 := t0.Add(time.Second)

	// 5000ms of reported active time inside a 1000ms window
	prev := counters("sda", 0, 0, 0, 0, 0, 0, 0)
	curr := counters("sda", 10, 80, 5, 0, 0, 0, 5000)

	state := &deviceState{prev: prev, prevTime: t0, hasPrev: true}
	ds := deriveDisk(curr, state, t1)

	if ds.UtilizationPercent != 100 {
		t.Errorf("UtilizationPercent = %v, want clamped to 100", ds.UtilizationPercent)
	}
}

func TestSatSub(t *testing.T) {
	tests := []struct {
		curr, prev, want uint64
	}{
		{10, 5, 5},
		{5, 5, 0},
		{3, 10, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := satSub(tt.curr, tt.prev); got != tt.want {
			t.Errorf("satSub(%d, %d) = %d, want %d", tt.curr, tt.prev, got, tt.want)
		}
	}
}

func TestModelSampleAndHistory(t *testing.T) {
	probe := &fakeProbe{readings: []disk.SystemCounters{
		{Devices: []disk.Counters{counters("sda", 100, 800, 50, 200, 1600, 100, 150)}},
		{Devices: []disk.Counters{counters("sda", 150, 1600, 150, 300, 3200, 300, 1150)}},
		{Devices: []disk.Counters{counters("sda", 200, 2400, 250, 400, 4800, 500, 2150)}},
	}}
	m := NewModel(probe, 300)

	// Scripted clock stepping 2s per sample, repeating the last instant
	t0 := time.Now()
	clock := []time.Time{t0, t0.Add(2 * time.Second), t0.Add(4 * time.Second)}
	tick := 0
	m.now = func() time.Time {
		instant := clock[tick]
		if tick < len(clock)-1 {
			tick++
		}
		return instant
	}

	if _, ok := m.LatestSnapshot(); ok {
		t.Fatal("LatestSnapshot reported data before the first Sample")
	}

	m.Sample()
	m.Sample()
	m.Sample()

	snapshot, ok := m.LatestSnapshot()
	if !ok {
		t.Fatal("no snapshot after sampling")
	}
	if len(snapshot.Disks) != 1 || snapshot.Disks[0].Name != "sda" {
		t.Fatalf("snapshot disks = %+v, want one sda entry", snapshot.Disks)
	}
	if snapshot.Disks[0].TotalReads != 200 {
		t.Errorf("TotalReads = %d, want 200", snapshot.Disks[0].TotalReads)
	}

	// Third reading: 800 sectors read and 1600 written in 2 seconds,
	// 100ms of read time over 50 reads, 1000ms active in the window
	d := snapshot.Disks[0]
	if d.ReadBytesPerSec != 800*512/2 {
		t.Errorf("latest ReadBytesPerSec = %v, want %v", d.ReadBytesPerSec, 800*512/2)
	}
	if d.WriteBytesPerSec != 1600*512/2 {
		t.Errorf("latest WriteBytesPerSec = %v, want %v", d.WriteBytesPerSec, 1600*512/2)
	}
	if d.ReadOpsPerSec != 25 || d.WriteOpsPerSec != 50 {
		t.Errorf("latest ops rates = %v/%v, want 25/50", d.ReadOpsPerSec, d.WriteOpsPerSec)
	}
	if d.AvgReadLatencyMs != 2 {
		t.Errorf("latest AvgReadLatencyMs = %v, want 2", d.AvgReadLatencyMs)
	}
	if d.UtilizationPercent != 50 {
		t.Errorf("latest UtilizationPercent = %v, want 50", d.UtilizationPercent)
	}

	history := m.History()
	timestamps := m.HistoryTimestamps()
	readRates := m.TotalReadHistory()
	writeRates := m.TotalWriteHistory()

	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if len(timestamps) != len(history) || len(readRates) != len(history) || len(writeRates) != len(history) {
		t.Errorf("parallel history lengths diverge: %d timestamps, %d snapshots, %d read rates, %d write rates",
			len(timestamps), len(history), len(readRates), len(writeRates))
	}

	// First entry has no previous sample, so system-wide rates are zero
	if readRates[0] != 0 || writeRates[0] != 0 {
		t.Errorf("first entry rates = %v/%v, want 0/0", readRates[0], writeRates[0])
	}

	// Both later entries cover 800 sectors read and 1600 written over 2s
	for i := 1; i <= 2; i++ {
		if readRates[i] != 800*512/2 {
			t.Errorf("readRates[%d] = %v, want %v", i, readRates[i], 800*512/2)
		}
		if writeRates[i] != 1600*512/2 {
			t.Errorf("writeRates[%d] = %v, want %v", i, writeRates[i], 1600*512/2)
		}
	}
	if !timestamps[1].Equal(t0.Add(2 * time.Second)) {
		t.Errorf("timestamps[1] = %v, want %v", timestamps[1], t0.Add(2*time.Second))
	}
}

func TestModelNilProbe(t *testing.T) {
	m := NewModel(nil, 300)

	m.Sample()

	if _, ok := m.LatestSnapshot(); ok {
		t.Error("nil-probe model published a snapshot")
	}
	if len(m.History()) != 0 {
		t.Error("nil-probe model recorded history")
	}
	if caps := m.Capabilities(); caps.HasStats {
		t.Error("nil-probe capabilities should be all false")
	}
}

func TestModelHistoryTrimming(t *testing.T) {
	m := NewModel(&fakeProbe{}, 60)

	now := time.Now()
	old := now.Add(-120 * time.Second)
	recent := now.Add(-10 * time.Second)

	m.mu.Lock()
	m.timestamps = []time.Time{old, recent, now}
	m.history = []Snapshot{{Timestamp: old}, {Timestamp: recent}, {Timestamp: now}}
	m.readRateHistory = []float64{1, 2, 3}
	m.writeRateHistory = []float64{4, 5, 6}
	m.trimLocked(now)
	m.mu.Unlock()

	if len(m.History()) != 2 {
		t.Fatalf("history length after trim = %d, want 2", len(m.History()))
	}
	if got := m.TotalReadHistory(); got[0] != 2 {
		t.Errorf("oldest surviving read rate = %v, want 2", got[0])
	}
}

func TestModelSetMaxHistorySeconds(t *testing.T) {
	m := NewModel(&fakeProbe{}, 300)

	m.SetMaxHistorySeconds(10)

	now := time.Now()
	old := now.Add(-30 * time.Second)
	m.mu.Lock()
	m.timestamps = []time.Time{old, now}
	m.history = []Snapshot{{Timestamp: old}, {Timestamp: now}}
	m.readRateHistory = []float64{1, 2}
	m.writeRateHistory = []float64{3, 4}
	m.trimLocked(now)
	m.mu.Unlock()

	if len(m.History()) != 1 {
		t.Errorf("history length = %d, want 1 after narrowing window", len(m.History()))
	}

	// Non-positive values are ignored
	m.SetMaxHistorySeconds(0)
	m.mu.RLock()
	got := m.maxHistorySeconds
	m.mu.RUnlock()
	if got != 10 {
		t.Errorf("maxHistorySeconds = %d, want 10", got)
	}
}

func TestModelSnapshotIsolation(t *testing.T) {
	probe := &fakeProbe{readings: []disk.SystemCounters{
		{Devices: []disk.Counters{counters("sda", 100, 800, 50, 200, 1600, 100, 150)}},
	}}
	m := NewModel(probe, 300)
	m.Sample()

	snapshot, _ := m.LatestSnapshot()
	snapshot.Disks[0].Name = "mutated"

	again, _ := m.LatestSnapshot()
	if again.Disks[0].Name != "sda" {
		t.Error("mutating a returned snapshot leaked into the model")
	}
}

func TestModelConcurrentReaders(t *testing.T) {
	probe := &fakeProbe{readings: []disk.SystemCounters{
		{Devices: []disk.Counters{counters("sda", 100, 800, 50, 200, 1600, 100, 150)}},
		{Devices: []disk.Counters{counters("sda", 150, 1600, 150, 300, 3200, 300, 1150)}},
	}}
	m := NewModel(probe, 300)

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			m.Sample()
		}
		close(done)
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snapshot, ok := m.LatestSnapshot()
				if ok && len(snapshot.Disks) != 1 {
					t.Errorf("torn snapshot: %d disks", len(snapshot.Disks))
					return
				}
				history := m.History()
				timestamps := m.HistoryTimestamps()
				if len(history) > 0 && len(timestamps) == 0 {
					t.Error("history and timestamps out of sync")
					return
				}
				_ = m.TotalReadHistory()
				_ = m.TotalWriteHistory()
			}
		}()
	}

	wg.Wait()
}
