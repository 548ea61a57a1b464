package disk

import "testing"

func TestIncludeDevice(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"sda", true},
		{"sdb", true},
		{"vda", true},
		{"xvda", true},
		{"nvme0n1", true},
		{"nvme1n1", true},
		{"mmcblk0", false},
		{"sda1", false},
		{"sda2", false},
		{"nvme0n1p1", false},
		{"nvme0n1p2", false},
		{"dm-0", false},
		{"loop0", false},
		{"loop12", false},
		{"ram0", false},
		{"ram15", false},
		{"zram0", false},
		{"fd0", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IncludeDevice(tt.name); got != tt.want {
			t.Errorf("IncludeDevice(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIncludeDeviceSpecSet(t *testing.T) {
	input := []string{"sda", "sda1", "loop0", "nvme0n1", "nvme0n1p1", "ram0", "dm-0"}
	want := map[string]bool{"sda": true, "nvme0n1": true}

	got := map[string]bool{}
	for _, name := range input {
		if IncludeDevice(name) {
			got[name] = true
		}
	}

	if len(got) != len(want) {
		t.Fatalf("accepted set = %v, want %v", got, want)
	}
	for name := range want {
		if !got[name] {
			t.Errorf("expected %q to be accepted", name)
		}
	}
}
