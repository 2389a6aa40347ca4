package platform

import "testing"

func TestStatic(t *testing.T) {
	p := Static{OSID: "linux", ArchID: "x86_64", Version: "3.0.6", Ext: "so"}

	if p.OS() != "linux" || p.Arch() != "x86_64" || p.RubyVersion() != "3.0.6" || p.DLExt() != "so" {
		t.Errorf("Static accessors = (%q, %q, %q, %q)", p.OS(), p.Arch(), p.RubyVersion(), p.DLExt())
	}
}

func TestIsWindows(t *testing.T) {
	tests := []struct {
		os   string
		want bool
	}{
		{"windows", true},
		{"mingw32", true},
		{"x64-mingw-ucrt", true},
		{"mswin64", true},
		{"cygwin", true},
		{"linux", false},
		{"linux-gnu", false},
		{"darwin", false},
		{"darwin21", false},
	}

	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			if got := IsWindows(tt.os); got != tt.want {
				t.Errorf("IsWindows(%q) = %v, want %v", tt.os, got, tt.want)
			}
		})
	}
}

func TestNormalizeOS(t *testing.T) {
	tests := []struct {
		hostOS string
		want   string
	}{
		{"linux", "linux"},
		{"linux-gnu", "linux"},
		{"darwin", "darwin"},
		{"darwin21", "darwin"},
		{"mingw32", "windows"},
		{"mswin64", "windows"},
		{"windows", "windows"},
		{"freebsd", "freebsd"},
	}

	for _, tt := range tests {
		t.Run(tt.hostOS, func(t *testing.T) {
			if got := NormalizeOS(tt.hostOS); got != tt.want {
				t.Errorf("NormalizeOS(%q) = %q, want %q", tt.hostOS, got, tt.want)
			}
		})
	}
}
