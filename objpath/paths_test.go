package objpath

import "testing"

func TestPaths(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"object", Object(3303), "3303"},
		{"instance", Instance(3303, 101), "3303/101"},
		{"resource", Resource(3303, 101, 5700), "3303/101/5700"},
		{"resource instance", ResourceInstance(3303, 101, 5700, 0), "3303/101/5700/0"},
		{"config file", ConfigFile(3435, 62812, 1), "3435.62812.1"},
		{"max ids", ResourceInstance(65535, 65535, 65535, 65535), "65535/65535/65535/65535"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestMaxLen(t *testing.T) {
	longest := ResourceInstance(65535, 65535, 65535, 65535)
	if len(longest) != MaxLen {
		t.Errorf("MaxLen is %d, longest path is %d", MaxLen, len(longest))
	}
}
