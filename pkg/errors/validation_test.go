package errors

import (
	"testing"
)

func TestValidateCandidateCount(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"single", 1, false},
		{"default", 11, false},
		{"max", MaxCandidates, false},

		{"zero", 0, true},
		{"negative", -3, true},
		{"too many", MaxCandidates + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCandidateCount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCandidateCount(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCoalitionSize(t *testing.T) {
	tests := []struct {
		name    string
		k, n    int
		wantErr bool
	}{
		{"zero", 0, 10, false},
		{"all ballots", 10, 10, false},
		{"some", 3, 10, false},

		{"negative", -1, 10, true},
		{"too large", 11, 10, true},
		{"empty profile", 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoalitionSize(tt.k, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoalitionSize(%d, %d) error = %v, wantErr %v", tt.k, tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCoalitionSize) {
				t.Errorf("ValidateCoalitionSize(%d, %d) code = %v, want %v", tt.k, tt.n, GetCode(err), ErrCodeInvalidCoalitionSize)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "votes.txt", false},
		{"absolute", "/tmp/votes.txt", false},
		{"nested", "data/ed-00001.toc", false},

		{"empty", "", true},
		{"null byte", "votes\x00.txt", true},
		{"newline", "votes\n.txt", true},
		{"too long", string(make([]byte, 5000)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		schemes []string
		wantErr bool
	}{
		{"mongo", "mongodb://localhost:27017", []string{"mongodb", "mongodb+srv"}, false},
		{"mongo srv", "mongodb+srv://cluster.example.net", []string{"mongodb", "mongodb+srv"}, false},
		{"redis", "redis://localhost:6379/0", []string{"redis", "rediss"}, false},

		{"empty", "", []string{"redis"}, true},
		{"wrong scheme", "http://localhost", []string{"redis"}, true},
		{"no scheme", "localhost:6379", []string{"redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURI(tt.input, tt.schemes...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
