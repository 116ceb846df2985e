package roles

import "testing"

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  bool
	}{
		{"empty set", nil, false},
		{"admin only", []string{"admin"}, true},
		{"admin among codes", []string{"fr", "admin", "de"}, true},
		{"codes only", []string{"fr", "de"}, false},
		{"case sensitive", []string{"Admin"}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdmin(tt.roles); got != tt.want {
				t.Fatalf("IsAdmin(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}

func TestCanEditLanguage(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		code  string
		want  bool
	}{
		{"holder of the code", []string{"fr"}, "fr", true},
		{"admin without the code", []string{"admin"}, "fr", true},
		{"other code only", []string{"de"}, "fr", false},
		{"empty set", nil, "fr", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditLanguage(tt.roles, tt.code); got != tt.want {
				t.Fatalf("CanEditLanguage(%v, %q) = %v, want %v", tt.roles, tt.code, got, tt.want)
			}
		})
	}
}

func TestCanManage(t *testing.T) {
	if CanManage([]string{"fr", "de"}) {
		t.Fatalf("language roles must not grant management rights")
	}
	if !CanManage([]string{"admin"}) {
		t.Fatalf("admin must grant management rights")
	}
}
