package cli

import "testing"

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name      string
		flagValue string
		cfgValue  string
		want      string
		wantErr   bool
	}{
		{"flag wins over config", "json", "text", "json", false},
		{"config used without flag", "", "json", "json", false},
		{"defaults to text", "", "", "text", false},
		{"unknown flag value", "xml", "text", "", true},
		{"unknown config value", "", "yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.flagValue, tt.cfgValue)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveFormat(%q, %q) = %q, want error", tt.flagValue, tt.cfgValue, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveFormat(%q, %q): %v", tt.flagValue, tt.cfgValue, err)
			}
			if got != tt.want {
				t.Errorf("resolveFormat(%q, %q) = %q, want %q", tt.flagValue, tt.cfgValue, got, tt.want)
			}
		})
	}
}
