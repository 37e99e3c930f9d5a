package validators

import "testing"

func TestEmailValidator(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "a@b.com", nil},
		{"odd but deliverable", "x@localhost", nil},
		{"empty", "", ErrEmailEmpty},
		{"whitespace only", "   ", ErrEmailEmpty},
		{"no at sign", "not-an-email", ErrEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EmailValidator(tt.input); got != tt.wantErr {
				t.Errorf("EmailValidator(%q) = %v, want %v", tt.input, got, tt.wantErr)
			}
		})
	}
}
