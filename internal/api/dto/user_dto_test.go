package dto

import "testing"

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"},
		},
		{
			name:    "blank name",
			req:     RegisterRequest{Name: "   ", Email: "ann@x.com", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "missing email",
			req:     RegisterRequest{Name: "Ann", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "email without domain dot",
			req:     RegisterRequest{Name: "Ann", Email: "ann@localhost", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "email with spaces",
			req:     RegisterRequest{Name: "Ann", Email: "ann @x.com", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "12345"},
			wantErr: true,
		},
		{
			name:    "everything wrong",
			req:     RegisterRequest{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{name: "valid", req: LoginRequest{Email: "ann@x.com", Password: "secret1"}},
		{name: "bad email", req: LoginRequest{Email: "not-an-email", Password: "secret1"}, wantErr: true},
		{name: "missing password", req: LoginRequest{Email: "ann@x.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
