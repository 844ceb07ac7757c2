package jsonc

import (
	"testing"
)

type serverConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    serverConfig
		wantErr bool
	}{
		{
			name: "plain JSON",
			data: `{"host": "localhost", "port": 8080}`,
			want: serverConfig{Host: "localhost", Port: 8080},
		},
		{
			name: "line comments",
			data: `{
				// server address
				"host": "localhost",
				"port": 8080
			}`,
			want: serverConfig{Host: "localhost", Port: 8080},
		},
		{
			name: "block comments and trailing comma",
			data: `{
				/* server address */
				"host": "localhost",
				"port": 8080,
			}`,
			want: serverConfig{Host: "localhost", Port: 8080},
		},
		{
			name:    "invalid input",
			data:    `{"host": `,
			wantErr: true,
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got serverConfig
			err := c.Decode([]byte(tt.data), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	if got := New().Name(); got != "jsonc" {
		t.Errorf("Name() = %q, want %q", got, "jsonc")
	}
}
