package toml

import (
	"testing"
)

type serverConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    serverConfig
		wantErr bool
	}{
		{
			name: "valid table",
			data: "host = \"localhost\"\nport = 8080\n",
			want: serverConfig{Host: "localhost", Port: 8080},
		},
		{
			name: "comments accepted",
			data: "# server address\nhost = \"localhost\" # default\nport = 8080\n",
			want: serverConfig{Host: "localhost", Port: 8080},
		},
		{
			name: "empty input leaves zero value",
			data: "",
			want: serverConfig{},
		},
		{
			name:    "invalid TOML",
			data:    "host = \n",
			wantErr: true,
		},
		{
			name:    "type mismatch",
			data:    "port = \"not a number\"\n",
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
	if got := New().Name(); got != "toml" {
		t.Errorf("Name() = %q, want %q", got, "toml")
	}
}
