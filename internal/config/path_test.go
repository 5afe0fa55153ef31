package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("BANKNOTIFY_DATA", "/srv/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: ":memory:", want: ":memory:"},
		{in: "~", want: "/home/tester"},
		{in: "~/logs.db", want: "/home/tester/logs.db"},
		{in: "$BANKNOTIFY_DATA/logs.db", want: "/srv/data/logs.db"},
		{in: "/abs/logs.db", want: "/abs/logs.db"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name string
		path string
		base string
		want string
	}{
		{name: "relative with base", path: "logs.db", base: "/etc/banknotify", want: "/etc/banknotify/logs.db"},
		{name: "relative without base", path: "data/logs.db", base: "", want: "data/logs.db"},
		{name: "absolute ignores base", path: "/var/lib/logs.db", base: "/etc/banknotify", want: "/var/lib/logs.db"},
		{name: "tilde ignores base", path: "~/sources.yaml", base: "/etc/banknotify", want: "/home/tester/sources.yaml"},
		{name: "memory ignores base", path: ":memory:", base: "/etc/banknotify", want: ":memory:"},
		{name: "empty stays empty", path: "", base: "/etc/banknotify", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.path, tt.base))
		})
	}
}
