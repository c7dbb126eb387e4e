package symbol

import "testing"

func TestModuleName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"user_controller.ex", "UserController"},
		{"lib/my_app/server.ex", "Server"},
		{"/abs/path/my_worker.exs", "MyWorker"},
		{"plain.ex", "Plain"},
		{"already", "Already"},
		{"double__underscore.ex", "DoubleUnderscore"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ModuleName(tc.path); got != tc.want {
			t.Fatalf("ModuleName(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestQualify(t *testing.T) {
	cases := []struct {
		name   string
		tag    string
		origin string
		want   string
	}{
		{"already qualified", "Server.handle_call/3", "other.ex", "Server.handle_call/3"},
		{"nested qualifier", "MyApp.Server.init/1", "other.ex", "MyApp.Server.init/1"},
		{"name with arity", "handle_call/3", "server.ex", "Server.handle_call/3"},
		{"bare identifier", "init", "server.ex", "Server.init"},
		{"module path", "MyApp.Worker", "server.ex", "MyApp.Worker"},
		{"fallback concatenation", "weird-token", "server.ex", "Server.weird-token"},
		{"no origin leaves raw", "handle_call/3", "", "handle_call/3"},
		{"empty token", "", "server.ex", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Qualify(tc.tag, tc.origin); got != tc.want {
				t.Fatalf("Qualify(%q, %q) = %q, want %q", tc.tag, tc.origin, got, tc.want)
			}
		})
	}
}

func TestStripArity(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Server.handle_call/3", "Server.handle_call"},
		{"handle_call/3", "handle_call"},
		{"Server.init", "Server.init"},
		{"path/not_arity", "path/not_arity"},
		{"trailing/", "trailing/"},
	}
	for _, tc := range cases {
		if got := StripArity(tc.in); got != tc.want {
			t.Fatalf("StripArity(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
