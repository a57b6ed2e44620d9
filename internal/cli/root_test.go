package cli

import "testing"

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"server":    false,
		"assistant": false,
		"gateway":   false,
		"version":   false,
		"status":    false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestAssistantFlags(t *testing.T) {
	if assistantCmd.Flags().Lookup("message") == nil {
		t.Fatal("expected --message flag")
	}
	if flag := assistantCmd.Flags().Lookup("session"); flag == nil || flag.DefValue != "cli:default" {
		t.Fatal("expected --session flag with cli:default default")
	}
}
