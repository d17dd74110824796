package core

import "testing"

func TestAvatarURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		user string
		want string
	}{
		{
			name: "default base",
			user: "Alice",
			want: "https://api.multiavatar.com/Alice.svg",
		},
		{
			name: "custom base",
			base: "https://avatars.example.com",
			user: "Bob",
			want: "https://avatars.example.com/Bob.svg",
		},
		{
			name: "name with spaces is escaped",
			user: "Alice Smith",
			want: "https://api.multiavatar.com/Alice%20Smith.svg",
		},
		{
			name: "name with slash is escaped",
			user: "a/b",
			want: "https://api.multiavatar.com/a%2Fb.svg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AvatarURL(tt.base, tt.user); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAvatarURLDeterministic(t *testing.T) {
	if AvatarURL("", "Alice") != AvatarURL("", "Alice") {
		t.Fatal("avatar derivation must be deterministic")
	}
}
