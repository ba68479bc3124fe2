package redis

import "testing"

func TestKeyBuilders(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{RefreshSessionKey("u1", "s1"), "auth:refresh:u1:s1"},
		{RefreshSessionScanPattern("u1"), "auth:refresh:u1:*"},
		{LoginEmailRateKey("a@b.c"), "ratelimit:login:email:a@b.c"},
		{LoginIPRateKey("10.0.0.1"), "ratelimit:login:ip:10.0.0.1"},
		{SignupEmailRateKey("a@b.c"), "ratelimit:signup:email:a@b.c"},
		{SignupIPRateKey("10.0.0.1"), "ratelimit:signup:ip:10.0.0.1"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("key mismatch: got %q want %q", c.got, c.want)
		}
	}
}
