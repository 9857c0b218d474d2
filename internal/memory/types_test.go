package memory

import "testing"

func TestNormalizeSentiment(t *testing.T) {
	cases := []struct {
		in   string
		want Sentiment
	}{
		{"happy", SentimentHappy},
		{"sad", SentimentSad},
		{"neutral", SentimentNeutral},
		{"ecstatic", SentimentNeutral},
		{"", SentimentNeutral},
		{"HAPPY", SentimentNeutral},
	}
	for _, tc := range cases {
		if got := NormalizeSentiment(tc.in); got != tc.want {
			t.Errorf("NormalizeSentiment(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
