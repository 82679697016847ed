package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "not-a-date", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAddNormalizes(t *testing.T) {
	d := New(2025, time.January, 31).Add(1)
	if got, want := d.String(), "2025-02-01"; got != want {
		t.Errorf("Add(1) = %s, want %s", got, want)
	}
	if got := New(2025, time.March, 1).Add(-1).String(); got != "2025-02-28" {
		t.Errorf("Add(-1) = %s, want 2025-02-28", got)
	}
}

func TestSub(t *testing.T) {
	a := MustParse("2025-01-01")
	b := MustParse("2025-01-08")
	if got := b.Sub(a); got != 7 {
		t.Errorf("Sub = %d, want 7", got)
	}
	if got := a.Sub(b); got != -7 {
		t.Errorf("Sub = %d, want -7", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type holder struct {
		On Date `json:"on"`
	}
	in := holder{On: MustParse("2025-12-31")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out holder
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.On != in.On {
		t.Errorf("round trip = %v, want %v", out.On, in.On)
	}

	// Zero date survives as zero.
	data, _ = json.Marshal(holder{})
	var zero holder
	if err := json.Unmarshal(data, &zero); err != nil {
		t.Fatal(err)
	}
	if !zero.On.IsZero() {
		t.Errorf("zero round trip = %v, want zero", zero.On)
	}
}

func TestTrailingRange(t *testing.T) {
	r := Trailing(MustParse("2025-06-07"), 7)
	if r.From != MustParse("2025-06-01") {
		t.Errorf("From = %v, want 2025-06-01", r.From)
	}
	if r.Days() != 7 {
		t.Errorf("Days = %d, want 7", r.Days())
	}
	var n int
	for range r.All() {
		n++
	}
	if n != 7 {
		t.Errorf("iterated %d days, want 7", n)
	}
	if !r.Contains(MustParse("2025-06-03")) || r.Contains(MustParse("2025-06-08")) {
		t.Error("Contains gave wrong answer")
	}
}
