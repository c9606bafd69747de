package prefix

import (
	"errors"
	"slices"
	"testing"

	"stylekit/internal/diag"
)

func testData() *Data {
	return NewData(
		map[Browser][]float64{
			Chrome:  {40, 35, 30, 25, 20},
			Firefox: {30, 29, 28},
			IE:      {11, 10, 9},
			Safari:  {8, 7.1, 7, 6.1},
		},
		History{
			"border-radius": {Chrome: 30, Firefox: 28, Safari: 7},
			"user-select":   {Chrome: 40, IE: 11},
		},
		History{
			"linear-gradient": {Chrome: 25, Safari: 6.1},
		},
	)
}

func TestPrefixRequiredForOldChrome(t *testing.T) {
	m := NewSupportMatrix(testData()).Browser(Chrome, 25)
	if err := m.Err(); err != nil {
		t.Fatal(err)
	}
	got := m.PrefixesForProperty("border-radius")
	if got != SetOf(Webkit) {
		t.Fatalf("prefixes = %s, want [-webkit-]", got)
	}
	if !m.RequiresPrefixForProperty(Webkit, "border-radius") {
		t.Fatal("webkit prefix should be required")
	}

	m = NewSupportMatrix(testData()).Browser(Chrome, 40)
	if got := m.PrefixesForProperty("border-radius"); !got.IsEmpty() {
		t.Fatalf("prefixes = %s, want none", got)
	}
	if m.RequiresPrefixForProperty(Webkit, "border-radius") {
		t.Fatal("webkit prefix should not be required")
	}
}

func TestLowestVersionDecides(t *testing.T) {
	// 40 alone needs nothing; adding 30 brings the lowest down to the boundary.
	m := NewSupportMatrix(testData()).Browser(Chrome, 40).Browser(Chrome, 30)
	if got := m.PrefixesForProperty("border-radius"); got != SetOf(Webkit) {
		t.Fatalf("prefixes = %s", got)
	}
	if got := m.LowestSupportedVersion(Chrome); got != 30 {
		t.Fatalf("lowest = %v", got)
	}
}

func TestCanonicalOrder(t *testing.T) {
	a := NewSupportMatrix(testData()).Browser(IE, 9).Browser(Firefox, 28).Browser(Chrome, 20)
	b := NewSupportMatrix(testData()).Browser(Chrome, 20).Browser(Firefox, 28).Browser(IE, 9)
	pa, pb := a.PrefixesForProperty("border-radius"), b.PrefixesForProperty("border-radius")
	if pa != pb {
		t.Fatalf("%s != %s", pa, pb)
	}
	want := []Prefix{Webkit, Moz}
	if !slices.Equal(pa.Slice(), want) {
		t.Fatalf("slice = %v, want %v", pa.Slice(), want)
	}
	if got := a.PrefixesForProperty("user-select").Slice(); !slices.Equal(got, []Prefix{Webkit, MS}) {
		t.Fatalf("user-select = %v", got)
	}
}

func TestInsertionOrderIndependent(t *testing.T) {
	orders := [][]float64{
		{20, 25, 30},
		{30, 20, 25},
		{25, 30, 20, 25, 30},
	}
	for _, order := range orders {
		m := NewSupportMatrix(testData())
		for _, v := range order {
			m.Browser(Chrome, v)
		}
		got := m.AllSupportedVersions(Chrome)
		if !slices.Equal(got, []float64{20, 25, 30}) {
			t.Fatalf("order %v: versions = %v", order, got)
		}
	}
}

func TestLast(t *testing.T) {
	m := NewSupportMatrix(testData()).Last(Chrome, 2)
	if err := m.Err(); err != nil {
		t.Fatal(err)
	}
	if got := m.AllSupportedVersions(Chrome); !slices.Equal(got, []float64{35, 40}) {
		t.Fatalf("versions = %v", got)
	}

	m = NewSupportMatrix(testData()).Last(Chrome, 5)
	if got := m.AllSupportedVersions(Chrome); len(got) != 5 {
		t.Fatalf("versions = %v", got)
	}

	for _, n := range []int{0, 6} {
		m = NewSupportMatrix(testData()).Last(Chrome, n)
		if diag.CodeOf(m.Err()) != diag.CfgVersionCount {
			t.Fatalf("last %d: err = %v", n, m.Err())
		}
		if !errors.Is(m.Err(), diag.ErrConfig) {
			t.Fatalf("last %d: not a config error", n)
		}
	}
}

func TestLatest(t *testing.T) {
	m := NewSupportMatrix(testData()).Latest(Firefox)
	if !m.SupportsVersion(Firefox, 30) || m.SupportsVersion(Firefox, 29) {
		t.Fatalf("versions = %v", m.AllSupportedVersions(Firefox))
	}
	m = NewSupportMatrix(testData()).Latest(Opera)
	if diag.CodeOf(m.Err()) != diag.CfgVersionCount {
		t.Fatalf("err = %v", m.Err())
	}
}

func TestUnknownVersion(t *testing.T) {
	m := NewSupportMatrix(testData()).Browser(Chrome, 26).Browser(Chrome, 41)
	if diag.CodeOf(m.Err()) != diag.CfgUnknownVersion {
		t.Fatalf("err = %v", m.Err())
	}
	if m.SupportsBrowser(Chrome) {
		t.Fatal("rejected version should not be recorded")
	}
}

func TestUnsupportedBrowser(t *testing.T) {
	m := NewSupportMatrix(testData()).Browser(Chrome, 40)
	if m.SupportsBrowser(Firefox) {
		t.Fatal("firefox not configured")
	}
	if got := m.LowestSupportedVersion(Firefox); got != Unsupported {
		t.Fatalf("lowest = %v", got)
	}
	if got := m.SupportedBrowsers(); !slices.Equal(got, []Browser{Chrome}) {
		t.Fatalf("browsers = %v", got)
	}
}

func TestFunctions(t *testing.T) {
	m := NewSupportMatrix(testData()).Browser(Chrome, 25).Browser(Safari, 7)
	if got := m.PrefixesForFunction("linear-gradient"); got != SetOf(Webkit) {
		t.Fatalf("prefixes = %s", got)
	}
	if !m.RequiresPrefixForFunction(Webkit, "Linear-Gradient") {
		t.Fatal("names are case-insensitive")
	}
	if m.RequiresPrefixForFunction(Webkit, "calc") {
		t.Fatal("no history for calc")
	}
	if !m.PrefixesForProperty("color").IsEmpty() {
		t.Fatal("no history for color")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		entry string
		code  diag.Code
		want  []float64
	}{
		{entry: "chrome 25", want: []float64{25}},
		{entry: "Chrome latest", want: []float64{40}},
		{entry: "chrome last 3", want: []float64{30, 35, 40}},
		{entry: "chrome 26", code: diag.CfgUnknownVersion},
		{entry: "chrome last 9", code: diag.CfgVersionCount},
		{entry: "netscape 4", code: diag.CfgUnknownBrowser},
		{entry: "chrome", code: diag.CfgBadSupportEntry},
		{entry: "chrome newest", code: diag.CfgBadSupportEntry},
		{entry: "chrome last two", code: diag.CfgBadSupportEntry},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			m := NewSupportMatrix(testData()).Apply(tt.entry)
			if tt.code != 0 {
				if got := diag.CodeOf(m.Err()); got != tt.code {
					t.Fatalf("code = %v, want %v (err %v)", got, tt.code, m.Err())
				}
				return
			}
			if m.Err() != nil {
				t.Fatal(m.Err())
			}
			if got := m.AllSupportedVersions(Chrome); !slices.Equal(got, tt.want) {
				t.Fatalf("versions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSupportKeepsFirstError(t *testing.T) {
	_, err := ParseSupport(testData(), []string{"chrome 25", "ie 4", "chrome last 99"})
	if diag.CodeOf(err) != diag.CfgUnknownVersion {
		t.Fatalf("err = %v", err)
	}
}

func TestDefaultData(t *testing.T) {
	d := Default()
	if d != Default() {
		t.Fatal("Default should load once")
	}
	for _, b := range Browsers() {
		vs := d.Versions(b)
		if len(vs) == 0 {
			t.Fatalf("%s has no versions", b)
		}
		if !slices.IsSortedFunc(vs, func(a, b float64) int {
			switch {
			case a > b:
				return -1
			case a < b:
				return 1
			}
			return 0
		}) {
			t.Fatalf("%s versions not newest first", b)
		}
	}
	if !d.HasProperty("transition") || !d.HasFunction("linear-gradient") {
		t.Fatal("missing well-known entries")
	}
	m, err := ParseSupport(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !m.SupportsVersion(IE, 11) {
		t.Fatal("default support should include IE 11")
	}
	if !m.RequiresPrefixForProperty(MS, "user-select") {
		t.Fatal("IE 11 needs -ms-user-select")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		p    Prefix
		rest string
	}{
		{"-webkit-transition", Webkit, "transition"},
		{"-MOZ-box-sizing", Moz, "box-sizing"},
		{"-o-linear-gradient", O, "linear-gradient"},
		{"color", PrefixNone, "color"},
		{"--custom", PrefixNone, "--custom"},
	}
	for _, tt := range tests {
		p, rest := Split(tt.in)
		if p != tt.p || rest != tt.rest {
			t.Errorf("Split(%q) = %v, %q", tt.in, p, rest)
		}
	}
}
