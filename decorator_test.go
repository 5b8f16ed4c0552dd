package htmltext

import "testing"

func TestDefaultDecoratorMarkers(t *testing.T) {
	d := DefaultDecorator{}
	if p, s := d.DecorateEmphasis(); p != "*" || s != "*" {
		t.Errorf("DecorateEmphasis = %q, %q", p, s)
	}
	if p, s := d.DecorateStrong(); p != "**" || s != "**" {
		t.Errorf("DecorateStrong = %q, %q", p, s)
	}
	if got := d.DecorateLinkStart("https://x", 3); got != "[" {
		t.Errorf("DecorateLinkStart = %q", got)
	}
	if got := d.DecorateLinkEnd("https://x", 3); got != "][3]" {
		t.Errorf("DecorateLinkEnd = %q", got)
	}
	if got := d.DecorateImage("alt text"); got != "[alt text]" {
		t.Errorf("DecorateImage = %q", got)
	}
	if got := d.DecorateImage(""); got != "" {
		t.Errorf("DecorateImage empty alt = %q, want empty", got)
	}
}

func TestDefaultDecoratorFinalize(t *testing.T) {
	d := DefaultDecorator{}
	if got := d.Finalize(nil); got != nil {
		t.Errorf("Finalize(nil) = %v, want nil", got)
	}
	got := d.Finalize([]string{"https://a.example", "https://b.example"})
	want := []string{"[1] https://a.example", "[2] https://b.example"}
	if len(got) != len(want) {
		t.Fatalf("Finalize: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Finalize[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTrivialDecoratorOmitsEverything(t *testing.T) {
	d := TrivialDecorator{}
	if p, s := d.DecorateEmphasis(); p != "" || s != "" {
		t.Errorf("TrivialDecorator.DecorateEmphasis = %q, %q, want empty", p, s)
	}
	if got := d.DecorateLinkStart("x", 1); got != "" {
		t.Errorf("TrivialDecorator.DecorateLinkStart = %q, want empty", got)
	}
	if got := d.DecorateImage("alt"); got != "alt" {
		t.Errorf("TrivialDecorator.DecorateImage = %q, want alt passed through", got)
	}
	if got := d.Finalize([]string{"https://a.example"}); got != nil {
		t.Errorf("TrivialDecorator.Finalize = %v, want nil", got)
	}
}
