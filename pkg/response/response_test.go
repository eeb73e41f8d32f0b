package response

import "testing"

func TestFencedBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLang string
		wantBody string
		wantOK   bool
	}{
		{"tagged", "Here:\n```json\n{\"a\": 1}\n```\nDone.", "json", `{"a": 1}`, true},
		{"untagged", "```\n{}\n```", "", "{}", true},
		{"uppercase tag", "```JSON\n[]\n```", "json", "[]", true},
		{"inline", "```{\"x\":1}```", "", `{"x":1}`, true},
		{"first of two", "```yaml\na: 1\n```\n```json\n{}\n```", "yaml", "a: 1", true},
		{"none", "no fences here", "", "", false},
		{"unterminated", "```json\n{", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := FencedBlock(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if b.Lang != tt.wantLang {
				t.Errorf("Lang = %q, want %q", b.Lang, tt.wantLang)
			}
			if b.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", b.Body, tt.wantBody)
			}
		})
	}
}

func TestFencedBlocks(t *testing.T) {
	got := FencedBlocks("```a\none\n```\ntext\n```b\ntwo\n```")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Body != "one" || got[1].Body != "two" {
		t.Errorf("bodies = %q, %q", got[0].Body, got[1].Body)
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{`Sure! {"nodes": [{"id": "a"}]} hope that helps`, `{"nodes": [{"id": "a"}]}`, true},
		{`{a} and {b}`, `{a} and {b}`, true},
		{`} backwards {`, "", false},
		{`no braces`, "", false},
	}

	for _, tt := range tests {
		got, ok := Between(tt.input, '{', '}')
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Between(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPayloadPrefersFence(t *testing.T) {
	in := "prefix {ignored}\n```json\n{\"used\": true}\n```"
	got, ok := Payload(in, '{', '}')
	if !ok {
		t.Fatal("Payload() reported no payload")
	}
	if got != `{"used": true}` {
		t.Errorf("Payload() = %q", got)
	}
}
