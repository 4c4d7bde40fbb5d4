package scenario

import "testing"

func TestParse(t *testing.T) {
	raw := []byte(`{
		"name": "s4-ring-wrap",
		"buffer_len": 16,
		"align": 4,
		"messages": ["AAAA", "AAAA", "AAAA", "AAAA"]
	}`)
	s, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Name != "s4-ring-wrap" {
		t.Fatalf("Name = %q", s.Name)
	}
	if s.BufLen != 16 || s.Align != 4 {
		t.Fatalf("BufLen=%d Align=%d", s.BufLen, s.Align)
	}
	if len(s.Messages) != 4 {
		t.Fatalf("Messages = %v", s.Messages)
	}
}

func TestParseDefaultsAlignAndName(t *testing.T) {
	s, err := Parse([]byte(`{"buffer_len": 24, "messages": []}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Align != defaultAlign {
		t.Fatalf("Align = %d, want default %d", s.Align, defaultAlign)
	}
	if s.Name != "unnamed" {
		t.Fatalf("Name = %q, want \"unnamed\"", s.Name)
	}
}

func TestParseRequiresBufferLen(t *testing.T) {
	if _, err := Parse([]byte(`{"name": "x"}`)); err == nil {
		t.Fatal("expected error for missing buffer_len")
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	if _, err := Parse([]byte(`[1,2,3]`)); err == nil {
		t.Fatal("expected error for non-object document")
	}
}
