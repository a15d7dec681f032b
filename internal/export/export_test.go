package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"golang.org/x/text/unicode/norm"
)

func TestStripEmoji(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading emoji", "✨ 강남역 바로 앞이에요!", "강남역 바로 앞이에요!"},
		{"variation selector", "🏛️ 25평 / 전세 3억", "25평 / 전세 3억"},
		{"trailing emoji", "마음에 드실 거예요 😊", "마음에 드실 거예요"},
		{"inner emoji", "역 도보 5분 🚇 편의시설 인접", "역 도보 5분 편의시설 인접"},
		{"checkmarks", "✅ 남향, 채광 좋음", "남향, 채광 좋음"},
		{"no emoji", "즉시 입주 가능합니다.", "즉시 입주 가능합니다."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripEmoji(tt.in); got != tt.want {
				t.Fatalf("StripEmoji(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripEmojiComposesDecomposedHangul(t *testing.T) {
	decomposed := norm.NFD.String("강남역")
	if got := StripEmoji(decomposed); got != "강남역" {
		t.Fatalf("StripEmoji = %q, want NFC %q", got, "강남역")
	}
}

func TestCollapseBlankLines(t *testing.T) {
	in := "첫 줄\n\n\n  \n둘째 줄\r\n\r\n\r\n셋째 줄"
	want := "첫 줄\n\n둘째 줄\n\n셋째 줄"
	if got := CollapseBlankLines(in); got != want {
		t.Fatalf("CollapseBlankLines = %q, want %q", got, want)
	}
}

func TestFormatByTarget(t *testing.T) {
	text := "✨ 강남역 바로 앞이에요!\n\n\n🏠 25평으로 넉넉한 공간\n💰 전세 3억\n"

	if got := Format(TargetZigbang, text); got != text {
		t.Fatalf("zigbang export should be verbatim, got %q", got)
	}
	want := "강남역 바로 앞이에요!\n\n25평으로 넉넉한 공간\n전세 3억"
	if got := Format(TargetNaver, text); got != want {
		t.Fatalf("naver export = %q, want %q", got, want)
	}
}

func TestParseTarget(t *testing.T) {
	if got, err := ParseTarget(" Naver "); err != nil || got != TargetNaver {
		t.Fatalf("ParseTarget naver = %q, %v", got, err)
	}
	if got, err := ParseTarget("zigbang"); err != nil || got != TargetZigbang {
		t.Fatalf("ParseTarget zigbang = %q, %v", got, err)
	}
	if _, err := ParseTarget("dabang"); err == nil {
		t.Fatal("expected error for unknown target")
	}
	if TargetNaver.Filename() != "naver.txt" {
		t.Fatalf("Filename = %q", TargetNaver.Filename())
	}
}

func TestBundleHasOneFilePerTarget(t *testing.T) {
	modified := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	archive, err := Bundle("🏠 25평\n\n\n전세 3억", modified)
	if err != nil {
		t.Fatalf("Bundle returned error: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(zr.File) != len(Targets) {
		t.Fatalf("entries = %d, want %d", len(zr.File), len(Targets))
	}
	for i, f := range zr.File {
		if f.Name != Targets[i].Filename() {
			t.Fatalf("entry %d = %q, want %q", i, f.Name, Targets[i].Filename())
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		_ = rc.Close()
		if want := Format(Targets[i], "🏠 25평\n\n\n전세 3억"); string(data) != want {
			t.Fatalf("%s = %q, want %q", f.Name, data, want)
		}
	}
}
